// This file is part of Gophertape.
//
// Gophertape is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertape is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertape.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the application. Entries are made up of
// a tag and a detail string. The tag is usually the name of the package or
// tape format making the entry:
//
//	logger.Logf(env, "oric", "header: start %#04x end %#04x", start, end)
//
// The first argument to Log() and Logf() is a Permission. The environment
// package implements the Permission interface. Where no environment is
// available the Allow value can be used.
//
// Consecutive entries with the same tag and detail are folded into a single
// entry with a repeat count.
//
// The package level functions all operate on the central logger. Individual
// Logger instances can be created with NewLogger(), which is useful for
// testing.
package logger
