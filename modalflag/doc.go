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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are supplied to NewArgs() and Parse() is
// called with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("convert", "info", "play", "formats")
//	rate := md.AddInt("rate", 0, "output sample rate")
//	_, _ = md.Parse()
//
// The first sub-mode is the default. If the first argument after the flags
// names a sub-mode then that mode is selected and the argument is consumed.
// Sub-mode comparisons are case insensitive and Mode() always returns the mode
// in upper case.
//
//	switch md.Mode() {
//	case "CONVERT":
//		md.NewMode()
//		out := md.AddString("out", "", "output file")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		convert(md.RemainingArgs(), *out)
//	}
//
// Modes can be chained to any depth. The Path() function returns every mode
// encountered so far, separated by a slash.
package modalflag
