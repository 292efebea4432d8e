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

// Package supercharger implements the tape format for the Atari 2600
// Supercharger. The input is a "fastload" binary: a sequence of 8448 byte
// load blocks, each with 8K of page data and a 256 byte game header.
//
// The output is the waveform the Supercharger BIOS expects to hear from the
// cassette player. Each block is framed by a one second clearing tone and is
// preceded by a long run of alternating bits which the BIOS uses to calibrate.
//
// Format information for the fastload binary is taken from the following
// mailing list post:
//
// Subject: Re: [stella] Supercharger BIN format
// From: Eckhard Stolberg
// Date: Fri, 08 Jan 1999.
package supercharger
