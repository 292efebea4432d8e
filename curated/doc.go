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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the function of
// the same name in the fmt package it takes a formatting pattern and some
// placeholder values. Unlike the fmt package the pattern is retained and can be
// used to identify the error later on. The cassette package uses this to
// implement the invalid/unsupported image taxonomy:
//
//	err := curated.Errorf(cassette.InvalidImage, "oric: no sync byte")
//
//	if curated.Is(err, cassette.InvalidImage) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. Errors that are passed up through the call stack should be
// wrapped with a pattern naming the package:
//
//	f := curated.Errorf("tapeloader: %v", err)
//
//	if curated.Has(f, cassette.InvalidImage) {
//		fmt.Println("true")
//	}
//
//	if curated.Is(f, cassette.InvalidImage) {
//		fmt.Println("false")
//	}
//
// When the error is printed, adjacent duplicate prefixes are collapsed. So an
// error created like this:
//
//	curated.Errorf("wavwriter: %v", curated.Errorf("wavwriter: %v", "bad rate"))
//
// will print as:
//
//	wavwriter: bad rate
//
// Plain errors can be placeholder values. The Unwrap() function returns the
// first of these so errors.Is() works through curated errors.
package curated
