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

package formats

// descriptor implements the Name(), Description() and Extensions() functions
// of the cassette.Format interface.
type descriptor struct {
	name        string
	description string
	extensions  []string
}

func (d descriptor) Name() string {
	return d.name
}

func (d descriptor) Description() string {
	return d.description
}

func (d descriptor) Extensions() []string {
	return d.extensions
}
