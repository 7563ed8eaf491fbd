/*
Copyright © 2018 the zremap authors.
This file is part of zremap.

zremap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

zremap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with zremap.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command zremap is a command-line interface for remapping depth-space
// ocean fields onto z-star model layer grids.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/zremap/internal/cmd"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
