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

// Package zremap conservatively remaps depth-space ocean fields onto
// z-star model layer grids. It reads a source field and its vertical
// coordinate from a NetCDF file, builds dilated z-star interfaces for
// each water column from the target layer thicknesses and the
// bathymetry, and fills each target layer with the thickness-weighted
// average of the overlapping source cells, reconstructing sub-cell
// profiles with monotonicity-limited slopes where the source provides
// true cell edges.
package zremap

// Version gives the version of this software.
const Version = "1.0.0"
