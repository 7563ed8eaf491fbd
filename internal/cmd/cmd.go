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

package cmd

import (
	"fmt"

	"github.com/spatialmodel/zremap"
	"github.com/spf13/cobra"
)

// configFile specifies the location of the configuration file.
var configFile string

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(remapCmd)

	// Create the configuration flags.
	Root.PersistentFlags().StringVar(&configFile, "config", "./zremap.toml", "configuration file location")
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "zremap",
	Short: "A z-star vertical remapper for ocean model initial conditions.",
	Long: `zremap remaps depth-space ocean fields onto z-star model layer grids.
Use the subcommands specified below to access the functionality.`,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of zremap.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zremap v%s\n", zremap.Version)
	},
	DisableAutoGenTag: true,
}

// remapCmd is a command that remaps one source field onto the target grid.
var remapCmd = &cobra.Command{
	Use:   "remap",
	Short: "Remap a source field onto the model grid.",
	Long: `remap reads the source field, grid description, and target layer
thicknesses specified in the configuration file, remaps the field onto the
z-star layer grid, and writes the result to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ReadConfigFile(configFile)
		if err != nil {
			return err
		}
		return Run(cfg)
	},
	DisableAutoGenTag: true,
}
