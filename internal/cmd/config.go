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
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigData holds information about a zremap configuration.
type ConfigData struct {
	// SourceFile is the path to the NetCDF file holding the depth-space
	// source field. The path can include environment variables.
	SourceFile string

	// VarName is the name of the source field variable to remap.
	VarName string

	// ZUnits gives the units of the source vertical coordinate.
	// Acceptable values are "m", "cm", and "km"; the default is "m".
	ZUnits string

	// TimeIndex selects the record to read when the source field has a
	// leading time dimension.
	TimeIndex int

	// TolerateMissingSurface controls whether a missing value at the
	// ocean surface is replaced with zero (true) or treated as a fatal
	// input-data error (false).
	TolerateMissingSurface bool

	// LandValue is the value stored in the target layers of land columns.
	LandValue float64

	// GridFile is the path to the NetCDF grid description file holding
	// the bathymetry, land mask, and geographic coordinates of the model
	// domain. The path can include environment variables.
	GridFile string

	// DepthVar, MaskVar, LonVar, and LatVar name the bathymetry,
	// land-mask, longitude, and latitude variables in GridFile.
	DepthVar, MaskVar, LonVar, LatVar string

	// ThicknessFile is the path to the NetCDF file holding the target
	// layer thicknesses (layer, y, x). The path can include environment
	// variables.
	ThicknessFile string

	// ThicknessVar names the layer thickness variable in ThicknessFile.
	ThicknessVar string

	// OutputFile is the path where the remapped field should be written.
	// The path can include environment variables.
	OutputFile string

	// OutputVar names the variable in the output file. If empty, VarName
	// is used.
	OutputVar string

	// Description and Units annotate the output variable.
	Description string
	Units       string
}

// ReadConfigFile reads and parses a TOML configuration file.
func ReadConfigFile(filename string) (*ConfigData, error) {
	cfg := viper.New()
	cfg.SetConfigFile(filename)
	cfg.SetConfigType("toml")

	cfg.SetDefault("ZUnits", "m")
	cfg.SetDefault("DepthVar", "depth")
	cfg.SetDefault("MaskVar", "mask")
	cfg.SetDefault("LonVar", "lon")
	cfg.SetDefault("LatVar", "lat")
	cfg.SetDefault("ThicknessVar", "h")
	cfg.SetDefault("TolerateMissingSurface", true)

	if err := cfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, "+
			"could not be read: %v", filename, err)
	}
	config := new(ConfigData)
	if err := cfg.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.SourceFile = os.ExpandEnv(config.SourceFile)
	config.GridFile = os.ExpandEnv(config.GridFile)
	config.ThicknessFile = os.ExpandEnv(config.ThicknessFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)

	for _, v := range []struct{ name, val string }{
		{"SourceFile", config.SourceFile},
		{"VarName", config.VarName},
		{"GridFile", config.GridFile},
		{"ThicknessFile", config.ThicknessFile},
		{"OutputFile", config.OutputFile},
	} {
		if v.val == "" {
			return nil, fmt.Errorf("you need to specify %s in the configuration file", v.name)
		}
	}
	if config.OutputVar == "" {
		config.OutputVar = config.VarName
	}

	outdir := filepath.Dir(config.OutputFile)
	if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("problem creating output directory: %v", err)
	}
	return config, nil
}
