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
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/zremap"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
}

// Run remaps the configured source field onto the z-star layer grid and
// writes the result to the configured output file.
func Run(c *ConfigData) error {
	logger.Infof("Reading grid description from %s...", c.GridFile)
	grid, err := zremap.ReadFileGrid(c.GridFile, c.DepthVar, c.MaskVar, c.LonVar, c.LatVar)
	if err != nil {
		return err
	}

	logger.Infof("Reading layer thicknesses from %s...", c.ThicknessFile)
	thickness, err := zremap.ReadField(c.ThicknessFile, c.ThicknessVar)
	if err != nil {
		return err
	}

	msgChan := make(chan string)
	msgDone := make(chan struct{})
	go func() {
		for msg := range msgChan {
			logger.Warn(msg)
		}
		close(msgDone)
	}()

	logger.Infof("Remapping %s from %s...", c.VarName, c.SourceFile)
	r := &zremap.Remapper{
		SourceFile:             c.SourceFile,
		VarName:                c.VarName,
		ZUnits:                 c.ZUnits,
		LandValue:              c.LandValue,
		TimeIndex:              c.TimeIndex,
		TolerateMissingSurface: c.TolerateMissingSurface,
	}
	field, ok := r.Remap(thickness, grid, msgChan)
	close(msgChan)
	<-msgDone
	if !ok {
		return fmt.Errorf("zremap: remapping %s from %s failed; see the log for details",
			c.VarName, c.SourceFile)
	}

	s := zremap.Stats(field, grid)
	logger.Infof("%s: %d ocean cells, %d land cells, min %g, max %g, mean %g, stddev %g",
		c.OutputVar, s.OceanCells, s.LandCells, s.Min, s.Max, s.Mean, s.StdDev)

	logger.Infof("Writing %s...", c.OutputFile)
	d := new(zremap.RemapData)
	d.AddVariable(c.OutputVar, c.Description, c.Units, field)
	d.AddVariable(c.ThicknessVar, "target layer thickness", "m", thickness)
	f, err := os.Create(c.OutputFile)
	if err != nil {
		return fmt.Errorf("problem creating output file: %v", err)
	}
	defer f.Close()
	return d.Write(f)
}
