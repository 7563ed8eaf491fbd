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

package zremap

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

// zSource holds one time record of a depth-space source field together
// with its vertical coordinate metadata.
type zSource struct {
	data *sparse.DenseArray // (z, y, x)

	// edges holds true cell interfaces when hasEdges is true, and the
	// cell-center coordinates otherwise. In either case the values
	// decrease monotonically with index after sign normalization.
	edges    []float64
	hasEdges bool

	missing    float64
	useMissing bool
}

// nCells is the number of source cells available to the overlap scan:
// one fewer than the interface count. Center-coordinate data supply one
// fewer cell than data points, because each cell is the span between two
// adjacent centers.
func (s *zSource) nCells() int {
	return len(s.edges) - 1
}

// readZSource reads the named 3-D or 4-D field and its vertical coordinate
// from the NetCDF file at path. For a 4-D field the record at timeIndex is
// read. Coordinate values are converted to meters from zUnits. Failures
// that indicate an unusable file (cannot open, variable or coordinate not
// found, unsupported rank, zero vertical levels) are reported on msgChan
// and return ok=false; data-quality oddities that can be worked around
// (missing edges attribute, missing missing_value, non-monotonic
// coordinate) only produce warnings.
func readZSource(path, varName string, timeIndex int, zUnits string, msgChan chan string) (*zSource, bool) {
	f, err := os.Open(path)
	if err != nil {
		sendMsg(msgChan, fmt.Sprintf("zremap: opening %s: %v", path, err))
		return nil, false
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		sendMsg(msgChan, fmt.Sprintf("zremap: reading %s: %v", path, err))
		return nil, false
	}

	scale, err := depthScale(zUnits)
	if err != nil {
		sendMsg(msgChan, err.Error())
		return nil, false
	}

	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		sendMsg(msgChan, fmt.Sprintf("zremap: variable %s not in file %s", varName, path))
		return nil, false
	}
	dimNames := ff.Header.Dimensions(varName)

	src := new(zSource)
	var zDim string
	var nz int
	switch len(dims) {
	case 3:
		zDim, nz = dimNames[0], dims[0]
		if src.data, err = readArray(ff, varName, 3); err != nil {
			sendMsg(msgChan, err.Error())
			return nil, false
		}
	case 4:
		zDim, nz = dimNames[1], dims[1]
		if timeIndex < 0 || timeIndex >= dims[0] {
			sendMsg(msgChan, fmt.Sprintf("zremap: time index %d out of range for %s (%d records)",
				timeIndex, varName, dims[0]))
			return nil, false
		}
		if src.data, err = readRecord(ff, varName, timeIndex); err != nil {
			sendMsg(msgChan, err.Error())
			return nil, false
		}
	default:
		sendMsg(msgChan, fmt.Sprintf("zremap: variable %s in %s has unsupported rank %d",
			varName, path, len(dims)))
		return nil, false
	}
	if nz == 0 {
		sendMsg(msgChan, fmt.Sprintf("zremap: variable %s in %s has zero vertical levels", varName, path))
		return nil, false
	}

	centers, err := read1D(ff, zDim)
	if err != nil {
		sendMsg(msgChan, fmt.Sprintf("zremap: vertical coordinate %s in %s: %v", zDim, path, err))
		return nil, false
	}

	src.edges = centers
	if a := ff.Header.GetAttribute(zDim, "edges"); a != nil {
		if edgeName, ok := a.(string); ok {
			edges, err := read1D(ff, edgeName)
			switch {
			case err != nil:
				sendMsg(msgChan, fmt.Sprintf("zremap: warning: edge variable %s in %s: %v; treating %s as cell centers",
					edgeName, path, err, zDim))
			case len(edges) != nz+1:
				sendMsg(msgChan, fmt.Sprintf("zremap: warning: edge variable %s has %d values for %d levels; treating %s as cell centers",
					edgeName, len(edges), nz, zDim))
			default:
				src.edges = edges
				src.hasEdges = true
			}
		}
	} else {
		sendMsg(msgChan, fmt.Sprintf("zremap: warning: no edges attribute on %s in %s; treating coordinate values as cell centers",
			zDim, path))
	}

	// Sign convention: internally depth coordinates decrease monotonically
	// with index. If the first two values increase, negate the whole axis,
	// then re-validate.
	if len(src.edges) > 1 && src.edges[1] > src.edges[0] {
		for k, v := range src.edges {
			src.edges[k] = -v
		}
	}
	for k := 1; k < len(src.edges); k++ {
		if src.edges[k] >= src.edges[k-1] {
			sendMsg(msgChan, fmt.Sprintf("zremap: warning: vertical coordinate %s in %s is not monotonic at index %d",
				zDim, path, k))
			break
		}
	}
	for k, v := range src.edges {
		src.edges[k] = v * scale.Value()
	}

	if mv, ok := attrFloat(ff, varName, "missing_value"); ok {
		src.missing = mv
		src.useMissing = true
	} else {
		sendMsg(msgChan, fmt.Sprintf("zremap: warning: no missing_value attribute on %s in %s; missing-value filtering disabled",
			varName, path))
	}

	if src.nCells() < 1 {
		sendMsg(msgChan, fmt.Sprintf("zremap: variable %s in %s has no usable vertical levels", varName, path))
		return nil, false
	}
	return src, true
}

// ReadField reads the full named variable from the NetCDF file at path.
// It is used for inputs that carry no vertical coordinate metadata of
// their own, such as the target layer thickness field.
func ReadField(path, varName string) (*sparse.DenseArray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("zremap: opening %s: %v", path, err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("zremap: reading %s: %v", path, err)
	}
	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("zremap: variable %s not in file %s", varName, path)
	}
	return readArray(ff, varName, len(dims))
}

// depthScale returns the factor that converts vertical coordinate values
// in the given units to the model's internal meters.
func depthScale(units string) (*unit.Unit, error) {
	switch units {
	case "", "m", "meter", "meters":
		return unit.New(1, unit.Meter), nil
	case "cm", "centimeter", "centimeters":
		return unit.New(0.01, unit.Meter), nil
	case "km", "kilometer", "kilometers":
		return unit.New(1000, unit.Meter), nil
	}
	return nil, fmt.Errorf("zremap: unsupported vertical coordinate units %q", units)
}

// readArray reads the whole of a variable with the given expected rank.
func readArray(ff *cdf.File, varName string, rank int) (*sparse.DenseArray, error) {
	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("zremap: variable %s not in file", varName)
	}
	if len(dims) != rank {
		return nil, fmt.Errorf("zremap: variable %s has %d dimensions; want %d", varName, len(dims), rank)
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	r := ff.Reader(varName, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("zremap: reading variable %s: %v", varName, err)
	}
	data := sparse.ZerosDense(dims...)
	vals, err := toFloat64s(buf)
	if err != nil {
		return nil, fmt.Errorf("zremap: variable %s: %v", varName, err)
	}
	copy(data.Elements, vals)
	return data, nil
}

// readRecord reads the record at the given index of the leading dimension
// of a 4-D variable, returning the remaining (z, y, x) array.
func readRecord(ff *cdf.File, varName string, index int) (*sparse.DenseArray, error) {
	dims := ff.Header.Lengths(varName)[1:]
	n := 1
	for _, d := range dims {
		n *= d
	}
	start, end := make([]int, len(dims)+1), make([]int, len(dims)+1)
	start[0], end[0] = index, index+1
	r := ff.Reader(varName, start, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("zremap: reading record %d of variable %s: %v", index, varName, err)
	}
	data := sparse.ZerosDense(dims...)
	vals, err := toFloat64s(buf)
	if err != nil {
		return nil, fmt.Errorf("zremap: variable %s: %v", varName, err)
	}
	copy(data.Elements, vals)
	return data, nil
}

// read1D reads a 1-D variable, such as a coordinate axis.
func read1D(ff *cdf.File, varName string) ([]float64, error) {
	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("zremap: variable %s not in file", varName)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("zremap: variable %s has %d dimensions; want 1", varName, len(dims))
	}
	r := ff.Reader(varName, nil, nil)
	buf := r.Zero(dims[0])
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("zremap: reading variable %s: %v", varName, err)
	}
	return toFloat64s(buf)
}

// toFloat64s converts a buffer returned by a NetCDF reader to float64s.
func toFloat64s(buf interface{}) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("zremap: unsupported variable type %T", buf)
}

// attrFloat fetches a scalar numeric attribute.
func attrFloat(ff *cdf.File, varName, attr string) (float64, bool) {
	switch v := ff.Header.GetAttribute(varName, attr).(type) {
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}

func sendMsg(c chan string, msg string) {
	if c != nil {
		c <- msg
	}
}
