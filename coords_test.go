/*
 * coords_test.go, part of ligfit.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * ligfit is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package ligfit

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestMatrixString(Te *testing.T) {
	m, err := NewMatrix([]float64{
		1.25, -2.5, 0,
		3, 4, 5.75,
	})
	if err != nil {
		Te.Fatal(err)
	}
	s := m.String()
	for _, want := range []string{"1.25", "-2.50", "5.75"} {
		if !strings.Contains(s, want) {
			Te.Error("printed matrix misses", want, "got:", s)
		}
	}
	fmt.Println("matrix prints as:", s)
}

func TestMatrixVecOps(Te *testing.T) {
	m, err := NewMatrix([]float64{
		0, 0, 0,
		2, 0, 0,
		0, 4, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	c := Centroid(m)
	want := []float64{2.0 / 3, 4.0 / 3, 0}
	for j := 0; j < 3; j++ {
		if math.Abs(c.At(0, j)-want[j]) > 1e-9 {
			Te.Error("centroid component", j, "is", c.At(0, j), "should be", want[j])
		}
	}
	if d := m.Dist(1, 2); math.Abs(d-math.Sqrt(20)) > 1e-9 {
		Te.Error("distance misobtained:", d)
	}
	shifted := Zeros(m.NVecs())
	shifted.SubVec(m, c)
	back := Centroid(shifted)
	if back.Norm() > 1e-9 {
		Te.Error("centering left a residual centroid:", back.Norm())
	}
}
