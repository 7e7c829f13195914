/*
 * superpose_test.go, part of ligfit.
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
	"testing"
)

// an asymmetric 4-point set, so the optimal superposition is unique.
func testPoints(Te *testing.T) *Matrix {
	m, err := NewMatrix([]float64{
		0, 0, 0,
		1.5, 0, 0,
		2.0, 1.3, 0,
		1.0, 0.5, 1.1,
	})
	if err != nil {
		Te.Fatal(err)
	}
	return m
}

// rotated returns the points turned 90 degrees around z and shifted.
func rotated(Te *testing.T, points *Matrix) *Matrix {
	rot, err := NewMatrix([]float64{
		0, 1, 0,
		-1, 0, 0,
		0, 0, 1,
	})
	if err != nil {
		Te.Fatal(err)
	}
	trans, err := NewMatrix([]float64{3, -2, 7})
	if err != nil {
		Te.Fatal(err)
	}
	T := &Transform{Rot: rot, Trans: trans}
	return T.Apply(points)
}

func TestSuperposeRecoversRotation(Te *testing.T) {
	ref := testPoints(Te)
	test := rotated(Te, ref)
	super, _, err := Superpose(test, ref)
	if err != nil {
		Te.Fatal(err)
	}
	rmsd, err := RMSD(super, ref)
	if err != nil {
		Te.Fatal(err)
	}
	if rmsd > 1e-8 {
		Te.Error("a rigidly moved copy should superpose exactly, RMSD:", rmsd)
	}
	fmt.Println("RMSD after recovering a known rigid motion:", rmsd)
}

func TestTransformIsRigid(Te *testing.T) {
	ref := testPoints(Te)
	test := rotated(Te, ref)
	_, T, err := Superpose(test, ref)
	if err != nil {
		Te.Fatal(err)
	}
	//apply the obtained transformation to a different point set and
	//check that no interatomic distance changes.
	other, err := NewMatrix([]float64{
		0.3, -1.2, 4.4,
		2.2, 0.1, -0.7,
		-1.1, 3.3, 0.9,
	})
	if err != nil {
		Te.Fatal(err)
	}
	moved := T.Apply(other)
	for i := 0; i < other.NVecs(); i++ {
		for j := i + 1; j < other.NVecs(); j++ {
			if diff := math.Abs(other.Dist(i, j) - moved.Dist(i, j)); diff > 1e-9 {
				Te.Error("distance", i, j, "changed by", diff, "under a rigid transformation")
			}
		}
	}
}

func TestSuperposeImproves(Te *testing.T) {
	ref := testPoints(Te)
	//a rotated copy with some extra noise, so it can't superpose exactly.
	test := rotated(Te, ref)
	test.Set(0, 2, test.At(0, 2)+0.3)
	test.Set(2, 0, test.At(2, 0)-0.2)
	before, err := RMSD(test, ref)
	if err != nil {
		Te.Fatal(err)
	}
	super, _, err := Superpose(test, ref)
	if err != nil {
		Te.Fatal(err)
	}
	after, err := RMSD(super, ref)
	if err != nil {
		Te.Fatal(err)
	}
	if after > before+1e-9 {
		Te.Error("superposing worsened the RMSD:", before, "->", after)
	}
	fmt.Println("RMSD of the noisy copy:", before, "->", after)
}

func TestSuperposeMismatch(Te *testing.T) {
	ref := testPoints(Te)
	small := Zeros(2)
	small.SomeVecs(ref, []int{0, 1})
	_, _, err := Superpose(small, ref)
	if !IsClass(err, AlignmentError) {
		Te.Error("mismatched point counts should give an alignment error, got:", err)
	}
	if _, err := RMSD(small, ref); !IsClass(err, AlignmentError) {
		Te.Error("mismatched point counts should give an alignment error from RMSD, got:", err)
	}
}
