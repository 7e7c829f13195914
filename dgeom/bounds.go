/*
 * bounds.go, part of ligfit.
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

package dgeom

import (
	"math"

	"github.com/rmera/ligfit"
	"gonum.org/v1/gonum/mat"
)

const (
	bondTol     = 0.01
	angleTol    = 0.05
	templateTol = 1.0
	farUpper    = 999.0
	defaultAng  = 109.47 //tetrahedral
)

// Bounds holds the lower and upper interatomic distance bounds used to
// sample candidate distance matrices.
type Bounds struct {
	lower *mat.Dense
	upper *mat.Dense
	n     int
}

// Len returns the number of atoms the bounds cover.
func (B *Bounds) Len() int {
	return B.n
}

// Lower returns the lower distance bound between atoms i and j.
func (B *Bounds) Lower(i, j int) float64 {
	return B.lower.At(i, j)
}

// Upper returns the upper distance bound between atoms i and j.
func (B *Bounds) Upper(i, j int) float64 {
	return B.upper.At(i, j)
}

// SetDistance fixes the distance between atoms i and j to d, with the
// given tolerance.
func (B *Bounds) SetDistance(i, j int, d, tol float64) {
	lo := d - tol
	if lo < 0 {
		lo = 0
	}
	B.lower.Set(i, j, lo)
	B.lower.Set(j, i, lo)
	B.upper.Set(i, j, d+tol)
	B.upper.Set(j, i, d+tol)
}

// NewBounds derives generic distance bounds from the connectivity of
// mol. Bonded pairs get the sum of their covalent radii, pairs separated
// by two bonds the distance at the ideal angle of the central atom, and
// everything else a van der Waals floor and an effectively unbound
// ceiling, for Smooth to tighten.
func NewBounds(mol *ligfit.Molecule) *Bounds {
	n := mol.Len()
	B := &Bounds{
		lower: mat.NewDense(n, n, nil),
		upper: mat.NewDense(n, n, nil),
		n:     n,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lo := 0.8 * (ligfit.VdwRadius(mol.Atom(i).Symbol) + ligfit.VdwRadius(mol.Atom(j).Symbol))
			B.lower.Set(i, j, lo)
			B.upper.Set(i, j, farUpper)
		}
	}
	for _, b := range mol.Bonds() {
		d := ligfit.CovalentRadius(b.At1.Symbol) + ligfit.CovalentRadius(b.At2.Symbol)
		B.SetDistance(b.At1.Index, b.At2.Index, d, bondTol)
	}
	//1-3 pairs, through the ideal angle of the central atom.
	for k := 0; k < n; k++ {
		center := mol.Atom(k)
		theta := idealAngle(center) * math.Pi / 180
		for x := 0; x < len(center.Bonds); x++ {
			for y := x + 1; y < len(center.Bonds); y++ {
				ai := center.Bonds[x].Cross(center)
				aj := center.Bonds[y].Cross(center)
				ra := ligfit.CovalentRadius(center.Symbol) + ligfit.CovalentRadius(ai.Symbol)
				rb := ligfit.CovalentRadius(center.Symbol) + ligfit.CovalentRadius(aj.Symbol)
				d := math.Sqrt(ra*ra + rb*rb - 2*ra*rb*math.Cos(theta))
				B.SetDistance(ai.Index, aj.Index, d, angleTol)
			}
		}
	}
	return B
}

// idealAngle guesses the angle at a central atom from its highest bond
// order. Good enough for bounds that only seed the embedding.
func idealAngle(at *ligfit.Atom) float64 {
	max := 0.0
	total := 0.0
	for _, b := range at.Bonds {
		if b.Order > max {
			max = b.Order
		}
		total += b.Order
	}
	switch {
	case max >= 2.5 || total >= 4.5 && len(at.Bonds) <= 2:
		return 180
	case max >= 1.5:
		return 120
	}
	return defaultAng
}

// SetFromPredicted tightens the bounds for every pair of mapped heavy
// atoms to the corresponding distance in dmat, whose rows and columns
// follow the mapping's reference order. Pairs with non-finite or
// non-positive predicted distances keep their generic bounds. It returns
// the number of pairs skipped that way.
func (B *Bounds) SetFromPredicted(mapping *Mapping, dmat *mat.Dense) int {
	skipped := 0
	m := mapping.Len()
	for a := 0; a < m; a++ {
		for b := a + 1; b < m; b++ {
			d := dmat.At(a, b)
			if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
				skipped++
				continue
			}
			B.SetDistance(mapping.MolIndex(a), mapping.MolIndex(b), d, bondTol)
		}
	}
	return skipped
}

// SetFromTemplate seeds every pair still carrying the default ceiling
// with the distance it has in templ, an embedding of the same molecule,
// within the tol tolerance. Pairs already constrained by connectivity or
// by predicted distances are left alone, so the template only informs
// what nothing else does: hydrogens and unmapped long-range pairs.
func (B *Bounds) SetFromTemplate(templ *ligfit.Matrix, tol float64) {
	for i := 0; i < B.n; i++ {
		for j := i + 1; j < B.n; j++ {
			if B.upper.At(i, j) < farUpper {
				continue
			}
			d := templ.Dist(i, j)
			if lo := d - tol; lo > B.lower.At(i, j) {
				B.lower.Set(i, j, lo)
				B.lower.Set(j, i, lo)
			}
			B.upper.Set(i, j, d+tol)
			B.upper.Set(j, i, d+tol)
		}
	}
}

// Smooth enforces the triangle inequality on the bounds: upper bounds
// can't exceed any upper-bound path, and lower bounds can't undercut a
// lower bound reachable through a third atom. Crossed bounds left by
// conflicting constraints are collapsed to their midpoint.
func (B *Bounds) Smooth() {
	n := B.n
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			for j := 0; j < n; j++ {
				if j == k || j == i {
					continue
				}
				if u := B.upper.At(i, k) + B.upper.At(k, j); u < B.upper.At(i, j) {
					B.upper.Set(i, j, u)
				}
				if l := B.lower.At(i, k) - B.upper.At(k, j); l > B.lower.At(i, j) {
					B.lower.Set(i, j, l)
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && B.lower.At(i, j) > B.upper.At(i, j) {
				mid := (B.lower.At(i, j) + B.upper.At(i, j)) / 2
				B.lower.Set(i, j, mid)
				B.upper.Set(i, j, mid)
			}
		}
	}
}
