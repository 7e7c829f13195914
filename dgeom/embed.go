/*
 * embed.go, part of ligfit.
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
	"math/rand"

	"github.com/rmera/ligfit"
	"gonum.org/v1/gonum/mat"
)

// embed produces 3D coordinates from one random distance matrix sampled
// within the bounds, by metric-matrix embedding followed by a few rounds
// of distance refinement. It returns nil when the sampled matrix has no
// acceptable 3D embedding.
func embed(B *Bounds, refineSteps int, rnd *rand.Rand) *ligfit.Matrix {
	n := B.Len()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := B.Lower(i, j) + rnd.Float64()*(B.Upper(i, j)-B.Lower(i, j))
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
	}
	coords := metricEmbed(d)
	if coords == nil {
		return nil
	}
	refine(coords, B, refineSteps)
	r, err := ligfit.NewMatrix(coords)
	if err != nil {
		return nil
	}
	return r
}

// metricEmbed turns a distance matrix into 3D coordinates with the
// classic metric-matrix construction: distances to the centroid from the
// squared distances, then the top 3 eigenpairs of the Gram matrix. A
// non-positive leading eigenvalue means the distances are nowhere near
// 3D-realizable, and nil is returned.
func metricEmbed(d *mat.Dense) []float64 {
	n, _ := d.Dims()
	if n == 1 {
		return make([]float64, 3)
	}
	d0sq := make([]float64, n) //squared distances to the centroid
	sumAll := 0.0
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			v := d.At(j, k)
			sumAll += v * v
		}
	}
	fn := float64(n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			v := d.At(i, j)
			sum += v * v
		}
		d0sq[i] = sum/fn - sumAll/(fn*fn)
	}
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := d.At(i, j)
			g.SetSym(i, j, 0.5*(d0sq[i]+d0sq[j]-v*v))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(g, true); !ok {
		return nil
	}
	vals := eig.Values(nil) //ascending
	if vals[n-1] <= 0 {
		return nil
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	coords := make([]float64, n*3)
	for k := 0; k < 3; k++ {
		col := n - 1 - k
		if col < 0 || vals[col] <= 0 {
			continue //flat molecules span fewer than 3 dimensions
		}
		scale := math.Sqrt(vals[col])
		for i := 0; i < n; i++ {
			coords[i*3+k] = scale * vecs.At(i, col)
		}
	}
	return coords
}

// refine nudges every atom pair that violates its bounds, half of the
// violation per side, for the given number of sweeps. Crude, but the
// sampled distances already sit inside the smoothed bounds, so only the
// error introduced by dropping to 3 dimensions is left to clean up.
func refine(coords []float64, B *Bounds, steps int) {
	n := B.Len()
	for s := 0; s < steps; s++ {
		moved := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := coords[j*3] - coords[i*3]
				dy := coords[j*3+1] - coords[i*3+1]
				dz := coords[j*3+2] - coords[i*3+2]
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if d < 1e-8 {
					//coincident points, push them apart along x
					dx, d = 1e-4, 1e-4
				}
				target := d
				if lo := B.Lower(i, j); d < lo {
					target = lo
				} else if up := B.Upper(i, j); d > up {
					target = up
				} else {
					continue
				}
				moved = true
				f := 0.5 * (target - d) / d
				coords[i*3] -= f * dx
				coords[i*3+1] -= f * dy
				coords[i*3+2] -= f * dz
				coords[j*3] += f * dx
				coords[j*3+1] += f * dy
				coords[j*3+2] += f * dz
			}
		}
		if !moved {
			break
		}
	}
}
