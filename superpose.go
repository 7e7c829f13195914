/*
 * superpose.go, part of ligfit.
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

	"gonum.org/v1/gonum/mat"
)

// Transform is a rigid-body transformation, a rotation followed by a
// translation. Coordinates are row vectors, so it applies as x*Rot + Trans.
type Transform struct {
	Rot   *Matrix //3x3 rotation
	Trans *Matrix //1x3 translation
}

// Apply returns a new matrix with the transformation applied to every
// row of in. The receiver and in are not modified.
func (T *Transform) Apply(in *Matrix) *Matrix {
	out := Zeros(in.NVecs())
	out.Mul(in.Dense, T.Rot.Dense)
	out.AddVec(out, T.Trans)
	return out
}

// Superpose obtains the rigid transformation (rotation plus translation)
// that optimally superimposes the rows of test onto the rows of ref, in
// the least-squares sense, with the Kabsch algorithm. It returns the
// transformed copy of test and the transformation itself, so it can be
// applied to other coordinates sharing test's frame. test and ref must
// have the same number of rows.
func Superpose(test, ref *Matrix) (*Matrix, *Transform, error) {
	n := test.NVecs()
	if n != ref.NVecs() {
		return nil, nil, NewError(AlignmentError, fmt.Sprintf("can't superpose %d vs %d points", n, ref.NVecs()))
	}
	if n == 0 {
		return nil, nil, NewError(AlignmentError, "can't superpose empty coordinate sets")
	}
	ctest := Centroid(test)
	cref := Centroid(ref)
	t := test.Copy()
	r := ref.Copy()
	t.SubVec(t, ctest)
	r.SubVec(r, cref)
	//covariance H = t^T r
	H := mat.NewDense(3, 3, nil)
	H.Mul(t.Dense.T(), r.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(H, mat.SVDFull); !ok {
		return nil, nil, NewError(AlignmentError, "SVD of the covariance matrix failed")
	}
	U := mat.NewDense(3, 3, nil)
	V := mat.NewDense(3, 3, nil)
	svd.UTo(U)
	svd.VTo(V)
	//R = U C V^T, with C correcting a possible reflection.
	UV := mat.NewDense(3, 3, nil)
	UV.Mul(U, V.T())
	sign := 1.0
	if mat.Det(UV) < 0 {
		sign = -1.0
	}
	C := mat.NewDiagDense(3, []float64{1, 1, sign})
	R := mat.NewDense(3, 3, nil)
	R.Mul(U, C)
	R.Mul(R, V.T())
	rot := Dense2Matrix(R)
	//Trans = cref - ctest*R
	rotated := Zeros(1)
	rotated.Mul(ctest.Dense, R)
	trans := Zeros(1)
	trans.Sub(cref.Dense, rotated.Dense)
	T := &Transform{Rot: rot, Trans: trans}
	return T.Apply(test), T, nil
}

// RMSD returns the root-mean-square deviation between the rows of a and b,
// which must have the same number of rows. No previous superposition is
// performed.
func RMSD(a, b *Matrix) (float64, error) {
	n := a.NVecs()
	if n != b.NVecs() {
		return -1, NewError(AlignmentError, fmt.Sprintf("can't obtain an RMSD between %d and %d points", n, b.NVecs()))
	}
	if n == 0 {
		return -1, NewError(AlignmentError, "can't obtain an RMSD between empty coordinate sets")
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d := a.At(i, j) - b.At(i, j)
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(n)), nil
}
