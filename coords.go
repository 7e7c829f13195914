/*
 * coords.go, part of ligfit.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package ligfit

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Within the package it is understood that a "vector" is a row vector, i.e.
//the cartesian coordinates of a point in 3D space. The names of several
//functions reflect this.

// Matrix is a set of row vectors in 3D space, the coordinates of the atoms
// of a molecule. It embeds a gonum Dense matrix with 3 columns.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps a gonum Dense (which must have 3 columns) into a
// Matrix. It panics on a wrong number of columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, NewError(ParseError, fmt.Sprintf("NewMatrix: input slice length %d not divisible by %d", l, cols))
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector of the matrix. Changes in the
// view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// Copy returns an independent copy of F.
func (F *Matrix) Copy() *Matrix {
	R := Zeros(F.NVecs())
	R.Dense.Copy(F.Dense)
	return R
}

// SomeVecs puts in the receiver the vectors of A with the indexes in clist,
// in the order of clist. Panics on dimension mismatch.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

// SetVecs sets the vectors of the receiver with indexes in clist to the
// corresponding (by order) vectors of A. Panics on dimension mismatch.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr < len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

// AddVec adds the vector vec to each vector of the matrix A, putting the
// result in the receiver. Panics on mismatched matrices.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

// SubVec subtracts the vector vec from each vector of the matrix A,
// putting the result in the receiver. Panics on mismatched matrices.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

// Norm returns the Euclidean norm of the first vector of F.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.At(0, 0)*F.At(0, 0) + F.At(0, 1)*F.At(0, 1) + F.At(0, 2)*F.At(0, 2))
}

// Centroid returns the geometric center of the vectors in F.
func Centroid(F *Matrix) *Matrix {
	n := F.NVecs()
	c := Zeros(1)
	if n == 0 {
		return c
	}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			c.Set(0, j, c.At(0, j)+F.At(i, j))
		}
	}
	c.Scale(1.0/float64(n), c.Dense)
	return c
}

// Dist returns the Euclidean distance between the ith and jth vectors of F.
func (F *Matrix) Dist(i, j int) float64 {
	var d2 float64
	for k := 0; k < 3; k++ {
		d := F.At(i, k) - F.At(j, k)
		d2 += d * d
	}
	return math.Sqrt(d2)
}

// String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, 3)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//PanicMsg is a message used for panics. It does satisfy the error
//interface, but for errors the CError type is used instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("ligfit: A coordinate Matrix should have 3 columns")
	ErrShape        = PanicMsg("ligfit: Dimension mismatch")
)
