/*
 * dgeom.go, part of ligfit.
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

//Package dgeom generates ligand conformers by distance geometry,
//steering the embedding with the interatomic distances of a predicted
//structure, and scores each conformer by how well it reproduces that
//predicted distance matrix.
package dgeom

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"strings"

	"github.com/rmera/ligfit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//regularizer inside every distance square root, so gradients of the
//original model never blow up at zero. Kept here so our matrices match
//the predicted ones bit for bit.
const epsilon = 1e-10

// Options contains the options for a conformer search. Do not build it
// from scratch, get one from DefaultOptions and change what you need.
type Options struct {
	//MaxConfs is the number of candidate conformers to embed.
	MaxConfs int
	//MaxAttempts is how many times the unconstrained template embedding
	//is retried before the molecule is declared non-embeddable.
	MaxAttempts int
	//Seed makes a search reproducible. Candidate i always draws from a
	//generator seeded with Seed+i, whatever the worker that takes it.
	Seed int64
	//Cpus is the number of concurrent embedding workers.
	Cpus int
	//RefineSteps is the number of bound-violation sweeps after each
	//metric embedding.
	RefineSteps int
}

// DefaultOptions returns the options used by the reference pipeline:
// up to 100 conformers, 500 template attempts and the traditional seed.
func DefaultOptions() *Options {
	return &Options{
		MaxConfs:    100,
		MaxAttempts: 500,
		Seed:        0xf00d,
		Cpus:        runtime.NumCPU(),
		RefineSteps: 100,
	}
}

// A Conformer is one embedded candidate geometry for the full molecule,
// hydrogens included.
type Conformer struct {
	//ID is the candidate's generation index, which identifies it across
	//runs with the same seed.
	ID int
	//Coords has one row per atom of the molecule that was embedded.
	Coords *ligfit.Matrix
	//Err is the mean deviation between the conformer's heavy-atom
	//distance matrix and the predicted one.
	Err float64
}

// A Mapping pairs the heavy atoms of a molecular graph with the rows of
// a predicted-structure coordinate set. Row a of the reference
// corresponds to atom MolIndex(a) of the graph.
type Mapping struct {
	mol []int
}

// NewMapping builds the mapping between the heavy atoms of mol, in
// order, and the atoms of the predicted reference ref, also in order.
// The two sequences must have the same length and matching elements.
func NewMapping(mol, ref *ligfit.Molecule) (*Mapping, error) {
	heavy := mol.Heavy()
	if len(heavy) != ref.Len() {
		return nil, ligfit.NewError(ligfit.AlignmentError,
			fmt.Sprintf("%d heavy atoms in the molecule vs %d atoms in the reference", len(heavy), ref.Len()))
	}
	for a, i := range heavy {
		ms := strings.ToUpper(mol.Atom(i).Symbol)
		rs := strings.ToUpper(ref.Atom(a).Symbol)
		if ms != rs {
			return nil, ligfit.NewError(ligfit.AlignmentError,
				fmt.Sprintf("atom %d: element %s in the molecule vs %s in the reference", a, ms, rs))
		}
	}
	return &Mapping{mol: heavy}, nil
}

// Len returns the number of mapped atom pairs.
func (M *Mapping) Len() int {
	return len(M.mol)
}

// MolIndex returns the molecule atom index paired with row a of the
// reference.
func (M *Mapping) MolIndex(a int) int {
	return M.mol[a]
}

// DistMatrix returns the regularized distance matrix of coords: each
// element is sqrt(epsilon+d^2), so the diagonal is small but not zero.
func DistMatrix(coords *ligfit.Matrix) *mat.Dense {
	n := coords.NVecs()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := epsilon
			for k := 0; k < 3; k++ {
				diff := coords.At(i, k) - coords.At(j, k)
				sum += diff * diff
			}
			v := math.Sqrt(sum)
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
	}
	return d
}

// score is the mean, over every element of the matrices including the
// diagonal, of the regularized deviation between the two.
func score(conf, pred *mat.Dense) float64 {
	n, _ := conf.Dims()
	devs := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diff := conf.At(i, j) - pred.At(i, j)
			devs = append(devs, math.Sqrt(epsilon+diff*diff))
		}
	}
	return stat.Mean(devs, nil)
}

// EmbedMolecule embeds mol from its generic, connectivity-only bounds,
// retrying up to o.MaxAttempts times. It is the feasibility check run
// before a constrained search, whose result also seeds the pairs the
// predicted distances don't cover; failure means the graph itself
// resists embedding, and is reported as such.
func EmbedMolecule(mol *ligfit.Molecule, o *Options) (*ligfit.Matrix, error) {
	if o == nil {
		o = DefaultOptions()
	}
	bounds := NewBounds(mol)
	bounds.Smooth()
	for k := 0; k < o.MaxAttempts; k++ {
		rnd := rand.New(rand.NewSource(o.Seed + int64(o.MaxConfs) + int64(k)))
		if c := embed(bounds, o.RefineSteps, rnd); c != nil {
			return c, nil
		}
	}
	return nil, ligfit.NewError(ligfit.EmbeddingError,
		fmt.Sprintf("no embedding for the molecular graph after %d attempts", o.MaxAttempts))
}

type candidate struct {
	id     int
	coords *ligfit.Matrix
	err    float64
}

// Generate searches for the conformer of mol that best reproduces the
// interatomic distances of the predicted reference ref, whose atoms
// must correspond one to one with mol's heavy atoms. It embeds up to
// o.MaxConfs candidates concurrently, with the predicted distances as
// bounds, and returns the one with the lowest mean deviation from the
// predicted distance matrix, together with the deviations of every
// candidate that embedded, in generation order. Results are
// deterministic for a given seed, regardless of o.Cpus.
func Generate(mol, ref *ligfit.Molecule, o *Options) (*Conformer, []float64, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if mol.Len() == 0 || ref.Len() == 0 {
		return nil, nil, ligfit.NewError(ligfit.ConformerGenerationError, "nothing to embed: empty molecule or reference")
	}
	if o.MaxConfs < 1 {
		return nil, nil, ligfit.NewError(ligfit.ConformerGenerationError, "no candidates requested")
	}
	mapping, err := NewMapping(mol, ref)
	if err != nil {
		return nil, nil, err
	}
	templ, err := EmbedMolecule(mol, o)
	if err != nil {
		return nil, nil, err
	}
	predDmat := DistMatrix(ref.Coords)
	bounds := NewBounds(mol)
	bounds.SetFromPredicted(mapping, predDmat)
	bounds.SetFromTemplate(templ, templateTol)
	bounds.Smooth()
	heavy := mol.Heavy()
	jobs := make(chan int, o.MaxConfs)
	results := make(chan candidate, o.MaxConfs)
	cpus := o.Cpus
	if cpus < 1 {
		cpus = 1
	}
	for w := 0; w < cpus; w++ {
		go func() {
			for id := range jobs {
				rnd := rand.New(rand.NewSource(o.Seed + int64(id)))
				coords := embed(bounds, o.RefineSteps, rnd)
				if coords == nil {
					results <- candidate{id: id}
					continue
				}
				hc := ligfit.Zeros(len(heavy))
				hc.SomeVecs(coords, heavy)
				results <- candidate{id: id, coords: coords, err: score(DistMatrix(hc), predDmat)}
			}
		}()
	}
	for id := 0; id < o.MaxConfs; id++ {
		jobs <- id
	}
	close(jobs)
	scores := make([]float64, o.MaxConfs)
	coords := make([]*ligfit.Matrix, o.MaxConfs)
	for i := 0; i < o.MaxConfs; i++ {
		c := <-results
		if c.coords == nil {
			scores[c.id] = math.Inf(1)
			continue
		}
		scores[c.id] = c.err
		coords[c.id] = c.coords
	}
	best := floats.MinIdx(scores) //ties go to the lowest generation index
	if math.IsInf(scores[best], 1) {
		return nil, nil, ligfit.NewError(ligfit.ConformerGenerationError,
			fmt.Sprintf("none of the %d constrained candidates embedded", o.MaxConfs))
	}
	errs := make([]float64, 0, o.MaxConfs)
	for id := 0; id < o.MaxConfs; id++ {
		if coords[id] != nil {
			errs = append(errs, scores[id])
		}
	}
	return &Conformer{ID: best, Coords: coords[best], Err: scores[best]}, errs, nil
}
