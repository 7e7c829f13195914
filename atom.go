/*
 * atom.go, part of ligfit.
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

import "fmt"

// Atom contains the data for one atom, except for its coordinates, which
// live in the Coords matrix of the Molecule. Bfactor carries the per-atom
// confidence score of predicted structures (a pLDDT-like value).
type Atom struct {
	Name    string //PDB atom name, or the element symbol for built molecules
	ID      int    //the PDB serial number
	Molname string
	Molid   int
	Chain   string
	Symbol  string
	Charge  int //formal charge
	Bfactor float64
	Index   int //the position of the atom in the molecule
	Bonds   []*Bond
}

// Hydrogen reports whether the atom is a hydrogen.
func (A *Atom) Hydrogen() bool {
	return A.Symbol == "H"
}

// Copy returns a copy of the Atom, without its bonds.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("ligfit: attempted to copy a nil atom")
	}
	N := new(Atom)
	*N = *A
	N.Bonds = nil
	return N
}

// Bond is a chemical bond between two atoms. Order 1.5 marks an aromatic
// bond.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Order float64
}

// Cross returns the atom of the bond that is not origin. It panics if
// origin is not part of the bond, as that has to be a programming error.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("ligfit: trying to cross a bond: the origin atom given is not present in the bond")
}

// Molecule is a molecular graph plus, optionally, one set of coordinates
// for its atoms. The topology is not expected to change after construction;
// Coords may be nil until an embedding or a file reader assigns it.
type Molecule struct {
	Atoms  []*Atom
	Coords *Matrix
	bonds  []*Bond
}

// NewMolecule returns an empty molecule.
func NewMolecule() *Molecule {
	return &Molecule{Atoms: make([]*Atom, 0, 10)}
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the atom with index i. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("ligfit: requested atom out of bounds")
	}
	return M.Atoms[i]
}

// AddAtom appends an atom to the molecule, fills its Index and returns it.
func (M *Molecule) AddAtom(at *Atom) *Atom {
	at.Index = len(M.Atoms)
	M.Atoms = append(M.Atoms, at)
	return at
}

// AddBond creates a bond of the given order between the atoms with indexes
// i and j, registers it in both atoms and returns it.
func (M *Molecule) AddBond(i, j int, order float64) *Bond {
	at1 := M.Atom(i)
	at2 := M.Atom(j)
	b := &Bond{Index: len(M.bonds), At1: at1, At2: at2, Order: order}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	M.bonds = append(M.bonds, b)
	return b
}

// Bonds returns the bonds of the molecule, in creation order.
func (M *Molecule) Bonds() []*Bond {
	return M.bonds
}

// FillIndexes sets the Index field of every atom to its current position
// in the molecule.
func (M *Molecule) FillIndexes() {
	for i, at := range M.Atoms {
		at.Index = i
	}
}

// Heavy returns the indexes of the non-hydrogen atoms, in molecule order.
func (M *Molecule) Heavy() []int {
	ret := make([]int, 0, M.Len())
	for i, at := range M.Atoms {
		if !at.Hydrogen() {
			ret = append(ret, i)
		}
	}
	return ret
}

// NHeavy returns the number of non-hydrogen atoms.
func (M *Molecule) NHeavy() int {
	return len(M.Heavy())
}

// Corrupted returns an error if the coordinates, when present, do not
// match the number of atoms.
func (M *Molecule) Corrupted() error {
	if M.Coords == nil {
		return nil
	}
	if M.Coords.NVecs() != M.Len() {
		return NewError(ParseError, fmt.Sprintf("inconsistent coordinates/atoms: %d vs %d", M.Coords.NVecs(), M.Len()))
	}
	return nil
}
