/*
 * writer.go, part of ligfit.
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

package smiles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/ligfit"
)

type writer struct {
	mol      *ligfit.Molecule
	visited  []bool
	closures map[[2]int]string //ring-closure label per back edge
	used     map[[2]int]bool
	nextring int
	b        strings.Builder
}

// FromMolecule writes a SMILES string for the connected heavy-atom graph
// of mol. Hydrogens are folded into their heavy atoms, so parsing the
// string back reproduces mol's heavy atoms in order, with the same
// hydrogen counts. Bond orders 1, 1.5, 2 and 3 are representable.
func FromMolecule(mol *ligfit.Molecule) (string, error) {
	heavy := mol.Heavy()
	if len(heavy) == 0 {
		return "", ligfit.NewError(ligfit.ParseError, "can't write a SMILES for a molecule with no heavy atoms")
	}
	w := &writer{
		mol:      mol,
		visited:  make([]bool, mol.Len()),
		closures: make(map[[2]int]string),
		used:     make(map[[2]int]bool),
		nextring: 1,
	}
	w.findClosures(heavy[0], -1)
	for _, i := range heavy {
		if !w.visited[i] {
			return "", ligfit.NewError(ligfit.ParseError,
				fmt.Sprintf("can't write a SMILES: heavy atom %d is disconnected", i))
		}
	}
	for i := range w.visited {
		w.visited[i] = false
	}
	w.emit(heavy[0], -1)
	return w.b.String(), nil
}

// heavyNeighbors returns the heavy atoms bonded to atom i, with the bond
// orders, in index order.
func (w *writer) heavyNeighbors(i int) ([]int, []float64) {
	at := w.mol.Atom(i)
	nb := make([]int, 0, len(at.Bonds))
	orders := make(map[int]float64, len(at.Bonds))
	for _, b := range at.Bonds {
		other := b.Cross(at)
		if other.Hydrogen() {
			continue
		}
		nb = append(nb, other.Index)
		orders[other.Index] = b.Order
	}
	sort.Ints(nb)
	ords := make([]float64, len(nb))
	for k, j := range nb {
		ords[k] = orders[j]
	}
	return nb, ords
}

func edgeKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// findClosures marks the bonds that close rings in a depth-first walk
// and assigns them their closure labels.
func (w *writer) findClosures(i, parent int) {
	w.visited[i] = true
	nb, _ := w.heavyNeighbors(i)
	for _, j := range nb {
		key := edgeKey(i, j)
		if w.used[key] {
			continue
		}
		if w.visited[j] {
			if j != parent {
				w.used[key] = true
				label := fmt.Sprintf("%d", w.nextring)
				if w.nextring > 9 {
					label = fmt.Sprintf("%%%d", w.nextring)
				}
				w.closures[key] = label
				w.nextring++
			}
			continue
		}
		w.used[key] = true
		w.findClosures(j, i)
	}
}

func bondToken(order float64) string {
	switch order {
	case 2:
		return "="
	case 3:
		return "#"
	case 1.5:
		return ":"
	}
	return ""
}

func (w *writer) atomToken(i int) string {
	at := w.mol.Atom(i)
	hcount := 0
	heavysum := 0.0
	for _, b := range at.Bonds {
		if b.Cross(at).Hydrogen() {
			hcount++
		} else {
			heavysum += b.Order
		}
	}
	plain := false
	for _, sym := range organic {
		if at.Symbol == sym {
			plain = true
			break
		}
	}
	if plain && at.Charge == 0 && implicitHydrogens(at.Symbol, heavysum) == hcount {
		return at.Symbol
	}
	token := "[" + at.Symbol
	if hcount == 1 {
		token += "H"
	} else if hcount > 1 {
		token += fmt.Sprintf("H%d", hcount)
	}
	if at.Charge != 0 {
		token += fmt.Sprintf("%+d", at.Charge)
	}
	return token + "]"
}

func (w *writer) emit(i, parent int) {
	w.visited[i] = true
	w.b.WriteString(w.atomToken(i))
	nb, ords := w.heavyNeighbors(i)
	children := make([]int, 0, len(nb))
	childOrd := make([]float64, 0, len(nb))
	for k, j := range nb {
		key := edgeKey(i, j)
		if label, ring := w.closures[key]; ring {
			//each ring closure is written at both of its ends.
			w.b.WriteString(bondToken(ords[k]))
			w.b.WriteString(label)
			continue
		}
		if j == parent || w.visited[j] {
			continue
		}
		children = append(children, j)
		childOrd = append(childOrd, ords[k])
	}
	for k, j := range children {
		last := k == len(children)-1
		if !last {
			w.b.WriteString("(")
		}
		w.b.WriteString(bondToken(childOrd[k]))
		w.emit(j, i)
		if !last {
			w.b.WriteString(")")
		}
	}
}
