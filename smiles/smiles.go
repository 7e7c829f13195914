/*
 * smiles.go, part of ligfit.
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

//Package smiles reads and writes molecular graphs in the SMILES line
//notation. It covers the subset needed for reasonable drug-like ligands:
//the organic subset, bracket atoms with charge, isotope and hydrogen
//counts, single, double, triple and aromatic bonds, branches and ring
//closures. Stereo bond symbols are accepted and read as single bonds, as
//conformer generation assigns geometry downstream. Hydrogens implied by
//the notation are made explicit, appended after all the heavy atoms, so
//the heavy-atom order of the resulting molecule is the atom order of the
//SMILES string.
package smiles

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rmera/ligfit"
)

type parseAtom struct {
	at       *ligfit.Atom
	aromatic bool
	hcount   int //-1 means "compute from valence"
}

type ringRef struct {
	atom  int
	order float64
}

type parser struct {
	s       string
	pos     int
	atoms   []*parseAtom
	bonds   [][3]float64 //at1, at2, order
	prev    int
	pending float64 //0 means "no bond symbol seen"
	stack   []int
	rings   map[string]*ringRef
}

func perr(p *parser, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	return ligfit.NewError(ligfit.ParseError, fmt.Sprintf("SMILES %q, position %d: %s", p.s, p.pos, msg))
}

// Parse reads the SMILES string s into a molecule with explicit
// hydrogens and no coordinates. The heavy atoms keep the order in which
// they appear in s, and the hydrogens follow them, in the order of their
// bonded heavy atoms.
func Parse(s string) (*ligfit.Molecule, error) {
	p := &parser{
		s:     s,
		prev:  -1,
		rings: make(map[string]*ringRef),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.build()
}

func (p *parser) run() error {
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == '-' || c == '/' || c == '\\':
			p.pending = 1
			p.pos++
		case c == '=':
			p.pending = 2
			p.pos++
		case c == '#':
			p.pending = 3
			p.pos++
		case c == ':':
			p.pending = 1.5
			p.pos++
		case c == '(':
			if p.prev < 0 {
				return perr(p, "branch with no previous atom")
			}
			p.stack = append(p.stack, p.prev)
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return perr(p, "unbalanced closing parenthesis")
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.pos++
		case c >= '0' && c <= '9':
			if err := p.ringClosure(string(c)); err != nil {
				return err
			}
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.s) {
				return perr(p, "truncated %%nn ring closure")
			}
			label := p.s[p.pos+1 : p.pos+3]
			if !unicode.IsDigit(rune(label[0])) || !unicode.IsDigit(rune(label[1])) {
				return perr(p, "malformed %%nn ring closure")
			}
			if err := p.ringClosure(label); err != nil {
				return err
			}
			p.pos += 3
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		case c == '.':
			return perr(p, "disconnected molecules are not supported")
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}
	if len(p.stack) > 0 {
		return perr(p, "unbalanced opening parenthesis")
	}
	for label := range p.rings {
		return perr(p, "unclosed ring bond %s", label)
	}
	if len(p.atoms) == 0 {
		return perr(p, "no atoms")
	}
	return nil
}

// addAtom registers a new atom and bonds it to the previous one, if any.
func (p *parser) addAtom(a *parseAtom) {
	p.atoms = append(p.atoms, a)
	index := len(p.atoms) - 1
	if p.prev >= 0 {
		order := p.pending
		if order == 0 {
			order = 1
			if a.aromatic && p.atoms[p.prev].aromatic {
				order = 1.5
			}
		}
		p.bonds = append(p.bonds, [3]float64{float64(p.prev), float64(index), order})
	}
	p.pending = 0
	p.prev = index
}

func (p *parser) ringClosure(label string) error {
	if p.prev < 0 {
		return perr(p, "ring closure with no previous atom")
	}
	ref, open := p.rings[label]
	if !open {
		p.rings[label] = &ringRef{atom: p.prev, order: p.pending}
		p.pending = 0
		return nil
	}
	delete(p.rings, label)
	if ref.atom == p.prev {
		return perr(p, "ring bond %s to the same atom", label)
	}
	order := ref.order
	if p.pending != 0 {
		if order != 0 && order != p.pending {
			return perr(p, "conflicting orders for ring bond %s", label)
		}
		order = p.pending
	}
	if order == 0 {
		order = 1
		if p.atoms[ref.atom].aromatic && p.atoms[p.prev].aromatic {
			order = 1.5
		}
	}
	p.bonds = append(p.bonds, [3]float64{float64(ref.atom), float64(p.prev), order})
	p.pending = 0
	return nil
}

var organic = []string{"Cl", "Br", "B", "C", "N", "O", "P", "S", "F", "I"}
var aromaticOrganic = []string{"b", "c", "n", "o", "p", "s"}

func (p *parser) organicAtom() error {
	rest := p.s[p.pos:]
	for _, sym := range organic {
		if strings.HasPrefix(rest, sym) {
			p.addAtom(&parseAtom{at: &ligfit.Atom{Symbol: sym, Name: sym}, hcount: -1})
			p.pos += len(sym)
			return nil
		}
	}
	for _, sym := range aromaticOrganic {
		if strings.HasPrefix(rest, sym) {
			up := strings.ToUpper(sym)
			p.addAtom(&parseAtom{at: &ligfit.Atom{Symbol: up, Name: up}, aromatic: true, hcount: -1})
			p.pos += len(sym)
			return nil
		}
	}
	return perr(p, "unexpected character %q", rest[0])
}

// bracketAtom reads [isotope symbol chirality Hcount charge :class].
// Isotope, chirality and atom class are accepted and discarded.
func (p *parser) bracketAtom() error {
	end := strings.IndexByte(p.s[p.pos:], ']')
	if end < 0 {
		return perr(p, "unclosed bracket atom")
	}
	body := p.s[p.pos+1 : p.pos+end]
	advance := end + 1
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' { //isotope
		i++
	}
	if i == len(body) {
		return perr(p, "bracket atom with no element symbol")
	}
	start := i
	aromatic := false
	if body[i] >= 'a' && body[i] <= 'z' {
		aromatic = true
		i++
	} else if body[i] >= 'A' && body[i] <= 'Z' {
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			i++
		}
	} else {
		return perr(p, "bracket atom with no element symbol")
	}
	sym := body[start:i]
	if aromatic {
		sym = strings.ToUpper(sym)
	} else if _, known := ligfit.Mass(sym); len(sym) == 2 && !known {
		//a two-letter read that is not an element, as in [CH4]: take one letter back.
		sym = sym[:1]
		i--
	}
	for i < len(body) && body[i] == '@' { //chirality
		i++
	}
	hcount := 0
	if i < len(body) && body[i] == 'H' {
		i++
		hcount = 1
		if i < len(body) && body[i] >= '0' && body[i] <= '9' {
			hcount = int(body[i] - '0')
			i++
		}
	}
	charge := 0
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		charge = sign
		i++
		if i < len(body) && body[i] >= '0' && body[i] <= '9' {
			charge = sign * int(body[i]-'0')
			i++
		} else {
			for i < len(body) && (body[i] == '+' || body[i] == '-') {
				charge += sign
				i++
			}
		}
	}
	if i < len(body) && body[i] == ':' { //atom class
		i++
		for i < len(body) && body[i] >= '0' && body[i] <= '9' {
			i++
		}
	}
	if i != len(body) {
		return perr(p, "trailing %q in bracket atom", body[i:])
	}
	p.addAtom(&parseAtom{
		at:       &ligfit.Atom{Symbol: sym, Name: sym, Charge: charge},
		aromatic: aromatic,
		hcount:   hcount,
	})
	p.pos += advance
	return nil
}

// build turns the parsed graph into a molecule, heavy atoms first, then
// the hydrogens each of them implies, in heavy-atom order.
func (p *parser) build() (*ligfit.Molecule, error) {
	mol := ligfit.NewMolecule()
	for i, a := range p.atoms {
		a.at.ID = i + 1
		mol.AddAtom(a.at)
	}
	bondsum := make([]float64, len(p.atoms))
	for _, b := range p.bonds {
		mol.AddBond(int(b[0]), int(b[1]), b[2])
		bondsum[int(b[0])] += b[2]
		bondsum[int(b[1])] += b[2]
	}
	for i, a := range p.atoms {
		h := a.hcount
		if h < 0 {
			h = implicitHydrogens(a.at.Symbol, bondsum[i])
			if h < 0 {
				return nil, ligfit.NewError(ligfit.ParseError,
					fmt.Sprintf("SMILES %q: atom %d (%s) exceeds its valences", p.s, i+1, a.at.Symbol))
			}
		}
		a.hcount = h
	}
	for i, a := range p.atoms {
		for j := 0; j < a.hcount; j++ {
			newat := mol.AddAtom(&ligfit.Atom{Symbol: "H", Name: "H"})
			newat.ID = newat.Index + 1
			mol.AddBond(i, newat.Index, 1)
		}
	}
	return mol, nil
}

// implicitHydrogens returns the hydrogens needed to complete the
// smallest standard valence of symbol not exceeded by bondsum, or -1
// when all the valences are exceeded. Aromatic bond orders make bondsum
// fractional; it is floored, so a plain aromatic carbon (sum 3) keeps
// its hydrogen and a fused-ring bridgehead (sum 4.5) gets none instead
// of overflowing the valence.
func implicitHydrogens(symbol string, bondsum float64) int {
	sum := int(bondsum)
	for _, v := range ligfit.Valences(symbol) {
		if v >= sum {
			return v - sum
		}
	}
	if len(ligfit.Valences(symbol)) == 0 {
		return 0 //no valence data, as for metals: no hydrogens added.
	}
	return -1
}
