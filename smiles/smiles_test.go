/*
 * smiles_test.go, part of ligfit.
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
	"strings"
	"testing"

	"github.com/rmera/ligfit"
)

func TestParseEthanol(Te *testing.T) {
	mol, err := Parse("CCO")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NHeavy() != 3 {
		Te.Fatal("ethanol should have 3 heavy atoms, got", mol.NHeavy())
	}
	if mol.Len() != 9 {
		Te.Fatal("ethanol should have 9 atoms with hydrogens, got", mol.Len())
	}
	//heavy atoms first, in the order of the string
	for i, s := range []string{"C", "C", "O"} {
		if mol.Atom(i).Symbol != s {
			Te.Error("atom", i, "should be", s, "but is", mol.Atom(i).Symbol)
		}
	}
	for i := 3; i < 9; i++ {
		if !mol.Atom(i).Hydrogen() {
			Te.Error("atom", i, "should be a hydrogen, is", mol.Atom(i).Symbol)
		}
	}
	//3 H on the first carbon, 2 on the second, 1 on the oxygen
	counts := []int{3, 2, 1}
	for i, want := range counts {
		at := mol.Atom(i)
		h := 0
		for _, b := range at.Bonds {
			if b.Cross(at).Hydrogen() {
				h++
			}
		}
		if h != want {
			Te.Error("heavy atom", i, "should carry", want, "hydrogens, carries", h)
		}
	}
	fmt.Println("ethanol parsed:", mol.Len(), "atoms,", len(mol.Bonds()), "bonds")
}

func TestParseWater(Te *testing.T) {
	mol, err := Parse("O")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NHeavy() != 1 || mol.Len() != 3 {
		Te.Error("water should be O plus 2 H, got", mol.NHeavy(), "heavy of", mol.Len())
	}
}

func TestParseBenzene(Te *testing.T) {
	mol, err := Parse("c1ccccc1")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NHeavy() != 6 || mol.Len() != 12 {
		Te.Fatal("benzene should be C6H6, got", mol.NHeavy(), "heavy of", mol.Len())
	}
	ring := 0
	for _, b := range mol.Bonds() {
		if b.Order == 1.5 {
			ring++
		}
	}
	if ring != 6 {
		Te.Error("benzene should have 6 aromatic bonds, has", ring)
	}
}

func TestParseFusedAromatics(Te *testing.T) {
	mol, err := Parse("c1ccc2ccccc2c1")
	if err != nil {
		Te.Fatal(err)
	}
	//naphthalene, C10H8: the two bridgeheads carry no hydrogen
	if mol.NHeavy() != 10 || mol.Len() != 18 {
		Te.Fatal("naphthalene should be C10H8, got", mol.NHeavy(), "heavy of", mol.Len())
	}
	bridgeheads := 0
	for i := 0; i < mol.NHeavy(); i++ {
		at := mol.Atom(i)
		h := 0
		for _, b := range at.Bonds {
			if b.Cross(at).Hydrogen() {
				h++
			}
		}
		if h == 0 {
			bridgeheads++
		}
	}
	if bridgeheads != 2 {
		Te.Error("naphthalene should have 2 bare bridgeheads, has", bridgeheads)
	}
	mol, err = Parse("c1ccc2[nH]ccc2c1")
	if err != nil {
		Te.Fatal(err)
	}
	//indole, C8H7N
	if mol.NHeavy() != 9 || mol.Len() != 16 {
		Te.Error("indole should be C8H7N, got", mol.NHeavy(), "heavy of", mol.Len())
	}
	fmt.Println("fused aromatics parse with the right hydrogen counts")
}

func TestParseBrackets(Te *testing.T) {
	mol, err := Parse("[NH4+]")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 5 {
		Te.Fatal("ammonium should have 5 atoms, got", mol.Len())
	}
	if mol.Atom(0).Symbol != "N" || mol.Atom(0).Charge != 1 {
		Te.Error("ammonium nitrogen misparsed:", mol.Atom(0).Symbol, mol.Atom(0).Charge)
	}
	mol, err = Parse("CC(=O)[O-]")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Atom(3).Charge != -1 {
		Te.Error("acetate charge misparsed:", mol.Atom(3).Charge)
	}
	//bracket atoms get no implicit hydrogens
	if mol.Len() != 7 { //CH3, C, O, O- and 3 H
		Te.Error("acetate should have 7 atoms, got", mol.Len())
	}
}

func TestParseBonds(Te *testing.T) {
	mol, err := Parse("C#N")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Bonds()[0].Order != 3 {
		Te.Error("triple bond misparsed:", mol.Bonds()[0].Order)
	}
	if mol.Len() != 3 { //HCN
		Te.Error("hydrogen cyanide should have 3 atoms, got", mol.Len())
	}
	mol, err = Parse("C/C=C\\C")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NHeavy() != 4 {
		Te.Error("stereo bond symbols should parse as plain bonds")
	}
}

func TestParseErrors(Te *testing.T) {
	for _, bad := range []string{"", "C(", "C)C", "C1CC", "CC.O", "C[", "Zz"} {
		if _, err := Parse(bad); err == nil {
			Te.Error("SMILES", bad, "should not parse")
		} else if !ligfit.IsClass(err, ligfit.ParseError) {
			Te.Error("SMILES", bad, "gave the wrong error class:", err)
		}
	}
	fmt.Println("malformed strings correctly rejected")
}

// an SDF reference usually carries heavy atoms only; rebuilding the
// molecule from its derived SMILES must restore the hydrogens and keep
// the heavy-atom order.
func TestRebuildFromHeavyOnlyGraph(Te *testing.T) {
	sdf := `ethanol
  test

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.5000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    2.0170    1.3010    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  2  3  1  0
M  END
$$$$
`
	ref, err := ligfit.SDFReaderRead(strings.NewReader(sdf))
	if err != nil {
		Te.Fatal(err)
	}
	if ref.Len() != 3 {
		Te.Fatal("the reference should hold only the 3 heavy atoms, holds", ref.Len())
	}
	s, err := FromMolecule(ref)
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := Parse(s)
	if err != nil {
		Te.Fatal(s, err)
	}
	if mol.Len() != 9 || mol.NHeavy() != 3 {
		Te.Fatal("rebuilt ethanol should be C2H6O (9 atoms), got", mol.NHeavy(), "heavy of", mol.Len())
	}
	for i, want := range []string{"C", "C", "O"} {
		if mol.Atom(i).Symbol != want {
			Te.Error("rebuilt heavy atom", i, "should be", want, "is", mol.Atom(i).Symbol)
		}
	}
	fmt.Println("heavy-only reference", s, "rebuilt with", mol.Len(), "atoms")
}

func TestRoundTrip(Te *testing.T) {
	for _, s := range []string{"CCO", "CC(=O)O", "c1ccccc1", "C1CCCCC1", "CC(C)C#N", "c1ccc2ccccc2c1"} {
		mol, err := Parse(s)
		if err != nil {
			Te.Fatal(s, err)
		}
		out, err := FromMolecule(mol)
		if err != nil {
			Te.Fatal(s, err)
		}
		back, err := Parse(out)
		if err != nil {
			Te.Fatal(s, "->", out, err)
		}
		if back.NHeavy() != mol.NHeavy() || back.Len() != mol.Len() {
			Te.Error(s, "->", out, "changed the formula on the round trip")
		}
		for i := 0; i < mol.NHeavy(); i++ {
			if back.Atom(i).Symbol != mol.Atom(i).Symbol {
				Te.Error(s, "->", out, "changed heavy atom", i)
			}
		}
		if len(back.Bonds()) != len(mol.Bonds()) {
			Te.Error(s, "->", out, "changed the bond count")
		}
		fmt.Println(s, "->", out)
	}
}
