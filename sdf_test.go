/*
 * sdf_test.go, part of ligfit.
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
	"path/filepath"
	"strings"
	"testing"
)

const ethanolSDF = `ethanol
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

func TestSDFReaderRead(Te *testing.T) {
	mol, err := SDFReaderRead(strings.NewReader(ethanolSDF))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 || len(mol.Bonds()) != 2 {
		Te.Fatal("expected 3 atoms and 2 bonds, got", mol.Len(), "and", len(mol.Bonds()))
	}
	if mol.Atom(2).Symbol != "O" {
		Te.Error("third atom should be O, is", mol.Atom(2).Symbol)
	}
	if d := mol.Coords.Dist(0, 1); math.Abs(d-1.5) > 1e-4 {
		Te.Error("C-C distance misread:", d)
	}
	b := mol.Bonds()[1]
	if b.At1.Index != 1 || b.At2.Index != 2 || b.Order != 1 {
		Te.Error("second bond misread:", b.At1.Index, b.At2.Index, b.Order)
	}
	fmt.Println("ethanol heavy skeleton read:", mol.Len(), "atoms")
}

func TestSDFRoundTrip(Te *testing.T) {
	mol, err := SDFReaderRead(strings.NewReader(ethanolSDF))
	if err != nil {
		Te.Fatal(err)
	}
	mol.Atom(2).Charge = -1 //exercise the charge block
	name := filepath.Join(Te.TempDir(), "ethanol.sdf")
	if err := SDFWrite(name, "ethanol", mol, mol.Coords); err != nil {
		Te.Fatal(err)
	}
	back, err := SDFRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != mol.Len() || len(back.Bonds()) != len(mol.Bonds()) {
		Te.Fatal("atom or bond count changed on the round trip")
	}
	if back.Atom(2).Charge != -1 {
		Te.Error("charge lost on the round trip:", back.Atom(2).Charge)
	}
	for i := 0; i < mol.Len(); i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(back.Coords.At(i, k)-mol.Coords.At(i, k)) > 1e-3 {
				Te.Error("coordinates changed on the round trip, atom", i)
			}
		}
	}
}

func TestSDFReadMalformed(Te *testing.T) {
	truncated := strings.Join(strings.Split(ethanolSDF, "\n")[:5], "\n")
	_, err := SDFReaderRead(strings.NewReader(truncated))
	if !IsClass(err, ParseError) {
		Te.Error("a truncated SDF should give a parse error, got:", err)
	}
	fmt.Println("truncated SDF correctly rejected:", err)
}
