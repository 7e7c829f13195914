/*
 * pdb_test.go, part of ligfit.
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
	"compress/gzip"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestPDBRead(Te *testing.T) {
	mol, err := PDBRead("test/pred.7NB4.pdb", "B")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 {
		Te.Fatalf("expected 3 ligand atoms in chain B, got %d", mol.Len())
	}
	symbols := []string{"C", "C", "O"}
	for i, s := range symbols {
		if mol.Atom(i).Symbol != s {
			Te.Error("atom", i, "should be", s, "but is", mol.Atom(i).Symbol)
		}
	}
	if mol.Atom(0).Bfactor != 87.50 {
		Te.Error("confidence of the first ligand atom misread:", mol.Atom(0).Bfactor)
	}
	if d := mol.Coords.Dist(0, 1); math.Abs(d-1.5) > 1e-6 {
		Te.Error("C1-C2 distance misread:", d)
	}
	fmt.Println("ligand read back:", mol.Len(), "atoms, C1-O1 distance:", mol.Coords.Dist(0, 2))
}

func TestPDBReadWrongChain(Te *testing.T) {
	_, err := PDBRead("test/pred.7NB4.pdb", "Z")
	if err == nil {
		Te.Fatal("a chain absent from the file should not read")
	}
	if !IsClass(err, ParseError) {
		Te.Error("wrong error class for an absent chain:", err)
	}
	fmt.Println("absent chain correctly rejected:", err)
}

func TestPDBReaderReadNoAtoms(Te *testing.T) {
	_, err := PDBReaderRead(strings.NewReader("TITLE empty\nEND\n"), "B")
	if !IsClass(err, ParseError) {
		Te.Error("a PDB with no atom records should give a parse error, got:", err)
	}
}

// The reader decides on decompression from the file name, so the
// compressed cases write a fixture on the fly.
func TestPDBReadCompressed(Te *testing.T) {
	plain, err := os.ReadFile("test/pred.7NB4.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gzname := filepath.Join(dir, "pred.7NB4.pdb.gz")
	gf, err := os.Create(gzname)
	if err != nil {
		Te.Fatal(err)
	}
	gw := gzip.NewWriter(gf)
	gw.Write(plain)
	gw.Close()
	gf.Close()
	zstname := filepath.Join(dir, "pred.7NB4.pdb.zst")
	zf, err := os.Create(zstname)
	if err != nil {
		Te.Fatal(err)
	}
	zw, err := zstd.NewWriter(zf)
	if err != nil {
		Te.Fatal(err)
	}
	zw.Write(plain)
	zw.Close()
	zf.Close()
	for _, name := range []string{gzname, zstname} {
		mol, err := PDBRead(name, "B")
		if err != nil {
			Te.Fatal(name, err)
		}
		if mol.Len() != 3 {
			Te.Error(name, "read back", mol.Len(), "atoms instead of 3")
		}
	}
	fmt.Println("gz and zst compressed predictions read back fine")
}

func TestPDBWrite(Te *testing.T) {
	mol, err := PDBRead("test/pred.7NB4.pdb", "B")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "out.pdb")
	o := DefaultPDBWriteOptions()
	//one confidence short, the writer pads the last atom.
	if err := PDBWrite(name, mol, mol.Coords, []float64{87.50, 90.25}, o); err != nil {
		Te.Fatal(err)
	}
	back, err := PDBRead(name, o.Chain)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != mol.Len() {
		Te.Fatal("wrote", mol.Len(), "atoms, read back", back.Len())
	}
	if back.Atom(2).Bfactor != o.DefaultConfidence {
		Te.Error("missing confidence not padded:", back.Atom(2).Bfactor)
	}
	for i := 0; i < mol.Len(); i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(back.Coords.At(i, k)-mol.Coords.At(i, k)) > 1e-3 {
				Te.Error("coordinates changed on the round trip, atom", i)
			}
		}
	}
}

func TestErrorDecorate(Te *testing.T) {
	err := NewError(ParseError, "something unparseable")
	deco := errDecorate(err, "TestErrorDecorate")
	if !IsClass(deco, ParseError) {
		Te.Error("decoration changed the error class")
	}
	decos := deco.(Error).Decorate("")
	if len(decos) != 1 || decos[0] != "TestErrorDecorate" {
		Te.Error("decoration lost the caller:", decos)
	}
}
