/*
 * pdb.go, part of ligfit.
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultChain is the chain identifier that structure-prediction pipelines
// use for the ligand when the complex holds one protein chain and one
// ligand "chain".
const DefaultChain = "B"

//This tries to guess a chemical element symbol from a PDB atom name.
//Ligand atom names are normally the element symbol plus a number (C5, CL1,
//BR2...), so we strip the digits and try a two-letter symbol first.
func symbolFromName(name string) (string, error) {
	stripped := strings.TrimRight(strings.TrimSpace(name), "0123456789")
	if stripped == "" {
		return "", NewError(ParseError, fmt.Sprintf("couldn't guess an element symbol from the PDB name %q", name))
	}
	if len(stripped) >= 2 {
		two := strings.ToUpper(stripped[:1]) + strings.ToLower(stripped[1:2])
		if _, ok := symbolCovrad[two]; ok {
			return two, nil
		}
	}
	one := strings.ToUpper(stripped[:1])
	if _, ok := symbolCovrad[one]; ok {
		return one, nil
	}
	return "", NewError(ParseError, fmt.Sprintf("couldn't guess an element symbol from the PDB name %q", name))
}

//Parses a valid ATOM or HETATM line of a PDB file. Returns an Atom with
//the data in the line, and its coordinates separately, as a 3-element
//slice.
func readPDBLine(line string) (*Atom, []float64, error) {
	if len(line) < 66 {
		return nil, nil, NewError(ParseError, fmt.Sprintf("PDB atom line too short: %q", line))
	}
	err := make([]error, 6) //accumulate errors to check at the end of the read line.
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Molname = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.Molid, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Bfactor, err[5] = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = strings.ToUpper(atom.Symbol[:1]) + strings.ToLower(atom.Symbol[1:])
		}
	}
	if atom.Symbol == "" {
		//no error checking, an empty symbol just stays empty.
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, NewError(ParseError, fmt.Sprintf("PDB atom line %q: %s", line, err[i].Error()))
		}
	}
	return atom, coords, nil
}

//pdbUncompress wraps the reader for a PDB file with the decompressor
//matching the file-name extension. Plain files pass through.
func pdbUncompress(name string, f io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return zstd.NewReader(f)
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(f)
	}
	return f, nil
}

// PDBRead reads the predicted-structure PDB file with the given name and
// returns the atoms of the chain with identifier chain (all of which are
// taken to belong to the ligand), with their coordinates and per-atom
// confidence scores, in file order. Files named *.gz or *.zst/*.zstd are
// transparently decompressed. It fails with a parse error if the file is
// malformed or the chain is absent.
func PDBRead(name, chain string) (*Molecule, error) {
	if chain == "" {
		chain = DefaultChain
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError(ParseError, err.Error())
	}
	defer f.Close()
	r, err := pdbUncompress(name, f)
	if err != nil {
		return nil, NewError(ParseError, fmt.Sprintf("%s: %s", name, err.Error()))
	}
	mol, err := PDBReaderRead(r, chain)
	if err != nil {
		return nil, errDecorate(err, "PDBRead: "+name)
	}
	return mol, nil
}

// PDBReaderRead is like PDBRead but takes an io.Reader with the
// uncompressed PDB text.
func PDBReaderRead(r io.Reader, chain string) (*Molecule, error) {
	mol := NewMolecule()
	coords := make([]float64, 0, 30)
	atomrecords := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break //only the first model is read
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		atomrecords++
		at, c, err := readPDBLine(line)
		if err != nil {
			return nil, errDecorate(err, "PDBReaderRead")
		}
		if at.Chain != chain {
			continue
		}
		mol.AddAtom(at)
		coords = append(coords, c...)
	}
	if err := scanner.Err(); err != nil {
		return nil, NewError(ParseError, err.Error())
	}
	if atomrecords == 0 {
		return nil, NewError(ParseError, "no atom records in the PDB file")
	}
	if mol.Len() == 0 {
		return nil, NewError(ParseError, fmt.Sprintf("no atoms in chain %q", chain))
	}
	var err error
	mol.Coords, err = NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "PDBReaderRead")
	}
	return mol, nil
}

// PDBWriteOptions controls the PDB writer. DefaultConfidence fills the
// B-factor column of atoms beyond the available confidence values
// (typically, the hydrogens of a conformer fitted to a heavy-atom-only
// prediction).
type PDBWriteOptions struct {
	Chain             string
	Molname           string
	DefaultConfidence float64
}

// DefaultPDBWriteOptions returns the writer options matching the
// predicted-ligand conventions: chain "B", residue name "LIG" and a
// confidence of 1.0 for atoms without one.
func DefaultPDBWriteOptions() *PDBWriteOptions {
	return &PDBWriteOptions{Chain: DefaultChain, Molname: "LIG", DefaultConfidence: 1.0}
}

// PDBWrite writes the molecule mol with the coordinates coord as HETATM
// records to the file with the given name. confidence contains the
// per-atom confidence values for the first len(confidence) atoms; the
// remaining atoms get o.DefaultConfidence. If o is nil the default
// options are used.
func PDBWrite(name string, mol *Molecule, coord *Matrix, confidence []float64, o *PDBWriteOptions) error {
	if o == nil {
		o = DefaultPDBWriteOptions()
	}
	if coord.NVecs() != mol.Len() {
		return NewError(ParseError, fmt.Sprintf("PDBWrite: %d coordinates for %d atoms", coord.NVecs(), mol.Len()))
	}
	out, err := os.Create(name)
	if err != nil {
		return NewError(ParseError, err.Error())
	}
	defer out.Close()
	fmt.Fprint(out, "REMARK     WRITTEN WITH LIGFIT :-)\n")
	for i, at := range mol.Atoms {
		conf := o.DefaultConfidence
		if i < len(confidence) {
			conf = confidence[i]
		}
		name := at.Name
		if name == "" {
			name = fmt.Sprintf("%s%d", at.Symbol, i+1)
		}
		_, err = fmt.Fprintf(out, "HETATM%5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
			i+1, name, o.Molname, o.Chain, 1, coord.At(i, 0), coord.At(i, 1), coord.At(i, 2), 1.0, conf, at.Symbol)
		if err != nil {
			return NewError(ParseError, err.Error())
		}
	}
	fmt.Fprint(out, "END\n")
	return nil
}
