/*
 * sdf.go, part of ligfit.
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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//SDF/Mol V2000 reading and writing. Only the first molecule of an SDF
//file is read; multi-molecule files are a batch concern and out of scope.

// SDFRead reads the first molecule of the SDF/Mol V2000 file with the
// given name, with its 3D (or 2D) coordinates and connectivity.
func SDFRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError(ParseError, err.Error())
	}
	defer f.Close()
	mol, err := SDFReaderRead(f)
	if err != nil {
		return nil, errDecorate(err, "SDFRead: "+name)
	}
	return mol, nil
}

// SDFReaderRead is like SDFRead but takes an io.Reader with the SDF text.
func SDFReaderRead(r io.Reader) (*Molecule, error) {
	sc := bufio.NewScanner(r)
	//3 header lines: name, program, comment
	for i := 0; i < 3; i++ {
		if !sc.Scan() {
			return nil, NewError(ParseError, "unexpected EOF in the SDF header")
		}
	}
	if !sc.Scan() {
		return nil, NewError(ParseError, "missing SDF counts line")
	}
	counts := sc.Text()
	if len(counts) < 6 {
		return nil, NewError(ParseError, fmt.Sprintf("malformed SDF counts line %q", counts))
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(counts[0:3]))
	if err != nil {
		return nil, NewError(ParseError, fmt.Sprintf("malformed SDF counts line %q", counts))
	}
	nbonds, err := strconv.Atoi(strings.TrimSpace(counts[3:6]))
	if err != nil {
		return nil, NewError(ParseError, fmt.Sprintf("malformed SDF counts line %q", counts))
	}
	if natoms == 0 {
		return nil, NewError(ParseError, "SDF file with no atoms")
	}
	mol := NewMolecule()
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !sc.Scan() {
			return nil, NewError(ParseError, "unexpected EOF in the SDF atom block")
		}
		line := sc.Text()
		if len(line) < 34 {
			return nil, NewError(ParseError, fmt.Sprintf("malformed SDF atom line %q", line))
		}
		errs := make([]error, 3)
		var c [3]float64
		c[0], errs[0] = strconv.ParseFloat(strings.TrimSpace(line[0:10]), 64)
		c[1], errs[1] = strconv.ParseFloat(strings.TrimSpace(line[10:20]), 64)
		c[2], errs[2] = strconv.ParseFloat(strings.TrimSpace(line[20:30]), 64)
		for _, e := range errs {
			if e != nil {
				return nil, NewError(ParseError, fmt.Sprintf("malformed SDF atom line %q: %s", line, e.Error()))
			}
		}
		symbol := strings.TrimSpace(line[31:34])
		mol.AddAtom(&Atom{Name: symbol, Symbol: symbol, ID: i + 1})
		coords = append(coords, c[0], c[1], c[2])
	}
	for i := 0; i < nbonds; i++ {
		if !sc.Scan() {
			return nil, NewError(ParseError, "unexpected EOF in the SDF bond block")
		}
		line := sc.Text()
		if len(line) < 9 {
			return nil, NewError(ParseError, fmt.Sprintf("malformed SDF bond line %q", line))
		}
		a1, e1 := strconv.Atoi(strings.TrimSpace(line[0:3]))
		a2, e2 := strconv.Atoi(strings.TrimSpace(line[3:6]))
		order, e3 := strconv.Atoi(strings.TrimSpace(line[6:9]))
		if e1 != nil || e2 != nil || e3 != nil || a1 < 1 || a2 < 1 || a1 > natoms || a2 > natoms {
			return nil, NewError(ParseError, fmt.Sprintf("malformed SDF bond line %q", line))
		}
		o := float64(order)
		if order == 4 { //aromatic, in the V2000 convention
			o = 1.5
		}
		mol.AddBond(a1-1, a2-1, o)
	}
	//properties block. Only charges are of interest here.
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "M  END") || strings.HasPrefix(line, "$$$$") {
			break
		}
		if strings.HasPrefix(line, "M  CHG") {
			fields := strings.Fields(line)
			//M CHG n (atom charge)*n
			for i := 3; i+1 < len(fields); i += 2 {
				idx, e1 := strconv.Atoi(fields[i])
				chg, e2 := strconv.Atoi(fields[i+1])
				if e1 != nil || e2 != nil || idx < 1 || idx > natoms {
					return nil, NewError(ParseError, fmt.Sprintf("malformed SDF charge line %q", line))
				}
				mol.Atom(idx - 1).Charge = chg
			}
		}
	}
	mol.Coords, err = NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "SDFReaderRead")
	}
	return mol, nil
}

// SDFWrite writes mol with the coordinates coord as a single-molecule SDF
// (Mol V2000) file with the given name. The title line gets the name of
// the molecule, title.
func SDFWrite(name, title string, mol *Molecule, coord *Matrix) error {
	if coord == nil || coord.NVecs() != mol.Len() {
		return NewError(ParseError, fmt.Sprintf("SDFWrite: coordinates don't match the %d atoms", mol.Len()))
	}
	out, err := os.Create(name)
	if err != nil {
		return NewError(ParseError, err.Error())
	}
	defer out.Close()
	return SDFWriterWrite(out, title, mol, coord)
}

// SDFWriterWrite is like SDFWrite but writes to an io.Writer.
func SDFWriterWrite(out io.Writer, title string, mol *Molecule, coord *Matrix) error {
	fmt.Fprintf(out, "%s\n  ligfit\n\n", title)
	bonds := mol.Bonds()
	fmt.Fprintf(out, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", mol.Len(), len(bonds))
	for i, at := range mol.Atoms {
		fmt.Fprintf(out, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n",
			coord.At(i, 0), coord.At(i, 1), coord.At(i, 2), at.Symbol)
	}
	for _, b := range bonds {
		order := int(b.Order)
		if b.Order == 1.5 {
			order = 4
		}
		fmt.Fprintf(out, "%3d%3d%3d  0\n", b.At1.Index+1, b.At2.Index+1, order)
	}
	charged := make([]*Atom, 0, 2)
	for _, at := range mol.Atoms {
		if at.Charge != 0 {
			charged = append(charged, at)
		}
	}
	if len(charged) > 0 {
		fmt.Fprintf(out, "M  CHG%3d", len(charged))
		for _, at := range charged {
			fmt.Fprintf(out, " %3d %3d", at.Index+1, at.Charge)
		}
		fmt.Fprint(out, "\n")
	}
	fmt.Fprint(out, "M  END\n$$$$\n")
	return nil
}
