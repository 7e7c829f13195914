/*
 * main.go, part of ligfit.
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

//ligfit searches for the ligand conformer that best matches a predicted
//structure, rigidly fits it onto the prediction and writes the fitted
//geometry plus its distance-matrix error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/ligfit"
	"github.com/rmera/ligfit/dgeom"
	"github.com/rmera/ligfit/smiles"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var verb int

// LogV logs its arguments if the requested level is not larger than the
// verbosity given by the user.
func LogV(level int, args ...interface{}) {
	if level <= verb {
		log.Println(args...)
	}
}

func main() {
	pred := flag.String("pred", "", "Predicted structure, PDB format (plain, .gz or .zst)")
	smi := flag.String("smiles", "", "Ligand as a SMILES string")
	sdf := flag.String("sdf", "", "Ligand as an SDF file, used when no SMILES is given")
	chain := flag.String("chain", ligfit.DefaultChain, "Chain of the predicted structure holding the ligand")
	outdir := flag.String("outdir", ".", "Directory for the output files")
	confs := flag.Int("confs", 100, "Maximum number of candidate conformers")
	seed := flag.Int64("seed", 0xf00d, "Random seed for the conformer search")
	cpus := flag.Int("cpus", 0, "Embedding workers, 0 for all the CPUs")
	plotErrs := flag.Bool("plot", false, "Plot the error of every accepted conformer to a PNG file")
	pdbOut := flag.Bool("pdb", false, "Also write the fitted ligand in PDB format")
	flag.IntVar(&verb, "v", 0, "Verbosity level")
	flag.Parse()
	if *pred == "" {
		log.Fatal("ligfit: the -pred PDB file is required")
	}
	if *smi == "" && *sdf == "" {
		log.Fatal("ligfit: a ligand is required, either -smiles or -sdf")
	}

	predmol, err := ligfit.PDBRead(*pred, *chain)
	if err != nil {
		log.Fatal(err)
	}
	LogV(1, "predicted ligand:", predmol.Len(), "atoms in chain", *chain)

	//either way the graph comes from a SMILES parse, so the heavy-atom
	//order and the hydrogens don't depend on what the SDF file carries.
	ligsmiles := *smi
	if ligsmiles == "" {
		ref, err := ligfit.SDFRead(*sdf)
		if err != nil {
			log.Fatal(err)
		}
		ligsmiles, err = smiles.FromMolecule(ref)
		if err != nil {
			log.Fatal(err)
		}
		LogV(2, "reference molecule read, SMILES:", ligsmiles)
	}
	mol, err := smiles.Parse(ligsmiles)
	if err != nil {
		log.Fatal(err)
	}
	LogV(1, "ligand graph:", mol.NHeavy(), "heavy atoms,", mol.Len(), "total")

	o := dgeom.DefaultOptions()
	o.MaxConfs = *confs
	o.Seed = *seed
	if *cpus > 0 {
		o.Cpus = *cpus
	}
	best, errs, err := dgeom.Generate(mol, predmol, o)
	if err != nil {
		log.Fatal(err)
	}
	LogV(1, len(errs), "of", o.MaxConfs, "candidates embedded, best:", best.ID, "err:", best.Err)

	heavy := mol.Heavy()
	hc := ligfit.Zeros(len(heavy))
	hc.SomeVecs(best.Coords, heavy)
	_, T, err := ligfit.Superpose(hc, predmol.Coords)
	if err != nil {
		log.Fatal(err)
	}
	fitted := T.Apply(best.Coords)
	if verb >= 2 {
		fh := ligfit.Zeros(len(heavy))
		fh.SomeVecs(fitted, heavy)
		if rmsd, rerr := ligfit.RMSD(fh, predmol.Coords); rerr == nil {
			LogV(2, "heavy-atom RMSD to the prediction after fitting:", rmsd)
		}
	}

	id := outputID(*pred)
	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatal(err)
	}
	csvname := filepath.Join(*outdir, "conformer_dmat_err.csv")
	csv, err := os.Create(csvname)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(csv, "id,conformer_dmat_err\n%s,%v\n", id, best.Err)
	csv.Close()
	sdfname := filepath.Join(*outdir, id+"_pred_ligand.sdf")
	if err := ligfit.SDFWrite(sdfname, id, mol, fitted); err != nil {
		log.Fatal(err)
	}
	LogV(1, "wrote", csvname, "and", sdfname)
	if *pdbOut {
		if err := writePDB(*outdir, id, *chain, mol, predmol, fitted); err != nil {
			log.Fatal(err)
		}
	}
	if *plotErrs {
		if err := plotErrors(filepath.Join(*outdir, id+"_conformer_err.png"), errs); err != nil {
			log.Fatal(err)
		}
	}
}

// outputID extracts the identifier of a prediction from its file name:
// the second dot-separated field when there are at least three, as in
// "pred.7NB4.pdb", otherwise the first.
func outputID(name string) string {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) > 2 {
		return parts[1]
	}
	return parts[0]
}

// writePDB writes the fitted ligand in PDB format, carrying over the
// per-atom confidences of the prediction for the heavy atoms.
func writePDB(outdir, id, chain string, mol, predmol *ligfit.Molecule, fitted *ligfit.Matrix) error {
	o := ligfit.DefaultPDBWriteOptions()
	o.Chain = chain
	conf := make([]float64, mol.Len())
	for i := range conf {
		conf[i] = o.DefaultConfidence
	}
	for a, idx := range mol.Heavy() {
		conf[idx] = predmol.Atom(a).Bfactor
	}
	return ligfit.PDBWrite(filepath.Join(outdir, id+"_pred_ligand.pdb"), mol, fitted, conf, o)
}

// plotErrors saves a scatter plot of the distance-matrix error of every
// conformer that embedded, in generation order.
func plotErrors(name string, errs []float64) error {
	p := plot.New()
	p.Title.Text = "Conformer distance-matrix error"
	p.X.Label.Text = "Accepted conformer"
	p.Y.Label.Text = "Mean deviation (A)"
	pts := make(plotter.XYs, len(errs))
	for i, e := range errs {
		pts[i].X = float64(i)
		pts[i].Y = e
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(s)
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, name)
}
