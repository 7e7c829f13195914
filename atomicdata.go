/*
 * atomicdata.go, part of ligfit.
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

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"B":  10.81,
	"Cl": 35.45,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"Si": 28.08,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"B":  0.84,
	"Cl": 1.02,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
	"Si": 1.11,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"B":  1.92,
	"Cl": 1.75,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
	"Si": 2.10,
}

//The standard valences used to complete atoms with implicit hydrogens
//when parsing SMILES. For elements with several common valences the
//smallest one that accommodates the explicit bonds is used.
var symbolValences = map[string][]int{
	"B":  {3},
	"C":  {4},
	"N":  {3, 5},
	"O":  {2},
	"P":  {3, 5},
	"S":  {2, 4, 6},
	"F":  {1},
	"Cl": {1},
	"Br": {1},
	"I":  {1},
}

// CovalentRadius returns the covalent radius, in A, for the element with
// the given symbol, or 0.77 (a carbon-like radius) if the element is not
// in the internal table.
func CovalentRadius(symbol string) float64 {
	if r, ok := symbolCovrad[symbol]; ok {
		return r
	}
	return 0.77
}

// VdwRadius returns the van der Waals radius, in A, for the element with
// the given symbol, or 1.7 if the element is not in the internal table.
func VdwRadius(symbol string) float64 {
	if r, ok := symbolVdwrad[symbol]; ok {
		return r
	}
	return 1.7
}

// Mass returns the atomic mass for the element with the given symbol,
// or 0 and false if the element is not in the internal table.
func Mass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

// Valences returns the standard valences for the element with the given
// symbol, smallest first, or nil if the element takes no implicit
// hydrogens.
func Valences(symbol string) []int {
	return symbolValences[symbol]
}
