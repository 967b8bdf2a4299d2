/*
 * structure.go, part of gokkr.
 *
 *
 * Copyright 2023 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package kkr

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"
)

//Species is one element occupying (a fraction of) a crystal site.
type Species struct {
	Z         int     `json:"Z"`
	Symbol    string  `json:"symbol"`
	Occupancy float64 `json:"occupancy"` //0 < occ <= 1
}

//Site is one atomic position of the derived structure, in fractional
//coordinates. A CPA alloy site carries several species whose
//occupancies sum to 1.
type Site struct {
	Coords  [3]float64 `json:"position"`
	Label   string     `json:"label"` //the specx site-type name
	Species []Species  `json:"species"`
}

//Copy returns a copy of the Site.
func (S *Site) Copy() *Site {
	if S == nil {
		panic("Attempted to copy a nil site")
	}
	News := new(Site)
	News.Coords = S.Coords
	News.Label = S.Label
	News.Species = append([]Species{}, S.Species...)
	return News
}

//Structure is the crystal structure read back from an output card:
//lattice vectors in atomic units (rows of a 3x3 matrix) plus the sites
//of the unit cell.
type Structure struct {
	lattice *mat.Dense
	Sites   []*Site
}

//Lattice returns the lattice vectors, rows being the vectors, in a.u.
func (S *Structure) Lattice() mat.Matrix {
	return S.lattice
}

//Volume returns the unit cell volume in cubic a.u.
func (S *Structure) Volume() float64 {
	d := mat.Det(S.lattice)
	if d < 0 {
		d = -d
	}
	return d
}

//DeriveStructure builds a Structure from an extracted Properties
//record. Two cases are a benign skip, returning (nil, nil) and a log
// line rather than an error: a disordered-local-moment card, whose two
//fictitious spin species on one site no atomic-structure model can
//hold, and a site type whose components collapse onto one atomic
//number with split occupancy, which is the same situation reported by
//the card itself.
func DeriveStructure(P *Properties) (*Structure, error) {
	if P.MagType == MagLMD {
		log.Printf("gokkr: magtyp= %s, skipping structure derivation", P.MagType)
		return nil, nil
	}
	types := make(map[string]*SiteType, len(P.Sites))
	for i := range P.Sites {
		S := &P.Sites[i]
		seen := make(map[int]bool, len(S.Components))
		for _, c := range S.Components {
			if seen[c.Z] && c.Conc < 100 {
				log.Printf("gokkr: site type %s holds Z=%d twice with split occupancy, skipping structure derivation", S.Name, c.Z)
				return nil, nil
			}
			seen[c.Z] = true
		}
		types[S.Name] = S
	}
	lattice := P.PrimVecDense()
	lattice.Scale(P.Lattice.A, lattice)
	ret := new(Structure)
	ret.lattice = lattice
	ret.Sites = make([]*Site, 0, len(P.Atoms))
	for _, at := range P.Atoms {
		typ, ok := types[at.Type]
		if !ok {
			return nil, fmt.Errorf("gokkr: atom position refers to unknown site type %q", at.Type)
		}
		site := &Site{Coords: at.Coords, Label: at.Type}
		for _, c := range typ.Components {
			sym, ok := elementSymbol[c.Z]
			if !ok {
				return nil, fmt.Errorf("gokkr: no element with atomic number %d", c.Z)
			}
			site.Species = append(site.Species, Species{Z: c.Z, Symbol: sym, Occupancy: c.Conc / 100})
		}
		ret.Sites = append(ret.Sites, site)
	}
	return ret, nil
}

//A map from atomic number to element symbol, up to Lr. specx site
//components are given as atomic numbers; the derived structure wants
//symbols.
var elementSymbol = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be", 5: "B", 6: "C", 7: "N", 8: "O",
	9: "F", 10: "Ne", 11: "Na", 12: "Mg", 13: "Al", 14: "Si", 15: "P",
	16: "S", 17: "Cl", 18: "Ar", 19: "K", 20: "Ca", 21: "Sc", 22: "Ti",
	23: "V", 24: "Cr", 25: "Mn", 26: "Fe", 27: "Co", 28: "Ni", 29: "Cu",
	30: "Zn", 31: "Ga", 32: "Ge", 33: "As", 34: "Se", 35: "Br", 36: "Kr",
	37: "Rb", 38: "Sr", 39: "Y", 40: "Zr", 41: "Nb", 42: "Mo", 43: "Tc",
	44: "Ru", 45: "Rh", 46: "Pd", 47: "Ag", 48: "Cd", 49: "In", 50: "Sn",
	51: "Sb", 52: "Te", 53: "I", 54: "Xe", 55: "Cs", 56: "Ba", 57: "La",
	58: "Ce", 59: "Pr", 60: "Nd", 61: "Pm", 62: "Sm", 63: "Eu", 64: "Gd",
	65: "Tb", 66: "Dy", 67: "Ho", 68: "Er", 69: "Tm", 70: "Yb", 71: "Lu",
	72: "Hf", 73: "Ta", 74: "W", 75: "Re", 76: "Os", 77: "Ir", 78: "Pt",
	79: "Au", 80: "Hg", 81: "Tl", 82: "Pb", 83: "Bi", 84: "Po", 85: "At",
	86: "Rn", 87: "Fr", 88: "Ra", 89: "Ac", 90: "Th", 91: "Pa", 92: "U",
	93: "Np", 94: "Pu", 95: "Am", 96: "Cm", 97: "Bk", 98: "Cf", 99: "Es",
	100: "Fm", 101: "Md", 102: "No", 103: "Lr",
}
