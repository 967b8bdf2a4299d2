/*
 * jij.go, part of gokkr.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

//JijTable holds the pairwise exchange couplings of a j-mode run,
//column-oriented: the i-th entry of every column describes one
//site pair/shell. Couplings are in meV, distances in units of the
//lattice constant.
type JijTable struct {
	Pair     []int     `json:"pair"`
	Type1    []string  `json:"type1"`
	Type2    []string  `json:"type2"`
	Distance []float64 `json:"distance"`
	J        []float64 `json:"Jij"`
}

//Rows returns the number of pair entries in the table.
func (T *JijTable) Rows() int {
	return len(T.Pair)
}

//Dense returns the numeric columns (pair index, distance, Jij) as an
//n x 3 matrix.
func (T *JijTable) Dense() *mat.Dense {
	ret := mat.NewDense(len(T.Pair), 3, nil)
	for i := range T.Pair {
		ret.Set(i, 0, float64(T.Pair[i]))
		ret.Set(i, 1, T.Distance[i])
		ret.Set(i, 2, T.J[i])
	}
	return ret
}

//ExtractJij parses the Jij block of a j-mode output card. The block is
//a header line followed by one row per pair; rows are read until the
//first line that is not one.
func ExtractJij(lines []string) (*JijTable, error) {
	start := findIndex(lines, "Jij (meV)")
	if start < 0 {
		return nil, newError(ParseJij, "", "Jij block not found")
	}
	T := new(JijTable)
	for _, line := range lines[start+1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if T.Rows() > 0 {
				break
			}
			continue
		}
		idx, ok := parseIndex(fields[0])
		if !ok {
			if T.Rows() > 0 {
				break
			}
			continue //the column-header line
		}
		if len(fields) != 5 {
			return nil, newError(ParseJij, "", "Jij row %q does not have 5 columns", line)
		}
		vals := lineFloats(line)
		//vals[0] is the pair index again
		if len(vals) != 3 {
			return nil, newError(ParseJij, "", "unreadable numbers in Jij row %q", line)
		}
		T.Pair = append(T.Pair, idx)
		T.Type1 = append(T.Type1, fields[1])
		T.Type2 = append(T.Type2, fields[2])
		T.Distance = append(T.Distance, vals[1])
		T.J = append(T.J, vals[2])
	}
	if T.Rows() == 0 {
		return nil, newError(ParseJij, "", "Jij block carries no pair rows")
	}
	return T, nil
}

//Markers of the two Curie-temperature estimates specx prints: the
//real-space Jij expansion of a j run and the k-space expansion of a
//tc run.
const (
	tcRealSpace = "Tc (mean field approximation) ="
	tcKSpace    = "Tc (k-space expansion) ="
)

//ExtractTc reads the Curie temperature, in K, printed after the given
//marker line.
func ExtractTc(lines []string, marker string) (float64, error) {
	line, ok := findLine(lines, marker)
	if !ok {
		return 0, newError(ParseTc, "", "marker %q not found", marker)
	}
	vals := lineFloats(line)
	if len(vals) == 0 {
		return 0, newError(ParseTc, "", "no readable temperature in %q", line)
	}
	return vals[0], nil
}
