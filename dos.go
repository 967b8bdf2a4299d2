/*
 * dos.go, part of gokkr.
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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//DosTable is the total density of states of a dos run: two parallel
//columns, energies (Ry, relative to the Fermi level) and DOS values
//(states/Ry/unit cell).
type DosTable struct {
	Energy []float64 `json:"energy"`
	Dos    []float64 `json:"dos"`
}

//Dense returns the table as an n x 2 matrix, one row per energy point.
func (T *DosTable) Dense() *mat.Dense {
	ret := mat.NewDense(len(T.Energy), 2, nil)
	for i := range T.Energy {
		ret.Set(i, 0, T.Energy[i])
		ret.Set(i, 1, T.Dos[i])
	}
	return ret
}

//PdosTable is the l-projected density of states of one site type: an
//energy column plus one DOS column per orbital label.
type PdosTable struct {
	Type     string      `json:"type"`
	Orbitals []string    `json:"orbitals"`
	Energy   []float64   `json:"energy"`
	Dos      [][]float64 `json:"dos"` //Dos[i] is the column for Orbitals[i]
}

//Dense returns the table as an n x (1+orbitals) matrix, the energy
//being the first column.
func (T *PdosTable) Dense() *mat.Dense {
	cols := 1 + len(T.Orbitals)
	ret := mat.NewDense(len(T.Energy), cols, nil)
	for i := range T.Energy {
		ret.Set(i, 0, T.Energy[i])
		for j := range T.Orbitals {
			ret.Set(i, j+1, T.Dos[j][i])
		}
	}
	return ret
}

//ExtractDos parses the total DOS block of a dos-mode output card.
func ExtractDos(lines []string) (*DosTable, error) {
	start := findIndex(lines, "total DOS")
	if start < 0 {
		return nil, newError(ParseDos, "", "total DOS block not found")
	}
	T := new(DosTable)
	for _, line := range lines[start+1:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		vals := lineFloats(line)
		if len(vals) != 2 {
			break
		}
		T.Energy = append(T.Energy, vals[0])
		T.Dos = append(T.Dos, vals[1])
	}
	if len(T.Energy) == 0 {
		return nil, newError(ParseDos, "", "total DOS block carries no data rows")
	}
	return T, nil
}

//ExtractPdos parses every projected-DOS block of a dos-mode output
//card, one table per site type.
func ExtractPdos(lines []string) ([]*PdosTable, error) {
	ret := make([]*PdosTable, 0, 2)
	rest := lines
	for {
		start := findIndex(rest, "projected DOS")
		if start < 0 {
			break
		}
		T, consumed, err := extractOnePdos(rest[start:])
		if err != nil {
			return nil, err
		}
		ret = append(ret, T)
		rest = rest[start+consumed:]
	}
	if len(ret) == 0 {
		return nil, newError(ParsePdos, "", "no projected DOS block found")
	}
	return ret, nil
}

//extractOnePdos parses one projected-DOS block, whose first line is the
//marker line. It returns the table and how many lines the block spans.
func extractOnePdos(block []string) (*PdosTable, int, error) {
	T := new(PdosTable)
	typ, ok := fieldAfter(block[0], "type")
	if !ok {
		return nil, 0, newError(ParsePdos, "", "projected DOS block without type= in %q", block[0])
	}
	T.Type = typ
	if len(block) < 3 {
		return nil, 0, newError(ParsePdos, "", "truncated projected DOS block for type %s", typ)
	}
	//header line: "energy" plus one label per orbital column.
	header := strings.Fields(block[1])
	if len(header) < 2 || header[0] != "energy" {
		return nil, 0, newError(ParsePdos, "", "bad projected DOS header %q", block[1])
	}
	T.Orbitals = header[1:]
	T.Dos = make([][]float64, len(T.Orbitals))
	consumed := 2
	for _, line := range block[2:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		vals := lineFloats(line)
		if len(vals) == 0 {
			break
		}
		if len(vals) != 1+len(T.Orbitals) {
			return nil, 0, newError(ParsePdos, "", "projected DOS row %q does not match %d orbital columns", line, len(T.Orbitals))
		}
		T.Energy = append(T.Energy, vals[0])
		for j := range T.Orbitals {
			T.Dos[j] = append(T.Dos[j], vals[j+1])
		}
		consumed++
	}
	if len(T.Energy) == 0 {
		return nil, 0, newError(ParsePdos, "", "projected DOS block for type %s carries no data rows", typ)
	}
	return T, consumed, nil
}

//orbitalIndex returns the column of the given orbital label, or -1.
func (T *PdosTable) orbitalIndex(label string) int {
	for i, o := range T.Orbitals {
		if o == label {
			return i
		}
	}
	return -1
}

//Orbital returns the DOS column for the given orbital label.
func (T *PdosTable) Orbital(label string) ([]float64, bool) {
	i := T.orbitalIndex(label)
	if i < 0 {
		return nil, false
	}
	return T.Dos[i], true
}

//parseIndex parses a row index, the first field of a table row.
func parseIndex(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}
