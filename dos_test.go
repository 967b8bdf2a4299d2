/*
 * dos_test.go, part of gokkr.
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

import "testing"

//TestExtractDos reads the dos-mode card and checks the table against
//the known fixture values.
func TestExtractDos(Te *testing.T) {
	lines := readCard(Te, "test/dos")
	T, err := ExtractDos(lines)
	if err != nil {
		Te.Fatal(err)
	}
	wantE := []float64{-1.0, -0.5, 0.0}
	wantD := []float64{0.1, 0.3, 0.2}
	if len(T.Energy) != len(wantE) {
		Te.Fatalf("%d energy points, want %d", len(T.Energy), len(wantE))
	}
	for i := range wantE {
		if !approx(T.Energy[i], wantE[i]) || !approx(T.Dos[i], wantD[i]) {
			Te.Errorf("row %d: (%v, %v)", i, T.Energy[i], T.Dos[i])
		}
	}
	r, c := T.Dense().Dims()
	if r != 3 || c != 2 {
		Te.Errorf("dense view is %dx%d", r, c)
	}
}

//TestExtractPdos checks the projected block: orbital labels from the
//header and one column per label.
func TestExtractPdos(Te *testing.T) {
	lines := readCard(Te, "test/dos")
	tables, err := ExtractPdos(lines)
	if err != nil {
		Te.Fatal(err)
	}
	if len(tables) != 1 {
		Te.Fatalf("%d projected blocks, want 1", len(tables))
	}
	T := tables[0]
	if T.Type != "Fe" {
		Te.Errorf("type %q", T.Type)
	}
	if len(T.Orbitals) != 3 || T.Orbitals[0] != "s" || T.Orbitals[2] != "d" {
		Te.Fatalf("orbitals %v", T.Orbitals)
	}
	d, ok := T.Orbital("d")
	if !ok || len(d) != 3 || !approx(d[1], 0.16) {
		Te.Errorf("d column: %v %v", d, ok)
	}
	if _, ok := T.Orbital("f"); ok {
		Te.Error("got an f column from an spd block")
	}
	r, c := T.Dense().Dims()
	if r != 3 || c != 4 {
		Te.Errorf("dense view is %dx%d", r, c)
	}
}

//TestDosMissing: a card without DOS blocks fails with the dos and pdos
//kinds independently.
func TestDosMissing(Te *testing.T) {
	lines := readCard(Te, "test/scf")
	if _, err := ExtractDos(lines); kindOf(Te, err) != ParseDos {
		Te.Errorf("total DOS on an SCF card: %v", err)
	}
	if _, err := ExtractPdos(lines); kindOf(Te, err) != ParsePdos {
		Te.Errorf("projected DOS on an SCF card: %v", err)
	}
}
