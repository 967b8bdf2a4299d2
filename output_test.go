/*
 * output_test.go, part of gokkr.
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
	"math"
	"reflect"
	"strings"
	"testing"
)

func readCard(Te *testing.T, dir string) []string {
	lines, err := ReadLines(DirFolder(dir), "go.out")
	if err != nil {
		Te.Fatal(err)
	}
	return lines
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

//TestExtract parses the bcc Fe SCF card and checks every mandatory
//property plus the optional histories.
func TestExtract(Te *testing.T) {
	lines := readCard(Te, "test/scf")
	P, err := Extract(lines)
	if err != nil {
		Te.Fatal(err)
	}
	if !P.Converged {
		Te.Error("card reports convergence, record does not")
	}
	if P.Go != "go" || P.PotentialFile != "pot.dat" {
		Te.Errorf("bad go line readback: %q %q", P.Go, P.PotentialFile)
	}
	if P.MagType != MagCollinear {
		Te.Errorf("magtyp %q", P.MagType)
	}
	if P.Lattice.Bravais != "bcc" || !approx(P.Lattice.A, 5.27) || !approx(P.Lattice.Alpha, 90) {
		Te.Errorf("bad lattice block: %+v", P.Lattice)
	}
	if !approx(P.TotalEnergy, -2541.14648) || !approx(P.TotalMoment, 2.21921) {
		Te.Errorf("totals: %v %v", P.TotalEnergy, P.TotalMoment)
	}
	if !approx(P.FermiLevel[0], 0.65290) || !approx(P.FermiLevel[1], 0.65290) {
		Te.Errorf("fermi level: %v", P.FermiLevel)
	}
	if !approx(P.EDelt, 1e-3) || !approx(P.EWidth, 1.2) || !approx(P.CellVolume, 0.73178e+02) {
		Te.Errorf("edelt/ewidth/volume: %v %v %v", P.EDelt, P.EWidth, P.CellVolume)
	}
	if P.NType != 1 || len(P.Sites) != 1 {
		Te.Fatalf("ntyp %d, %d site records", P.NType, len(P.Sites))
	}
	site := P.Sites[0]
	if site.Name != "Fe" || !approx(site.Rmt, 2.28153) || site.Lmax != 2 {
		Te.Errorf("site record: %+v", site)
	}
	if len(site.Components) != 1 || site.Components[0].Z != 26 || !approx(site.Components[0].Conc, 100) {
		Te.Errorf("site components: %+v", site.Components)
	}
	if !approx(P.PrimVec[0][0], -0.5) || !approx(P.PrimVec[2][2], -0.5) || !approx(P.PrimVec[0][1], 0.5) {
		Te.Errorf("primitive vectors: %v", P.PrimVec)
	}
	if len(P.Atoms) != 1 || P.Atoms[0].Type != "Fe" {
		Te.Errorf("atoms block: %+v", P.Atoms)
	}
	if len(P.ErrHistory) != 4 || len(P.TeHistory) != 4 || len(P.MomentHistory) != 4 {
		Te.Fatalf("history lengths: %d %d %d", len(P.ErrHistory), len(P.TeHistory), len(P.MomentHistory))
	}
	if !approx(P.TeHistory[0], -2540.96884) || !approx(P.MomentHistory[3], 2.21921) || !approx(P.ErrHistory[3], 0.93825e-06) {
		Te.Errorf("history values: %v %v %v", P.TeHistory, P.MomentHistory, P.ErrHistory)
	}
	if P.RMSError == nil || !approx(*P.RMSError, 0.93825e-06) {
		Te.Errorf("rms error: %v", P.RMSError)
	}
	if !approx(P.LocalMoment["Fe"], 2.21921) || !approx(P.TypeCharge["Fe"], 26) {
		Te.Errorf("per-type maps: %v %v", P.LocalMoment, P.TypeCharge)
	}
}

//TestExtractCoreLevels checks that every one of the nine core labels is
//mapped, present or not, and none is silently dropped.
func TestExtractCoreLevels(Te *testing.T) {
	P, err := Extract(readCard(Te, "test/scf"))
	if err != nil {
		Te.Fatal(err)
	}
	if len(P.CoreLevels) != len(CoreLabels) {
		Te.Fatalf("%d core labels mapped, want %d", len(P.CoreLevels), len(CoreLabels))
	}
	want := map[string]float64{"1s": -514.01724, "2s": -59.83483, "2p": -51.27842, "3s": -6.34982}
	for _, label := range CoreLabels {
		v, ok := P.CoreLevels[label]
		if !ok {
			Te.Errorf("label %s dropped from the record", label)
			continue
		}
		if w, present := want[label]; present {
			if v == nil || !approx(*v, w) {
				Te.Errorf("label %s: got %v want %v", label, v, w)
			}
		} else if v != nil {
			Te.Errorf("label %s absent from the card but mapped to %v", label, *v)
		}
	}
}

//TestExtractIdempotent re-runs the extraction on the same lines and
//expects identical records.
func TestExtractIdempotent(Te *testing.T) {
	lines := readCard(Te, "test/scf")
	P1, err := Extract(lines)
	if err != nil {
		Te.Fatal(err)
	}
	P2, err := Extract(lines)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(P1, P2) {
		Te.Error("two extractions of the same card differ")
	}
}

//TestExtractMissingMarker removes the convergence marker and expects
//the whole extraction to fail with the output-card parse kind, with no
//record emitted.
func TestExtractMissingMarker(Te *testing.T) {
	lines := readCard(Te, "test/scf")
	pruned := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(l, "converged.") {
			continue
		}
		pruned = append(pruned, l)
	}
	P, err := Extract(pruned)
	if P != nil {
		Te.Error("got a record from a card without the convergence marker")
	}
	xerr, ok := err.(*XError)
	if !ok {
		Te.Fatalf("error type %T", err)
	}
	if xerr.Kind() != ParseOutputCard {
		Te.Errorf("kind %q, want %q", xerr.Kind(), ParseOutputCard)
	}
	if ExitStatus(err) != 310 {
		Te.Errorf("exit status %d", ExitStatus(err))
	}
}

//TestExtractUnconverged checks the other branch of the convergence
//marker.
func TestExtractUnconverged(Te *testing.T) {
	lines := readCard(Te, "test/scf")
	edited := make([]string, len(lines))
	for i, l := range lines {
		if strings.Contains(l, "converged.") {
			l = " *** no convergence"
		}
		edited[i] = l
	}
	P, err := Extract(edited)
	if err != nil {
		Te.Fatal(err)
	}
	if P.Converged {
		Te.Error("unconverged card reported as converged")
	}
}
