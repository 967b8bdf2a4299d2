/*
 * check_test.go, part of gokkr.
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

func kindOf(Te *testing.T, err error) string {
	if err == nil {
		return ""
	}
	xerr, ok := err.(*XError)
	if !ok {
		Te.Fatalf("error type %T", err)
	}
	return xerr.Kind()
}

//TestCheckMissingPotential covers the retrieve_potential option: the
//potential file must be checked before any parsing happens.
func TestCheckMissingPotential(Te *testing.T) {
	J, err := NewJob("go", MagCollinear)
	if err != nil {
		Te.Fatal(err)
	}
	J.RetrievePotential = true
	err = CheckComplete(J, []string{"go.out", "go.in"})
	if kindOf(Te, err) != MissingPotential {
		Te.Errorf("got %v, want the missing-potential kind", err)
	}
	if ExitStatus(err) != 302 {
		Te.Errorf("exit status %d", ExitStatus(err))
	}
	//and with the file there, the same folder passes.
	if err := CheckComplete(J, []string{"go.out", "go.in", "pot.dat"}); err != nil {
		Te.Error(err)
	}
}

//TestCheckPriority verifies the fixed priority order when several
//categories are missing at once: the output card wins.
func TestCheckPriority(Te *testing.T) {
	J, err := NewJob("spc31", MagNone)
	if err != nil {
		Te.Fatal(err)
	}
	J.RetrievePotential = true
	if kindOf(Te, CheckComplete(J, nil)) != MissingOutputCard {
		Te.Error("empty folder should report the output card first")
	}
	if kindOf(Te, CheckComplete(J, []string{"go.out"})) != MissingInputCard {
		Te.Error("input card should be reported next")
	}
	if kindOf(Te, CheckComplete(J, []string{"go.out", "go.in"})) != MissingPotential {
		Te.Error("potential should be reported next")
	}
	if kindOf(Te, CheckComplete(J, []string{"go.out", "go.in", "pot.dat"})) != MissingSpc {
		Te.Error("spectral files should be reported next")
	}
	names := []string{"go.out", "go.in", "pot.dat", "pot.dat_up.spc"}
	if kindOf(Te, CheckComplete(J, names)) != MissingKLabel {
		Te.Error("k-label file should be reported last")
	}
	names = append(names, "klabel.json")
	if err := CheckComplete(J, names); err != nil {
		Te.Error(err)
	}
}

//TestCheckSpcNonMagnetic is the non-magnetic spc case: the up channel
//alone satisfies the check, no down channel required.
func TestCheckSpcNonMagnetic(Te *testing.T) {
	J, err := NewJob("spc31", MagNone)
	if err != nil {
		Te.Fatal(err)
	}
	names := []string{"go.out", "go.in", "pot.dat_up.spc", "klabel.json"}
	if err := CheckComplete(J, names); err != nil {
		Te.Error(err)
	}
}

//TestCheckMonotonic adds files one at a time and expects the verdict
//to only ever move from missing towards complete.
func TestCheckMonotonic(Te *testing.T) {
	J, err := NewJob("spc31", MagCollinear)
	if err != nil {
		Te.Fatal(err)
	}
	J.RetrievePotential = true
	all := []string{"go.out", "go.in", "pot.dat", "pot.dat_up.spc", "pot.dat_dn.spc", "klabel.json"}
	okSeen := false
	for i := range all {
		err := CheckComplete(J, all[:i+1])
		if okSeen && err != nil {
			Te.Fatalf("adding %q turned a complete folder incomplete: %v", all[i], err)
		}
		if err == nil {
			okSeen = true
		}
	}
	if !okSeen {
		Te.Error("the full folder never passed the check")
	}
}

//TestParseMode exercises the go-directive parsing, including the
//radius- and point-carrying variants.
func TestParseMode(Te *testing.T) {
	m, err := ParseMode("j3.0")
	if err != nil || m.Kind != ModeJij || !approx(m.Radius, 3.0) {
		Te.Errorf("j3.0: %+v %v", m, err)
	}
	if m.String() != "j3" {
		Te.Errorf("j3.0 round trip: %q", m.String())
	}
	m, err = ParseMode("spc31")
	if err != nil || m.Kind != ModeSpc || m.Points != 31 {
		Te.Errorf("spc31: %+v %v", m, err)
	}
	if m.String() != "spc31" {
		Te.Errorf("spc31 round trip: %q", m.String())
	}
	for _, good := range []string{"go", "fsm", "dos", "tc"} {
		if _, err := ParseMode(good); err != nil {
			Te.Errorf("%s rejected: %v", good, err)
		}
	}
	for _, bad := range []string{"", "jx", "spc", "banana", "j-1"} {
		if _, err := ParseMode(bad); err == nil {
			Te.Errorf("%q accepted", bad)
		}
	}
}
