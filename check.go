/*
 * check.go, part of gokkr.
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

import "path/filepath"

//CheckComplete validates that every file the job's mode and options
//require was retrieved, before any parsing runs. It returns nil when
//the folder is complete, and otherwise an *XError whose kind names the
//first missing category in the fixed priority order output card, input
//card, potential, spectral files, k-label file. Adding files to names
//can only turn a failure into nil, never the reverse.
func CheckComplete(J *Job, names []string) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	if !present[J.OutputCard] {
		return newError(MissingOutputCard, J.OutputCard, "expected among %v", names)
	}
	if !present[J.InputCard] {
		return newError(MissingInputCard, J.InputCard, "expected among %v", names)
	}
	if J.RetrievePotential && !present[J.Potential] {
		return newError(MissingPotential, J.Potential, "retrieve_potential is set")
	}
	if J.Mode.Kind == ModeSpc {
		if !anyMatch(J.SpcGlob(), names) {
			return newError(MissingSpc, J.SpcGlob(), "no spectral file matches")
		}
		if !present[J.KLabel] {
			return newError(MissingKLabel, J.KLabel, "expected among %v", names)
		}
	}
	return nil
}

//anyMatch reports whether any of the names matches the glob pattern.
func anyMatch(pattern string, names []string) bool {
	for _, n := range names {
		if ok, err := filepath.Match(pattern, n); err == nil && ok {
			return true
		}
	}
	return false
}
