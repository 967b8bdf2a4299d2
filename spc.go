/*
 * spc.go, part of gokkr.
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

//spc.go handles the companion files of a spc run: the spin-resolved
//A(w,k) spectral-function files, which are passed through untouched,
//and the k-path label file.

package kkr

import (
	"encoding/json"
	"io"
)

//KLabel maps one high-symmetry k-point name to its index along the
//sampled k path.
type KLabel struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

//KLabelTable is the ordered list of labeled points of the k path.
type KLabelTable []KLabel

//Position returns the path index of the named point.
func (T KLabelTable) Position(name string) (int, bool) {
	for _, l := range T {
		if l.Name == name {
			return l.Position, true
		}
	}
	return 0, false
}

//Marshal serializes the table as the JSON document the workflow engine
//stores under the "klabel" output slot.
func (T KLabelTable) Marshal() ([]byte, error) {
	return json.Marshal(T)
}

//ReadKLabels parses a k-path label file, a JSON array of
//{"name","position"} objects, from r.
func ReadKLabels(r io.Reader) (KLabelTable, error) {
	var T KLabelTable
	dec := json.NewDecoder(r)
	if err := dec.Decode(&T); err != nil {
		return nil, err
	}
	return T, nil
}

//ReadKLabelFile reads the job's k-path label file from the folder.
func ReadKLabelFile(folder ResultFolder, name string) (KLabelTable, error) {
	f, err := folder.Open(name)
	if err != nil {
		return nil, newError(MissingKLabel, name, "cannot open: %v", err)
	}
	defer f.Close()
	T, err := ReadKLabels(f)
	if err != nil {
		return nil, newError(Unexpected, name, "malformed k-label document: %v", err)
	}
	return T, nil
}

//ReadSpcFiles passes through the spin-resolved spectral files of the
//job as opaque bytes. The up channel is returned first; the down
//channel is nil for a non-magnetic run, which only produces one file.
func ReadSpcFiles(folder ResultFolder, J *Job) (up, dn []byte, err error) {
	names, err := folder.Names()
	if err != nil {
		return nil, nil, err
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	if present[J.spcName("up")] {
		up, err = ReadAll(folder, J.spcName("up"))
		if err != nil {
			return nil, nil, err
		}
	}
	if present[J.spcName("dn")] {
		dn, err = ReadAll(folder, J.spcName("dn"))
		if err != nil {
			return nil, nil, err
		}
	}
	if up == nil && dn == nil {
		return nil, nil, newError(MissingSpc, J.SpcGlob(), "no spectral file to pass through")
	}
	return up, dn, nil
}
