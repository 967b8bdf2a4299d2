/*
 * output.go, part of gokkr.
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

//output.go parses the specx output card. Every property comes from its
//own scan of the line slice; the card format is positional enough that
//sharing a cursor between scans buys nothing and costs clarity.

package kkr

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//The core states specx may report level energies for, in the order they
//appear in the card. Every Properties record maps all of them, present
//or not.
var CoreLabels = []string{"1s", "2s", "2p", "3s", "3d", "4s", "4p", "4d", "4f"}

//LatticeData is the lattice-constant block of the output card.
type LatticeData struct {
	Bravais string  `json:"brvtyp"`
	A       float64 `json:"a"`
	COverA  float64 `json:"c/a"`
	BOverA  float64 `json:"b/a"`
	Alpha   float64 `json:"alpha"`
	Beta    float64 `json:"beta"`
	Gamma   float64 `json:"gamma"`
}

//Component is one species occupying (part of) a site type.
type Component struct {
	Z    int     `json:"anclr"`
	Conc float64 `json:"conc"`
}

//SiteType is one "type of site" record of the output card. A CPA site
//carries more than one component, with concentrations summing to 100.
type SiteType struct {
	Name       string      `json:"type"`
	Rmt        float64     `json:"rmt"`
	Field      float64     `json:"field"`
	Lmax       int         `json:"lmxtyp"`
	Components []Component `json:"components"`
}

//AtomSite is one atom position of the unit cell, in fractional
//coordinates, tagged with the site type it belongs to.
type AtomSite struct {
	Coords [3]float64 `json:"position"`
	Type   string     `json:"type"`
}

//Properties is the flat record of everything a plain specx run reports
//on its output card. Optional properties (histories, rms error, core
//levels) are nil or empty when the card omits them; everything else is
//mandatory and its absence fails the extraction.
type Properties struct {
	Converged     bool                `json:"convergence"`
	RMSError      *float64            `json:"rms_error"`
	ErrHistory    []float64           `json:"err_history,omitempty"`
	TeHistory     []float64           `json:"te_history,omitempty"`
	MomentHistory []float64           `json:"moment_history,omitempty"`
	Lattice       LatticeData         `json:"lattice_constant"`
	NType         int                 `json:"ntype"`
	Sites         []SiteType          `json:"type_of_site"`
	MagType       string              `json:"magtyp"`
	CellVolume    float64             `json:"unitcell_volume"`
	EWidth        float64             `json:"ewidth"`
	EDelt         float64             `json:"edelt"`
	Go            string              `json:"go"`
	PotentialFile string              `json:"potentialfile"`
	FermiLevel    [2]float64          `json:"fermi_level"` //up, down
	TotalEnergy   float64             `json:"total_energy"`
	TotalMoment   float64             `json:"total_moment"`
	LocalMoment   map[string]float64  `json:"local_moment"`
	TypeCharge    map[string]float64  `json:"type_charge"`
	PrimVec       [3][3]float64       `json:"prim_vec"`
	Atoms         []AtomSite          `json:"atom_coord"`
	CoreLevels    map[string]*float64 `json:"core_level"`
}

//PrimVecDense returns the primitive translation vectors as a 3x3 dense
//matrix, rows being the vectors.
func (P *Properties) PrimVecDense() *mat.Dense {
	data := make([]float64, 0, 9)
	for _, v := range P.PrimVec {
		data = append(data, v[0], v[1], v[2])
	}
	return mat.NewDense(3, 3, data)
}

//Marshal serializes the record as a nested JSON document, the form the
//workflow engine stores under the "results" output slot.
func (P *Properties) Marshal() ([]byte, error) {
	return json.Marshal(P)
}

//Send serializes the record into out.
func (P *Properties) Send(out io.Writer) error {
	enc := json.NewEncoder(out)
	return enc.Encode(P)
}

//Extract parses the output card, given as a slice of lines, into a
//Properties record. It is total: on success every field is populated
//(optional ones possibly with their absent marker); on any missing
//mandatory marker or malformed value it fails with the ParseOutputCard
//kind and no record.
func Extract(lines []string) (*Properties, error) {
	P := new(Properties)
	var err error
	if P.Converged, err = scanConvergence(lines); err != nil {
		return nil, err
	}
	if err = scanLattice(lines, &P.Lattice); err != nil {
		return nil, err
	}
	if P.Go, P.PotentialFile, err = scanGoLine(lines); err != nil {
		return nil, err
	}
	if P.MagType, err = stringAfter(lines, "magtyp"); err != nil {
		return nil, err
	}
	if P.NType, err = intAfter(lines, "ntyp"); err != nil {
		return nil, err
	}
	if P.EDelt, err = floatAfterScan(lines, "edelt"); err != nil {
		return nil, err
	}
	if P.EWidth, err = floatAfterScan(lines, "ewidth"); err != nil {
		return nil, err
	}
	if P.CellVolume, err = floatAfterScan(lines, "volume"); err != nil {
		return nil, err
	}
	if err = scanFermi(lines, &P.FermiLevel); err != nil {
		return nil, err
	}
	if P.TotalEnergy, P.TotalMoment, err = scanTotals(lines); err != nil {
		return nil, err
	}
	if P.Sites, err = scanSiteTypes(lines); err != nil {
		return nil, err
	}
	if len(P.Sites) != P.NType {
		return nil, newError(ParseOutputCard, "", "ntyp= %d but %d type-of-site records", P.NType, len(P.Sites))
	}
	if P.PrimVec, err = scanPrimVec(lines); err != nil {
		return nil, err
	}
	if P.Atoms, err = scanAtoms(lines); err != nil {
		return nil, err
	}
	P.LocalMoment = scanPerType(lines, "local moment=")
	P.TypeCharge = scanPerType(lines, "charge=")
	P.ErrHistory, P.TeHistory, P.MomentHistory = scanHistories(lines)
	P.RMSError = scanRMSError(lines)
	P.CoreLevels = scanCoreLevels(lines)
	return P, nil
}

//findLine returns the first line containing marker, or false.
func findLine(lines []string, marker string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, marker) {
			return line, true
		}
	}
	return "", false
}

//findIndex returns the index of the first line containing marker, or -1.
func findIndex(lines []string, marker string) int {
	for i, line := range lines {
		if strings.Contains(line, marker) {
			return i
		}
	}
	return -1
}

//fieldAfter returns the token following "key=" in the line, the specx
//card being written as whitespace-separated key= value pairs.
func fieldAfter(line, key string) (string, bool) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == key+"=" && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}

//floatAfter parses the value of "key=" in the line.
func floatAfter(line, key string) (float64, error) {
	s, ok := fieldAfter(line, key)
	if !ok {
		return 0, newError(ParseOutputCard, "", "no %s= in line %q", key, line)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newError(ParseOutputCard, "", "bad %s= value %q", key, s)
	}
	return v, nil
}

//The *Scan helpers below look the marker up in the whole card and then
//parse its line; each corresponds to one mandatory property.

func stringAfter(lines []string, key string) (string, error) {
	line, ok := findLine(lines, key+"= ")
	if !ok {
		return "", newError(ParseOutputCard, "", "marker %s= not found", key)
	}
	s, ok := fieldAfter(line, key)
	if !ok {
		return "", newError(ParseOutputCard, "", "marker %s= carries no value", key)
	}
	return s, nil
}

func intAfter(lines []string, key string) (int, error) {
	s, err := stringAfter(lines, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, newError(ParseOutputCard, "", "bad %s= value %q", key, s)
	}
	return v, nil
}

func floatAfterScan(lines []string, key string) (float64, error) {
	line, ok := findLine(lines, key+"=")
	if !ok {
		return 0, newError(ParseOutputCard, "", "marker %s= not found", key)
	}
	return floatAfter(line, key)
}

func scanConvergence(lines []string) (bool, error) {
	if _, ok := findLine(lines, "converged. iteration="); ok {
		return true, nil
	}
	if _, ok := findLine(lines, "no convergence"); ok {
		return false, nil
	}
	return false, newError(ParseOutputCard, "", "no convergence marker in the card")
}

func scanLattice(lines []string, L *LatticeData) error {
	line, ok := findLine(lines, "brvtyp=")
	if !ok {
		return newError(ParseOutputCard, "", "marker brvtyp= not found")
	}
	var err error
	if L.Bravais, ok = fieldAfter(line, "brvtyp"); !ok {
		return newError(ParseOutputCard, "", "brvtyp= carries no value")
	}
	if L.A, err = floatAfter(line, "a"); err != nil {
		return err
	}
	if L.COverA, err = floatAfter(line, "c/a"); err != nil {
		return err
	}
	if L.BOverA, err = floatAfter(line, "b/a"); err != nil {
		return err
	}
	angles, ok := findLine(lines, "alpha=")
	if !ok {
		return newError(ParseOutputCard, "", "marker alpha= not found")
	}
	if L.Alpha, err = floatAfter(angles, "alpha"); err != nil {
		return err
	}
	if L.Beta, err = floatAfter(angles, "beta"); err != nil {
		return err
	}
	if L.Gamma, err = floatAfter(angles, "gamma"); err != nil {
		return err
	}
	return nil
}

func scanGoLine(lines []string) (string, string, error) {
	line, ok := findLine(lines, "go= ")
	if !ok {
		return "", "", newError(ParseOutputCard, "", "marker go= not found")
	}
	gostr, ok := fieldAfter(line, "go")
	if !ok {
		return "", "", newError(ParseOutputCard, "", "go= carries no value")
	}
	potfile, ok := fieldAfter(line, "file")
	if !ok {
		return "", "", newError(ParseOutputCard, "", "no file= on the go= line")
	}
	return gostr, potfile, nil
}

func scanFermi(lines []string, ef *[2]float64) error {
	line, ok := findLine(lines, "ef=")
	if !ok {
		return newError(ParseOutputCard, "", "marker ef= not found")
	}
	vals := lineFloats(line)
	if len(vals) == 0 {
		return newError(ParseOutputCard, "", "no readable value on the ef= line")
	}
	ef[0] = vals[0]
	ef[1] = vals[0] //non-magnetic cards print a single level
	if len(vals) > 1 {
		ef[1] = vals[1]
	}
	return nil
}

func scanTotals(lines []string) (float64, float64, error) {
	line, ok := findLine(lines, "total energy=")
	if !ok {
		return 0, 0, newError(ParseOutputCard, "", "marker total energy= not found")
	}
	te, err := floatAfter(line, "energy")
	if err != nil {
		return 0, 0, err
	}
	tm, err := floatAfter(line, "moment")
	if err != nil {
		return 0, 0, err
	}
	return te, tm, nil
}

func scanSiteTypes(lines []string) ([]SiteType, error) {
	start := findIndex(lines, "type of site")
	if start < 0 {
		return nil, newError(ParseOutputCard, "", "type of site block not found")
	}
	sites := make([]SiteType, 0, 2)
	for _, line := range lines[start+1:] {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "type="):
			var S SiteType
			var ok bool
			var err error
			if S.Name, ok = fieldAfter(line, "type"); !ok {
				return nil, newError(ParseOutputCard, "", "type= carries no value in %q", line)
			}
			if S.Rmt, err = floatAfter(line, "rmt"); err != nil {
				return nil, err
			}
			if S.Field, err = floatAfter(line, "field"); err != nil {
				return nil, err
			}
			lmx, ok := fieldAfter(line, "lmxtyp")
			if !ok {
				return nil, newError(ParseOutputCard, "", "no lmxtyp= in %q", line)
			}
			if S.Lmax, err = strconv.Atoi(lmx); err != nil {
				return nil, newError(ParseOutputCard, "", "bad lmxtyp= value %q", lmx)
			}
			sites = append(sites, S)
		case strings.HasPrefix(trimmed, "component="):
			if len(sites) == 0 {
				return nil, newError(ParseOutputCard, "", "component= before any type= record")
			}
			zstr, ok := fieldAfter(line, "component")
			if !ok {
				return nil, newError(ParseOutputCard, "", "component= carries no value in %q", line)
			}
			z, err := strconv.Atoi(zstr)
			if err != nil {
				return nil, newError(ParseOutputCard, "", "bad component= value %q", zstr)
			}
			conc, err := floatAfter(line, "conc")
			if err != nil {
				return nil, err
			}
			last := len(sites) - 1
			sites[last].Components = append(sites[last].Components, Component{Z: z, Conc: conc})
		default:
			if len(sites) == 0 {
				return nil, newError(ParseOutputCard, "", "empty type of site block")
			}
			return sites, nil
		}
	}
	return sites, nil
}

func scanPrimVec(lines []string) ([3][3]float64, error) {
	var vec [3][3]float64
	start := findIndex(lines, "primitive translation vectors")
	if start < 0 || start+3 >= len(lines) {
		return vec, newError(ParseOutputCard, "", "primitive translation vectors block not found")
	}
	for i := 0; i < 3; i++ {
		vals := lineFloats(lines[start+1+i])
		if len(vals) != 3 {
			return vec, newError(ParseOutputCard, "", "bad primitive vector line %q", lines[start+1+i])
		}
		copy(vec[i][:], vals)
	}
	return vec, nil
}

func scanAtoms(lines []string) ([]AtomSite, error) {
	start := findIndex(lines, "atoms in the unit cell")
	if start < 0 {
		return nil, newError(ParseOutputCard, "", "atoms in the unit cell block not found")
	}
	atoms := make([]AtomSite, 0, 4)
	for _, line := range lines[start+1:] {
		if !strings.HasPrefix(strings.TrimSpace(line), "position=") {
			break
		}
		var A AtomSite
		vals := lineFloats(line)
		if len(vals) != 3 {
			return nil, newError(ParseOutputCard, "", "bad position line %q", line)
		}
		copy(A.Coords[:], vals)
		typ, ok := fieldAfter(line, "type")
		if !ok {
			return nil, newError(ParseOutputCard, "", "no type= on position line %q", line)
		}
		A.Type = typ
		atoms = append(atoms, A)
	}
	if len(atoms) == 0 {
		return nil, newError(ParseOutputCard, "", "empty atoms block")
	}
	return atoms, nil
}

//scanPerType collects "marker val ( Type )" lines into a per-type map.
//These lines are optional as a group (an unconverged card may lack
//them), so an empty map is not a failure.
func scanPerType(lines []string, marker string) map[string]float64 {
	ret := make(map[string]float64)
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			continue
		}
		fields := strings.Fields(line)
		var val float64
		var name string
		var got bool
		for i, f := range fields {
			if strings.HasSuffix(f, "=") && i+1 < len(fields) {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err == nil {
					val = v
					got = true
				}
			}
			if f == "(" && i+1 < len(fields) {
				name = fields[i+1]
			}
		}
		if got && name != "" {
			ret[name] = val
		}
	}
	return ret
}

//scanHistories collects the per-iteration err, te and moment values
//from the itr= lines. A card without them (history suppressed, or a
//run that stopped before the first iteration) yields empty slices.
func scanHistories(lines []string) (errh, teh, momh []float64) {
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "itr=" {
			continue
		}
		te, err1 := floatAfter(line, "te")
		mom, err2 := floatAfter(line, "moment")
		ferr, err3 := floatAfter(line, "err")
		if err1 != nil || err2 != nil || err3 != nil {
			continue //a truncated iteration line is not history
		}
		teh = append(teh, te)
		momh = append(momh, mom)
		errh = append(errh, ferr)
	}
	return errh, teh, momh
}

func scanRMSError(lines []string) *float64 {
	line, ok := findLine(lines, "rms error=")
	if !ok {
		return nil
	}
	v, err := floatAfter(line, "error")
	if err != nil {
		return nil
	}
	return &v
}

//scanCoreLevels maps every label in CoreLabels to its energy, or to nil
//when the card does not report that state. Labels are never dropped: a
//consumer can tell "not in this output" from "not asked for".
func scanCoreLevels(lines []string) map[string]*float64 {
	ret := make(map[string]*float64, len(CoreLabels))
	for _, label := range CoreLabels {
		ret[label] = nil
	}
	start := findIndex(lines, "core level energies")
	if start < 0 {
		return ret
	}
	for _, line := range lines[start+1:] {
		if strings.TrimSpace(line) == "" || !strings.Contains(line, "=") {
			break
		}
		for _, label := range CoreLabels {
			if ret[label] != nil {
				continue
			}
			if v, err := floatAfter(line, label); err == nil {
				val := v
				ret[label] = &val
			}
		}
	}
	return ret
}

//lineFloats returns every token of the line parseable as a float,
//ignoring punctuation stuck to the numbers, as in "a=( 0.0 0.5 0.5)".
func lineFloats(line string) []float64 {
	clean := strings.NewReplacer("(", " ", ")", " ", ",", " ").Replace(line)
	fields := strings.Fields(clean)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		if strings.HasSuffix(f, "=") {
			continue
		}
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			vals = append(vals, v)
		}
	}
	return vals
}
