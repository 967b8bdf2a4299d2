/*
 * assemble.go, part of gokkr.
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

import "fmt"

//Result gathers everything one finished job yields, under the named
//output slots the workflow engine consumes. Which slots are populated
//depends on the go mode and the options; Slots returns the populated
//subset.
type Result struct {
	Properties *Properties  //slot "results", always populated
	Structure  *Structure   //slot "structure", absent for lmd runs
	Potential  []byte       //slot "potential", with retrieve_potential
	Dos        *DosTable    //slot "dos", dos mode
	Pdos       []*PdosTable //slot "pdos", dos mode
	Jij        *JijTable    //slot "Jij", j modes
	Tc         *float64     //slot "Tc", j and tc modes
	AwkUp      []byte       //slot "Awk_up", spc modes
	AwkDn      []byte       //slot "Awk_dn", spc modes, collinear only
	KLabels    KLabelTable  //slot "klabel", spc modes
}

//Slots returns the populated output slots by name.
func (R *Result) Slots() map[string]interface{} {
	ret := make(map[string]interface{}, 10)
	ret["results"] = R.Properties
	if R.Structure != nil {
		ret["structure"] = R.Structure
	}
	if R.Potential != nil {
		ret["potential"] = R.Potential
	}
	if R.Dos != nil {
		ret["dos"] = R.Dos
	}
	if R.Pdos != nil {
		ret["pdos"] = R.Pdos
	}
	if R.Jij != nil {
		ret["Jij"] = R.Jij
	}
	if R.Tc != nil {
		ret["Tc"] = *R.Tc
	}
	if R.AwkUp != nil {
		ret["Awk_up"] = R.AwkUp
	}
	if R.AwkDn != nil {
		ret["Awk_dn"] = R.AwkDn
	}
	if R.KLabels != nil {
		ret["klabel"] = R.KLabels
	}
	return ret
}

//The assembler walks these states in order; any failure is terminal
//and leaves it in stateFailed. There are no retries: a job's parse
//outcome is reported once and is final.
const (
	stateInit = iota
	stateChecked
	stateExtracted
	statePostProcessed
	stateDone
	stateFailed
)

//A postStep is one mode-selected extraction with its own failure kind.
//Steps of a mode run in order and fail fast: once one fails, later
//steps are not attempted, so a job never reports a partial row set.
type postStep struct {
	name string
	run  func(A *Assembler, lines []string, R *Result) error
}

var postSteps = map[ModeKind][]postStep{
	ModeDOS: {
		{"dos", runDos},
		{"pdos", runPdos},
	},
	ModeJij: {
		{"Jij", runJij},
		{"Tc", runTcRealSpace},
	},
	ModeTc: {
		{"Tc", runTcKSpace},
	},
	ModeSpc: {
		{"Awk", runSpcFiles},
		{"klabel", runKLabel},
	},
}

func runDos(A *Assembler, lines []string, R *Result) error {
	var err error
	R.Dos, err = ExtractDos(lines)
	return err
}

func runPdos(A *Assembler, lines []string, R *Result) error {
	var err error
	R.Pdos, err = ExtractPdos(lines)
	return err
}

func runJij(A *Assembler, lines []string, R *Result) error {
	var err error
	R.Jij, err = ExtractJij(lines)
	return err
}

func runTcRealSpace(A *Assembler, lines []string, R *Result) error {
	tc, err := ExtractTc(lines, tcRealSpace)
	if err != nil {
		return err
	}
	R.Tc = &tc
	return nil
}

func runTcKSpace(A *Assembler, lines []string, R *Result) error {
	tc, err := ExtractTc(lines, tcKSpace)
	if err != nil {
		return err
	}
	R.Tc = &tc
	return nil
}

func runSpcFiles(A *Assembler, lines []string, R *Result) error {
	var err error
	R.AwkUp, R.AwkDn, err = ReadSpcFiles(A.Folder, A.J)
	return err
}

func runKLabel(A *Assembler, lines []string, R *Result) error {
	var err error
	R.KLabels, err = ReadKLabelFile(A.Folder, A.J.KLabel)
	return err
}

//Assembler drives the extraction of one job: completeness check, output
//card extraction, structure derivation, then the post-processing steps
//of the declared mode. One Assembler serves one job; concurrent jobs
//each get their own.
type Assembler struct {
	J      *Job
	Folder ResultFolder
	state  int
}

func NewAssembler(J *Job, folder ResultFolder) *Assembler {
	A := new(Assembler)
	A.J = J
	A.Folder = folder
	A.state = stateInit
	return A
}

//Done reports whether the assembler reached its final state.
func (A *Assembler) Done() bool { return A.state == stateDone }

//Failed reports whether the assembler failed terminally.
func (A *Assembler) Failed() bool { return A.state == stateFailed }

//Assemble runs the whole extraction and returns the populated Result,
//or the single error describing why it failed. Anything panicking
//below is caught here and reported under the Unexpected kind rather
//than propagated raw.
func (A *Assembler) Assemble() (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			A.state = stateFailed
			res = nil
			err = newError(Unexpected, "", "%v", r)
		}
	}()
	names, err := A.Folder.Names()
	if err != nil {
		A.state = stateFailed
		return nil, newError(Unexpected, "", "cannot list the result folder: %v", err)
	}
	if err := CheckComplete(A.J, names); err != nil {
		A.state = stateFailed
		return nil, err
	}
	A.state = stateChecked
	lines, err := ReadLines(A.Folder, A.J.OutputCard)
	if err != nil {
		A.state = stateFailed
		return nil, newError(MissingOutputCard, A.J.OutputCard, "listed but unreadable: %v", err)
	}
	R := new(Result)
	if R.Properties, err = Extract(lines); err != nil {
		A.state = stateFailed
		return nil, err
	}
	A.state = stateExtracted
	if R.Structure, err = DeriveStructure(R.Properties); err != nil {
		A.state = stateFailed
		return nil, newError(Unexpected, "", "structure derivation: %v", err)
	}
	if A.J.RetrievePotential {
		if R.Potential, err = ReadAll(A.Folder, A.J.Potential); err != nil {
			A.state = stateFailed
			return nil, newError(MissingPotential, A.J.Potential, "listed but unreadable: %v", err)
		}
	}
	for _, step := range postSteps[A.J.Mode.Kind] {
		if err := step.run(A, lines, R); err != nil {
			A.state = stateFailed
			if _, ok := err.(*XError); !ok {
				err = newError(Unexpected, "", "step %s: %v", step.name, err)
			}
			if xerr, ok := err.(*XError); ok {
				xerr.Decorate(fmt.Sprintf("Assemble: step %s", step.name))
			}
			return nil, err
		}
	}
	A.state = statePostProcessed
	A.state = stateDone
	return R, nil
}

//Assemble extracts the results of one finished job in a single call.
func Assemble(J *Job, folder ResultFolder) (*Result, error) {
	return NewAssembler(J, folder).Assemble()
}
