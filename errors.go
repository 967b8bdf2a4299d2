/*
 * errors.go, part of gokkr.
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

//Error is the interface for errors in this library. The Decorate method
//allows adding information to the error as it is passed up, without
//changing its type or wrapping it. Each call returns the current
//decoration slice; called with an empty string it only reads it.
type Error interface {
	Error() string
	Decorate(string) []string
}

//The closed set of failure kinds a job extraction can report. The
//workflow engine maps each kind to one process exit status, so exactly
//one of these describes any failed job. Presence kinds are detected by
//the completeness check before parsing, parse kinds during it.
const (
	MissingOutputCard = "output card absent from the result folder"
	MissingInputCard  = "input card absent from the result folder"
	MissingPotential  = "potential file absent from the result folder"
	MissingSpc        = "no spectral function file in the result folder"
	MissingKLabel     = "k-path label file absent from the result folder"
	ParseOutputCard   = "output card does not match the specx layout"
	ParseDos          = "malformed total DOS block"
	ParsePdos         = "malformed projected DOS block"
	ParseJij          = "malformed Jij block"
	ParseTc           = "no readable Curie temperature"
	Unexpected        = "unexpected failure during extraction"
)

//exitStatus maps each failure kind to the exit status the workflow
//engine reports for the job. The presence kinds form one contiguous
//block so callers that want the old single missing-files code can
//collapse them with a range test.
var exitStatus = map[string]int{
	MissingOutputCard: 300,
	MissingInputCard:  301,
	MissingPotential:  302,
	MissingSpc:        303,
	MissingKLabel:     304,
	ParseOutputCard:   310,
	ParseDos:          311,
	ParsePdos:         312,
	ParseJij:          313,
	ParseTc:           314,
	Unexpected:        390,
}

//ExitStatus returns the exit status for err: 0 for nil, the kind's
//status for a *XError, and the Unexpected status for anything else.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if xerr, ok := err.(*XError); ok {
		if s, ok := exitStatus[xerr.kind]; ok {
			return s
		}
	}
	return exitStatus[Unexpected]
}

//XError is the concrete extraction error. The kind is always one of the
//constants above; message and filename narrow down which artifact or
//marker was the problem.
type XError struct {
	kind     string
	message  string
	filename string //the retrieved file with the problem, or empty.
	deco     []string
}

func (err *XError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("gokkr: %s: %s", err.kind, err.message)
	}
	return fmt.Sprintf("gokkr: %s (%s): %s", err.kind, err.filename, err.message)
}

func (err *XError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns the failure kind of the error, one of the constants above.
func (err *XError) Kind() string { return err.kind }

//FileName returns the retrieved file the error refers to, if any.
func (err *XError) FileName() string { return err.filename }

func newError(kind, filename, format string, args ...interface{}) *XError {
	return &XError{kind: kind, filename: filename, message: fmt.Sprintf(format, args...)}
}
