/*
 * kkr.go, part of gokkr.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//The go directive of a specx run selects the kind of calculation.
//ModeSCF ("go") and ModeFSM ("fsm") are plain self-consistent runs,
//the others add a post-processing stage to the output card or produce
//companion files.
type ModeKind int

const (
	ModeSCF ModeKind = iota
	ModeFSM
	ModeDOS
	ModeJij
	ModeTc
	ModeSpc
)

var modeNames = map[ModeKind]string{
	ModeSCF: "go",
	ModeFSM: "fsm",
	ModeDOS: "dos",
	ModeJij: "j",
	ModeTc:  "tc",
	ModeSpc: "spc",
}

//RunMode is a parsed go directive. Jij modes carry the real-space cutoff
//radius given after the "j" (say, j3.0), spc modes carry the integer
//given after "spc" (the number of energy points, say, spc31).
type RunMode struct {
	Kind   ModeKind
	Radius float64
	Points int
}

//ParseMode parses the go directive string of a specx run. The directive
//is fixed when the job is defined, so a string that matches no known
//mode is a job-definition mistake and fails here, never at extraction
//time.
func ParseMode(gostr string) (RunMode, error) {
	s := strings.TrimSpace(gostr)
	switch s {
	case "go":
		return RunMode{Kind: ModeSCF}, nil
	case "fsm":
		return RunMode{Kind: ModeFSM}, nil
	case "dos":
		return RunMode{Kind: ModeDOS}, nil
	case "tc":
		return RunMode{Kind: ModeTc}, nil
	}
	if strings.HasPrefix(s, "spc") {
		n, err := strconv.Atoi(s[3:])
		if err != nil || n <= 0 {
			return RunMode{}, fmt.Errorf("gokkr: malformed spc directive %q", gostr)
		}
		return RunMode{Kind: ModeSpc, Points: n}, nil
	}
	if strings.HasPrefix(s, "j") {
		r, err := strconv.ParseFloat(s[1:], 64)
		if err != nil || r <= 0 {
			return RunMode{}, fmt.Errorf("gokkr: malformed j directive %q", gostr)
		}
		return RunMode{Kind: ModeJij, Radius: r}, nil
	}
	return RunMode{}, fmt.Errorf("gokkr: unknown go directive %q", gostr)
}

//String returns the go directive the mode was parsed from.
func (m RunMode) String() string {
	switch m.Kind {
	case ModeJij:
		return fmt.Sprintf("j%g", m.Radius)
	case ModeSpc:
		return fmt.Sprintf("spc%d", m.Points)
	}
	return modeNames[m.Kind]
}

//Magnetic-type tags understood by specx. Only two of them change the
//extraction behavior: MagNone halves the number of expected spectral
//files, and MagLMD makes the derived structure unrepresentable (two
//species on one site), so structure derivation is skipped for it.
const (
	MagCollinear = "mag"
	MagNone      = "nmag"
	MagLMD       = "lmd"
	MagKick      = "kick"
	MagReverse   = "rvrs"
)

//Default file names of a specx job, as the runner deposits them.
const (
	DefaultInputCard  = "go.in"
	DefaultOutputCard = "go.out"
	DefaultPotential  = "pot.dat"
	DefaultKLabel     = "klabel.json"
)

//Job describes a finished specx run from the extraction side: which go
//mode it declared, its magnetic type, and the names of the files the
//runner was told to retrieve. It carries no physics parameters; those
//live in the input card, which this package only echoes back.
type Job struct {
	Mode              RunMode
	MagType           string
	RetrievePotential bool
	InputCard         string //file name of the input-card echo
	OutputCard        string //file name of the stdout transcript
	Potential         string //file name of the potential file
	KLabel            string //file name of the k-path label file
}

//NewJob builds a Job for the given go directive and magnetic type, with
//every file name at its default. It fails only on a malformed directive.
func NewJob(gostr, magtype string) (*Job, error) {
	mode, err := ParseMode(gostr)
	if err != nil {
		return nil, err
	}
	J := new(Job)
	J.Mode = mode
	J.MagType = magtype
	J.SetDefaults()
	return J, nil
}

//SetDefaults resets the file names of the job to the specx defaults.
func (J *Job) SetDefaults() {
	J.InputCard = DefaultInputCard
	J.OutputCard = DefaultOutputCard
	J.Potential = DefaultPotential
	J.KLabel = DefaultKLabel
}

//SpcGlob returns the glob pattern matching the spin-resolved spectral
//files of the job, say, pot.dat_*.spc.
func (J *Job) SpcGlob() string {
	return J.Potential + "_*.spc"
}

//spcName returns the spectral file name for one spin channel ("up","dn").
func (J *Job) spcName(channel string) string {
	return fmt.Sprintf("%s_%s.spc", J.Potential, channel)
}

//A potential file can arrive from three places: a path on the local
//disk, a file already uploaded into the working store, or a reference
//to remote storage that someone else knows how to fetch. Resolve stages
//the file into dir under the job's potential name, whatever the origin.
type PotentialSource interface {
	Resolve(dir, name string) error
}

//LocalPath is a potential file sitting on the local filesystem.
type LocalPath string

func (p LocalPath) Resolve(dir, name string) error {
	src, err := os.Open(string(p))
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

//UploadedFile is a potential already held in memory by the caller.
type UploadedFile []byte

func (p UploadedFile) Resolve(dir, name string) error {
	return os.WriteFile(filepath.Join(dir, name), p, 0644)
}

//RemoteReference names a potential in remote storage. Fetching is the
//caller's business; the reference only carries the key and the fetch
//function, so the dispatch over source kinds stays closed.
type RemoteReference struct {
	Key   string
	Fetch func(key string, w io.Writer) error
}

func (p RemoteReference) Resolve(dir, name string) error {
	if p.Fetch == nil {
		return fmt.Errorf("gokkr: remote potential %q has no fetch function", p.Key)
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()
	return p.Fetch(p.Key, dst)
}
