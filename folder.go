/*
 * folder.go, part of gokkr.
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
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//ResultFolder is the view this package takes of the files a job runner
//retrieved for one finished specx run. It is read-only; transient I/O
//problems and re-fetching are the runner's business.
type ResultFolder interface {

	//Names lists the file names present in the folder.
	Names() ([]string, error)

	//Open returns a reader for the named file. The caller closes it.
	Open(name string) (io.ReadCloser, error)
}

//ReadAll returns the full content of the named file.
func ReadAll(folder ResultFolder, name string) ([]byte, error) {
	f, err := folder.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

//ReadLines returns the named file as a slice of lines, without
//terminators. This is the form every output-card scan works on.
func ReadLines(folder ResultFolder, name string) ([]string, error) {
	f, err := folder.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines := make([]string, 0, 200)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

//DirFolder is a ResultFolder over a local directory. Files stored
//compressed (name.gz, name.zst) are listed and read under their plain
//name, so a runner that compresses large output cards before shipping
//them needs no special handling here.
type DirFolder string

//compressed extensions handled transparently, in lookup order.
var codecExts = []string{".zst", ".gz"}

func (D DirFolder) Names() ([]string, error) {
	entries, err := os.ReadDir(string(D))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		for _, ext := range codecExts {
			name = strings.TrimSuffix(name, ext)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (D DirFolder) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(D), name))
	if err == nil {
		return decodeByExt(f, name)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	for _, ext := range codecExts {
		f, err2 := os.Open(filepath.Join(string(D), name+ext))
		if err2 == nil {
			return decodeByExt(f, name+ext)
		}
	}
	return nil, err //the original not-exist error, with the plain name.
}

//decodeByExt wraps f in the decompressor its extension asks for.
func decodeByExt(f *os.File, name string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &zstdReadCloser{dec, f}, nil
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &gzipReadCloser{gz, f}, nil
	}
	return f, nil
}

//Also, why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdReadCloser struct {
	*zstd.Decoder
	under *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.under.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	under *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.under.Close(); err == nil {
		err = err2
	}
	return err
}

//MapFolder is an in-memory ResultFolder, mostly for tests and for
//callers that already hold the retrieved files as bytes.
type MapFolder map[string][]byte

func (M MapFolder) Names() ([]string, error) {
	names := make([]string, 0, len(M))
	for name := range M {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (M MapFolder) Open(name string) (io.ReadCloser, error) {
	content, ok := M[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(string(content))), nil
}
