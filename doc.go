/*
 * doc.go, part of gokkr.
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
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package kkr extracts structured results from the files produced by a run
of the AkaiKKR ("specx") KKR-CPA program.

The package takes a folder of files retrieved from a finished specx job, a
stdout transcript (the "output card") plus a few companion files, and turns
it into typed records: total energy, moments, SCF convergence histories,
lattice and site data, core-level energies, and the mode-dependent extras
(density of states, Jij exchange couplings, Curie temperature, spectral
function files and k-path labels).


	**gokkr capabilities**

    Checks that a result folder contains every file the declared go mode
	and options require, before any parsing is attempted.

    Parses the specx output card into a Properties record. Every listed
	property is filled; properties the run legitimately omits (histories,
	core levels) carry explicit absent markers.

    Derives a crystal Structure (lattice vectors, fractional coordinates,
	species) from the parsed output, skipping the disordered-local-moment
	case where site occupancy cannot be represented.

    Extracts total and projected DOS tables, the Jij exchange table and
	the Curie temperature, and passes spectral-function files and k-path
	labels through, according to the go mode.

    Reads output cards transparently whether stored plain, gzipped or
	zstd-compressed.

    Assembles everything into a single Result with named output slots and
	a closed set of failure kinds, each mapped to a distinct exit status
	for the calling workflow engine.

The input-deck side of a specx job (building parameter cards, submitting
the binary, fetching files from the compute host) is the job runner's
business, not this package's; gokkr only consumes what the runner
retrieved.
*/
package kkr
