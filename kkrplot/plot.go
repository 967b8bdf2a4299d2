/*
 * plot.go, part of gokkr.
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

//Package kkrplot draws quick-look plots from gokkr result tables.
package kkrplot

import (
	"fmt"
	"image/color"

	kkr "github.com/rmera/gokkr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//Dos plots the total density of states against energy and saves it as
//plotname.png.
func Dos(T *kkr.DosTable, title, plotname string) error {
	if T == nil {
		panic("Given nil DOS table")
	}
	p := basicPlot(title, "E - EF (Ry)", "DOS (states/Ry)")
	pts := make(plotter.XYs, len(T.Energy))
	for i := range T.Energy {
		pts[i].X = T.Energy[i]
		pts[i].Y = T.Dos[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Jij plots the exchange couplings of the table against pair distance
//and saves the scatter as plotname.png.
func Jij(T *kkr.JijTable, title, plotname string) error {
	if T == nil {
		panic("Given nil Jij table")
	}
	p := basicPlot(title, "distance (a)", "Jij (meV)")
	pts := make(plotter.XYs, T.Rows())
	for i := 0; i < T.Rows(); i++ {
		pts[i].X = T.Distance[i]
		pts[i].Y = T.J[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
