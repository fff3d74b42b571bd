/*
 * plot.go, part of gocryst.
 *
 * Copyright 2024 The gocryst developers
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

//Package crystplot renders cells to image files. Sites are projected
//onto the x-y cartesian plane, which after standardization contains
//the a-b face of the cell, and colored by crystallographic orbit.
package crystplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/dataset"
	v3 "github.com/gocryst/gocryst/v3"
)

func basicCellPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "x / Å"
	p.Y.Label.Text = "y / Å"
	p.Add(plotter.NewGrid())
	return p
}

//outline draws the twelve projected edges of the cell.
func outline(p *plot.Plot, lattice cryst.Lattice) error {
	corners := make([]v3.Vec, 0, 8)
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			for k := 0; k <= 1; k++ {
				frac := v3.Vec{float64(i), float64(j), float64(k)}
				corners = append(corners, lattice.CartesianCoords(frac))
			}
		}
	}
	//corner index c encodes its fractional coordinates in 3 bits,
	//edges join corners differing in exactly one bit
	for c := 0; c < 8; c++ {
		for bit := 0; bit < 3; bit++ {
			d := c | (1 << uint(2-bit))
			if d == c {
				continue
			}
			seg := plotter.XYs{
				{X: corners[c][0], Y: corners[c][1]},
				{X: corners[d][0], Y: corners[d][1]},
			}
			l, err := plotter.NewLine(seg)
			if err != nil {
				return err
			}
			l.LineStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
			p.Add(l)
		}
	}
	return nil
}

/*CellPlot draws the projection of cell onto the x-y cartesian plane
  as plotname.png. Sites sharing the same value in orbits get the same
  color; orbits may be nil, in which case the species numbers group the
  sites instead. Returns an error or nil*/
func CellPlot(cell *cryst.Cell, orbits []int, title, plotname string) error {
	if cell == nil {
		return fmt.Errorf("CellPlot: Given nil cell")
	}
	if orbits == nil {
		orbits = cell.Numbers
	}
	if len(orbits) != cell.NumAtoms() {
		return fmt.Errorf("CellPlot: Need one orbit label per site, got %d for %d sites", len(orbits), cell.NumAtoms())
	}
	p := basicCellPlot(title)
	if err := outline(p, cell.Lattice); err != nil {
		return err
	}
	classes := classIndexes(orbits)
	for key, class := range classes {
		pts := make(plotter.XYs, 0, cell.NumAtoms())
		for i, site := range orbits {
			if site != class {
				continue
			}
			cart := cell.Lattice.CartesianCoords(cell.Positions[i])
			pts = append(pts, plotter.XY{X: cart[0], Y: cart[1]})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(classes))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("orbit %d", class), s)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename)
}

/*DatasetPlot draws the standardized primitive cell of d with its
  sites colored by orbit, as plotname.png. Returns an error or nil*/
func DatasetPlot(d *dataset.Dataset, title, plotname string) error {
	if d == nil {
		return fmt.Errorf("DatasetPlot: Given nil dataset")
	}
	orbits, err := primStdOrbits(d)
	if err != nil {
		return err
	}
	return CellPlot(d.PrimStdCell, orbits, title, plotname)
}

//primStdOrbits lifts the input-cell orbits of d onto the sites of its
//standardized primitive cell.
func primStdOrbits(d *dataset.Dataset) ([]int, error) {
	orbits := make([]int, d.PrimStdCell.NumAtoms())
	for i := range orbits {
		orbits[i] = -1
	}
	for i, j := range d.MappingStdPrim {
		if j < 0 || j >= len(orbits) {
			return nil, fmt.Errorf("DatasetPlot: Site mapping out of range")
		}
		if orbits[j] == -1 {
			orbits[j] = d.MappingStdPrim[d.Orbits[i]]
		}
	}
	for _, o := range orbits {
		if o == -1 {
			return nil, fmt.Errorf("DatasetPlot: Unmapped site in the standardized primitive cell")
		}
	}
	return orbits, nil
}
