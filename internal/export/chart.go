// Package export renders stored trajectories as standalone chart images.
package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/collidegen/internal/collision"
)

// TrajectoryChart writes a position-vs-time chart for both bodies, with a
// dashed marker at the analytic collision time.
func TrajectoryChart(traj collision.Trajectory, ev collision.CollisionEvent, path string) error {
	if len(traj) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = "elastic collision trajectory"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "position (m)"

	ptsA := make(plotter.XYs, len(traj))
	ptsB := make(plotter.XYs, len(traj))
	for i, s := range traj {
		ptsA[i] = plotter.XY{X: s.T, Y: s.PosA}
		ptsB[i] = plotter.XY{X: s.T, Y: s.PosB}
	}

	lineA, err := plotter.NewLine(ptsA)
	if err != nil {
		return fmt.Errorf("export: line A: %w", err)
	}
	lineA.Color = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	lineA.Width = vg.Points(1.5)

	lineB, err := plotter.NewLine(ptsB)
	if err != nil {
		return fmt.Errorf("export: line B: %w", err)
	}
	lineB.Color = color.RGBA{R: 60, G: 60, B: 220, A: 255}
	lineB.Width = vg.Points(1.5)

	minY, maxY := traj[0].PosA, traj[0].PosB
	for _, s := range traj {
		if s.PosA < minY {
			minY = s.PosA
		}
		if s.PosB > maxY {
			maxY = s.PosB
		}
	}
	marker, err := plotter.NewLine(plotter.XYs{{X: ev.T, Y: minY}, {X: ev.T, Y: maxY}})
	if err != nil {
		return fmt.Errorf("export: collision marker: %w", err)
	}
	marker.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(lineA, lineB, marker)
	p.Legend.Add("ball A", lineA)
	p.Legend.Add("ball B", lineB)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
