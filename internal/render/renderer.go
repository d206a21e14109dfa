package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/collidegen/internal/collision"
)

var (
	bgColor      = color.RGBA{255, 255, 255, 255}
	ballAColor   = color.RGBA{220, 60, 60, 255}
	ballBColor   = color.RGBA{60, 60, 220, 255}
	outlineColor = color.RGBA{0, 0, 0, 255}
	arrowColor   = color.RGBA{60, 180, 60, 255}
	labelColor   = color.RGBA{255, 255, 255, 255}
)

const (
	outlineWidth = 2
	arrowScale   = 10.0 // pixels per m/s
	arrowHead    = 8
	minArrowLen  = 5.0
)

// Options fix the world-to-pixel mapping and visual styling for one batch.
// The rendered ball radius scales linearly with mass between 0.7x and 1.3x
// of BallRadius; it is cosmetic and never feeds back into contact timing.
type Options struct {
	Width          int
	Height         int
	PixelsPerMeter float64
	BallRadius     int
	WorldWidth     float64
	MassMin        float64
	MassMax        float64
	ShowArrows     bool
	ShowLabels     bool
}

type Renderer struct {
	opts Options
	face font.Face
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts, face: basicfont.Face7x13}
}

// Radius maps mass to the rendered radius in pixels.
func (r *Renderer) Radius(mass float64) int {
	minR := float64(r.opts.BallRadius) * 0.7
	maxR := float64(r.opts.BallRadius) * 1.3
	span := r.opts.MassMax - r.opts.MassMin
	if span == 0 {
		return int(minR)
	}
	ratio := (mass - r.opts.MassMin) / span
	return int(minR + (maxR-minR)*ratio)
}

// RadiusMeters is the rendered half-extent of a body in world units, used
// by the frame selector's visibility check.
func (r *Renderer) RadiusMeters(mass float64) float64 {
	return float64(r.Radius(mass)) / r.opts.PixelsPerMeter
}

func (r *Renderer) toPixels(meters float64) int {
	return int(meters / r.opts.WorldWidth * float64(r.opts.Width))
}

// Frame draws both bodies at one trajectory sample. Velocity arrows are
// drawn for still frames when enabled; animation frames omit them.
func (r *Renderer) Frame(ic collision.InitialConditions, s collision.Sample, arrows bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	centerY := r.opts.Height / 2
	xA := r.toPixels(s.PosA)
	xB := r.toPixels(s.PosB)
	radA := r.Radius(ic.MassA)
	radB := r.Radius(ic.MassB)

	r.drawBall(img, xA, centerY, radA, ballAColor, ic.MassA)
	r.drawBall(img, xB, centerY, radB, ballBColor, ic.MassB)

	if arrows && r.opts.ShowArrows {
		r.drawArrow(img, xA, centerY, s.VelA, radA)
		r.drawArrow(img, xB, centerY, s.VelB, radB)
	}

	return img
}

// AnimationFrames renders one frame per video frame, stepping over the
// internal substeps of the trajectory.
func (r *Renderer) AnimationFrames(ic collision.InitialConditions, traj collision.Trajectory, substeps int) []*image.RGBA {
	if substeps < 1 {
		substeps = 1
	}
	frames := make([]*image.RGBA, 0, len(traj)/substeps+1)
	for i := 0; i < len(traj); i += substeps {
		frames = append(frames, r.Frame(ic, traj[i], false))
	}
	return frames
}

func (r *Renderer) drawBall(img *image.RGBA, cx, cy, radius int, col color.RGBA, mass float64) {
	fillCircle(img, cx, cy, radius, outlineColor)
	fillCircle(img, cx, cy, radius-outlineWidth, col)

	if r.opts.ShowLabels {
		r.drawText(img, fmt.Sprintf("%.1fkg", mass), cx, cy+3, labelColor)
	}
}

func (r *Renderer) drawArrow(img *image.RGBA, x, y int, velocity float64, radius int) {
	length := velocity * arrowScale
	if length > -minArrowLen && length < minArrowLen {
		return
	}

	startX := x + radius
	if velocity < 0 {
		startX = x - radius
	}
	endX := startX + int(length)

	lo, hi := startX, endX
	if lo > hi {
		lo, hi = hi, lo
	}
	for px := lo; px <= hi; px++ {
		for py := y - 1; py <= y+1; py++ {
			setPixel(img, px, py, arrowColor)
		}
	}

	// Arrowhead pointing along the direction of motion.
	dir := 1
	if velocity < 0 {
		dir = -1
	}
	for i := 0; i <= arrowHead; i++ {
		half := (arrowHead - i) / 2
		for py := y - half; py <= y+half; py++ {
			setPixel(img, endX-dir*(arrowHead-i), py, arrowColor)
		}
	}

	if r.opts.ShowLabels {
		speed := velocity
		if speed < 0 {
			speed = -speed
		}
		r.drawText(img, fmt.Sprintf("%.1fm/s", speed), (startX+endX)/2, y-20, arrowColor)
	}
}

// drawText centers s horizontally on x with the baseline at y.
func (r *Renderer) drawText(img *image.RGBA, s string, x, y int, col color.RGBA) {
	width := font.MeasureString(r.face, s).Round()
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{col},
		Face: r.face,
		Dot:  fixed.P(x-width/2, y),
	}
	d.DrawString(s)
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	if radius <= 0 {
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(img, cx+dx, cy+dy, col)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}
