// Package prompt formats sampled scenes into natural-language task text.
// The values come straight from the initial conditions that produced the
// ground-truth frames, so the text and the animation can never disagree.
package prompt

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/san-kum/collidegen/internal/collision"
)

type template func(p params) string

type params struct {
	massA, massB   float64
	speedA, speedB float64
	dirA, dirB     string
	velA, velB     float64
}

var templates = []template{
	func(p params) string {
		return fmt.Sprintf("Two balls collide elastically. Ball A (mass %.1fkg) moves %s at %.1f m/s. Ball B (mass %.1fkg) moves %s at %.1f m/s. Predict the collision outcome.",
			p.massA, p.dirA, p.speedA, p.massB, p.dirB, p.speedB)
	},
	func(p params) string {
		return fmt.Sprintf("Ball A (%.1fkg, %.1f m/s %s) and Ball B (%.1fkg, %.1f m/s %s) undergo an elastic collision. Show the final velocities after impact.",
			p.massA, p.speedA, p.dirA, p.massB, p.speedB, p.dirB)
	},
	func(p params) string {
		return fmt.Sprintf("In an elastic collision, Ball A (mass=%.1fkg, velocity=%.1f m/s) collides with Ball B (mass=%.1fkg, velocity=%.1f m/s). Animate the collision and resulting motion.",
			p.massA, p.velA, p.massB, p.velB)
	},
	func(p params) string {
		return fmt.Sprintf("Predict the result of an elastic collision between two balls: Ball A (%.1fkg) traveling %s at %.1f m/s, and Ball B (%.1fkg) traveling %s at %.1f m/s.",
			p.massA, p.dirA, p.speedA, p.massB, p.dirB, p.speedB)
	},
}

// Generate picks one of the task templates using the run's own random
// source and fills it from the initial conditions.
func Generate(ic collision.InitialConditions, rng *rand.Rand) string {
	p := params{
		massA:  ic.MassA,
		massB:  ic.MassB,
		speedA: abs(ic.VelA),
		speedB: abs(ic.VelB),
		dirA:   direction(ic.VelA),
		dirB:   direction(ic.VelB),
		velA:   ic.VelA,
		velB:   ic.VelB,
	}
	return templates[rng.Intn(len(templates))](p)
}

// Fallback is a generic prompt for callers without sampled parameters.
func Fallback() string {
	return "Two balls collide elastically. Predict the collision outcome following physics rules."
}

func direction(v float64) string {
	if v >= 0 {
		return "right"
	}
	return "left"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
