package metrics

import (
	"math"

	"github.com/san-kum/collidegen/internal/collision"
)

// Momentum returns the total momentum at one trajectory sample.
func Momentum(ic collision.InitialConditions, s collision.Sample) float64 {
	return ic.MassA*s.VelA + ic.MassB*s.VelB
}

// KineticEnergy returns the total kinetic energy at one trajectory sample.
func KineticEnergy(ic collision.InitialConditions, s collision.Sample) float64 {
	return 0.5*ic.MassA*s.VelA*s.VelA + 0.5*ic.MassB*s.VelB*s.VelB
}

// Conservation summarizes how well a trajectory preserves the elastic
// collision invariants: maximum relative drift of momentum and kinetic
// energy against the initial values. An exact impulse keeps both at zero
// up to floating-point rounding.
type Conservation struct {
	MomentumDrift float64
	EnergyDrift   float64
}

// Measure walks the trajectory once and records the worst relative drift.
func Measure(ic collision.InitialConditions, traj collision.Trajectory) Conservation {
	p0 := ic.Momentum()
	e0 := ic.KineticEnergy()

	var c Conservation
	for _, s := range traj {
		if d := relDrift(Momentum(ic, s), p0); d > c.MomentumDrift {
			c.MomentumDrift = d
		}
		if d := relDrift(KineticEnergy(ic, s), e0); d > c.EnergyDrift {
			c.EnergyDrift = d
		}
	}
	return c
}

func relDrift(val, ref float64) float64 {
	if ref == 0 {
		return math.Abs(val)
	}
	return math.Abs(val-ref) / math.Abs(ref)
}
