package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/collidegen/internal/collision"
)

func TestMeasureConservation(t *testing.T) {
	sim, err := collision.NewSimulator(collision.Params{
		Dt:              0.025,
		Horizon:         3.0,
		StartA:          2.0,
		StartB:          12.0,
		ContactDistance: 1.0,
	})
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ic := collision.InitialConditions{MassA: 4.8, MassB: 2.3, VelA: 4.8, VelB: -3.5}
	traj, _, err := sim.Run(context.Background(), ic)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	c := Measure(ic, traj)
	if c.MomentumDrift > 1e-6 {
		t.Errorf("momentum drift %v exceeds 1e-6", c.MomentumDrift)
	}
	if c.EnergyDrift > 1e-6 {
		t.Errorf("energy drift %v exceeds 1e-6", c.EnergyDrift)
	}
}

func TestMeasureDetectsViolation(t *testing.T) {
	ic := collision.InitialConditions{MassA: 1, MassB: 1, VelA: 2, VelB: -2}

	// A fabricated trajectory that dissipates energy should register.
	traj := collision.Trajectory{
		{T: 0, VelA: 2, VelB: -2},
		{T: 0.1, VelA: 1, VelB: -1},
	}

	c := Measure(ic, traj)
	if c.EnergyDrift == 0 {
		t.Error("expected non-zero energy drift for dissipative trajectory")
	}
	if c.MomentumDrift != 0 {
		t.Errorf("momentum unchanged, drift should be zero, got %v", c.MomentumDrift)
	}
}
