package collision

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"golang.org/x/exp/rand"
)

func testParams() Params {
	return Params{
		Dt:              0.1,
		Horizon:         3.0,
		StartA:          2.0,
		StartB:          12.0,
		ContactDistance: 1.0,
	}
}

func TestPostVelocitiesRegression(t *testing.T) {
	// Fixed fixture: 4.8 kg at +4.8 m/s against 2.3 kg at -3.5 m/s.
	ic := InitialConditions{MassA: 4.8, MassB: 2.3, VelA: 4.8, VelB: -3.5}

	va, vb := ic.PostVelocities()

	wantA := ((4.8-2.3)*4.8 + 2*2.3*(-3.5)) / (4.8 + 2.3)
	wantB := ((2.3-4.8)*(-3.5) + 2*4.8*4.8) / (4.8 + 2.3)

	if va != wantA {
		t.Errorf("velocity A' = %v, want %v", va, wantA)
	}
	if vb != wantB {
		t.Errorf("velocity B' = %v, want %v", vb, wantB)
	}
	if vb <= va {
		t.Errorf("bodies must separate after impact: vA'=%v vB'=%v", va, vb)
	}
}

func TestPostVelocitiesEqualMass(t *testing.T) {
	// Equal masses exchange velocities exactly, not approximately.
	ic := InitialConditions{MassA: 3.0, MassB: 3.0, VelA: 5.0, VelB: -2.0}

	va, vb := ic.PostVelocities()

	if va != ic.VelB {
		t.Errorf("velocity A' = %v, want exact %v", va, ic.VelB)
	}
	if vb != ic.VelA {
		t.Errorf("velocity B' = %v, want exact %v", vb, ic.VelA)
	}
}

func TestPostVelocitiesConservation(t *testing.T) {
	const tol = 1e-6

	src := rand.NewSource(7)
	sampler, err := NewSampler(Ranges{MassMin: 1, MassMax: 5, SpeedMin: 2, SpeedMax: 8}, src)
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}

	for i := 0; i < 200; i++ {
		ic := sampler.Draw()
		va, vb := ic.PostVelocities()

		p0 := ic.Momentum()
		p1 := ic.MassA*va + ic.MassB*vb
		if math.Abs(p1-p0) > tol*math.Max(1, math.Abs(p0)) {
			t.Fatalf("momentum not conserved: %v -> %v (ic %+v)", p0, p1, ic)
		}

		e0 := ic.KineticEnergy()
		e1 := 0.5*ic.MassA*va*va + 0.5*ic.MassB*vb*vb
		if math.Abs(e1-e0) > tol*e0 {
			t.Fatalf("energy not conserved: %v -> %v (ic %+v)", e0, e1, ic)
		}
	}
}

func TestSimulatorRun(t *testing.T) {
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ic := InitialConditions{MassA: 2.0, MassB: 2.0, VelA: 4.0, VelB: -4.0}
	traj, ev, err := sim.Run(context.Background(), ic)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(traj) != 31 {
		t.Errorf("expected 31 samples, got %d", len(traj))
	}
	if ev.StepIndex <= 0 {
		t.Errorf("collision step not recorded: %d", ev.StepIndex)
	}

	// Gap 9m closing at 8 m/s: analytic contact at 1.125s. The stepped
	// detection may lag by at most one step.
	if math.Abs(ev.T-1.125) > 1e-12 {
		t.Errorf("analytic contact time = %v, want 1.125", ev.T)
	}
	if diff := traj[ev.StepIndex].T - ev.T; diff < 0 || diff > 0.1 {
		t.Errorf("detected contact at t=%v, analytic %v", traj[ev.StepIndex].T, ev.T)
	}

	// Velocities before the collision step are the initial ones, after it
	// the analytic post-collision ones.
	before := traj[ev.StepIndex-1]
	if before.VelA != ic.VelA || before.VelB != ic.VelB {
		t.Errorf("pre-collision velocities mutated: %+v", before)
	}
	after := traj[len(traj)-1]
	if after.VelA != ev.VelA || after.VelB != ev.VelB {
		t.Errorf("post-collision velocities %+v, want (%v, %v)", after, ev.VelA, ev.VelB)
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ic := InitialConditions{MassA: 4.8, MassB: 2.3, VelA: 4.8, VelB: -3.5}

	traj1, ev1, err := sim.Run(context.Background(), ic)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	traj2, ev2, err := sim.Run(context.Background(), ic)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(traj1, traj2) {
		t.Error("trajectories differ between identical runs")
	}
	if ev1 != ev2 {
		t.Errorf("events differ: %+v vs %+v", ev1, ev2)
	}
}

func TestSimulatorNoCollision(t *testing.T) {
	p := testParams()
	p.Horizon = 0.5 // contact needs ~1.1s
	sim, err := NewSimulator(p)
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ic := InitialConditions{MassA: 2.0, MassB: 2.0, VelA: 4.0, VelB: -4.0}
	_, _, err = sim.Run(context.Background(), ic)
	if !errors.Is(err, ErrNoCollision) {
		t.Errorf("expected ErrNoCollision, got %v", err)
	}
}

func TestSimulatorRejectsNonClosing(t *testing.T) {
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ic := InitialConditions{MassA: 1.0, MassB: 1.0, VelA: -1.0, VelB: 1.0}
	_, _, err = sim.Run(context.Background(), ic)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for receding bodies, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ic := InitialConditions{MassA: 2.0, MassB: 2.0, VelA: 4.0, VelB: -4.0}
	if _, _, err := sim.Run(ctx, ic); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero dt", func(p *Params) { p.Dt = 0 }},
		{"negative horizon", func(p *Params) { p.Horizon = -1 }},
		{"zero contact distance", func(p *Params) { p.ContactDistance = 0 }},
		{"starts overlapping", func(p *Params) { p.StartB = p.StartA + 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.modify(&p)
			if _, err := NewSimulator(p); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCollisionGuarantee(t *testing.T) {
	// Every set of sampled initial conditions must collide within the
	// default horizon: 10m gap minus 1m contact distance at >= 4 m/s
	// closing speed meets well inside 3s.
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}

	sampler, err := NewSampler(Ranges{MassMin: 1, MassMax: 5, SpeedMin: 2, SpeedMax: 8}, rand.NewSource(99))
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}

	for i := 0; i < 100; i++ {
		ic := sampler.Draw()
		if _, _, err := sim.Run(context.Background(), ic); err != nil {
			t.Fatalf("sample %d (%+v): %v", i, ic, err)
		}
	}
}
