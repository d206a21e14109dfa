package collision

import (
	"context"
	"errors"
	"testing"
)

func testBounds() FrameBounds {
	return FrameBounds{
		WorldWidth:    14.0,
		MarginA:       0.6,
		MarginB:       0.6,
		MinSeparation: 2.0,
	}
}

func runScene(t *testing.T, ic InitialConditions) (Trajectory, CollisionEvent) {
	t.Helper()
	sim, err := NewSimulator(testParams())
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	traj, ev, err := sim.Run(context.Background(), ic)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return traj, ev
}

func TestFirstFrame(t *testing.T) {
	traj, _ := runScene(t, InitialConditions{MassA: 2, MassB: 2, VelA: 4, VelB: -4})
	if idx := FirstFrame(traj); idx != 0 {
		t.Errorf("first frame = %d, want 0", idx)
	}
}

func TestSelectFinalFrame(t *testing.T) {
	b := testBounds()
	traj, ev := runScene(t, InitialConditions{MassA: 2, MassB: 2, VelA: 4, VelB: -4})

	idx, err := SelectFinalFrame(traj, ev, b)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	if idx <= ev.StepIndex {
		t.Errorf("frame %d not after collision step %d", idx, ev.StepIndex)
	}
	s := traj[idx]
	if s.T <= ev.T {
		t.Errorf("frame time %v not after analytic contact %v", s.T, ev.T)
	}
	if s.Separation() < b.MinSeparation {
		t.Errorf("separation %v below %v", s.Separation(), b.MinSeparation)
	}
	if !b.contains(s) {
		t.Errorf("bodies off-frame at %+v", s)
	}

	// First-match policy: no earlier post-collision sample also qualifies.
	for i := ev.StepIndex + 1; i < idx; i++ {
		e := traj[i]
		if e.T > ev.T && e.Separation() >= b.MinSeparation && b.contains(e) {
			t.Errorf("sample %d qualifies before selected %d", i, idx)
		}
	}
}

func TestSelectFinalFrameDeterminism(t *testing.T) {
	b := testBounds()
	ic := InitialConditions{MassA: 4.8, MassB: 2.3, VelA: 4.8, VelB: -3.5}

	traj1, ev1 := runScene(t, ic)
	traj2, ev2 := runScene(t, ic)

	idx1, err := SelectFinalFrame(traj1, ev1, b)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	idx2, err := SelectFinalFrame(traj2, ev2, b)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if idx1 != idx2 {
		t.Errorf("canonical frame differs between identical runs: %d vs %d", idx1, idx2)
	}
}

func TestSelectFinalFrameNoneValid(t *testing.T) {
	traj, ev := runScene(t, InitialConditions{MassA: 2, MassB: 2, VelA: 4, VelB: -4})

	// A separation threshold wider than the world can never be met.
	b := testBounds()
	b.MinSeparation = 100.0

	if _, err := SelectFinalFrame(traj, ev, b); !errors.Is(err, ErrNoFinalFrame) {
		t.Errorf("expected ErrNoFinalFrame, got %v", err)
	}
}

func TestSelectFinalFrameBadEvent(t *testing.T) {
	traj, _ := runScene(t, InitialConditions{MassA: 2, MassB: 2, VelA: 4, VelB: -4})

	ev := CollisionEvent{StepIndex: -1}
	if _, err := SelectFinalFrame(traj, ev, testBounds()); !errors.Is(err, ErrNoFinalFrame) {
		t.Errorf("expected ErrNoFinalFrame for missing collision step, got %v", err)
	}
}
