package collision

import "fmt"

// FrameBounds describe what counts as a visually well-formed sample.
// MarginA and MarginB are the rendered half-extents of each body in world
// units; a body is on-frame when its full extent lies inside
// [0, WorldWidth].
type FrameBounds struct {
	WorldWidth    float64
	MarginA       float64
	MarginB       float64
	MinSeparation float64
}

func (b FrameBounds) contains(s Sample) bool {
	inA := s.PosA >= b.MarginA && s.PosA <= b.WorldWidth-b.MarginA
	inB := s.PosB >= b.MarginB && s.PosB <= b.WorldWidth-b.MarginB
	return inA && inB
}

// FirstFrame returns the index used for the approach-phase image: the
// initial sample, before any position has changed.
func FirstFrame(traj Trajectory) int { return 0 }

// SelectFinalFrame scans forward from the collision and returns the first
// index that is strictly after the collision event, separated by at least
// MinSeparation, and fully on-frame. Taking the earliest valid sample
// avoids frames where a body has drifted off-screen. When nothing in the
// horizon qualifies it returns ErrNoFinalFrame; the caller decides whether
// to lengthen the horizon or resample.
func SelectFinalFrame(traj Trajectory, ev CollisionEvent, b FrameBounds) (int, error) {
	if ev.StepIndex < 0 || ev.StepIndex >= len(traj) {
		return 0, fmt.Errorf("%w: collision step %d outside trajectory of %d samples",
			ErrNoFinalFrame, ev.StepIndex, len(traj))
	}

	for i := ev.StepIndex + 1; i < len(traj); i++ {
		s := traj[i]
		if s.T <= ev.T {
			continue
		}
		if s.Separation() >= b.MinSeparation && b.contains(s) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %d post-collision samples, min separation %g",
		ErrNoFinalFrame, len(traj)-ev.StepIndex-1, b.MinSeparation)
}
