package collision

import (
	"context"
	"fmt"
)

// Params configure one simulation run. Dt is derived from the frame rate
// and substep count by the caller; ContactDistance is the sum of the two
// physical radii, which is deliberately independent of the rendered ball
// sizes so collision timing does not drift with visual styling.
type Params struct {
	Dt              float64
	Horizon         float64
	StartA          float64
	StartB          float64
	ContactDistance float64
}

func (p Params) validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, p.Dt)
	}
	if p.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %g", ErrInvalidConfig, p.Horizon)
	}
	if p.ContactDistance <= 0 {
		return fmt.Errorf("%w: contact distance must be positive, got %g", ErrInvalidConfig, p.ContactDistance)
	}
	if p.StartB-p.StartA <= p.ContactDistance {
		return fmt.Errorf("%w: bodies start in contact (gap %g <= %g)",
			ErrInvalidConfig, p.StartB-p.StartA, p.ContactDistance)
	}
	return nil
}

// Simulator advances two rigid bodies along one axis with free-flight
// integration and applies the exact elastic impulse once at contact.
// Given identical initial conditions and step size the trajectory is
// bit-for-bit reproducible.
type Simulator struct {
	params Params
}

func NewSimulator(p Params) (*Simulator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Simulator{params: p}, nil
}

// AnalyticEvent computes the collision ground truth in closed form: the
// contact time from the initial gap and closing speed, and the
// post-collision velocities from the elastic impulse formulas. The stepped
// trajectory is validated against this oracle in tests rather than
// trusted blindly.
func (s *Simulator) AnalyticEvent(ic InitialConditions) CollisionEvent {
	gap := s.params.StartB - s.params.StartA - s.params.ContactDistance
	va, vb := ic.PostVelocities()
	return CollisionEvent{
		T:         gap / ic.ClosingSpeed(),
		VelA:      va,
		VelB:      vb,
		StepIndex: -1,
	}
}

// Run integrates the two-body system over the horizon. The trajectory
// includes the t=0 state and one sample per step. If the horizon ends
// without contact, Run returns ErrNoCollision rather than a misleading
// trajectory.
func (s *Simulator) Run(ctx context.Context, ic InitialConditions) (Trajectory, CollisionEvent, error) {
	if ic.ClosingSpeed() <= 0 {
		return nil, CollisionEvent{}, fmt.Errorf("%w: closing speed %g not positive",
			ErrInvalidConfig, ic.ClosingSpeed())
	}

	p := s.params
	steps := int(p.Horizon / p.Dt)

	traj := make(Trajectory, 0, steps+1)
	posA, posB := p.StartA, p.StartB
	velA, velB := ic.VelA, ic.VelB

	traj = append(traj, Sample{T: 0, PosA: posA, PosB: posB, VelA: velA, VelB: velB})

	event := s.AnalyticEvent(ic)
	collided := false

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return nil, CollisionEvent{}, ctx.Err()
		default:
		}

		posA += velA * p.Dt
		posB += velB * p.Dt

		if !collided && posB-posA <= p.ContactDistance {
			velA, velB = event.VelA, event.VelB
			event.StepIndex = i
			collided = true
		}

		traj = append(traj, Sample{
			T:    float64(i) * p.Dt,
			PosA: posA,
			PosB: posB,
			VelA: velA,
			VelB: velB,
		})
	}

	if !collided {
		return nil, CollisionEvent{}, fmt.Errorf("%w: closing speed %g over %gs horizon",
			ErrNoCollision, ic.ClosingSpeed(), p.Horizon)
	}

	return traj, event, nil
}
