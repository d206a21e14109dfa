package collision

import "math"

// Body is one of the two balls in a scene. Mass is fixed for the lifetime
// of a run; position and velocity evolve along a single axis.
type Body struct {
	Label    string
	Mass     float64
	Position float64
	Velocity float64
}

// InitialConditions fully determine a run. VelA is rightward (>= 0) and
// VelB leftward (<= 0), so the closing speed VelA - VelB is positive and
// contact is guaranteed within a sufficient horizon.
type InitialConditions struct {
	MassA float64 `json:"mass_a"`
	MassB float64 `json:"mass_b"`
	VelA  float64 `json:"velocity_a"`
	VelB  float64 `json:"velocity_b"`
}

// ClosingSpeed is the rate at which the gap between the bodies shrinks
// before contact.
func (ic InitialConditions) ClosingSpeed() float64 {
	return ic.VelA - ic.VelB
}

// PostVelocities returns the exact 1-D elastic collision solution for the
// initial velocities. For equal masses this is a full velocity exchange.
func (ic InitialConditions) PostVelocities() (va, vb float64) {
	total := ic.MassA + ic.MassB
	va = ((ic.MassA-ic.MassB)*ic.VelA + 2*ic.MassB*ic.VelB) / total
	vb = ((ic.MassB-ic.MassA)*ic.VelB + 2*ic.MassA*ic.VelA) / total
	return va, vb
}

// Momentum returns the total momentum of the pre-collision system.
func (ic InitialConditions) Momentum() float64 {
	return ic.MassA*ic.VelA + ic.MassB*ic.VelB
}

// KineticEnergy returns the total kinetic energy of the pre-collision system.
func (ic InitialConditions) KineticEnergy() float64 {
	return 0.5*ic.MassA*ic.VelA*ic.VelA + 0.5*ic.MassB*ic.VelB*ic.VelB
}

// Sample is one fixed-timestep snapshot of both bodies.
type Sample struct {
	T    float64 `json:"t"`
	PosA float64 `json:"pos_a"`
	PosB float64 `json:"pos_b"`
	VelA float64 `json:"vel_a"`
	VelB float64 `json:"vel_b"`
}

// Separation is the center-to-center distance at this sample.
func (s Sample) Separation() float64 {
	return math.Abs(s.PosB - s.PosA)
}

// Trajectory is the ordered sequence of samples produced by one run,
// immutable after generation.
type Trajectory []Sample

// CollisionEvent is the closed-form ground truth for the collision: the
// exact contact time and post-collision velocities, independent of the
// integration step size. StepIndex is the trajectory index at which the
// stepped simulation detected contact.
type CollisionEvent struct {
	T         float64 `json:"t"`
	VelA      float64 `json:"velocity_a"`
	VelB      float64 `json:"velocity_b"`
	StepIndex int     `json:"step_index"`
}

// Scene is the full output of one run, handed to the rendering and prompt
// collaborators.
type Scene struct {
	Initial    InitialConditions
	Trajectory Trajectory
	Event      CollisionEvent
	FirstFrame int
	FinalFrame int
}
