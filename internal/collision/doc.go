// Package collision is the core engine for generating labeled elastic
// collision scenes: two rigid bodies on one axis, integrated with a fixed
// timestep through a single exact elastic impulse.
//
// The engine has three stages:
//
//   - [Sampler]: draws masses and speeds that guarantee contact
//   - [Simulator]: produces the trajectory and the analytic [CollisionEvent]
//   - [SelectFinalFrame]: picks the canonical post-collision frame
//
// The trajectory and the closed-form collision solution are independently
// computable, so the numeric integration can be cross-checked against an
// exact oracle. Every failure mode is a typed sentinel error; the engine
// never falls back to a degraded result.
//
// Instances are cheap and single-threaded. For parallel batches, give
// each run its own random source (see the task package).
package collision
