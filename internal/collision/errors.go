package collision

import "errors"

// Domain errors for scene generation. Callers match with errors.Is; the
// engine never substitutes a degraded result for any of these.
var (
	// ErrInvalidConfig indicates malformed or contradictory sampling ranges.
	ErrInvalidConfig = errors.New("collision: invalid configuration")

	// ErrNoCollision indicates the bodies never made contact within the
	// simulated horizon. The sampler's constraint makes this an internal
	// invariant violation rather than an expected outcome.
	ErrNoCollision = errors.New("collision: no contact within horizon")

	// ErrNoFinalFrame indicates no post-collision sample satisfied the
	// separation and visibility conditions.
	ErrNoFinalFrame = errors.New("collision: no valid final frame in horizon")
)
