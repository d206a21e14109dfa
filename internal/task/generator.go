package task

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/exp/rand"

	"github.com/san-kum/collidegen/internal/collision"
	"github.com/san-kum/collidegen/internal/config"
	"github.com/san-kum/collidegen/internal/metrics"
	"github.com/san-kum/collidegen/internal/prompt"
	"github.com/san-kum/collidegen/internal/render"
	"github.com/san-kum/collidegen/internal/storage"
	"github.com/san-kum/collidegen/internal/video"
)

// Generator runs the full per-sample pipeline: sample parameters,
// integrate, select frames, render, encode, write. It is safe for
// concurrent use because every run draws from its own random source.
type Generator struct {
	cfg      *config.Config
	renderer *render.Renderer
	store    *storage.Store
}

func NewGenerator(cfg *config.Config, store *storage.Store) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	renderer := render.New(render.Options{
		Width:          cfg.Image.Width,
		Height:         cfg.Image.Height,
		PixelsPerMeter: cfg.Image.PixelsPerMeter,
		BallRadius:     cfg.Image.BallRadius,
		WorldWidth:     cfg.WorldWidth,
		MassMin:        cfg.MassMin,
		MassMax:        cfg.MassMax,
		ShowArrows:     cfg.Image.ShowArrows,
		ShowLabels:     cfg.Image.ShowLabels,
	})
	return &Generator{cfg: cfg, renderer: renderer, store: store}, nil
}

// Scene generates one scene from a dedicated random source. This is the
// pure-compute path shared by sample writing, the preview commands and
// the live view.
func (g *Generator) Scene(ctx context.Context, seed int64) (*collision.Scene, string, error) {
	src := rand.NewSource(uint64(seed))
	rng := rand.New(src)

	sampler, err := collision.NewSampler(g.cfg.Ranges(), src)
	if err != nil {
		return nil, "", err
	}
	sim, err := collision.NewSimulator(g.cfg.SimParams())
	if err != nil {
		return nil, "", err
	}

	ic := sampler.Draw()
	traj, ev, err := sim.Run(ctx, ic)
	if err != nil {
		return nil, "", err
	}

	bounds := collision.FrameBounds{
		WorldWidth:    g.cfg.WorldWidth,
		MarginA:       g.renderer.RadiusMeters(ic.MassA),
		MarginB:       g.renderer.RadiusMeters(ic.MassB),
		MinSeparation: g.cfg.MinSeparation,
	}
	final, err := collision.SelectFinalFrame(traj, ev, bounds)
	if err != nil {
		return nil, "", err
	}

	scene := &collision.Scene{
		Initial:    ic,
		Trajectory: traj,
		Event:      ev,
		FirstFrame: collision.FirstFrame(traj),
		FinalFrame: final,
	}
	return scene, prompt.Generate(ic, rng), nil
}

// WriteSample generates one scene and writes its artifacts: metadata,
// trajectory, prompt, first and final frame images, and the ground-truth
// animation when enabled.
func (g *Generator) WriteSample(ctx context.Context, index int, seed int64) (*storage.SampleMetadata, error) {
	scene, promptText, err := g.Scene(ctx, seed)
	if err != nil {
		return nil, err
	}

	cons := metrics.Measure(scene.Initial, scene.Trajectory)
	meta := storage.SampleMetadata{
		ID:            storage.SampleID(index),
		Timestamp:     time.Now().UTC(),
		Seed:          seed,
		Initial:       scene.Initial,
		Event:         scene.Event,
		FirstFrame:    scene.FirstFrame,
		FinalFrame:    scene.FinalFrame,
		MomentumDrift: cons.MomentumDrift,
		EnergyDrift:   cons.EnergyDrift,
		Prompt:        promptText,
	}

	if err := g.store.SaveSample(meta, scene.Trajectory); err != nil {
		return nil, err
	}

	first := g.renderer.Frame(scene.Initial, scene.Trajectory[scene.FirstFrame], true)
	if err := g.store.WritePNG(meta.ID, "first_frame.png", first); err != nil {
		return nil, err
	}
	final := g.renderer.Frame(scene.Initial, scene.Trajectory[scene.FinalFrame], true)
	if err := g.store.WritePNG(meta.ID, "final_frame.png", final); err != nil {
		return nil, err
	}

	if g.cfg.Video.Enabled {
		frames := g.renderer.AnimationFrames(scene.Initial, scene.Trajectory, g.cfg.Substeps)
		gifPath := filepath.Join(g.store.Dir(meta.ID), "ground_truth.gif")
		if err := video.EncodeGIF(gifPath, frames, g.cfg.FPS); err != nil {
			return nil, err
		}
	}

	return &meta, nil
}

// Renderer exposes the configured renderer for preview commands.
func (g *Generator) Renderer() *render.Renderer { return g.renderer }
