package storage

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/collidegen/internal/collision"
)

func testMeta() SampleMetadata {
	return SampleMetadata{
		ID:         SampleID(7),
		Timestamp:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Seed:       42,
		Initial:    collision.InitialConditions{MassA: 4.8, MassB: 2.3, VelA: 4.8, VelB: -3.5},
		Event:      collision.CollisionEvent{T: 1.125, VelA: -0.57, VelB: 7.72, StepIndex: 12},
		FinalFrame: 18,
		Prompt:     "Two balls collide elastically.",
	}
}

func testTrajectory() collision.Trajectory {
	return collision.Trajectory{
		{T: 0, PosA: 2, PosB: 12, VelA: 4.8, VelB: -3.5},
		{T: 0.1, PosA: 2.48, PosB: 11.65, VelA: 4.8, VelB: -3.5},
		{T: 0.2, PosA: 2.96, PosB: 11.3, VelA: 4.8, VelB: -3.5},
	}
}

func TestSampleID(t *testing.T) {
	assert.Equal(t, "sample_0000", SampleID(0))
	assert.Equal(t, "sample_0042", SampleID(42))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	meta := testMeta()
	traj := testTrajectory()
	require.NoError(t, st.SaveSample(meta, traj))

	loaded, err := st.Load(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.Initial, loaded.Initial)
	assert.Equal(t, meta.Event, loaded.Event)
	assert.Equal(t, meta.FinalFrame, loaded.FinalFrame)
	assert.Equal(t, meta.Prompt, loaded.Prompt)

	got, err := st.LoadTrajectory(meta.ID)
	require.NoError(t, err)
	require.Len(t, got, len(traj))
	for i := range traj {
		assert.InDelta(t, traj[i].PosA, got[i].PosA, 1e-6)
		assert.InDelta(t, traj[i].VelB, got[i].VelB, 1e-6)
	}

	prompt, err := os.ReadFile(filepath.Join(st.Dir(meta.ID), "prompt.txt"))
	require.NoError(t, err)
	assert.Equal(t, meta.Prompt+"\n", string(prompt))
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	for i := 0; i < 3; i++ {
		meta := testMeta()
		meta.ID = SampleID(i)
		require.NoError(t, st.SaveSample(meta, testTrajectory()))
	}

	samples, err := st.List()
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "does-not-exist"))
	samples, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestWritePNG(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	meta := testMeta()
	require.NoError(t, st.SaveSample(meta, testTrajectory()))

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, st.WritePNG(meta.ID, "first_frame.png", img))

	info, err := os.Stat(filepath.Join(st.Dir(meta.ID), "first_frame.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
