package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/collidegen/internal/collision"
	"github.com/san-kum/collidegen/internal/config"
	"github.com/san-kum/collidegen/internal/export"
	"github.com/san-kum/collidegen/internal/storage"
	"github.com/san-kum/collidegen/internal/task"
	"github.com/san-kum/collidegen/internal/viz"
)

var (
	outputDir  string
	samples    int
	seed       int64
	workers    int
	configFile string
	preset     string
	noVideo    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "collidegen",
		Short: "elastic collision task generator",
	}

	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "out", "output directory")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a batch of collision samples",
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVar(&samples, "samples", 10, "number of samples")
	generateCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "base random seed")
	generateCmd.Flags().IntVar(&workers, "workers", 4, "parallel workers")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	generateCmd.Flags().BoolVar(&noVideo, "no-video", false, "skip ground-truth animations")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "generate one scene and print it",
		RunE:  runSample,
	}
	sampleCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	sampleCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sampleCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list generated samples",
		RunE:  listSamples,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [sample_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSample,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [sample_id]",
		Short: "render a trajectory chart image",
		Args:  cobra.ExactArgs(1),
		RunE:  chartSample,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "watch one sampled collision live in the terminal",
		RunE:  runWatch,
	}
	watchCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	watchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	watchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, sampleCmd, listCmd, plotCmd, chartCmd, watchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: preset, then config
// file, then explicit CLI flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("no-video") && noVideo {
		cfg.Video.Enabled = false
	}
	cfg.OutputDir = outputDir

	return cfg, cfg.Validate()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.OutputDir)
	if err := st.Init(); err != nil {
		return err
	}

	gen, err := task.NewGenerator(cfg, st)
	if err != nil {
		return err
	}

	fmt.Printf("generating %d samples (seed %d, %d workers)...\n", cfg.Samples, cfg.Seed, cfg.Workers)
	start := time.Now()

	results, err := task.NewBatch(gen, cfg.Samples, cfg.Seed, cfg.Workers).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMASS A\tMASS B\tV A\tV B\tV A'\tV B'\tFRAME\tDRIFT")

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\tfailed: %v\n", storage.SampleID(res.Index), res.Err)
			continue
		}
		m := res.Meta
		fmt.Fprintf(w, "%s\t%.2fkg\t%.2fkg\t%+.2f\t%+.2f\t%+.2f\t%+.2f\t%d\t%.1e\n",
			m.ID, m.Initial.MassA, m.Initial.MassB,
			m.Initial.VelA, m.Initial.VelB,
			m.Event.VelA, m.Event.VelB,
			m.FinalFrame, m.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d samples failed\n", failed, len(results))
	}
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen, err := task.NewGenerator(cfg, storage.New(cfg.OutputDir))
	if err != nil {
		return err
	}

	scene, promptText, err := gen.Scene(context.Background(), cfg.Seed)
	if err != nil {
		if errors.Is(err, collision.ErrNoFinalFrame) {
			return fmt.Errorf("%w (lengthen the horizon or resample)", err)
		}
		return err
	}

	ic := scene.Initial
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("ball A: %.2fkg at %+.2f m/s\n", ic.MassA, ic.VelA)
	fmt.Printf("ball B: %.2fkg at %+.2f m/s\n", ic.MassB, ic.VelB)
	fmt.Printf("contact: t=%.3fs (step %d)\n", scene.Event.T, scene.Event.StepIndex)
	fmt.Printf("post velocities: %+.3f / %+.3f m/s\n", scene.Event.VelA, scene.Event.VelB)
	fmt.Printf("canonical frame: %d of %d\n\n", scene.FinalFrame, len(scene.Trajectory))
	fmt.Printf("prompt: %s\n\n", promptText)

	plotTrajectory(scene.Trajectory)
	return nil
}

func plotTrajectory(traj collision.Trajectory) {
	posA := make([]float64, len(traj))
	posB := make([]float64, len(traj))
	for i, s := range traj {
		posA[i] = s.PosA
		posB[i] = s.PosB
	}

	graph := asciigraph.PlotMany([][]float64{posA, posB},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("position (m) vs step: ball A, ball B"),
	)
	fmt.Println(graph)
}

func listSamples(cmd *cobra.Command, args []string) error {
	st := storage.New(outputDir)
	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no samples found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tMASS A\tMASS B\tCONTACT\tFRAME")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fkg\t%.2fkg\t%.3fs\t%d\n",
			m.ID,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Seed,
			m.Initial.MassA,
			m.Initial.MassB,
			m.Event.T,
			m.FinalFrame,
		)
	}
	return w.Flush()
}

func plotSample(cmd *cobra.Command, args []string) error {
	st := storage.New(outputDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(traj) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("sample: %s\n", meta.ID)
	fmt.Printf("contact: t=%.3fs\n\n", meta.Event.T)
	plotTrajectory(traj)
	return nil
}

func chartSample(cmd *cobra.Command, args []string) error {
	st := storage.New(outputDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	path := filepath.Join(st.Dir(args[0]), "trajectory.png")
	if err := export.TrajectoryChart(traj, meta.Event, path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen, err := task.NewGenerator(cfg, storage.New(cfg.OutputDir))
	if err != nil {
		return err
	}

	scene, _, err := gen.Scene(context.Background(), cfg.Seed)
	if err != nil {
		return err
	}

	m := viz.NewModel(scene,
		cfg.WorldWidth,
		gen.Renderer().RadiusMeters(scene.Initial.MassA),
		gen.Renderer().RadiusMeters(scene.Initial.MassB),
		cfg.FPS,
		cfg.Substeps,
	)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
