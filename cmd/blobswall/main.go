package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dianalyx/RigidMultiblobsWall/internal/analysis"
	"github.com/dianalyx/RigidMultiblobsWall/internal/clones"
	"github.com/dianalyx/RigidMultiblobsWall/internal/config"
	"github.com/dianalyx/RigidMultiblobsWall/internal/export"
	"github.com/dianalyx/RigidMultiblobsWall/internal/forces"
	"github.com/dianalyx/RigidMultiblobsWall/internal/integrators"
	"github.com/dianalyx/RigidMultiblobsWall/internal/metrics"
	"github.com/dianalyx/RigidMultiblobsWall/internal/mobility"
	"github.com/dianalyx/RigidMultiblobsWall/internal/sim"
	"github.com/dianalyx/RigidMultiblobsWall/internal/storage"
	"github.com/dianalyx/RigidMultiblobsWall/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	eta        float64
	blobRadius float64
	workers    int
	integrator string
	clonesFile string
	saveEvery  int
	// Analysis parameters
	boxLx float64
	boxLy float64
	bins  int
	// Live view sampling
	frameEvery int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blobswall",
		Short: "Brownian dynamics of blob suspensions above a single wall",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".blobswall", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameEvery, "frame-every", 10, "sample every n steps")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the mean blob height of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "radial distribution function of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&boxLx, "lx", 20.0, "lateral box length x")
	analyzeCmd.Flags().Float64Var(&boxLy, "ly", 20.0, "lateral box length y")
	analyzeCmd.Flags().IntVar(&bins, "bins", 200, "histogram bins")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [out.svg]",
		Short: "render the final configuration to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	exportClonesCmd := &cobra.Command{
		Use:   "export-clones [run_id] [out.clones]",
		Short: "write the final configuration as a clones file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportClones,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time mobility evaluations for growing N",
		RunE:  benchMobility,
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd,
		analyzeCmd, exportSVGCmd, exportClonesCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&eta, "eta", config.DefaultEta, "fluid viscosity")
	cmd.Flags().Float64Var(&blobRadius, "radius", config.DefaultBlobRadius, "blob hydrodynamic radius")
	cmd.Flags().IntVar(&workers, "workers", 0, "mobility workers (0 = all cores)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator (euler, pc)")
	cmd.Flags().StringVar(&clonesFile, "clones", "", "initial configuration file")
	cmd.Flags().IntVar(&saveEvery, "save-every", 0, "store every n-th step")
}

// buildConfig resolves preset, config file and command-line flags, in
// ascending priority.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("eta") {
		cfg.Eta = eta
	}
	if cmd.Flags().Changed("radius") {
		cfg.BlobRadius = blobRadius
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("clones") {
		cfg.Init.ClonesFile = clonesFile
	}
	if cmd.Flags().Changed("save-every") {
		cfg.SaveEvery = saveEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, sim.State, error) {
	var positions []float64
	var err error
	if cfg.Init.ClonesFile != "" {
		positions, err = clones.ReadFile(cfg.Init.ClonesFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		positions = cfg.Lattice()
	}

	mob := &mobility.SingleWall{
		Eta:     cfg.Eta,
		Radius:  cfg.BlobRadius,
		Box:     cfg.Periodic,
		Workers: cfg.Workers,
	}
	model := &forces.Model{
		BlobRadius:            cfg.BlobRadius,
		BlobMass:              cfg.BlobMass,
		Gravity:               cfg.Gravity,
		RepulsionStrength:     cfg.RepulsionStrength,
		DebyeLength:           cfg.DebyeLength,
		WallRepulsionStrength: cfg.WallRepulsionStrength,
		WallDebyeLength:       cfg.WallDebyeLength,
	}

	var integ sim.Integrator
	switch cfg.Integrator {
	case "", "euler":
		integ = integrators.NewEuler()
	case "pc", "predictor-corrector":
		integ = integrators.NewPredictorCorrector()
	default:
		return nil, nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}

	s := sim.New(sim.NewSuspension(mob, model), integ)
	s.AddMetric(metrics.NewMeanHeight())
	s.AddMetric(metrics.NewWallGap(cfg.BlobRadius))
	s.AddMetric(metrics.NewMaxSpeed())

	return s, sim.State(positions), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, x0, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %d blobs for %.3g time units...\n", x0.Blobs(), cfg.Duration)
	start := time.Now()

	result, err := s.Run(context.Background(), x0, sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
		SaveEvery:     cfg.SaveEvery,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Eta:        cfg.Eta,
		BlobRadius: cfg.BlobRadius,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("run id: %s\n", viz.ValueStyle.Render(runID))
	for _, e := range result.Errors {
		fmt.Printf("%s %v\n", viz.WarnStyle.Render("warning:"), e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, x0, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	obs := viz.NewChannelObserver(frameEvery, cfg.BlobRadius)
	s.AddObserver(obs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx, x0, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			ValidateState: true,
			SaveEvery:     cfg.SaveEvery,
		})
		obs.Close()
		errCh <- err
	}()

	p := tea.NewProgram(viz.NewLive(obs.Frames()))
	if _, err := p.Run(); err != nil {
		return err
	}
	cancel()

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBLOBS\tTIME\tDURATION\tDT\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.3g\t%.3g\t%s\n",
			run.ID,
			run.Blobs,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectory, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.TitleStyle.Render(args[0]))
	fmt.Println(viz.HeightPlot(trajectory, 70, 15))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectory, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	rdf := analysis.NewRDF(boxLx, boxLy, bins)
	// Skip the first half of the trajectory as equilibration.
	for _, frame := range trajectory[len(trajectory)/2:] {
		if err := rdf.AddFrame(frame); err != nil {
			return err
		}
	}

	radii, g := rdf.Compute()
	fmt.Println(viz.TitleStyle.Render("g(r), quasi-2D"))
	fmt.Println(viz.SeriesPlot(g, 70, 15, "g(r)"))
	fmt.Println()
	for i := range radii {
		fmt.Printf("%.6g %.6g\n", radii[i], g[i])
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectory, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	svg := export.SnapshotSVG(trajectory[len(trajectory)-1], meta.BlobRadius, 800, 400)
	return os.WriteFile(args[1], []byte(svg), 0644)
}

func exportClones(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectory, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}
	return clones.WriteFile(args[1], trajectory[len(trajectory)-1])
}

func benchMobility(cmd *cobra.Command, args []string) error {
	for _, n := range []int{64, 256, 1024} {
		positions := make([]float64, 3*n)
		f := make([]float64, 3*n)
		for i := 0; i < n; i++ {
			positions[i*3+0] = float64(i%32) * 2
			positions[i*3+1] = float64(i/32) * 2
			positions[i*3+2] = 2.0 + float64(i%7)
			f[i*3+2] = -1.0
		}

		start := time.Now()
		reps := 0
		for time.Since(start) < 500*time.Millisecond {
			mobility.SingleWallMobilityTransTimesForce(positions, f,
				config.DefaultEta, config.DefaultBlobRadius, [3]float64{})
			reps++
		}
		perCall := time.Since(start) / time.Duration(reps)
		fmt.Printf("N=%-5d %v/evaluation (%d evals)\n", n, perCall, reps)
	}
	return nil
}
