package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/phytosim/internal/api"
	"github.com/san-kum/phytosim/internal/config"
	"github.com/san-kum/phytosim/internal/content"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/experiment"
	"github.com/san-kum/phytosim/internal/export"
	"github.com/san-kum/phytosim/internal/logging"
	"github.com/san-kum/phytosim/internal/monitor"
	"github.com/san-kum/phytosim/internal/sim"
	"github.com/san-kum/phytosim/internal/tui"
	"github.com/san-kum/phytosim/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string

	biomass     float64
	contaminant float64
	dt          float64
	horizon     float64
	threshold   float64
	integrator  string

	csvPath  string
	jsonPath string
	svgPath  string
	noPlot   bool
	width    int

	host string
	port int

	articlesJSON bool
	compareDts   []float64
)

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:               "phytosim",
		Short:             "nickel phytoremediation simulator",
		SilenceUsage:      true,
		PersistentPreRunE: resolveConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration (see presets)")
	pf.StringVar(&logLevel, "log-level", "info", "log level")
	pf.StringVar(&logFormat, "log-format", "console", "log format: console or json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one simulation and print the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write trajectory CSV to path")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write result JSON to path (- for stdout)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write phase-plane SVG to path")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip terminal plots")
	runCmd.Flags().IntVar(&width, "width", 80, "terminal width for plots")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the web form, charts and JSON API",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "listen host")
	serveCmd.Flags().IntVar(&port, "port", config.DefaultPort, "listen port")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal form",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "list further reading",
		Args:  cobra.NoArgs,
		RunE:  listArticles,
	}
	articlesCmd.Flags().BoolVar(&articlesJSON, "json", false, "print as JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBIOMASS\tNICKEL\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, viz.Number(p.Run.Biomass), viz.Number(p.Run.Contaminant), p.Description)
			}
			return w.Flush()
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators and step sizes on the same initial conditions",
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&compareDts, "dts", []float64{0.01, 0.1, 0.5, 1}, "step sizes to compare")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		Args:  cobra.NoArgs,
		RunE:  benchModel,
	}

	rootCmd.AddCommand(runCmd, serveCmd, tuiCmd, articlesCmd, presetsCmd, compareCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&biomass, "biomass", config.DefaultBiomass, "initial Alyssum biomass A (kg/ha)")
	cmd.Flags().Float64Var(&contaminant, "contaminant", config.DefaultContaminant, "initial nickel level N (mg/kg)")
	cmd.Flags().Float64Var(&dt, "dt", sim.DefaultDt, "timestep (years)")
	cmd.Flags().Float64Var(&horizon, "time", sim.DefaultEnd, "simulated years")
	cmd.Flags().Float64Var(&threshold, "threshold", sim.DefaultThreshold, "safe nickel level (mg/kg)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (rk4, euler)")
}

// resolveConfig layers defaults, config file, preset and changed flags, in
// that order, then configures logging.
func resolveConfig(cmd *cobra.Command, args []string) error {
	c := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c.ApplyPreset(p)
	}

	flags := cmd.Flags()
	if flags.Changed("biomass") {
		c.Run.Biomass = biomass
	}
	if flags.Changed("contaminant") {
		c.Run.Contaminant = contaminant
	}
	if flags.Changed("dt") {
		c.Run.Dt = dt
	}
	if flags.Changed("time") {
		c.Run.End = c.Run.Start + horizon
	}
	if flags.Changed("threshold") {
		c.Run.Threshold = threshold
	}
	if flags.Changed("integrator") {
		c.Run.Integrator = integrator
	}
	if flags.Changed("host") {
		c.Server.Host = host
	}
	if flags.Changed("port") {
		c.Server.Port = port
	}
	if flags.Changed("log-level") || configFile == "" {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-format") || configFile == "" {
		c.Log.Format = logFormat
	}

	if err := c.Validate(); err != nil {
		return err
	}
	if err := logging.Setup(c.Log.Level, c.Log.Format, os.Stderr); err != nil {
		return err
	}
	cfg = c
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	log.Debug().
		Float64("biomass", cfg.Run.Biomass).
		Float64("contaminant", cfg.Run.Contaminant).
		Str("integrator", cfg.Run.Integrator).
		Msg("running simulation")

	start := time.Now()
	result, err := experiment.Run(cmd.Context(), cfg)
	if err != nil {
		fmt.Fprintln(out, viz.Failure(err, width-2))
		return err
	}
	elapsed := time.Since(start)

	if jsonPath == "-" {
		// stdout carries the JSON document only; file exports still run
		if err := export.WriteJSON(out, exportMeta(), result); err != nil {
			return err
		}
		return writeFiles(cmd.ErrOrStderr(), result)
	}

	if i := result.Trajectory.FirstNonFinite(); i >= 0 {
		t, _ := result.Trajectory.At(i)
		log.Warn().Float64("t", t).Msg("trajectory diverged; try a smaller --dt")
	}

	if noPlot {
		fmt.Fprintln(out, viz.Interpretation(result.Outcome, width-2))
		fmt.Fprintln(out)
		fmt.Fprint(out, viz.Summary(result))
	} else {
		fmt.Fprint(out, viz.Result(result, width))
	}
	fmt.Fprintf(out, "\ncompleted in %v (%d steps)\n", elapsed, result.StepsTaken)

	if jsonPath != "" {
		err := export.ToFile(jsonPath, func(w io.Writer) error { return export.WriteJSON(w, exportMeta(), result) })
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "result written to %s\n", jsonPath)
	}
	return writeFiles(out, result)
}

// writeFiles handles the --csv and --svg exports, reporting each written
// path to out.
func writeFiles(out io.Writer, result *sim.Result) error {
	if csvPath != "" {
		err := export.ToFile(csvPath, func(w io.Writer) error { return export.WriteCSV(w, result.Trajectory) })
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "trajectory written to %s\n", csvPath)
	}
	if svgPath != "" {
		svg := export.PhaseSVG(result.Trajectory, 600, 400, string(viz.NickelColor))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "phase plane written to %s\n", svgPath)
	}
	return nil
}

func exportMeta() export.Meta {
	return export.Meta{Integrator: cfg.Run.Integrator, Params: cfg.Params, Config: cfg.SimConfig()}
}

func serve(cmd *cobra.Command, args []string) error {
	articles, err := content.LoadFile(cfg.Server.ArticlesFile)
	if err != nil {
		return err
	}

	metrics := monitor.NewMetrics()
	server := api.NewServer(cfg, articles, metrics)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		log.Info().Str("signal", sig.String()).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	articles, err := content.LoadFile(cfg.Server.ArticlesFile)
	if err != nil {
		return err
	}
	return tui.Run(cfg, articles)
}

func listArticles(cmd *cobra.Command, args []string) error {
	articles, err := content.LoadFile(cfg.Server.ArticlesFile)
	if err != nil {
		return err
	}
	if articlesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.Articles(articles, 80))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators from A=%s, N=%s over %.0f years\n\n",
		viz.Number(cfg.Run.Biomass), viz.Number(cfg.Run.Contaminant), cfg.Run.End-cfg.Run.Start)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tDT\tTIME TO SAFE\tFINAL N\tFINAL A\tNEGATIVE\tTIME")

	for _, name := range names {
		for _, step := range compareDts {
			c := *cfg
			c.Run.Integrator = name
			c.Run.Dt = step

			start := time.Now()
			result, err := experiment.Run(cmd.Context(), &c)
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(w, "%s\t%g\terror: %v\n", name, step, err)
				continue
			}

			tts := "not reached"
			if result.Outcome.Reached {
				tts = fmt.Sprintf("%.2f y", result.Outcome.TimeToSafe)
			}
			_, last, _ := result.Trajectory.Final()
			fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\t%.0f\t%v\n",
				name, step, tts, viz.Number(last.N), viz.Number(last.A),
				result.Metrics["negative_excursions"], elapsed.Round(time.Microsecond))
		}
	}
	return w.Flush()
}

func benchModel(cmd *cobra.Command, args []string) error {
	horizons := []float64{15, 150, 1500}
	dts := []float64{0.001, 0.01, 0.1}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s\n\n", cfg.Run.Integrator)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "YEARS\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, years := range horizons {
		for _, step := range dts {
			c := *cfg
			c.Run.Start, c.Run.End, c.Run.Dt = 0, years, step

			start := time.Now()
			result, err := experiment.Run(cmd.Context(), &c)
			if err != nil {
				if errors.Is(err, dynamo.ErrTooManySamples) {
					fmt.Fprintf(w, "%.0f\t%g\tskipped\t\t\n", years, step)
					continue
				}
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0f\t%g\t%d\t%v\t%.0f\n",
				years, step, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
