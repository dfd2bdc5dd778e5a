package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/nlink/internal/config"
	"github.com/san-kum/nlink/internal/input"
	"github.com/san-kum/nlink/internal/plot"
	"github.com/san-kum/nlink/internal/scene"
	"github.com/san-kum/nlink/internal/term"
	"github.com/san-kum/nlink/internal/theme"
	"github.com/san-kum/nlink/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	numLinks   int
	dt         float64
	gravity    float64
	margin     int
	radius     int
	themeName  string
	paused     bool
	noStatus   bool
	verbose    bool
	// plot
	steps    int
	width    int
	height   int
	velocity bool
	color    bool
)

// main registers the commands and flags and runs the tcell visualizer when
// no subcommand is given. It exits with status 1 if the command fails; the
// terminal has been restored by then.
func main() {
	rootCmd := &cobra.Command{
		Use:          "nlink",
		Short:        "chain pendulum in the terminal",
		Long:         "nlink integrates an N-link chain pendulum and draws it onto the terminal.\n\nkeys:\n" + keyHelp(),
		SilenceUsage: true,
		RunE:         runTerminal,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&numLinks, "links", 0, "number of identical links (copies the first link)")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	pf.Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration")
	pf.IntVar(&margin, "margin", config.DefaultMargin, "border in cells")
	pf.IntVar(&radius, "radius", config.DefaultJointRadius, "joint marker radius in cells")
	pf.StringVar(&themeName, "theme", "", "colour theme ("+strings.Join(theme.Names(), ", ")+")")
	pf.BoolVar(&paused, "paused", false, "start paused")
	pf.BoolVar(&noStatus, "no-status", false, "hide the status line")
	pf.BoolVar(&verbose, "verbose", false, "trace state transitions (writes to stderr)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the visualizer on the terminal (tcell)",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}

	teaCmd := &cobra.Command{
		Use:   "tea",
		Short: "run the visualizer with the Bubble Tea frontend",
		Args:  cobra.NoArgs,
		RunE:  runTea,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "simulate without a terminal and plot link angles",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")
	plotCmd.Flags().IntVar(&width, "width", 80, "graph width")
	plotCmd.Flags().IntVar(&height, "height", 15, "graph height")
	plotCmd.Flags().BoolVar(&velocity, "velocity", false, "plot angular velocity instead of angle")
	plotCmd.Flags().BoolVar(&color, "color", true, "colour each link")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %d link(s), dt=%g\n", name, len(p.Links), p.Dt)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, teaCmd, plotCmd, presetsCmd, initCmd)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setTraceLevel(verbose)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var traceKeys = []string{"nlink.chain", "nlink.config", "nlink.scene", "nlink.term"}

// setTraceLevel keeps tracing quiet unless asked for; the terminal is in raw
// mode while the visualizer runs.
func setTraceLevel(verbose bool) {
	level := tracing.LevelError
	if verbose {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func keyHelp() string {
	var b strings.Builder
	for _, kb := range input.Bindings {
		fmt.Fprintf(&b, "  %-16s %s\n", kb.Keys, kb.Help)
	}
	return b.String()
}

// loadConfig resolves defaults, preset, config file and explicit flags, in
// that order of precedence.
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
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("links") {
		cfg.Uniform(numLinks)
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("margin") {
		cfg.Margin = margin
	}
	if flags.Changed("radius") {
		cfg.JointRadius = radius
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("paused") {
		cfg.Paused = paused
	}
	if noStatus {
		cfg.ShowStatus = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := cfg.NewChain()
	if err != nil {
		return err
	}

	scr, err := term.Open(theme.Get(cfg.Theme))
	if err != nil {
		return err
	}
	defer scr.Close()

	d, err := scene.NewDriver(scr, c, cfg.SceneOptions())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx, scr.Events()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTea(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := cfg.NewChain()
	if err != nil {
		return err
	}
	return tui.Run(c, cfg.SceneOptions(), theme.Get(cfg.Theme))
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := cfg.NewChain()
	if err != nil {
		return err
	}
	tr := plot.Record(c, cfg.ChainLinks(), cfg.Params(), steps)
	out := plot.Render(tr, plot.Options{Width: width, Height: height, Velocity: velocity, Color: color})
	if out == "" {
		return fmt.Errorf("nothing to plot: --steps must be positive")
	}
	fmt.Println(out)
	return nil
}
