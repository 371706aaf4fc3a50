package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/tilemaze/internal/config"
	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/tui"
)

var (
	configFile string
	preset     string
	logFile    string

	tiling   string
	speed    int
	scale    int
	rotation int
	width    int
	height   int
	walkers  int
	seed     int64
	theme    string

	timeout   time.Duration
	plot      bool
	svgFile   string
	svgDots   bool
	live      bool
	frameRate int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the commands and flags; with no subcommand the root
// opens the interactive view. Registering resets every flag variable.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tilemaze",
		Short:         "animated maze generation over tilings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "write controller log to file")
	pf.StringVar(&tiling, "tiling", maze.Square.Name, "tiling")
	pf.IntVar(&speed, "speed", 50, "speed 0-100")
	pf.IntVar(&scale, "scale", 15, "cell size in pixels")
	pf.IntVar(&rotation, "rotation", 0, "rotation in degrees")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in characters")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in characters")
	pf.IntVar(&walkers, "walkers", maze.DefaultWalkers, "number of walkers")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "generate one maze in the terminal without the interactive view",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "stop after this long (e.g. 30s)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot progress after the run")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "export the final maze to an svg file")
	runCmd.Flags().BoolVar(&svgDots, "svg-dots", false, "export the braille canvas instead of wall paths")
	runCmd.Flags().BoolVar(&live, "live", false, "redraw the maze while it generates")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a yaml scenario of controller actions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	tilingsCmd := &cobra.Command{
		Use:   "tilings",
		Short: "list available tilings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range maze.New(maze.Config{}).ListTilings() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [file]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(runCmd, scriptCmd, tilingsCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig resolves defaults < preset < file < env < flags set on the
// command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := cfg.Merge(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("tiling") {
		cfg.Tiling = tiling
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("rotation") {
		cfg.Rotation = rotation
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("walkers") {
		cfg.Walkers = walkers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns the controller logger. Without a log file the output is
// discarded, since the interactive view owns the terminal.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "tilemaze ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	return tui.Run(*cfg, logger)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTILING\tSPEED\tSCALE\tROTATION\tWALKERS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n", name, p.Tiling, p.Speed, p.Scale, p.Rotation, p.Walkers)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "tilemaze.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}
