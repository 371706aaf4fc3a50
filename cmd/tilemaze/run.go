package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tilemaze/internal/export"
	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/metrics"
	"github.com/san-kum/tilemaze/internal/playback"
	"github.com/san-kum/tilemaze/internal/schedule"
	"github.com/san-kum/tilemaze/internal/script"
	"github.com/san-kum/tilemaze/internal/tui"
	"github.com/san-kum/tilemaze/internal/viz"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := maze.New(cfg.EngineConfig())
	loop := schedule.NewLoop()
	canvas := viz.NewCanvas(cfg.Width, cfg.Height)
	w, h := canvas.PixelSize()

	opts := cfg.PlaybackOptions()
	opts.Logger = logger
	sess, err := playback.Open(engine, loop, playback.Surface{Width: w, Height: h}, opts)
	if err != nil {
		return err
	}
	defer sess.Close()
	ctrl := sess.Controller
	if cfg.Tiling != "" && cfg.Tiling != sess.Catalog.Default() {
		if err := sess.Router.SetTiling(cfg.Tiling); err != nil {
			return err
		}
	}
	s, err := engine.Session(ctrl.Handle())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, canvas, frameRate)
		renderer.Start()
		defer renderer.Stop()
	}

	var history []float64
	sample := func() {
		connected, total, err := engine.Progress(ctrl.Handle())
		if err == nil && total > 0 {
			history = append(history, 100*float64(connected)/float64(total))
		}
		if renderer != nil {
			renderer.Frame(s.Maze(), ctrl.Status(), !ctrl.Scheduled())
		}
	}

	start := time.Now()
	if err := ctrl.Start(); err != nil {
		return err
	}
	var sampler schedule.Timer
	sampler = loop.Every(cfg.FrameInterval, func() error {
		sample()
		if !ctrl.Scheduled() {
			sampler.Cancel()
		}
		return nil
	})

	runErr := loop.Run(ctx)
	// The loop has returned, so the controller is only touched from here on.
	ctrl.Stop()
	elapsed := time.Since(start)

	switch {
	case errors.Is(runErr, context.DeadlineExceeded):
		fmt.Fprintf(os.Stderr, "stopped after %s timeout\n", timeout)
	case errors.Is(runErr, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
	case runErr != nil:
		return runErr
	}
	sample()

	if renderer == nil {
		viz.Render(canvas, s.Maze())
		fmt.Print(canvas.String())
	}

	st := ctrl.Status()
	connected, total, _ := engine.Progress(ctrl.Handle())
	fmt.Printf("\ntiling: %s  scale: %d  rotation: %d  walkers: %d\n", st.Tiling, st.Scale, st.Rotation, s.Walkers())
	fmt.Printf("state: %s  speed: %d  ticks: %d  steps: %d\n", st.State, st.Speed, st.Ticks, st.Steps)
	fmt.Printf("cells: %d/%d  elapsed: %s\n", connected, total, elapsed.Round(time.Millisecond))
	for _, m := range metrics.Defaults() {
		m.Observe(s.Maze())
		fmt.Printf("  %-14s %.3f\n", m.Name(), m.Value())
	}

	if plot && len(history) > 1 {
		graph := asciigraph.Plot(history,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.Caption("connected cells % per frame"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	if svgFile != "" {
		t := viz.GetTheme(cfg.Theme)
		doc := export.MazeToSVG(s.Maze(), t)
		if svgDots {
			viz.Render(canvas, s.Maze())
			doc = export.CanvasToSVG(canvas, t, 4)
		}
		if err := os.WriteFile(svgFile, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgFile)
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := script.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := script.Run(ctx, sc, cfg, os.Stdout, logger)
	if err != nil {
		return err
	}
	fmt.Printf("\nfinal: %s  tiling=%s  virtual time=%s  cells=%d/%d\n",
		res.Status.State, res.Status.Tiling, res.Elapsed, res.Connected, res.Total)
	return nil
}
