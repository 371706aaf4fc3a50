// Package script runs YAML scenarios of controller actions against the
// reference engine on a virtual clock.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tilemaze/internal/config"
	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/playback"
	"github.com/san-kum/tilemaze/internal/schedule"
	"github.com/san-kum/tilemaze/internal/viz"
)

// MaxFirings bounds until_finished so a scenario that never finishes fails
// instead of spinning.
const MaxFirings = 1_000_000

var (
	ErrAction      = errors.New("script: invalid action")
	ErrNotFinished = errors.New("script: generation did not finish")
)

// Scenario is a scripted sequence of controller actions. Config fields left
// empty keep the values of the base config passed to Run.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Preset      string   `yaml:"preset"`
	Tiling      string   `yaml:"tiling"`
	Seed        int64    `yaml:"seed"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Actions     []Action `yaml:"actions"`
}

// Action is one line of a scenario, written as a scalar such as "speed 80"
// or "tiling Truncated Square", or as a mapping {do: speed, value: 80}.
type Action struct {
	Do    string
	Value string
}

func (a *Action) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		do, value, _ := strings.Cut(strings.TrimSpace(node.Value), " ")
		if do == "" {
			return fmt.Errorf("%w: line %d: empty action", ErrAction, node.Line)
		}
		a.Do, a.Value = do, strings.TrimSpace(value)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Do    string `yaml:"do"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		a.Do, a.Value = raw.Do, raw.Value
		return nil
	}
	return fmt.Errorf("%w: line %d: expected string or mapping", ErrAction, node.Line)
}

func (a Action) String() string {
	if a.Value == "" {
		return a.Do
	}
	return a.Do + " " + a.Value
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	for i, a := range sc.Actions {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// takesValue lists the known actions and whether each needs an argument.
var takesValue = map[string]bool{
	"start": false, "stop": false, "step": false, "reset": false, "until_finished": false,
	"speed": true, "tiling": true, "scale": true, "rotation": true, "advance": true,
}

func (a Action) validate() error {
	want, ok := takesValue[a.Do]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", ErrAction, a.Do)
	}
	if want != (a.Value != "") {
		return fmt.Errorf("%w: %q", ErrAction, a.String())
	}
	if a.Do == "advance" {
		if _, err := time.ParseDuration(a.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrAction, err)
		}
	}
	return nil
}

// Result summarises a finished scenario.
type Result struct {
	Name      string
	Status    playback.Status
	Elapsed   time.Duration
	Connected int
	Total     int
}

// Run executes sc on a fresh session and writes one line per action to out.
// The base config supplies everything the scenario leaves unset. A scenario
// preset sits underneath any base field that differs from the defaults.
func Run(ctx context.Context, sc *Scenario, base *config.Config, out io.Writer, logger *log.Logger) (*Result, error) {
	cfg := *base
	if sc.Preset != "" {
		p, err := base.Underlay(sc.Preset)
		if err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
		cfg = *p
	}
	if sc.Tiling != "" {
		cfg.Tiling = sc.Tiling
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if sc.Width > 0 {
		cfg.Width = sc.Width
	}
	if sc.Height > 0 {
		cfg.Height = sc.Height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := maze.New(cfg.EngineConfig())
	clock := schedule.NewManual()
	opts := cfg.PlaybackOptions()
	opts.Logger = logger
	w, h := viz.Surface(cfg.Width, cfg.Height)
	sess, err := playback.Open(engine, clock, playback.Surface{Width: w, Height: h}, opts)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	if cfg.Tiling != "" && cfg.Tiling != sess.Catalog.Default() {
		if err := sess.Router.SetTiling(cfg.Tiling); err != nil {
			return nil, err
		}
	}

	r := &runner{sess: sess, engine: engine, clock: clock, out: out}
	for i, a := range sc.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.do(a); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i+1, a, err)
		}
		r.report(i+1, a)
	}

	connected, total, err := engine.Progress(sess.Controller.Handle())
	if err != nil {
		return nil, err
	}
	return &Result{
		Name:      sc.Name,
		Status:    sess.Controller.Status(),
		Elapsed:   clock.Now(),
		Connected: connected,
		Total:     total,
	}, nil
}

type runner struct {
	sess   *playback.Session
	engine *maze.Engine
	clock  *schedule.Manual
	out    io.Writer
}

func (r *runner) do(a Action) error {
	ctrl, router := r.sess.Controller, r.sess.Router
	switch a.Do {
	case "start":
		return ctrl.Start()
	case "stop":
		ctrl.Stop()
		return nil
	case "step":
		return ctrl.SingleStep()
	case "reset":
		return ctrl.Reset()
	case "tiling":
		return router.SetTiling(a.Value)
	case "speed", "scale", "rotation":
		n, err := strconv.Atoi(a.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAction, err)
		}
		switch a.Do {
		case "speed":
			return ctrl.ChangeSpeed(n)
		case "scale":
			return router.SetScale(n)
		default:
			return router.SetRotation(n)
		}
	case "advance":
		d, err := time.ParseDuration(a.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAction, err)
		}
		return r.clock.Advance(d)
	case "until_finished":
		if ctrl.State() != playback.Running {
			return nil
		}
		if _, err := r.clock.RunUntilIdle(MaxFirings); err != nil {
			return err
		}
		if ctrl.State() != playback.Finished {
			return ErrNotFinished
		}
		return nil
	}
	return fmt.Errorf("%w: unknown action %q", ErrAction, a.Do)
}

func (r *runner) report(n int, a Action) {
	st := r.sess.Controller.Status()
	connected, total, _ := r.engine.Progress(r.sess.Controller.Handle())
	fmt.Fprintf(r.out, "%3d %-20s %-8s t=%-10s tiling=%s speed=%d ticks=%d steps=%d cells=%d/%d\n",
		n, a, st.State, r.clock.Now(), st.Tiling, st.Speed, st.Ticks, st.Steps, connected, total)
}
