package playback

import "fmt"

type fakeHandle struct{ id int }

// fakeEngine records every call and reports completion once doneAfter
// iterations have been applied since the last reset (0 means never).
type fakeEngine struct {
	tilings    []string
	doneAfter  int
	failOn     map[string]error
	calls      []string
	iterations []int
	progress   int
	inits      int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		tilings: []string{"Square", "Hexagon", "Triangular"},
		failOn:  map[string]error{},
	}
}

func (f *fakeEngine) record(op string) error {
	f.calls = append(f.calls, op)
	return f.failOn[op]
}

func (f *fakeEngine) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeEngine) Initialize(surface Surface, scale, rotation int) (Handle, error) {
	if err := f.record("initialize"); err != nil {
		return nil, err
	}
	f.inits++
	f.progress = 0
	return &fakeHandle{id: f.inits}, nil
}

func (f *fakeEngine) ListTilings() []string {
	f.calls = append(f.calls, "list")
	return f.tilings
}

func (f *fakeEngine) SetTiling(h Handle, name string) error {
	if err := f.record("set_tiling:" + name); err != nil {
		return err
	}
	if err := f.failOn["set_tiling"]; err != nil {
		return err
	}
	f.progress = 0
	return nil
}

func (f *fakeEngine) Step(h Handle, iterations int) (bool, error) {
	if _, ok := h.(*fakeHandle); !ok {
		return false, fmt.Errorf("bad handle %T", h)
	}
	if err := f.record("step"); err != nil {
		return false, err
	}
	f.iterations = append(f.iterations, iterations)
	f.progress += iterations
	return f.doneAfter > 0 && f.progress >= f.doneAfter, nil
}

func (f *fakeEngine) SetScale(h Handle, value int) error {
	return f.record("set_scale")
}

func (f *fakeEngine) SetRotation(h Handle, value int) error {
	return f.record("set_rotation")
}

func (f *fakeEngine) Reset(h Handle) error {
	if err := f.record("reset"); err != nil {
		return err
	}
	f.progress = 0
	return nil
}
