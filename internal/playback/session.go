package playback

import "github.com/san-kum/tilemaze/internal/schedule"

// Session bundles what one hosting view needs: a controller on a fresh
// engine session, the tiling catalog and a router over both.
type Session struct {
	Controller *Controller
	Catalog    *Catalog
	Router     *Router
}

// Open initializes the engine on surface and loads its tiling catalog.
func Open(engine Engine, sched schedule.Scheduler, surface Surface, opts Options) (*Session, error) {
	ctrl, err := NewController(engine, sched, surface, opts)
	if err != nil {
		return nil, err
	}
	cat, err := LoadCatalog(engine)
	if err != nil {
		ctrl.Close()
		return nil, err
	}
	ctrl.adoptTiling(cat.Default())
	return &Session{
		Controller: ctrl,
		Catalog:    cat,
		Router:     NewRouter(ctrl, cat),
	}, nil
}

func (s *Session) Close() {
	s.Controller.Close()
}
