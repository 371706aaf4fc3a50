package playback

import "fmt"

// Router validates parameter changes and forwards them through the controller.
//
// Scale and rotation are forwarded in any state: only the UI keeps them
// from changing mid-run (see Controller.Controls).
type Router struct {
	ctrl    *Controller
	catalog *Catalog
}

func NewRouter(ctrl *Controller, catalog *Catalog) *Router {
	return &Router{ctrl: ctrl, catalog: catalog}
}

func (r *Router) SetScale(value int) error {
	return r.ctrl.setScale(value)
}

func (r *Router) SetRotation(value int) error {
	return r.ctrl.setRotation(value)
}

// SetTiling rejects names outside the catalog before touching the engine.
func (r *Router) SetTiling(name string) error {
	if !r.catalog.Contains(name) {
		return fmt.Errorf("%w: %q", ErrUnknownTiling, name)
	}
	return r.ctrl.ChangeTiling(name)
}
