package playback

// Handle identifies one generation session inside an Engine. The controller
// never looks inside it.
type Handle any

// Surface is the drawable area handed to the engine on initialization.
type Surface struct {
	Width  int
	Height int
}

// Engine performs generation and geometry for one or more sessions.
//
// Step must be synchronous: it returns only once the requested iterations
// have been applied. done reports that generation is complete.
type Engine interface {
	Initialize(surface Surface, scale, rotation int) (Handle, error)
	ListTilings() []string
	SetTiling(h Handle, name string) error
	Step(h Handle, iterations int) (done bool, err error)
	SetScale(h Handle, value int) error
	SetRotation(h Handle, value int) error
	Reset(h Handle) error
}
