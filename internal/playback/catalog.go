package playback

import "fmt"

// Catalog is the ordered set of tiling names an engine offers.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// LoadCatalog asks the engine for its tilings once. The list must be
// non-empty and hold distinct, non-empty names.
func LoadCatalog(e Engine) (*Catalog, error) {
	return NewCatalog(e.ListTilings())
}

func NewCatalog(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no tilings", ErrInvalidCatalog)
	}
	c := &Catalog{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name at %d", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidCatalog, name)
		}
		c.index[name] = struct{}{}
		c.names = append(c.names, name)
	}
	return c, nil
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int { return len(c.names) }

func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Default is the tiling the engine starts with after initialization.
func (c *Catalog) Default() string { return c.names[0] }

// After returns the name following name, wrapping around. Unknown names
// yield the default.
func (c *Catalog) After(name string) string {
	for i, n := range c.names {
		if n == name {
			return c.names[(i+1)%len(c.names)]
		}
	}
	return c.Default()
}
