package primitives

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath is where a custom catalog is looked up, relative to the working directory.
const DefaultCatalogPath = "assets/primitives.yaml"

// defaultExtent is the size of every built-in primitive; it fits inside clip space.
var defaultExtent = [3]float32{0.75, 0.75, 0.75}

// Catalog is an ordered, non-empty list of primitives to pick from.
type Catalog struct {
	items []Descriptor
}

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	Primitives []Descriptor `yaml:"primitives"`
}

// Default returns the built-in catalog: one of each kind.
func Default() *Catalog {
	return &Catalog{items: []Descriptor{
		{Kind: Capsule, Extent: defaultExtent, Segments: []int{100, 100}, HemisphereSegments: 4},
		{Kind: Cone, Extent: defaultExtent, Segments: []int{10, 10}, Cap: true},
		{Kind: Cube, Extent: defaultExtent, Segments: []int{100, 100, 100}},
		{Kind: Cylinder, Extent: defaultExtent, Segments: []int{100, 100}, TopCap: true, BottomCap: true},
		{Kind: Icosahedron, Extent: defaultExtent},
		{Kind: Plane, Extent: defaultExtent, Segments: []int{100, 100}},
		{Kind: Sphere, Extent: defaultExtent, Segments: []int{100, 100}},
	}}
}

// Parse decodes a YAML catalog and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Primitives) == 0 {
		return nil, fmt.Errorf("%w: catalog has no primitives", ErrInvalidDescriptor)
	}
	for i, d := range f.Primitives {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i+1, err)
		}
	}
	return &Catalog{items: f.Primitives}, nil
}

// Load reads a catalog from path. A missing file returns an error matching os.ErrNotExist.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
// Any other failure is returned together with the default catalog.
func LoadOrDefault(path string) (*Catalog, error) {
	c, err := Load(path)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Default(), err
}

// Marshal encodes the catalog as YAML in the format Parse reads.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(catalogFile{Primitives: c.items})
}

// Len returns the number of primitives.
func (c *Catalog) Len() int { return len(c.items) }

// At returns a copy of the i-th primitive.
func (c *Catalog) At(i int) Descriptor { return c.items[i].Clone() }

// All returns copies of every primitive in order.
func (c *Catalog) All() []Descriptor {
	out := make([]Descriptor, len(c.items))
	for i, d := range c.items {
		out[i] = d.Clone()
	}
	return out
}

// Find returns the first primitive of the given kind.
func (c *Catalog) Find(k Kind) (Descriptor, bool) {
	for _, d := range c.items {
		if d.Kind == k {
			return d.Clone(), true
		}
	}
	return Descriptor{}, false
}

// Random picks a primitive uniformly at random.
func (c *Catalog) Random(r *rand.Rand) Descriptor {
	return c.items[r.IntN(len(c.items))].Clone()
}

// Names returns the kind of every entry in order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.items))
	for i, d := range c.items {
		out[i] = string(d.Kind)
	}
	return out
}
