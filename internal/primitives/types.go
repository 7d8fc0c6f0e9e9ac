package primitives

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"primitive-viewer/internal/geometry"
)

// Kind names a primitive shape.
type Kind string

const (
	Capsule     Kind = "capsule"
	Cone        Kind = "cone"
	Cube        Kind = "cube"
	Cylinder    Kind = "cylinder"
	Icosahedron Kind = "icosahedron"
	Plane       Kind = "plane"
	Sphere      Kind = "sphere"
)

// Kinds lists every supported kind in catalog order.
var Kinds = []Kind{Capsule, Cone, Cube, Cylinder, Icosahedron, Plane, Sphere}

var (
	// ErrUnknownKind is returned for a descriptor whose type is not one of Kinds.
	ErrUnknownKind = errors.New("unknown primitive kind")
	// ErrInvalidDescriptor is returned when parameters do not fit the kind.
	ErrInvalidDescriptor = errors.New("invalid primitive descriptor")
)

// Descriptor is the YAML definition of one primitive (e.g. an entry in assets/primitives.yaml).
// Segments holds (x, y, z) for cube and (radial, vertical) for round kinds and plane;
// icosahedron takes none. Cap applies to cone, TopCap/BottomCap to cylinder.
type Descriptor struct {
	Kind               Kind       `yaml:"type"`
	Extent             [3]float32 `yaml:"extent"`
	Segments           []int      `yaml:"segments,omitempty,flow"`
	HemisphereSegments int        `yaml:"hemisphere_segments,omitempty"`
	InwardNormals      bool       `yaml:"inward_normals,omitempty"`
	Cap                bool       `yaml:"cap,omitempty"`
	TopCap             bool       `yaml:"top_cap,omitempty"`
	BottomCap          bool       `yaml:"bottom_cap,omitempty"`
}

// segmentArity returns how many segment counts a kind expects.
func segmentArity(k Kind) int {
	switch k {
	case Cube:
		return 3
	case Icosahedron:
		return 0
	default:
		return 2
	}
}

// Validate checks that the descriptor's fields fit its kind. Geometry limits
// (minimum segment counts, positive extents) are checked when the mesh is built.
func (d Descriptor) Validate() error {
	if !slices.Contains(Kinds, d.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	if want := segmentArity(d.Kind); len(d.Segments) != want {
		return fmt.Errorf("%w: %s takes %d segment counts, got %d", ErrInvalidDescriptor, d.Kind, want, len(d.Segments))
	}
	if d.Kind != Capsule && d.HemisphereSegments != 0 {
		return fmt.Errorf("%w: hemisphere_segments only applies to capsule", ErrInvalidDescriptor)
	}
	if d.Kind == Capsule && d.HemisphereSegments == 0 {
		return fmt.Errorf("%w: capsule needs hemisphere_segments", ErrInvalidDescriptor)
	}
	if d.Kind == Plane && d.InwardNormals {
		return fmt.Errorf("%w: plane has no inward side", ErrInvalidDescriptor)
	}
	if d.Cap && d.Kind != Cone {
		return fmt.Errorf("%w: cap only applies to cone", ErrInvalidDescriptor)
	}
	if (d.TopCap || d.BottomCap) && d.Kind != Cylinder {
		return fmt.Errorf("%w: top_cap/bottom_cap only apply to cylinder", ErrInvalidDescriptor)
	}
	return nil
}

// Mesh generates the descriptor's geometry.
func (d Descriptor) Mesh() (*geometry.Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s := d.Segments
	switch d.Kind {
	case Capsule:
		return geometry.Capsule(d.Extent, [2]int{s[0], s[1]}, d.HemisphereSegments, d.InwardNormals)
	case Cone:
		return geometry.Cone(d.Extent, [2]int{s[0], s[1]}, d.InwardNormals, d.Cap)
	case Cube:
		return geometry.Box(d.Extent, [3]int{s[0], s[1], s[2]}, d.InwardNormals)
	case Cylinder:
		return geometry.Cylinder(d.Extent, [2]int{s[0], s[1]}, d.InwardNormals, d.TopCap, d.BottomCap)
	case Icosahedron:
		return geometry.Icosahedron(d.Extent, d.InwardNormals)
	case Plane:
		return geometry.Plane(d.Extent, [2]int{s[0], s[1]})
	default:
		return geometry.Sphere(d.Extent, [2]int{s[0], s[1]}, d.InwardNormals)
	}
}

// Clone returns a copy that shares no memory with d.
func (d Descriptor) Clone() Descriptor {
	d.Segments = slices.Clone(d.Segments)
	return d
}

// String formats the descriptor for logs and the HUD, e.g. "cone 0.75x0.75x0.75 seg 10x10 cap".
func (d Descriptor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %gx%gx%g", d.Kind, d.Extent[0], d.Extent[1], d.Extent[2])
	if len(d.Segments) > 0 {
		parts := make([]string, len(d.Segments))
		for i, s := range d.Segments {
			parts[i] = fmt.Sprint(s)
		}
		sb.WriteString(" seg " + strings.Join(parts, "x"))
	}
	if d.HemisphereSegments > 0 {
		fmt.Fprintf(&sb, " hemi %d", d.HemisphereSegments)
	}
	if d.InwardNormals {
		sb.WriteString(" inward")
	}
	if d.Cap {
		sb.WriteString(" cap")
	}
	if d.TopCap {
		sb.WriteString(" top")
	}
	if d.BottomCap {
		sb.WriteString(" bottom")
	}
	return sb.String()
}
