// Package geometry generates indexed triangle meshes for parametric primitives.
//
// Every shape is centered at the origin and fits its extent. Triangles wind
// counter-clockwise when seen from the side their normals point to; inward
// meshes flip both normals and winding.
package geometry

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	// ErrInvalidExtent is returned when an extent component the shape uses is not positive.
	ErrInvalidExtent = errors.New("extent must be positive")
	// ErrInvalidSegments is returned when a segment count is below the shape's minimum.
	ErrInvalidSegments = errors.New("segment count too small")
)

// Attribute names one per-vertex stream.
type Attribute struct {
	Name       string
	Components int
}

// Attribute names used by Layout.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrTexCoord = "texcoord"
)

// VertexLayout lists the vertex streams of a mesh in binding order.
type VertexLayout []Attribute

// Find returns the attribute with the given name.
func (l VertexLayout) Find(name string) (Attribute, bool) {
	for _, a := range l {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Mesh is a triangle mesh with flat arrays: 3 floats per position and normal,
// 2 per texcoord, 3 indices per triangle.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Layout describes the vertex streams present in the mesh.
func (m *Mesh) Layout() VertexLayout {
	l := VertexLayout{{Name: AttrPosition, Components: 3}}
	if len(m.Normals) > 0 {
		l = append(l, Attribute{Name: AttrNormal, Components: 3})
	}
	if len(m.TexCoords) > 0 {
		l = append(l, Attribute{Name: AttrTexCoord, Components: 2})
	}
	return l
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	if len(m.Positions) < 3 {
		return lo, hi
	}
	copy(lo[:], m.Positions[:3])
	copy(hi[:], m.Positions[:3])
	for i := 3; i+2 < len(m.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			v := m.Positions[i+k]
			lo[k] = math32.Min(lo[k], v)
			hi[k] = math32.Max(hi[k], v)
		}
	}
	return lo, hi
}

// builder accumulates vertices and triangles for one mesh.
type builder struct {
	m Mesh
}

func newBuilder(vertices, triangles int) *builder {
	return &builder{m: Mesh{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		TexCoords: make([]float32, 0, vertices*2),
		Indices:   make([]uint32, 0, triangles*3),
	}}
}

// vertex appends one vertex and returns its index.
func (b *builder) vertex(p, n [3]float32, u, v float32) uint32 {
	idx := uint32(len(b.m.Positions) / 3)
	n = normalize(n)
	b.m.Positions = append(b.m.Positions, p[0], p[1], p[2])
	b.m.Normals = append(b.m.Normals, n[0], n[1], n[2])
	b.m.TexCoords = append(b.m.TexCoords, u, v)
	return idx
}

func (b *builder) triangle(i0, i1, i2 uint32) {
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

// finish returns the mesh, turning it inside out when inward is set.
func (b *builder) finish(inward bool) *Mesh {
	m := b.m
	if inward {
		for i := range m.Normals {
			m.Normals[i] = -m.Normals[i]
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
	}
	return &m
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func half(extent [3]float32) [3]float32 {
	return [3]float32{extent[0] / 2, extent[1] / 2, extent[2] / 2}
}
