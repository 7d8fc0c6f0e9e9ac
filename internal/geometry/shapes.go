package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
)

func checkExtent(shape string, extent [3]float32, axes ...int) error {
	for _, a := range axes {
		if !(extent[a] > 0) {
			return fmt.Errorf("%s: %w (axis %d = %v)", shape, ErrInvalidExtent, a, extent[a])
		}
	}
	return nil
}

func checkSegments(shape string, least int, segments ...int) error {
	for _, s := range segments {
		if s < least {
			return fmt.Errorf("%s: %w (%d, need at least %d)", shape, ErrInvalidSegments, s, least)
		}
	}
	return nil
}

// face describes one subdivided quad: origin corner, two edge vectors with
// u x v pointing along the normal, and segment counts along each edge.
type face struct {
	origin, u, v [3]float32
	su, sv       int
}

func (b *builder) grid(f face) {
	n := normalize(cross(f.u, f.v))
	base := uint32(len(b.m.Positions) / 3)
	for t := 0; t <= f.sv; t++ {
		tv := float32(t) / float32(f.sv)
		for s := 0; s <= f.su; s++ {
			su := float32(s) / float32(f.su)
			p := [3]float32{
				f.origin[0] + f.u[0]*su + f.v[0]*tv,
				f.origin[1] + f.u[1]*su + f.v[1]*tv,
				f.origin[2] + f.u[2]*su + f.v[2]*tv,
			}
			b.vertex(p, n, su, 1-tv)
		}
	}
	row := uint32(f.su + 1)
	for t := 0; t < f.sv; t++ {
		for s := 0; s < f.su; s++ {
			a := base + uint32(t)*row + uint32(s)
			c := a + row
			b.triangle(a, a+1, c)
			b.triangle(a+1, c+1, c)
		}
	}
}

// Box returns a box with each face subdivided by segments (x, y, z).
func Box(extent [3]float32, segments [3]int, inward bool) (*Mesh, error) {
	if err := checkExtent("box", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("box", 1, segments[:]...); err != nil {
		return nil, err
	}
	h := half(extent)
	sx, sy, sz := segments[0], segments[1], segments[2]
	x, y, z := extent[0], extent[1], extent[2]
	faces := []face{
		{origin: [3]float32{h[0], -h[1], h[2]}, u: [3]float32{0, 0, -z}, v: [3]float32{0, y, 0}, su: sz, sv: sy},
		{origin: [3]float32{-h[0], -h[1], -h[2]}, u: [3]float32{0, 0, z}, v: [3]float32{0, y, 0}, su: sz, sv: sy},
		{origin: [3]float32{-h[0], h[1], h[2]}, u: [3]float32{x, 0, 0}, v: [3]float32{0, 0, -z}, su: sx, sv: sz},
		{origin: [3]float32{-h[0], -h[1], -h[2]}, u: [3]float32{x, 0, 0}, v: [3]float32{0, 0, z}, su: sx, sv: sz},
		{origin: [3]float32{-h[0], -h[1], h[2]}, u: [3]float32{x, 0, 0}, v: [3]float32{0, y, 0}, su: sx, sv: sy},
		{origin: [3]float32{h[0], -h[1], -h[2]}, u: [3]float32{-x, 0, 0}, v: [3]float32{0, y, 0}, su: sx, sv: sy},
	}
	verts, tris := 0, 0
	for _, f := range faces {
		verts += (f.su + 1) * (f.sv + 1)
		tris += 2 * f.su * f.sv
	}
	b := newBuilder(verts, tris)
	for _, f := range faces {
		b.grid(f)
	}
	return b.finish(inward), nil
}

// Plane returns a subdivided plane in XZ facing +Y. extent[1] is ignored.
func Plane(extent [3]float32, segments [2]int) (*Mesh, error) {
	if err := checkExtent("plane", extent, 0, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("plane", 1, segments[:]...); err != nil {
		return nil, err
	}
	h := half(extent)
	f := face{
		origin: [3]float32{-h[0], 0, h[2]},
		u:      [3]float32{extent[0], 0, 0},
		v:      [3]float32{0, 0, -extent[2]},
		su:     segments[0],
		sv:     segments[1],
	}
	b := newBuilder((f.su+1)*(f.sv+1), 2*f.su*f.sv)
	b.grid(f)
	return b.finish(false), nil
}

var icosahedronFaces = [20][3]uint32{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Icosahedron returns a 12-vertex icosahedron inscribed in the ellipsoid of the extent.
func Icosahedron(extent [3]float32, inward bool) (*Mesh, error) {
	if err := checkExtent("icosahedron", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	t := (1 + math32.Sqrt(5)) / 2
	corners := [12][3]float32{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	h := half(extent)
	b := newBuilder(len(corners), len(icosahedronFaces))
	for _, c := range corners {
		n := normalize(c)
		p := [3]float32{n[0] * h[0], n[1] * h[1], n[2] * h[2]}
		u := 0.5 + math32.Atan2(n[2], n[0])/(2*math32.Pi)
		v := 0.5 - math32.Asin(n[1])/math32.Pi
		b.vertex(p, [3]float32{n[0] / h[0], n[1] / h[1], n[2] / h[2]}, u, v)
	}
	for _, f := range icosahedronFaces {
		b.triangle(f[0], f[1], f[2])
	}
	return b.finish(inward), nil
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
