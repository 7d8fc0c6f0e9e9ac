package geometry

import "github.com/chewxy/math32"

// ring is one row of a surface of revolution around Y. r scales the radial
// semi-axes, y is absolute. (nr, ny) is the normal in the profile plane before
// the radial semi-axes are divided out.
type ring struct {
	r, y   float32
	nr, ny float32
}

// lathe sweeps rings (ordered bottom to top) around Y with radial segments.
// A ring with zero radius is a pole: the strip next to it becomes a fan of one
// triangle per segment.
func (b *builder) lathe(h [3]float32, radial int, rings []ring) {
	base := uint32(len(b.m.Positions) / 3)
	last := float32(len(rings) - 1)
	for i, rg := range rings {
		for j := 0; j <= radial; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(radial)
			c, s := math32.Cos(theta), math32.Sin(theta)
			p := [3]float32{h[0] * rg.r * c, rg.y, h[2] * rg.r * s}
			n := [3]float32{rg.nr * c / h[0], rg.ny, rg.nr * s / h[2]}
			b.vertex(p, n, float32(j)/float32(radial), 1-float32(i)/last)
		}
	}
	row := uint32(radial + 1)
	for i := 0; i < len(rings)-1; i++ {
		for j := 0; j < radial; j++ {
			a := base + uint32(i)*row + uint32(j)
			c := a + row
			if rings[i].r != 0 {
				b.triangle(a, c, a+1)
			}
			if rings[i+1].r != 0 {
				b.triangle(a+1, c, c+1)
			}
		}
	}
}

// disk adds a flat cap at height y facing +Y when up is set, -Y otherwise.
func (b *builder) disk(h [3]float32, radial int, y float32, up bool) {
	ny := float32(-1)
	if up {
		ny = 1
	}
	n := [3]float32{0, ny, 0}
	center := b.vertex([3]float32{0, y, 0}, n, 0.5, 0.5)
	for j := 0; j <= radial; j++ {
		theta := 2 * math32.Pi * float32(j) / float32(radial)
		c, s := math32.Cos(theta), math32.Sin(theta)
		b.vertex([3]float32{h[0] * c, y, h[2] * s}, n, 0.5+0.5*c, 0.5+0.5*s)
	}
	for j := uint32(0); j < uint32(radial); j++ {
		p0, p1 := center+1+j, center+2+j
		if up {
			b.triangle(center, p1, p0)
		} else {
			b.triangle(center, p0, p1)
		}
	}
}

// Sphere returns an ellipsoid filling the extent with segments (radial, vertical).
func Sphere(extent [3]float32, segments [2]int, inward bool) (*Mesh, error) {
	if err := checkExtent("sphere", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("sphere", 3, segments[0]); err != nil {
		return nil, err
	}
	if err := checkSegments("sphere", 2, segments[1]); err != nil {
		return nil, err
	}
	h := half(extent)
	radial, vertical := segments[0], segments[1]
	rings := make([]ring, 0, vertical+1)
	for i := 0; i <= vertical; i++ {
		phi := -math32.Pi/2 + math32.Pi*float32(i)/float32(vertical)
		r := math32.Cos(phi)
		if i == 0 || i == vertical {
			r = 0
		}
		s := math32.Sin(phi)
		rings = append(rings, ring{r: r, y: h[1] * s, nr: r, ny: s / h[1]})
	}
	b := newBuilder((radial+1)*(vertical+1), 2*radial*vertical)
	b.lathe(h, radial, rings)
	return b.finish(inward), nil
}

// Cylinder returns a cylinder along Y with segments (radial, vertical) and optional caps.
func Cylinder(extent [3]float32, segments [2]int, inward, topCap, bottomCap bool) (*Mesh, error) {
	if err := checkExtent("cylinder", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("cylinder", 3, segments[0]); err != nil {
		return nil, err
	}
	if err := checkSegments("cylinder", 1, segments[1]); err != nil {
		return nil, err
	}
	h := half(extent)
	radial, vertical := segments[0], segments[1]
	rings := make([]ring, 0, vertical+1)
	for i := 0; i <= vertical; i++ {
		y := -h[1] + extent[1]*float32(i)/float32(vertical)
		rings = append(rings, ring{r: 1, y: y, nr: 1})
	}
	b := newBuilder((radial+1)*(vertical+1)+2*(radial+2), 2*radial*vertical+2*radial)
	b.lathe(h, radial, rings)
	if bottomCap {
		b.disk(h, radial, -h[1], false)
	}
	if topCap {
		b.disk(h, radial, h[1], true)
	}
	return b.finish(inward), nil
}

// Cone returns a cone along Y with its apex at the top and an optional base cap.
func Cone(extent [3]float32, segments [2]int, inward, withCap bool) (*Mesh, error) {
	if err := checkExtent("cone", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("cone", 3, segments[0]); err != nil {
		return nil, err
	}
	if err := checkSegments("cone", 1, segments[1]); err != nil {
		return nil, err
	}
	h := half(extent)
	radial, vertical := segments[0], segments[1]
	rings := make([]ring, 0, vertical+1)
	for i := 0; i <= vertical; i++ {
		t := float32(i) / float32(vertical)
		rings = append(rings, ring{r: 1 - t, y: -h[1] + extent[1]*t, nr: 1, ny: 1 / extent[1]})
	}
	b := newBuilder((radial+1)*(vertical+1)+radial+2, 2*radial*vertical+radial)
	b.lathe(h, radial, rings)
	if withCap {
		b.disk(h, radial, -h[1], false)
	}
	return b.finish(inward), nil
}

// Capsule returns a cylinder along Y closed by two half-ellipsoids. cylinderSegments
// is (radial, vertical) for the body; hemisphereSegments subdivides each end.
func Capsule(extent [3]float32, cylinderSegments [2]int, hemisphereSegments int, inward bool) (*Mesh, error) {
	if err := checkExtent("capsule", extent, 0, 1, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("capsule", 3, cylinderSegments[0]); err != nil {
		return nil, err
	}
	if err := checkSegments("capsule", 1, cylinderSegments[1], hemisphereSegments); err != nil {
		return nil, err
	}
	h := half(extent)
	radial, vertical, hemi := cylinderSegments[0], cylinderSegments[1], hemisphereSegments
	// End caps are as tall as the narrower radial semi-axis, limited by the total height.
	hr := math32.Min(math32.Min(h[0], h[2]), h[1])
	body := h[1] - hr

	rings := make([]ring, 0, 2*(hemi+1)+vertical-1)
	for k := 0; k <= hemi; k++ {
		phi := -math32.Pi/2 + (math32.Pi/2)*float32(k)/float32(hemi)
		r := math32.Cos(phi)
		if k == 0 {
			r = 0
		}
		s := math32.Sin(phi)
		rings = append(rings, ring{r: r, y: -body + hr*s, nr: r, ny: s / hr})
	}
	for i := 1; i < vertical; i++ {
		y := -body + 2*body*float32(i)/float32(vertical)
		rings = append(rings, ring{r: 1, y: y, nr: 1})
	}
	for k := 0; k <= hemi; k++ {
		phi := (math32.Pi / 2) * float32(k) / float32(hemi)
		r := math32.Cos(phi)
		if k == hemi {
			r = 0
		}
		s := math32.Sin(phi)
		rings = append(rings, ring{r: r, y: body + hr*s, nr: r, ny: s / hr})
	}
	b := newBuilder((radial+1)*len(rings), 2*radial*(len(rings)-1))
	b.lathe(h, radial, rings)
	return b.finish(inward), nil
}
