package graphics

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-viewer/internal/controller"
	"primitive-viewer/internal/device"
	"primitive-viewer/internal/geometry"
)

var (
	// ErrEmptyMesh is returned when uploading a mesh without triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")
	// ErrTooManyVertices is returned for meshes that do not fit 16-bit indices.
	ErrTooManyVertices = errors.New("mesh exceeds 65535 vertices")
	// ErrMissingPosition is returned for a vertex layout without a 3-component position.
	ErrMissingPosition = errors.New("vertex layout has no 3-component position")
	// ErrShaderCompile is returned when the wireframe shader fails to compile or link.
	ErrShaderCompile = errors.New("shader compilation failed")
)

// Shader sources. The vertex stage passes positions to clip space, rotated by the
// tilt uniform; the fragment stage paints every line solid red.
const (
	vertexMain = `#version 330
in vec3 vertexPosition;
uniform mat4 tilt;
void main() {
  gl_Position = tilt * vec4(vertexPosition, 1.0);
}
`
	fragmentMain = `#version 330
out vec4 finalColor;
void main() {
  finalColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`
)

// Backend implements controller.Backend on raylib. It must be used on the
// thread that owns the window, after InitWindow.
type Backend struct {
	tilt rl.Matrix
}

var _ controller.Backend = (*Backend)(nil)

// NewBackend returns a backend whose pipelines rotate geometry by tiltDegrees about X.
func NewBackend(tiltDegrees float32) *Backend {
	return &Backend{tilt: rl.MatrixRotateX(tiltDegrees * rl.Deg2rad)}
}

// Attach moves the window to the device's monitor and titles it with the device name.
func (b *Backend) Attach(d device.Device) {
	if d.ID >= 0 && d.ID < rl.GetMonitorCount() && d.ID != rl.GetCurrentMonitor() {
		rl.SetWindowMonitor(d.ID)
	}
	rl.SetWindowTitle(d.Name)
}

// gpuMesh is a raylib mesh whose CPU arrays are owned by Go.
type gpuMesh struct {
	mesh    rl.Mesh
	indices []uint16
	count   int
}

func (m *gpuMesh) IndexCount() int { return m.count }

func (m *gpuMesh) Release() {
	if m.mesh.VaoID == 0 {
		return
	}
	rl.UnloadMesh(&m.mesh)
	m.mesh = rl.Mesh{}
	m.indices = nil
}

// UploadMesh copies m into GPU buffers with 16-bit indices.
func (b *Backend) UploadMesh(m *geometry.Mesh) (controller.Mesh, error) {
	if m.VertexCount() == 0 || m.TriangleCount() == 0 {
		return nil, ErrEmptyMesh
	}
	if m.VertexCount() > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d vertices", ErrTooManyVertices, m.VertexCount())
	}
	indices := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		indices[i] = uint16(idx)
	}
	g := &gpuMesh{indices: indices, count: len(indices)}
	g.mesh.VertexCount = int32(m.VertexCount())
	g.mesh.TriangleCount = int32(m.TriangleCount())
	g.mesh.Vertices = &m.Positions[0]
	g.mesh.Indices = &indices[0]
	if len(m.Normals) > 0 {
		g.mesh.Normals = &m.Normals[0]
	}
	if len(m.TexCoords) > 0 {
		g.mesh.Texcoords = &m.TexCoords[0]
	}
	rl.UploadMesh(&g.mesh, false)
	if g.mesh.VaoID == 0 {
		return nil, fmt.Errorf("upload mesh: no vertex array created")
	}
	return g, nil
}

// pipeline is the wireframe shader bound into a material.
type pipeline struct {
	material rl.Material
	released bool
}

func (p *pipeline) Release() {
	if p.released {
		return
	}
	rl.UnloadMaterial(p.material)
	p.released = true
}

// BuildPipeline compiles the wireframe shader for layout.
func (b *Backend) BuildPipeline(layout geometry.VertexLayout) (controller.Pipeline, error) {
	pos, ok := layout.Find(geometry.AttrPosition)
	if !ok || pos.Components != 3 {
		return nil, ErrMissingPosition
	}
	shader := rl.LoadShaderFromMemory(vertexMain, fragmentMain)
	if !rl.IsShaderValid(shader) {
		return nil, ErrShaderCompile
	}
	// raylib falls back to its default shader on failure, which has no tilt uniform.
	loc := rl.GetShaderLocation(shader, "tilt")
	if loc < 0 {
		rl.UnloadShader(shader)
		return nil, fmt.Errorf("%w: tilt uniform missing", ErrShaderCompile)
	}
	if rl.GetShaderLocationAttrib(shader, "vertexPosition") < 0 {
		rl.UnloadShader(shader)
		return nil, fmt.Errorf("%w: vertexPosition not bound", ErrShaderCompile)
	}
	rl.SetShaderValueMatrix(shader, loc, b.tilt)
	mtl := rl.LoadMaterialDefault()
	mtl.Shader = shader
	return &pipeline{material: mtl}, nil
}

// DrawWireframe draws every triangle edge of m once with culling disabled.
func (b *Backend) DrawWireframe(p controller.Pipeline, m controller.Mesh) {
	pl, ok := p.(*pipeline)
	if !ok || pl.released {
		return
	}
	gm, ok := m.(*gpuMesh)
	if !ok || gm.mesh.VaoID == 0 {
		return
	}
	rl.DisableBackfaceCulling()
	rl.EnableWireMode()
	rl.DrawMesh(gm.mesh, pl.material, rl.MatrixIdentity())
	rl.DisableWireMode()
	rl.EnableBackfaceCulling()
}
