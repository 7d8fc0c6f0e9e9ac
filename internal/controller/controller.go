// Package controller owns the active device, the current primitive and the GPU
// resources derived from them, and drives one frame at a time.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"primitive-viewer/internal/clearcolor"
	"primitive-viewer/internal/device"
	"primitive-viewer/internal/geometry"
	"primitive-viewer/internal/primitives"
)

// ErrInvalidRate is returned by SetRate for rates outside (0,1].
var ErrInvalidRate = errors.New("color rate must be in (0,1]")

// ErrNotInCatalog is returned by SelectKind when the catalog has no entry of that kind.
var ErrNotInCatalog = errors.New("kind not in catalog")

// Mesh is a mesh uploaded to the current device.
type Mesh interface {
	IndexCount() int
	Release()
}

// Pipeline is a compiled shader program configured for one vertex layout.
type Pipeline interface {
	Release()
}

// Backend is the GPU API the controller drives.
type Backend interface {
	// Attach binds rendering to d and labels the window with its name.
	Attach(d device.Device)
	UploadMesh(m *geometry.Mesh) (Mesh, error)
	BuildPipeline(layout geometry.VertexLayout) (Pipeline, error)
	// DrawWireframe issues one indexed draw of m's triangles as lines.
	DrawWireframe(p Pipeline, m Mesh)
}

// Controller keeps mesh and pipeline consistent with the current (device, primitive)
// pair. Every change to either rebuilds both before returning.
type Controller struct {
	log     *slog.Logger
	backend Backend
	devices device.Query
	catalog *primitives.Catalog
	rng     *rand.Rand
	color   *clearcolor.Phased
	rate    float64

	dev       *device.Device
	primitive *primitives.Descriptor
	mesh      Mesh
	cpuMesh   *geometry.Mesh
	pipeline  Pipeline
}

// New returns a controller with no device or primitive. Call Start once the window exists.
// A rate outside (0,1] falls back to clearcolor.DefaultRate.
func New(log *slog.Logger, backend Backend, devices device.Query, catalog *primitives.Catalog, rng *rand.Rand, rate float64) *Controller {
	if !(rate > 0 && rate <= 1) {
		rate = clearcolor.DefaultRate
	}
	return &Controller{
		log:     log,
		backend: backend,
		devices: devices,
		catalog: catalog,
		rng:     rng,
		color:   clearcolor.NewPhased(),
		rate:    rate,
	}
}

// Start attaches the default device and picks the first primitive.
func (c *Controller) Start() {
	c.ChangeDevice()
	c.ChangePrimitive()
}

// ChangeDevice attaches the default device on first use and cycles to the next
// device afterwards, picking a new primitive for it.
func (c *Controller) ChangeDevice() {
	if c.dev == nil {
		c.setDevice(c.devices.Default())
		return
	}
	next, ok := device.Next(c.devices.Devices(), c.dev.ID)
	if !ok {
		c.log.Warn("no devices available; keeping current", "device", c.dev.Name)
		return
	}
	c.setDevice(next)
	c.ChangePrimitive()
}

func (c *Controller) setDevice(d device.Device) {
	c.dev = &d
	c.backend.Attach(d)
	c.log.Info("setting device", "device", d.Name, "id", d.ID)
	// Resources belong to the previous device; carry the primitive over.
	c.rebuild()
}

// ChangePrimitive picks a random primitive from the catalog.
func (c *Controller) ChangePrimitive() {
	c.SetPrimitive(c.catalog.Random(c.rng))
}

// SelectKind switches to the catalog's first primitive of kind k.
func (c *Controller) SelectKind(k primitives.Kind) error {
	d, ok := c.catalog.Find(k)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInCatalog, k)
	}
	c.SetPrimitive(d)
	return nil
}

// SetPrimitive makes d current and regenerates mesh and pipeline.
func (c *Controller) SetPrimitive(d primitives.Descriptor) {
	d = d.Clone()
	c.primitive = &d
	c.log.Info("setting primitive", "primitive", d.String())
	c.rebuild()
}

// rebuild releases the current GPU resources and regenerates them for the current
// (device, primitive) pair. Failures are logged and leave the later stages empty.
func (c *Controller) rebuild() {
	c.release()
	if c.dev == nil || c.primitive == nil {
		return
	}
	cpu, err := c.primitive.Mesh()
	if err != nil {
		c.log.Error("mesh generation failed", "primitive", c.primitive.String(), "error", err)
		return
	}
	mesh, err := c.backend.UploadMesh(cpu)
	if err != nil {
		c.log.Error("mesh upload failed", "primitive", c.primitive.String(), "device", c.dev.Name, "error", err)
		return
	}
	c.mesh, c.cpuMesh = mesh, cpu
	c.log.Debug("mesh ready", "vertices", cpu.VertexCount(), "triangles", cpu.TriangleCount())

	pipeline, err := c.backend.BuildPipeline(cpu.Layout())
	if err != nil {
		c.log.Error("pipeline build failed", "device", c.dev.Name, "error", err)
		return
	}
	c.pipeline = pipeline
}

func (c *Controller) release() {
	if c.pipeline != nil {
		c.pipeline.Release()
		c.pipeline = nil
	}
	if c.mesh != nil {
		c.mesh.Release()
		c.mesh = nil
	}
	c.cpuMesh = nil
}

// Close releases GPU resources. The controller can be restarted with Start.
func (c *Controller) Close() {
	c.release()
	c.dev = nil
	c.primitive = nil
}

// ClearColor advances the animator by one step and returns the frame's clear color.
func (c *Controller) ClearColor() clearcolor.Color {
	return c.color.Update(c.rate)
}

// Rate returns the per-frame color step.
func (c *Controller) Rate() float64 { return c.rate }

// SetRate changes the per-frame color step.
func (c *Controller) SetRate(rate float64) error {
	if !(rate > 0 && rate <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	c.rate = rate
	return nil
}

// Draw issues the frame's draw call. Without a mesh and pipeline it draws nothing.
func (c *Controller) Draw() {
	if c.pipeline == nil || c.mesh == nil {
		return
	}
	c.backend.DrawWireframe(c.pipeline, c.mesh)
}

// Ready reports whether Draw will issue a draw call.
func (c *Controller) Ready() bool {
	return c.pipeline != nil && c.mesh != nil
}

// Device returns the attached device.
func (c *Controller) Device() (device.Device, bool) {
	if c.dev == nil {
		return device.Device{}, false
	}
	return *c.dev, true
}

// Primitive returns a copy of the current primitive.
func (c *Controller) Primitive() (primitives.Descriptor, bool) {
	if c.primitive == nil {
		return primitives.Descriptor{}, false
	}
	return c.primitive.Clone(), true
}

// Status summarizes device, primitive and mesh size for the HUD.
func (c *Controller) Status() string {
	dev := "none"
	if c.dev != nil {
		dev = c.dev.Name
	}
	prim := "none"
	if c.primitive != nil {
		prim = string(c.primitive.Kind)
	}
	s := fmt.Sprintf("device: %s  primitive: %s", dev, prim)
	if c.cpuMesh != nil {
		s += fmt.Sprintf("  vertices: %d  triangles: %d", c.cpuMesh.VertexCount(), c.cpuMesh.TriangleCount())
	}
	if !c.Ready() {
		s += "  (not drawing)"
	}
	return s
}
