package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"primitive-viewer/internal/clearcolor"
	"primitive-viewer/internal/device"
	"primitive-viewer/internal/geometry"
	"primitive-viewer/internal/primitives"
)

type fakeMesh struct {
	id       int
	indices  int
	released bool
}

func (m *fakeMesh) IndexCount() int { return m.indices }
func (m *fakeMesh) Release()        { m.released = true }

type fakePipeline struct {
	id       int
	released bool
}

func (p *fakePipeline) Release() { p.released = true }

type drawCall struct {
	pipeline *fakePipeline
	mesh     *fakeMesh
}

type fakeBackend struct {
	attached    []device.Device
	meshes      []*fakeMesh
	pipelines   []*fakePipeline
	draws       []drawCall
	uploadErr   error
	pipelineErr error
}

func (b *fakeBackend) Attach(d device.Device) { b.attached = append(b.attached, d) }

func (b *fakeBackend) UploadMesh(m *geometry.Mesh) (Mesh, error) {
	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	fm := &fakeMesh{id: len(b.meshes), indices: len(m.Indices)}
	b.meshes = append(b.meshes, fm)
	return fm, nil
}

func (b *fakeBackend) BuildPipeline(layout geometry.VertexLayout) (Pipeline, error) {
	if b.pipelineErr != nil {
		return nil, b.pipelineErr
	}
	if _, ok := layout.Find(geometry.AttrPosition); !ok {
		return nil, errors.New("no position")
	}
	p := &fakePipeline{id: len(b.pipelines)}
	b.pipelines = append(b.pipelines, p)
	return p, nil
}

func (b *fakeBackend) DrawWireframe(p Pipeline, m Mesh) {
	b.draws = append(b.draws, drawCall{pipeline: p.(*fakePipeline), mesh: m.(*fakeMesh)})
}

func (b *fakeBackend) live() (meshes, pipelines int) {
	for _, m := range b.meshes {
		if !m.released {
			meshes++
		}
	}
	for _, p := range b.pipelines {
		if !p.released {
			pipelines++
		}
	}
	return meshes, pipelines
}

type fakeDevices struct {
	devs []device.Device
	def  int
}

func (q *fakeDevices) Devices() []device.Device { return q.devs }
func (q *fakeDevices) Default() device.Device   { return q.devs[q.def] }

// smallCatalog keeps meshes tiny so tests stay fast.
func smallCatalog(t *testing.T) *primitives.Catalog {
	t.Helper()
	c, err := primitives.Parse([]byte(`primitives:
  - type: cube
    extent: [1, 1, 1]
    segments: [1, 1, 1]
  - type: sphere
    extent: [1, 1, 1]
    segments: [8, 6]
  - type: icosahedron
    extent: [1, 1, 1]
`))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func newTestController(t *testing.T) (*Controller, *fakeBackend, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := &fakeBackend{}
	q := &fakeDevices{devs: []device.Device{{ID: 0, Name: "Built-in"}, {ID: 1, Name: "External"}}}
	c := New(log, b, q, smallCatalog(t), rand.New(rand.NewPCG(1, 1)), clearcolor.DefaultRate)
	return c, b, &buf
}

func TestStartAttachesDefaultDeviceAndBuilds(t *testing.T) {
	c, b, buf := newTestController(t)
	c.Start()

	if len(b.attached) != 1 || b.attached[0].Name != "Built-in" {
		t.Fatalf("attached = %+v, want default device once", b.attached)
	}
	if !c.Ready() {
		t.Fatal("controller not ready after Start")
	}
	if _, ok := c.Primitive(); !ok {
		t.Fatal("no primitive after Start")
	}
	if m, p := b.live(); m != 1 || p != 1 {
		t.Errorf("live meshes=%d pipelines=%d, want 1 and 1", m, p)
	}
	if !strings.Contains(buf.String(), "setting device") || !strings.Contains(buf.String(), "Built-in") {
		t.Errorf("device change not logged:\n%s", buf.String())
	}
}

func TestPrimitiveBeforeDeviceBuildsNothing(t *testing.T) {
	c, b, _ := newTestController(t)
	c.ChangePrimitive()
	if c.Ready() {
		t.Error("ready without a device")
	}
	if len(b.meshes) != 0 {
		t.Errorf("uploaded %d meshes without a device", len(b.meshes))
	}
	c.ChangeDevice()
	if !c.Ready() {
		t.Error("attaching a device did not build resources for the pending primitive")
	}
}

func TestChangeDeviceCyclesAndRebuilds(t *testing.T) {
	c, b, _ := newTestController(t)
	c.Start()

	c.ChangeDevice()
	d, _ := c.Device()
	if d.Name != "External" {
		t.Fatalf("device = %q, want External", d.Name)
	}
	c.ChangeDevice()
	d, _ = c.Device()
	if d.Name != "Built-in" {
		t.Fatalf("device = %q, want wrap to Built-in", d.Name)
	}
	if len(b.attached) != 3 {
		t.Errorf("Attach called %d times, want 3", len(b.attached))
	}
	// Each device change rebuilds for the new device and again for the new primitive.
	if len(b.meshes) != 5 {
		t.Errorf("uploaded %d meshes, want 5", len(b.meshes))
	}
	if m, p := b.live(); m != 1 || p != 1 {
		t.Errorf("live meshes=%d pipelines=%d, want 1 and 1", m, p)
	}
}

func TestChangeDeviceWithNoDevicesKeepsState(t *testing.T) {
	c, b, buf := newTestController(t)
	c.Start()
	c.devices = &fakeDevices{devs: nil}
	before := len(b.meshes)
	c.ChangeDevice()
	if d, _ := c.Device(); d.Name != "Built-in" {
		t.Errorf("device = %q, want unchanged", d.Name)
	}
	if len(b.meshes) != before || !c.Ready() {
		t.Error("state changed when no devices were available")
	}
	if !strings.Contains(buf.String(), "no devices") {
		t.Error("missing warning")
	}
}

func TestSetPrimitiveReleasesPrevious(t *testing.T) {
	c, b, _ := newTestController(t)
	c.Start()
	first := b.meshes[len(b.meshes)-1]
	firstPipeline := b.pipelines[len(b.pipelines)-1]

	if err := c.SelectKind(primitives.Icosahedron); err != nil {
		t.Fatal(err)
	}
	if !first.released || !firstPipeline.released {
		t.Error("previous mesh or pipeline not released")
	}
	p, _ := c.Primitive()
	if p.Kind != primitives.Icosahedron {
		t.Errorf("primitive = %s, want icosahedron", p.Kind)
	}
	last := b.meshes[len(b.meshes)-1]
	if last.indices != 60 {
		t.Errorf("uploaded mesh has %d indices, want 60", last.indices)
	}
}

func TestSelectKindMissing(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.SelectKind(primitives.Capsule); !errors.Is(err, ErrNotInCatalog) {
		t.Fatalf("SelectKind() = %v, want %v", err, ErrNotInCatalog)
	}
}

func TestMeshFailureClearsStateAndLogs(t *testing.T) {
	c, b, buf := newTestController(t)
	c.Start()
	old := b.meshes[len(b.meshes)-1]

	bad := primitives.Descriptor{Kind: primitives.Sphere, Extent: [3]float32{1, 1, 1}, Segments: []int{2, 2}}
	c.SetPrimitive(bad)

	if c.Ready() {
		t.Error("ready after failed mesh generation")
	}
	if !old.released {
		t.Error("stale mesh kept after failure")
	}
	if !strings.Contains(buf.String(), "mesh generation failed") {
		t.Errorf("failure not logged:\n%s", buf.String())
	}
	drawsBefore := len(b.draws)
	c.Draw()
	if len(b.draws) != drawsBefore {
		t.Error("Draw issued a call without mesh")
	}
	if p, ok := c.Primitive(); !ok || p.Kind != primitives.Sphere {
		t.Error("failed primitive should still be current")
	}
}

func TestUploadFailure(t *testing.T) {
	c, b, buf := newTestController(t)
	b.uploadErr = errors.New("out of memory")
	c.Start()
	if c.Ready() {
		t.Error("ready after failed upload")
	}
	if len(b.pipelines) != 0 {
		t.Error("pipeline built without a mesh")
	}
	if !strings.Contains(buf.String(), "mesh upload failed") {
		t.Errorf("failure not logged:\n%s", buf.String())
	}
}

func TestPipelineFailureKeepsMeshButSkipsDraw(t *testing.T) {
	c, b, buf := newTestController(t)
	b.pipelineErr = errors.New("compile error")
	c.Start()
	if c.Ready() {
		t.Error("ready without pipeline")
	}
	if m, _ := b.live(); m != 1 {
		t.Errorf("live meshes = %d, want 1", m)
	}
	c.Draw()
	if len(b.draws) != 0 {
		t.Error("Draw issued a call without pipeline")
	}
	if !strings.Contains(buf.String(), "pipeline build failed") {
		t.Errorf("failure not logged:\n%s", buf.String())
	}
	if !strings.Contains(c.Status(), "not drawing") {
		t.Errorf("Status() = %q, want not drawing", c.Status())
	}
}

func TestDrawIssuesExactlyOneCallPerFrame(t *testing.T) {
	c, b, _ := newTestController(t)
	c.Start()
	for i := 0; i < 3; i++ {
		c.Draw()
	}
	if len(b.draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(b.draws))
	}
	lastMesh := b.meshes[len(b.meshes)-1]
	lastPipeline := b.pipelines[len(b.pipelines)-1]
	for _, d := range b.draws {
		if d.mesh != lastMesh || d.pipeline != lastPipeline {
			t.Error("draw used resources other than the current ones")
		}
	}
}

func TestClearColorAdvancesOncePerCall(t *testing.T) {
	c, _, _ := newTestController(t)
	first := c.ClearColor()
	second := c.ClearColor()
	if first.G != clearcolor.DefaultRate || second.G != 2*clearcolor.DefaultRate {
		t.Errorf("green after two frames = %v, %v", first.G, second.G)
	}
}

func TestSetRate(t *testing.T) {
	c, _, _ := newTestController(t)
	for _, r := range []float64{0, -1, 1.5} {
		if err := c.SetRate(r); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("SetRate(%v) = %v, want %v", r, err, ErrInvalidRate)
		}
	}
	if err := c.SetRate(0.25); err != nil {
		t.Fatal(err)
	}
	if c.Rate() != 0.25 {
		t.Errorf("Rate() = %v", c.Rate())
	}
	if got := c.ClearColor().G; got != 0.25 {
		t.Errorf("green after one frame = %v, want 0.25", got)
	}
}

func TestNewFallsBackToDefaultRate(t *testing.T) {
	c := New(slog.Default(), &fakeBackend{}, &fakeDevices{}, primitives.Default(), rand.New(rand.NewPCG(0, 0)), 0)
	if c.Rate() != clearcolor.DefaultRate {
		t.Errorf("Rate() = %v, want %v", c.Rate(), clearcolor.DefaultRate)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	c, b, _ := newTestController(t)
	c.Start()
	c.Close()
	if m, p := b.live(); m != 0 || p != 0 {
		t.Errorf("live meshes=%d pipelines=%d after Close", m, p)
	}
	if _, ok := c.Device(); ok {
		t.Error("device still set after Close")
	}
	if got := c.Status(); !strings.Contains(got, "device: none") {
		t.Errorf("Status() = %q", got)
	}
}

func TestStatus(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.SelectKind(primitives.Icosahedron); err != nil {
		t.Fatal(err)
	}
	c.ChangeDevice()
	got := c.Status()
	for _, want := range []string{"Built-in", "icosahedron", "vertices: 12", "triangles: 20"} {
		if !strings.Contains(got, want) {
			t.Errorf("Status() = %q, missing %q", got, want)
		}
	}
}
