package editor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
	"scene-editor/internal/logger"
	"scene-editor/internal/procgen"
	"scene-editor/internal/scene"
	"scene-editor/internal/sceneio"
	"scene-editor/internal/storage"
)

type fakeGraph struct{ members map[entity.Entity]bool }

func (g *fakeGraph) Add(e entity.Entity)    { g.members[e] = true }
func (g *fakeGraph) Remove(e entity.Entity) { delete(g.members, e) }

type fakeHandle struct {
	attached entity.Entity
	mode     scene.HandleMode
}

func (h *fakeHandle) Attach(e entity.Entity)     { h.attached = e }
func (h *fakeHandle) Detach()                    { h.attached = nil }
func (h *fakeHandle) SetMode(m scene.HandleMode) { h.mode = m }

type fakePanel struct {
	info  string
	color colorful.Color
}

func (p *fakePanel) SetHighlight(string, bool) {}
func (p *fakePanel) SetInfo(text string)       { p.info = text }
func (p *fakePanel) SetColor(c colorful.Color) { p.color = c }

type fakeGrid struct{ visible bool }

func (g *fakeGrid) SetGridVisible(v bool) { g.visible = v }

type harness struct {
	s      *Session
	graph  *fakeGraph
	handle *fakeHandle
	panel  *fakePanel
	grid   *fakeGrid
	store  *storage.Store
	log    *logger.Logger
}

func newHarness(t *testing.T, store *storage.Store) *harness {
	t.Helper()
	if store == nil {
		var err error
		store, err = storage.Memory()
		require.NoError(t, err)
	}
	h := &harness{
		graph:  &fakeGraph{members: make(map[entity.Entity]bool)},
		handle: &fakeHandle{},
		panel:  &fakePanel{},
		grid:   &fakeGrid{},
		store:  store,
		log:    logger.New(""),
	}
	s, err := New(Options{Graph: h.graph, Handle: h.handle, Panel: h.panel, Grid: h.grid, Store: store, Log: h.log})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	h.s = s
	return h
}

func (h *harness) logged(substr string) bool {
	for _, l := range h.log.Lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func pngOf(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewAppliesMode(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, scene.Translate, h.s.Mode())
	assert.Equal(t, scene.Translate, h.handle.mode)

	_, err := New(Options{Mode: "shear"})
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	h := newHarness(t, nil)
	h.s.Seed()
	assert.Equal(t, 2, h.s.Registry().Len())
	assert.Len(t, h.graph.members, 2)
	require.NotNil(t, h.s.Selected())
	assert.Equal(t, "Mesh_2", h.s.Selected().ID())
	assert.Equal(t, "Sphere", entity.Label(h.s.Selected()))
}

func TestAddAndDelete(t *testing.T) {
	h := newHarness(t, nil)
	b := h.s.AddBox()
	assert.Equal(t, "Mesh_1", b.ID())
	assert.Equal(t, b, h.s.Selected())
	assert.Equal(t, b, h.handle.attached)
	assert.True(t, h.graph.members[b])
	h.s.AddSphere()
	p := h.s.AddPlane()
	assert.Equal(t, "Mesh_3", p.ID())

	require.NoError(t, h.s.DeleteSelected())
	assert.Nil(t, h.s.Selected())
	assert.Nil(t, h.handle.attached)
	assert.Equal(t, scene.NoInfo, h.panel.info)
	assert.False(t, h.graph.members[p])
	assert.Equal(t, 2, h.s.Registry().Len())
	assert.ErrorIs(t, h.s.DeleteSelected(), ErrNoSelection)
}

func TestGenerateFromText(t *testing.T) {
	h := newHarness(t, nil)
	e, ok := h.s.GenerateFromText("a small house")
	require.True(t, ok)
	assert.Equal(t, "Group_1", e.ID())
	assert.Len(t, e.Children(), 2)

	_, ok = h.s.GenerateFromText("  ")
	assert.False(t, ok)
	assert.Equal(t, 1, h.s.Registry().Len())
}

func TestGenerateFromImage(t *testing.T) {
	h := newHarness(t, nil)
	done := h.s.GenerateFromImage(context.Background(), bytes.NewReader(pngOf(t, color.White)))
	h.s.Wait()
	assert.Equal(t, 0, h.s.Registry().Len(), "registered only on drain")
	assert.Equal(t, 1, h.s.Drain())
	require.NoError(t, <-done)

	require.Equal(t, 1, h.s.Registry().Len())
	e := h.s.Selected()
	require.NotNil(t, e)
	assert.Equal(t, "AI_Image_Sphere", e.Name())
	assert.NotNil(t, e.SurfaceMaterial().Texture)
}

func TestGenerateFromImageFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.s.AddBox()
	done := h.s.GenerateFromImage(context.Background(), strings.NewReader("not an image"))
	assert.ErrorIs(t, <-done, procgen.ErrNotImage)
	h.s.Wait()
	assert.Equal(t, 0, h.s.Drain())
	assert.Equal(t, 1, h.s.Registry().Len())
	assert.True(t, h.logged("image generation failed"))
}

func TestGenerateFromImageCancelled(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := h.s.GenerateFromImage(ctx, bytes.NewReader(pngOf(t, color.White)))
	assert.ErrorIs(t, <-done, context.Canceled)
	h.s.Wait()
	h.s.Drain()
	assert.Equal(t, 0, h.s.Registry().Len())
}

func TestImportNonJSONLeavesScene(t *testing.T) {
	h := newHarness(t, nil)
	a := h.s.AddBox()
	h.s.AddSphere()
	h.s.Select(a)
	before := h.s.Registry().All()

	err := h.s.ImportJSON([]byte("this is not json"))
	assert.ErrorIs(t, err, sceneio.ErrMalformed)
	assert.Equal(t, before, h.s.Registry().All())
	assert.Equal(t, a, h.s.Selected())
	assert.True(t, h.logged("failed to import scene"))
}

func TestImportSkipsBadRecords(t *testing.T) {
	h := newHarness(t, nil)
	h.s.AddBox()
	doc := `{"objects": [{"metaId": "Mesh_7", "name": "Sphere"}, {"metaId": "Mesh_8", "scale": [1]}]}`
	require.NoError(t, h.s.ImportJSON([]byte(doc)))

	all := h.s.Registry().All()
	require.Len(t, all, 1)
	assert.Equal(t, "Mesh_7", all[0].ID())
	assert.Nil(t, h.s.Selected())
	assert.True(t, h.logged("skipped"))

	// identifiers continue past imported ones
	assert.Equal(t, "Mesh_8", h.s.AddBox().ID())
}

func TestSaveLoadLocal(t *testing.T) {
	h := newHarness(t, nil)
	b := h.s.AddBox()
	b.Transform().Position = geom.V3(3, 2, 1)
	b.Transform().Rotation = geom.V3(0.5, 0, 0)
	require.NoError(t, h.s.SetColor("#336699"))
	h.s.GenerateFromText("tree")
	require.NoError(t, h.s.SaveLocal())

	other := newHarness(t, h.store)
	require.NoError(t, other.s.LoadLocal())
	all := other.s.Registry().All()
	require.Len(t, all, 2)
	assert.Equal(t, "Mesh_1", all[0].ID())
	assert.Equal(t, *b.Transform(), *all[0].Transform())
	assert.Equal(t, uint32(0x336699), entity.HexValue(all[0].SurfaceMaterial().Color))
	assert.Equal(t, "Tree", all[1].Name())
	assert.Equal(t, "Mesh_3", other.s.AddBox().ID())
}

func TestLoadLocalMissing(t *testing.T) {
	h := newHarness(t, nil)
	a := h.s.AddBox()
	err := h.s.LoadLocal()
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, []entity.Entity{a}, h.s.Registry().All())
	assert.True(t, h.logged("no scene in local storage"))
}

func TestImportAttachesTexturesLater(t *testing.T) {
	h := newHarness(t, nil)
	done := h.s.GenerateFromImage(context.Background(), bytes.NewReader(pngOf(t, color.RGBA{128, 128, 128, 255})))
	h.s.Wait()
	h.s.Drain()
	require.NoError(t, <-done)
	data, err := h.s.Document()
	require.NoError(t, err)

	other := newHarness(t, nil)
	require.NoError(t, other.s.ImportJSON(data))
	e := other.s.Registry().All()[0]
	assert.Equal(t, "AI_Image_Plane", e.Name())
	assert.Nil(t, e.SurfaceMaterial().Texture)

	other.s.Wait()
	other.s.Drain()
	require.NotNil(t, e.SurfaceMaterial().Texture)
	assert.Equal(t, procgen.TextureSize, e.SurfaceMaterial().Texture.Image.Bounds().Dx())
}

func TestSetColor(t *testing.T) {
	h := newHarness(t, nil)
	assert.ErrorIs(t, h.s.SetColor("#ff0000"), ErrNoSelection)
	h.s.AddBox()
	assert.Error(t, h.s.SetColor("red"))
	require.NoError(t, h.s.SetColor("#ff0000"))
	assert.Equal(t, uint32(0xff0000), entity.HexValue(h.s.Selected().SurfaceMaterial().Color))
	assert.Equal(t, uint32(0xff0000), entity.HexValue(h.panel.color))
}

func TestSetModeAndSelectID(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.s.SetMode("scale"))
	assert.Equal(t, scene.Scale, h.handle.mode)
	assert.Error(t, h.s.SetMode("bend"))
	assert.Equal(t, scene.Scale, h.s.Mode())

	a := h.s.AddBox()
	h.s.AddBox()
	require.NoError(t, h.s.SelectID(a.ID()))
	assert.Equal(t, a, h.s.Selected())
	assert.Error(t, h.s.SelectID("Mesh_99"))
	assert.Equal(t, a, h.s.Selected())
}

func TestPickPointer(t *testing.T) {
	h := newHarness(t, nil)
	b := h.s.AddBox()
	b.Transform().Position = geom.Vec3{}
	h.s.Select(nil)
	cam := geom.Camera{Position: geom.V3(0, 0, 5), Up: geom.V3(0, 1, 0), Fovy: 45, Aspect: 1}
	assert.Equal(t, b, h.s.PickPointer(cam, 100, 100, 200, 200))
	assert.Nil(t, h.s.PickPointer(cam, 0, 0, 200, 200))
	assert.Nil(t, h.s.Selected())
}

func TestExport(t *testing.T) {
	h := newHarness(t, nil)
	h.s.AddBox()
	var buf bytes.Buffer
	require.NoError(t, h.s.Export("json", &buf))
	assert.Contains(t, buf.String(), `"metaId": "Mesh_1"`)
	assert.Error(t, h.s.Export("stl", &buf))
}

func TestClose(t *testing.T) {
	h := newHarness(t, nil)
	h.s.AddBox()
	h.s.GenerateFromText("lamp")
	h.s.Close()
	assert.Equal(t, 0, h.s.Registry().Len())
	assert.Empty(t, h.graph.members)
	assert.Nil(t, h.handle.attached)

	done := h.s.GenerateFromImage(context.Background(), bytes.NewReader(pngOf(t, color.White)))
	assert.Error(t, <-done)
	h.s.Close()
}

func TestCloseCompletesQueuedImage(t *testing.T) {
	h := newHarness(t, nil)
	done := h.s.GenerateFromImage(context.Background(), bytes.NewReader(pngOf(t, color.White)))
	h.s.Wait()
	h.s.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("image result never delivered")
	}
	assert.Equal(t, 0, h.s.Drain())
	assert.Equal(t, 0, h.s.Registry().Len())
}
