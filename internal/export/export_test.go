package export

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
	"scene-editor/internal/sceneio"
)

func testScene() []entity.Entity {
	cube := entity.NewPrimitive("Cube", entity.KindBox, geom.Box(1, 1, 1), entity.NewMaterial(entity.Hex(0xff0000)))
	cube.SetID("Mesh_1")
	cube.Transform().Position = geom.V3(10, 0, 0)

	plane := entity.NewPrimitive("Plane", entity.KindPlane, geom.Plane(2, 2), entity.NewMaterial(entity.Hex(0xffffff)))
	plane.Material.DoubleSided = true
	plane.Material.Texture = &entity.Texture{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}
	body := entity.NewPrimitive("Body", entity.KindBox, geom.Box(2, 1, 1), entity.NewMaterial(entity.Hex(0x00ff00)))
	group := entity.NewComposite("Group", entity.KindGroup, body, plane)
	group.SetID("Group_2")
	group.Transform().Rotation = geom.V3(0, 1, 0)
	return []entity.Entity{cube, group}
}

func countPrefix(text, prefix string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestLookup(t *testing.T) {
	e, err := Lookup("glb")
	require.NoError(t, err)
	assert.Equal(t, ".glb", e.Ext)

	_, err = Lookup("fbx")
	assert.ErrorContains(t, err, "fbx")
	assert.Equal(t, []string{"glb", "json", "obj"}, Names())
}

func TestOBJ(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OBJ(&buf, testScene()))
	out := buf.String()

	assert.Equal(t, 3, countPrefix(out, "o "))
	assert.Equal(t, 24+24+4, countPrefix(out, "v "))
	assert.Equal(t, 12+12+2, countPrefix(out, "f "))
	assert.Contains(t, out, "o Cube\nv 10.5 -0.5 0.5\n")

	// faces of the second object are offset past the first object's 24 vertices
	body := out[strings.Index(out, "o Body"):]
	face := body[strings.Index(body, "\nf ")+1:]
	assert.True(t, strings.HasPrefix(face, "f 25/25/25 "), face[:20])
}

func TestGLB(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, testScene()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("glTF")))

	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(doc))

	require.Len(t, doc.Scenes, 1)
	require.Len(t, doc.Scenes[0].Nodes, 2)
	assert.Len(t, doc.Nodes, 4)
	assert.Len(t, doc.Meshes, 3)
	assert.Len(t, doc.Materials, 3)
	assert.Len(t, doc.Textures, 1)

	cube := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, "Cube", cube.Name)
	assert.Equal(t, [3]float64{10, 0, 0}, cube.Translation)
	require.NotNil(t, cube.Mesh)
	red := doc.Materials[*doc.Meshes[*cube.Mesh].Primitives[0].Material]
	assert.Equal(t, [4]float64{1, 0, 0, 1}, *red.PBRMetallicRoughness.BaseColorFactor)

	group := doc.Nodes[doc.Scenes[0].Nodes[1]]
	assert.Equal(t, "Group", group.Name)
	assert.Nil(t, group.Mesh)
	require.Len(t, group.Children, 2)
	q := geom.Quaternion(geom.V3(0, 1, 0))
	assert.InDelta(t, float64(q[1]), group.Rotation[1], 1e-6)
	assert.InDelta(t, float64(q[3]), group.Rotation[3], 1e-6)

	plane := doc.Nodes[group.Children[1]]
	assert.Equal(t, "Plane", plane.Name)
	mat := doc.Materials[*doc.Meshes[*plane.Mesh].Primitives[0].Material]
	assert.True(t, mat.DoubleSided)
	assert.NotNil(t, mat.PBRMetallicRoughness.BaseColorTexture)
}

func TestGLBLinearFactors(t *testing.T) {
	mtl := entity.NewMaterial(entity.Hex(0x808080))
	mtl.Emissive = entity.Hex(0xff8000)
	mtl.EmissiveIntensity = 2
	cube := entity.NewPrimitive("Cube", entity.KindBox, geom.Box(1, 1, 1), mtl)

	var buf bytes.Buffer
	require.NoError(t, GLB(&buf, []entity.Entity{cube}))
	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(doc))
	require.Len(t, doc.Materials, 1)

	base := *doc.Materials[0].PBRMetallicRoughness.BaseColorFactor
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.2159, base[i], 1e-3)
	}
	glow := doc.Materials[0].EmissiveFactor
	assert.InDelta(t, 2.0, glow[0], 1e-3)
	assert.InDelta(t, 0.4318, glow[1], 1e-3)
	assert.InDelta(t, 0.0, glow[2], 1e-6)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, testScene()))
	res, err := sceneio.Deserialize(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, res.Entities, 2)
}
