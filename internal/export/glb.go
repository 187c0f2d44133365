package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// GLB writes a binary glTF 2.0 file. Every entity becomes a node carrying its local transform;
// composite parts become child nodes and each primitive gets its own mesh.
func GLB(w io.Writer, entities []entity.Entity) error {
	b := &glbBuilder{doc: gltf.NewDocument(), materials: make(map[*entity.Material]int)}
	for _, e := range entities {
		n, err := b.node(e)
		if err != nil {
			return err
		}
		b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, n)
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(b.doc); err != nil {
		return fmt.Errorf("export: glb: %w", err)
	}
	return nil
}

type glbBuilder struct {
	doc       *gltf.Document
	materials map[*entity.Material]int
}

func (b *glbBuilder) node(e entity.Entity) (int, error) {
	t := e.Transform()
	q := geom.Quaternion(t.Rotation)
	n := &gltf.Node{
		Name:        entity.Label(e),
		Translation: [3]float64{float64(t.Position[0]), float64(t.Position[1]), float64(t.Position[2])},
		Rotation:    [4]float64{float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])},
		Scale:       [3]float64{float64(t.Scale[0]), float64(t.Scale[1]), float64(t.Scale[2])},
	}
	if p, ok := e.(*entity.Primitive); ok {
		m, err := b.mesh(p)
		if err != nil {
			return 0, err
		}
		n.Mesh = gltf.Index(m)
	}
	for _, c := range e.Children() {
		ci, err := b.node(c)
		if err != nil {
			return 0, err
		}
		n.Children = append(n.Children, ci)
	}
	b.doc.Nodes = append(b.doc.Nodes, n)
	return len(b.doc.Nodes) - 1, nil
}

func (b *glbBuilder) mesh(p *entity.Primitive) (int, error) {
	mesh := p.Shape.Mesh()
	prim := &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(b.doc, mesh.Indices)),
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   modeler.WritePosition(b.doc, mesh.Positions),
			gltf.NORMAL:     modeler.WriteNormal(b.doc, mesh.Normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(b.doc, mesh.UVs),
		},
	}
	if p.Material != nil {
		mi, err := b.material(p.Material)
		if err != nil {
			return 0, err
		}
		prim.Material = gltf.Index(mi)
	}
	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{Name: entity.Label(p), Primitives: []*gltf.Primitive{prim}})
	return len(b.doc.Meshes) - 1, nil
}

func (b *glbBuilder) material(m *entity.Material) (int, error) {
	if i, ok := b.materials[m]; ok {
		return i, nil
	}
	r, g, bl := m.Color.LinearRgb()
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{r, g, bl, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	if m.Texture != nil && m.Texture.Image != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, m.Texture.Image); err != nil {
			return 0, fmt.Errorf("export: glb texture: %w", err)
		}
		img, err := modeler.WriteImage(b.doc, fmt.Sprintf("texture_%d", len(b.doc.Images)), "image/png", &buf)
		if err != nil {
			return 0, fmt.Errorf("export: glb texture: %w", err)
		}
		b.doc.Textures = append(b.doc.Textures, &gltf.Texture{Source: gltf.Index(img)})
		pbr.BaseColorTexture = &gltf.TextureInfo{Index: len(b.doc.Textures) - 1}
	}
	mat := &gltf.Material{
		DoubleSided:          m.DoubleSided,
		PBRMetallicRoughness: pbr,
	}
	if m.EmissiveIntensity > 0 {
		k := float64(m.EmissiveIntensity)
		r, g, bl := m.Emissive.LinearRgb()
		mat.EmissiveFactor = [3]float64{r * k, g * k, bl * k}
	}
	b.doc.Materials = append(b.doc.Materials, mat)
	b.materials[m] = len(b.doc.Materials) - 1
	return b.materials[m], nil
}
