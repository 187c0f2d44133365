package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Raylib generates cylinders and cones with the base at y=0 and planes in XZ facing +Y. Shapes
// are centered with the plane in XY facing +Z, so every cached mesh carries a fix-up matrix.
type cachedMesh struct {
	mesh   rl.Mesh
	offset geom.Mat4
}

// meshCache owns the GPU meshes, the shared lit material and uploaded textures. Everything is
// created lazily so that GPU resources are allocated after the window exists.
type meshCache struct {
	meshes   map[geom.Shape]cachedMesh
	textures map[*entity.Texture]rl.Texture2D
	mtl      rl.Material
	loaded   bool
	locs     map[string]int32
	viewPos  [3]float32
	lightDir [3]float32
}

func newMeshCache() *meshCache {
	return &meshCache{
		meshes:   make(map[geom.Shape]cachedMesh),
		textures: make(map[*entity.Texture]rl.Texture2D),
		locs:     make(map[string]int32),
		lightDir: defaultLightDir,
	}
}

func (c *meshCache) ensureMaterial() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.mtl = rl.LoadMaterialDefault()
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(shader) {
		return
	}
	c.mtl.Shader = shader
	for _, name := range []string{"useTexture", "emissive", "viewPos", "lightDir", "ambient",
		"lightColor", "lightIntensity", "specularPower", "specularStrength"} {
		c.locs[name] = rl.GetShaderLocation(shader, name)
	}
}

// mesh returns the GPU mesh for s, generating it on first use.
func (c *meshCache) mesh(s geom.Shape) cachedMesh {
	if m, ok := c.meshes[s]; ok {
		return m
	}
	m := cachedMesh{offset: geom.Identity()}
	switch s.Kind {
	case geom.ShapeBox:
		m.mesh = rl.GenMeshCube(s.Width, s.Height, s.Depth)
	case geom.ShapeSphere:
		m.mesh = rl.GenMeshSphere(s.Radius, orDefault(s.Rings, 16), orDefault(s.Segments, 16))
	case geom.ShapePlane:
		m.mesh = rl.GenMeshPlane(s.Width, s.Height, 1, 1)
		m.offset = geom.RotationMatrix(geom.V3(math32.Pi/2, 0, 0))
	case geom.ShapeCylinder:
		// Tapered cylinders draw with the bottom radius.
		m.mesh = rl.GenMeshCylinder(s.Radius, s.Height, orDefault(s.Segments, 16))
		m.offset = geom.Compose(geom.V3(0, -s.Height/2, 0), geom.Euler{}, geom.V3(1, 1, 1))
	case geom.ShapeCone:
		m.mesh = rl.GenMeshCone(s.Radius, s.Height, orDefault(s.Segments, 16))
		m.offset = geom.Compose(geom.V3(0, -s.Height/2, 0), geom.Euler{}, geom.V3(1, 1, 1))
	default:
		return m
	}
	c.meshes[s] = m
	return m
}

func orDefault(n, def int) int {
	if n < 3 {
		return def
	}
	return n
}

func (c *meshCache) texture(t *entity.Texture) (rl.Texture2D, bool) {
	if t == nil || t.Image == nil {
		return rl.Texture2D{}, false
	}
	if tex, ok := c.textures[t]; ok {
		return tex, true
	}
	img := rl.NewImageFromImage(t.Image)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, false
	}
	c.textures[t] = tex
	return tex, true
}

// SetView sets the eye position used for specular highlights and uploads the per-frame lighting
// uniforms. Call once per frame before Draw.
func (c *meshCache) SetView(eye geom.Vec3) {
	c.ensureMaterial()
	c.viewPos = [3]float32{eye[0], eye[1], eye[2]}
	c.setFrameUniforms()
}

func (c *meshCache) setVec(name string, v []float32, typ rl.ShaderUniformDataType) {
	if loc, ok := c.locs[name]; ok && loc >= 0 {
		rl.SetShaderValueV(c.mtl.Shader, loc, v, typ, 1)
	}
}

func (c *meshCache) setFloat(name string, v float32) {
	if loc, ok := c.locs[name]; ok && loc >= 0 {
		rl.SetShaderValue(c.mtl.Shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (c *meshCache) setFrameUniforms() {
	viewPos := c.viewPos
	lightDir := c.lightDir
	amb := defaultAmbient
	lightColor := defaultLightColor
	c.setVec("viewPos", viewPos[:], rl.ShaderUniformVec3)
	c.setVec("lightDir", lightDir[:], rl.ShaderUniformVec3)
	c.setVec("ambient", amb[:], rl.ShaderUniformVec4)
	c.setVec("lightColor", lightColor[:], rl.ShaderUniformVec3)
	c.setFloat("lightIntensity", defaultLightIntensity)
	c.setFloat("specularPower", defaultSpecularPower)
	c.setFloat("specularStrength", defaultSpecularStrength)
}

// Draw draws e and its parts. Must be called between BeginMode3D and EndMode3D.
func (c *meshCache) Draw(e entity.Entity) {
	c.ensureMaterial()
	entity.Walk(e, geom.Identity(), func(part entity.Entity, world geom.Mat4) bool {
		if p, ok := part.(*entity.Primitive); ok {
			c.drawPrimitive(p, world)
		}
		return true
	})
}

func (c *meshCache) drawPrimitive(p *entity.Primitive, world geom.Mat4) {
	m := c.mesh(p.Shape)
	if m.mesh.VertexCount == 0 {
		return
	}
	mtl := p.Material
	if mtl == nil {
		mtl = entity.NewMaterial(entity.Hex(0x808080))
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = Color(mtl.Color)
	}
	var useTexture float32
	if tex, ok := c.texture(mtl.Texture); ok {
		rl.SetMaterialTexture(&c.mtl, rl.MapAlbedo, tex)
		useTexture = 1
	}
	c.setFloat("useTexture", useTexture)
	glow := mtl.Emissive
	k := float64(mtl.EmissiveIntensity)
	emissive := [3]float32{float32(glow.R * k), float32(glow.G * k), float32(glow.B * k)}
	c.setVec("emissive", emissive[:], rl.ShaderUniformVec3)

	if mtl.DoubleSided {
		rl.DisableBackfaceCulling()
	}
	rl.DrawMesh(m.mesh, c.mtl, Matrix(world.Mul(m.offset)))
	if mtl.DoubleSided {
		rl.EnableBackfaceCulling()
	}
}

// Release unloads the textures of removed that no entity in keep still draws.
func (c *meshCache) Release(removed entity.Entity, keep []entity.Entity) {
	for _, t := range c.orphans(removed, keep) {
		rl.UnloadTexture(c.textures[t])
		delete(c.textures, t)
	}
}

// orphans returns the uploaded textures drawn by removed and by nothing in keep.
func (c *meshCache) orphans(removed entity.Entity, keep []entity.Entity) []*entity.Texture {
	used := make(map[*entity.Texture]bool)
	for _, e := range keep {
		collectTextures(e, used)
	}
	gone := make(map[*entity.Texture]bool)
	collectTextures(removed, gone)
	var out []*entity.Texture
	for t := range gone {
		if _, ok := c.textures[t]; ok && !used[t] {
			out = append(out, t)
		}
	}
	return out
}

func collectTextures(e entity.Entity, into map[*entity.Texture]bool) {
	entity.Walk(e, geom.Identity(), func(part entity.Entity, _ geom.Mat4) bool {
		if p, ok := part.(*entity.Primitive); ok && p.Material != nil && p.Material.Texture != nil {
			into[p.Material.Texture] = true
		}
		return true
	})
}

// Unload releases every GPU resource.
func (c *meshCache) Unload() {
	for _, m := range c.meshes {
		rl.UnloadMesh(&m.mesh)
	}
	for _, t := range c.textures {
		rl.UnloadTexture(t)
	}
	c.meshes = make(map[geom.Shape]cachedMesh)
	c.textures = make(map[*entity.Texture]rl.Texture2D)
	if c.loaded {
		rl.UnloadShader(c.mtl.Shader)
		c.loaded = false
	}
}
