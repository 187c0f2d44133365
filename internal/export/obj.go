package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// OBJ writes one object block per primitive with world-space vertices and normals.
func OBJ(w io.Writer, entities []entity.Entity) error {
	bw := bufio.NewWriter(w)
	var nv, nt, nn int
	for _, top := range entities {
		entity.Walk(top, geom.Identity(), func(e entity.Entity, world geom.Mat4) bool {
			p, ok := e.(*entity.Primitive)
			if !ok {
				return true
			}
			mesh := p.Shape.Mesh()
			normals := world.NormalMatrix()
			fmt.Fprintf(bw, "o %s\n", objName(p))
			for _, v := range mesh.Positions {
				wp := world.MulPoint(v)
				writeVec(bw, "v", wp[:]...)
			}
			for _, uv := range mesh.UVs {
				writeVec(bw, "vt", uv[:]...)
			}
			for _, n := range mesh.Normals {
				wn := normals.MulDir(n).Normalize()
				writeVec(bw, "vn", wn[:]...)
			}
			for i := 0; i+2 < len(mesh.Indices); i += 3 {
				bw.WriteString("f")
				for _, idx := range mesh.Indices[i : i+3] {
					fmt.Fprintf(bw, " %d/%d/%d", nv+int(idx)+1, nt+int(idx)+1, nn+int(idx)+1)
				}
				bw.WriteByte('\n')
			}
			nv += len(mesh.Positions)
			nt += len(mesh.UVs)
			nn += len(mesh.Normals)
			return true
		})
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: obj: %w", err)
	}
	return nil
}

func objName(p *entity.Primitive) string {
	if p.Name() != "" {
		return p.Name()
	}
	if p.ID() != "" {
		return p.ID()
	}
	return string(p.Kind())
}

func writeVec(w *bufio.Writer, tag string, xs ...float32) {
	w.WriteString(tag)
	for _, x := range xs {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	w.WriteByte('\n')
}
