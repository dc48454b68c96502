package scene

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/mesh"
)

// MeshSource looks up geometry by id. mesh.Arena implements it.
type MeshSource interface {
	Mesh(id mesh.ID) *mesh.Geometry
}

// WriteOBJ writes every instance of the graph as a Wavefront OBJ object with
// its transform applied. Blocks are written in id order and each block is
// offset by offset times its index along -Y so blocks do not overlap.
// Instances whose mesh is unknown to meshes are skipped.
func (g *Graph) WriteOBJ(w io.Writer, meshes MeshSource, offset float32) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# text3d scene")

	base, normal := 1, 0 // OBJ indices are 1-based
	for bi, id := range g.Blocks() {
		dy := -offset * float32(bi)
		for ci, inst := range g.nodes[id].Children {
			geom := meshes.Mesh(inst.Mesh)
			if geom == nil {
				continue
			}
			fmt.Fprintf(bw, "o block%d_glyph%d\n", id, ci)

			tr, sc := inst.Transform.Translation, inst.Transform.Scale
			for _, p := range geom.Positions {
				fmt.Fprintf(bw, "v %g %g %g\n",
					p[0]*sc.X+tr.X, p[1]*sc.Y+tr.Y+dy, p[2]*sc.Z+tr.Z)
			}
			for _, uv := range geom.UVs {
				fmt.Fprintf(bw, "vt %g %g\n", uv[0], 1-uv[1])
			}
			fmt.Fprintln(bw, "vn 0 0 1")
			normal++
			writeFaces(bw, geom.Indices, base, normal, inst.Mode)
			base += len(geom.Positions)
		}
	}
	return bw.Flush()
}

// writeFaces writes triangles as faces, or as closed polylines in outline
// mode.
func writeFaces(w io.Writer, indices []uint32, base, normal int, mode text3d.RenderMode) {
	for i := 0; i+2 < len(indices); i += 3 {
		a := int(indices[i]) + base
		b := int(indices[i+1]) + base
		c := int(indices[i+2]) + base
		if mode == text3d.RenderOutline {
			fmt.Fprintf(w, "l %d %d %d %d\n", a, b, c, a)
			continue
		}
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, normal, b, b, normal, c, c, normal)
	}
}
