// Package mesh assembles triangle meshes from glyph contours and stores them
// in an arena addressed by small integer handles.
package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/text3d/outline"
)

// Shader locations of the interleaved vertex attributes.
const (
	LocationPosition = 0
	LocationNormal   = 1
	LocationUV       = 2
)

// VertexStride is the size in bytes of one interleaved vertex:
// position (3 x f32), normal (3 x f32), uv (2 x f32).
const VertexStride = (3 + 3 + 2) * 4

// Geometry is a triangle-list mesh in font design units.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32

	// Indices references vertices, three per triangle.
	Indices []uint32

	// Bounds is the glyph bounding box the UVs were computed from.
	Bounds outline.Rect
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Interleave packs the vertex attributes into one buffer laid out as
// described by VertexLayout.
func (g *Geometry) Interleave() []float32 {
	out := make([]float32, 0, len(g.Positions)*VertexStride/4)
	for i, p := range g.Positions {
		n, uv := g.Normals[i], g.UVs[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// InterleavedBytes returns Interleave() as little-endian bytes, ready for a
// vertex buffer upload.
func (g *Geometry) InterleavedBytes() []byte {
	floats := g.Interleave()
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// VertexLayout describes the interleaved vertex buffer produced by
// Geometry.Interleave.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: LocationUV},
			},
		},
	}
}

// IndexFormat is the index buffer format of Geometry.Indices.
const IndexFormat = gputypes.IndexFormatUint32

// PrimitiveState is the primitive state matching assembled meshes:
// triangle lists wound counter-clockwise when viewed from +Z.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
	}
}
