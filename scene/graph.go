// Package scene is a retained container for laid out text blocks.
//
// Graph implements text3d.Target: each text block owns a list of glyph
// instances that is replaced wholesale on every commit. A Graph can switch
// all of its instances between solid and outline rendering, and export its
// content as a Wavefront OBJ file.
package scene

import (
	"slices"

	"github.com/gogpu/text3d"
)

// Node is the committed state of one text block.
type Node struct {
	Children []text3d.Instance
	Size     text3d.Vec2

	// Version is the graph version at which the node was last replaced.
	Version uint64
}

// Graph holds the children of every committed text block.
//
// Graph is not safe for concurrent use.
type Graph struct {
	nodes map[text3d.BlockID]*Node

	// mode overrides the mode of every instance once set.
	mode    text3d.RenderMode
	modeSet bool

	// version is incremented on each modification for cache invalidation.
	version uint64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[text3d.BlockID]*Node)}
}

// ReplaceChildren implements text3d.Target.
func (g *Graph) ReplaceChildren(block text3d.BlockID, children []text3d.Instance, size text3d.Vec2) {
	g.version++
	kids := slices.Clone(children)
	if g.modeSet {
		for i := range kids {
			kids[i].Mode = g.mode
		}
	}
	g.nodes[block] = &Node{Children: kids, Size: size, Version: g.version}
}

// Node returns the committed state of block.
func (g *Graph) Node(block text3d.BlockID) (Node, bool) {
	n, ok := g.nodes[block]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Children returns the instances of block, or nil.
func (g *Graph) Children(block text3d.BlockID) []text3d.Instance {
	if n, ok := g.nodes[block]; ok {
		return n.Children
	}
	return nil
}

// RemoveBlock drops block and its children.
func (g *Graph) RemoveBlock(block text3d.BlockID) {
	if _, ok := g.nodes[block]; ok {
		delete(g.nodes, block)
		g.version++
	}
}

// Blocks returns the ids of all committed blocks in increasing order.
func (g *Graph) Blocks() []text3d.BlockID {
	ids := make([]text3d.BlockID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// InstanceCount returns the number of instances across all blocks.
func (g *Graph) InstanceCount() int {
	n := 0
	for _, node := range g.nodes {
		n += len(node.Children)
	}
	return n
}

// Version returns a counter that changes whenever the graph does.
func (g *Graph) Version() uint64 {
	return g.version
}

// SetRenderMode switches every current and future instance to m.
func (g *Graph) SetRenderMode(m text3d.RenderMode) {
	g.mode, g.modeSet = m, true
	for _, node := range g.nodes {
		for i := range node.Children {
			node.Children[i].Mode = m
		}
	}
	g.version++
}

// ToggleRenderMode flips between solid and outline rendering and returns
// the new mode. Before any mode was set the graph counts as solid.
func (g *Graph) ToggleRenderMode() text3d.RenderMode {
	next := text3d.RenderOutline
	if g.modeSet {
		next = g.mode.Toggle()
	}
	g.SetRenderMode(next)
	return next
}

// RenderMode returns the mode forced by SetRenderMode and whether one was set.
func (g *Graph) RenderMode() (text3d.RenderMode, bool) {
	return g.mode, g.modeSet
}
