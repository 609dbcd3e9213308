package scene

import "github.com/gogpu/sceneview"

// Primitive is implemented by tessellated geometry: meshes, polylines,
// point strings, edges. Geometry construction is external; the compositor
// asks a primitive only what it needs to place and draw it.
//
// A primitive never branches state.
type Primitive interface {
	// Pass resolves the render pass under the given branch state. A
	// primitive returning PassNone is skipped for the frame; this is the
	// sole visibility gate at the graph layer (per-feature hiding is the
	// override encoder's job).
	Pass(state *BranchState) sceneview.Pass

	// Order returns the fixed within-pass tie-break order of the
	// primitive's geometry kind.
	Order() sceneview.Order

	// Technique returns the shader program family the geometry requires.
	Technique() sceneview.TechniqueKind

	// Translucent reports whether the primitive blends.
	Translucent() bool

	// Dispose releases the primitive's GPU geometry.
	Dispose()
}

// PrimitiveNode adapts a Primitive into the graphic tree.
type PrimitiveNode struct {
	P Primitive
}

// NewPrimitiveNode wraps p as a leaf graphic.
func NewPrimitiveNode(p Primitive) *PrimitiveNode {
	return &PrimitiveNode{P: p}
}

// EmitCommands emits the wrapped primitive.
func (n *PrimitiveNode) EmitCommands(sink CommandSink) {
	sink.AddPrimitive(n.P)
}

// Dispose releases the wrapped primitive.
func (n *PrimitiveNode) Dispose() {
	n.P.Dispose()
}

// CollectStatistics counts the primitive.
func (n *PrimitiveNode) CollectStatistics(stats *Statistics) {
	stats.Primitives++
}

var _ Graphic = (*PrimitiveNode)(nil)
