// Package scene defines the drawable graph the compositor traverses: leaf
// primitives, feature-grouped batches, state-introducing branches, and flat
// graphic lists, plus the branch state stack that carries inherited
// transform, clip, and symbology state through the traversal.
package scene

import "github.com/gogpu/sceneview"

// Statistics aggregates diagnostic counts over a graphic subtree.
type Statistics struct {
	Primitives int
	Batches    int
	Branches   int
	Features   int
}

// CommandSink receives the events of a depth-first traversal. The render
// package's command builder is the production implementation; tests supply
// recorders.
type CommandSink interface {
	// AddPrimitive emits a leaf primitive under the sink's current state.
	AddPrimitive(p Primitive)

	// PushBranch derives and enters a branch's state scope.
	PushBranch(b *Branch)

	// PopBranch leaves the current branch's state scope.
	PopBranch()

	// BeginBatch enters a batch scope; primitives emitted until EndBatch
	// carry the batch's per-context override encoding.
	BeginBatch(b *Batch)

	// EndBatch leaves the current batch scope.
	EndBatch()
}

// Graphic is the capability shared by every scene-graph node. The node set
// is closed: PrimitiveNode, Batch, Branch, and GraphicList are the only
// implementations the compositor traverses.
type Graphic interface {
	// EmitCommands walks the node, feeding traversal events to sink.
	EmitCommands(sink CommandSink)

	// Dispose releases the node's resources, recursively.
	Dispose()

	// CollectStatistics accumulates the node's counts into stats.
	CollectStatistics(stats *Statistics)
}

// GraphicList is an ordered collection of drawables with no state
// contribution of its own; it fans emission and disposal out to each child
// in order.
type GraphicList struct {
	Graphics []Graphic
}

// NewGraphicList creates a list over the given children.
func NewGraphicList(graphics ...Graphic) *GraphicList {
	return &GraphicList{Graphics: graphics}
}

// Add appends a child.
func (l *GraphicList) Add(g Graphic) {
	l.Graphics = append(l.Graphics, g)
}

// EmitCommands forwards to each child in order.
func (l *GraphicList) EmitCommands(sink CommandSink) {
	for _, g := range l.Graphics {
		g.EmitCommands(sink)
	}
}

// Dispose disposes each child and empties the list.
func (l *GraphicList) Dispose() {
	for _, g := range l.Graphics {
		g.Dispose()
	}
	l.Graphics = nil
}

// CollectStatistics aggregates over the children.
func (l *GraphicList) CollectStatistics(stats *Statistics) {
	for _, g := range l.Graphics {
		g.CollectStatistics(stats)
	}
}

var _ Graphic = (*GraphicList)(nil)
var _ sceneview.BatchHandle = (*Batch)(nil)
