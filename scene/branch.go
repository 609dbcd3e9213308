package scene

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
)

// Branch wraps a sub-graph under a transform/clip/symbology sub-scope.
// Command emission pushes a state derived from the traversal's current top
// (see derive), recurses into the child, then pops; siblings outside the
// branch never observe its state.
type Branch struct {
	// Child is the wrapped sub-graph.
	Child Graphic

	// Transform is the branch's local transform, composed onto the
	// parent's cumulative transform. The zero matrix counts as identity,
	// so Branch literals without one are safe.
	Transform math32.Matrix4

	// Flags is the branch's view-flag delta.
	Flags ViewFlagsDelta

	// Policy, when non-nil, replaces the inherited symbology policy for
	// the subtree.
	Policy sceneview.OverridePolicy

	// Clip, when non-nil, replaces the inherited clip volume. It is
	// expressed in branch-local coordinates.
	Clip ClipVolume

	// Classifier and Drape, when non-nil, replace their inherited
	// counterparts.
	Classifier PlanarClassifier
	Drape      TextureDrape

	// Edges, when HasEdges is set, replaces the inherited edge settings.
	Edges    EdgeSettings
	HasEdges bool
}

// NewBranch wraps child with an identity local transform.
func NewBranch(child Graphic) *Branch {
	return &Branch{Child: child, Transform: *math32.Identity4()}
}

// NewTransformBranch wraps child under the given local transform.
func NewTransformBranch(child Graphic, transform math32.Matrix4) *Branch {
	return &Branch{Child: child, Transform: transform}
}

// EmitCommands pushes the derived state, emits the child, and pops.
func (b *Branch) EmitCommands(sink CommandSink) {
	sink.PushBranch(b)
	if b.Child != nil {
		b.Child.EmitCommands(sink)
	}
	sink.PopBranch()
}

// Dispose releases the wrapped sub-graph.
func (b *Branch) Dispose() {
	if b.Child != nil {
		b.Child.Dispose()
		b.Child = nil
	}
}

// CollectStatistics counts the branch and recurses.
func (b *Branch) CollectStatistics(stats *Statistics) {
	stats.Branches++
	if b.Child != nil {
		b.Child.CollectStatistics(stats)
	}
}

var _ Graphic = (*Branch)(nil)
