package scene

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
)

// PlanarClassifier is an opaque handle to planar classification state
// carried through branch state. Its contents are external.
type PlanarClassifier interface {
	ClassifierId() sceneview.Id
}

// TextureDrape is an opaque handle to drape-projection state carried
// through branch state. Its contents are external.
type TextureDrape interface {
	DrapeId() sceneview.Id
}

// EdgeSettings controls how a branch's edges display.
type EdgeSettings struct {
	Weight   uint8
	Code     sceneview.LineCode
	Color    sceneview.RgbColor
	HasColor bool
}

// ViewFlagsDelta is the subset of view flags a branch replaces. Fields
// apply only when the corresponding Has flag is set; everything else is
// inherited from the parent state unchanged.
type ViewFlagsDelta struct {
	Mode          sceneview.RenderMode
	Transparency  bool
	ClipVolume    bool
	VisibleEdges  bool
	HiddenEdges   bool
	Constructions bool
	Dimensions    bool
	Patterns      bool

	HasMode         bool
	HasTransparency bool
	HasClipVolume   bool
	HasEdges        bool
	HasClasses      bool
}

// ApplyTo returns vf with the delta's specified fields replaced.
func (d ViewFlagsDelta) ApplyTo(vf sceneview.ViewFlags) sceneview.ViewFlags {
	if d.HasMode {
		vf.Mode = d.Mode
	}
	if d.HasTransparency {
		vf.Transparency = d.Transparency
	}
	if d.HasClipVolume {
		vf.ClipVolume = d.ClipVolume
	}
	if d.HasEdges {
		vf.VisibleEdges = d.VisibleEdges
		vf.HiddenEdges = d.HiddenEdges
	}
	if d.HasClasses {
		vf.Constructions = d.Constructions
		vf.Dimensions = d.Dimensions
		vf.Patterns = d.Patterns
	}
	return vf
}

// BranchState is one immutable snapshot of inherited rendering state: the
// cumulative transform, cumulative view flags, the nearest-ancestor
// symbology policy, and the active clip, classifier, drape, and edge
// settings. A state is derived from its parent by a pure function and never
// mutated after being pushed; children copy, they do not write back.
type BranchState struct {
	Transform    math32.Matrix4
	ViewFlags    sceneview.ViewFlags
	Policy       sceneview.OverridePolicy
	Clip         ClipVolume
	Classifier   PlanarClassifier
	Drape        TextureDrape
	Edges        EdgeSettings
	Is3d         bool
	FrustumScale math32.Vector2
}

// NewBranchState returns a root state with an identity transform and the
// given view flags.
func NewBranchState(vf sceneview.ViewFlags) BranchState {
	return BranchState{
		Transform:    *math32.Identity4(),
		ViewFlags:    vf,
		Is3d:         true,
		FrustumScale: math32.Vec2(1, 1),
	}
}

// derive computes the child state a branch introduces beneath parent:
// transforms compose, the branch's view-flag delta and symbology policy
// replace their inherited counterparts when specified, and a branch clip
// (given in branch-local coordinates) replaces the inherited clip after
// being re-expressed in the composed frame. Everything the branch does not
// specify is inherited unchanged.
func derive(parent *BranchState, b *Branch) BranchState {
	next := *parent
	if b.Transform == (math32.Matrix4{}) {
		// A zero-value Branch literal carries no transform; treat the
		// unset matrix as identity rather than composing a degenerate one.
		next.Transform = parent.Transform
	} else {
		var m math32.Matrix4
		m.MulMatrices(&parent.Transform, &b.Transform)
		next.Transform = m
	}
	next.ViewFlags = b.Flags.ApplyTo(parent.ViewFlags)
	if b.Policy != nil {
		next.Policy = b.Policy
	}
	if b.Clip != nil {
		next.Clip = b.Clip.TransformedBy(&next.Transform)
	}
	if b.Classifier != nil {
		next.Classifier = b.Classifier
	}
	if b.Drape != nil {
		next.Drape = b.Drape
	}
	if b.HasEdges {
		next.Edges = b.Edges
	}
	return next
}
