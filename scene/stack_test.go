package scene

import (
	"reflect"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
)

type stubPolicy struct{ name string }

func (p *stubPolicy) AppearanceFor(sceneview.Feature, sceneview.Id, sceneview.BatchType) (sceneview.Appearance, bool) {
	return sceneview.Appearance{}, true
}

func rotY(angle float32) math32.Matrix4 {
	var m math32.Matrix4
	m.SetRotationY(angle)
	return m
}

func TestBranchStackPushPopRestoresState(t *testing.T) {
	root := NewBranchState(sceneview.DefaultViewFlags())
	root.Policy = &stubPolicy{name: "root"}
	s := NewBranchStack(root)
	before := *s.Top()

	branches := []*Branch{
		{Child: nil, Transform: rotY(0.3), Policy: &stubPolicy{name: "a"}},
		{Child: nil, Transform: rotY(0.7), Flags: ViewFlagsDelta{HasMode: true, Mode: sceneview.ModeWireframe}},
		{Child: nil, Transform: *math32.Identity4(), Clip: NewClipBox(math32.Box3{})},
	}
	for _, b := range branches {
		s.Push(b)
	}
	if got := s.Depth(); got != 4 {
		t.Fatalf("Depth() = %d, want 4", got)
	}
	for range branches {
		s.Pop()
	}

	if got := s.Depth(); got != 1 {
		t.Fatalf("Depth() = %d, want 1", got)
	}
	if !reflect.DeepEqual(before, *s.Top()) {
		t.Errorf("top after push/pop sequence = %+v, want %+v", *s.Top(), before)
	}
}

func TestBranchStackPopRootPanics(t *testing.T) {
	s := NewBranchStack(NewBranchState(sceneview.DefaultViewFlags()))
	defer func() {
		if recover() == nil {
			t.Error("Pop of root entry did not panic")
		}
	}()
	s.Pop()
}

func TestBranchStackRootSettersRequireRootOnly(t *testing.T) {
	s := NewBranchStack(NewBranchState(sceneview.DefaultViewFlags()))
	s.SetRootViewFlags(sceneview.ViewFlags{Mode: sceneview.ModeWireframe})
	if got := s.Top().ViewFlags.Mode; got != sceneview.ModeWireframe {
		t.Errorf("root mode = %v, want Wireframe", got)
	}

	s.Push(NewBranch(nil))
	defer func() {
		if recover() == nil {
			t.Error("SetRootViewFlags after push did not panic")
		}
	}()
	s.SetRootViewFlags(sceneview.DefaultViewFlags())
}

func TestDeriveInheritsUnspecified(t *testing.T) {
	rootPolicy := &stubPolicy{name: "root"}
	root := NewBranchState(sceneview.DefaultViewFlags())
	root.Policy = rootPolicy
	s := NewBranchStack(root)

	// A branch with no policy, no clip, no flag delta inherits everything.
	s.Push(NewBranch(nil))
	top := s.Top()
	if top.Policy != sceneview.OverridePolicy(rootPolicy) {
		t.Error("policy not inherited through plain branch")
	}
	if top.ViewFlags != root.ViewFlags {
		t.Errorf("view flags changed through plain branch: %+v", top.ViewFlags)
	}
	if !reflect.DeepEqual(top.Transform, root.Transform) {
		t.Error("identity branch changed the cumulative transform")
	}

	// A branch with its own policy replaces it for the subtree only.
	sub := &stubPolicy{name: "sub"}
	s.Push(&Branch{Transform: *math32.Identity4(), Policy: sub})
	if s.Top().Policy != sceneview.OverridePolicy(sub) {
		t.Error("branch policy did not replace inherited policy")
	}
	s.Pop()
	if s.Top().Policy != sceneview.OverridePolicy(rootPolicy) {
		t.Error("policy replacement leaked out of its branch")
	}
}

func TestDeriveZeroTransformActsAsIdentity(t *testing.T) {
	root := NewBranchState(sceneview.DefaultViewFlags())
	root.Transform = rotY(0.5)
	s := NewBranchStack(root)

	// A Branch literal without a Transform must not degenerate the
	// cumulative transform to all zeros.
	s.Push(&Branch{Policy: &stubPolicy{name: "literal"}})
	if got := s.Top().Transform; got != root.Transform {
		t.Errorf("cumulative transform = %+v, want parent's %+v", got, root.Transform)
	}
	s.Pop()

	// An explicit identity composes the same way.
	s.Push(NewBranch(nil))
	if got := s.Top().Transform; got != root.Transform {
		t.Errorf("identity branch transform = %+v, want parent's %+v", got, root.Transform)
	}
}

func TestDeriveAppliesViewFlagDelta(t *testing.T) {
	s := NewBranchStack(NewBranchState(sceneview.DefaultViewFlags()))
	s.Push(&Branch{
		Transform: *math32.Identity4(),
		Flags: ViewFlagsDelta{
			HasMode:         true,
			Mode:            sceneview.ModeHiddenLine,
			HasTransparency: true,
			Transparency:    false,
		},
	})
	vf := s.Top().ViewFlags
	if vf.Mode != sceneview.ModeHiddenLine {
		t.Errorf("mode = %v, want HiddenLine", vf.Mode)
	}
	if vf.Transparency {
		t.Error("transparency not overridden to false")
	}
	// Unspecified fields inherit.
	if !vf.ClipVolume || !vf.Materials {
		t.Error("unspecified flags did not inherit")
	}
}

func TestDeriveTransformsClipIntoComposedFrame(t *testing.T) {
	s := NewBranchStack(NewBranchState(sceneview.DefaultViewFlags()))
	box := math32.Box3{
		Min: math32.Vec3(-1, -1, -1),
		Max: math32.Vec3(1, 1, 1),
	}
	s.Push(&Branch{Transform: rotY(1.1), Clip: NewClipBox(box)})

	clip, ok := s.Top().Clip.(*ClipBox)
	if !ok {
		t.Fatalf("clip = %T, want *ClipBox", s.Top().Clip)
	}
	if reflect.DeepEqual(clip.Box, box) {
		t.Error("clip box was not re-expressed in the composed frame")
	}
}
