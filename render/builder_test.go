// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/scene"
)

// testPrimitive is a scene.Primitive stub with fixed resolution.
type testPrimitive struct {
	name        string
	pass        sceneview.Pass
	order       sceneview.Order
	kind        sceneview.TechniqueKind
	translucent bool
	disposed    bool
}

func (p *testPrimitive) Pass(*scene.BranchState) sceneview.Pass { return p.pass }
func (p *testPrimitive) Order() sceneview.Order                 { return p.order }
func (p *testPrimitive) Technique() sceneview.TechniqueKind     { return p.kind }
func (p *testPrimitive) Translucent() bool                      { return p.translucent }
func (p *testPrimitive) Dispose()                               { p.disposed = true }

type policyFunc func(f sceneview.Feature, modelId sceneview.Id, bt sceneview.BatchType) (sceneview.Appearance, bool)

func (p policyFunc) AppearanceFor(f sceneview.Feature, modelId sceneview.Id, bt sceneview.BatchType) (sceneview.Appearance, bool) {
	return p(f, modelId, bt)
}

var visiblePolicy = policyFunc(func(sceneview.Feature, sceneview.Id, sceneview.BatchType) (sceneview.Appearance, bool) {
	return sceneview.Appearance{}, true
})

// testViewContext is a ViewingContext over a fake device, exercising the
// device-backed allocator adapter.
type testViewContext struct {
	sceneview.OverridesAllocator
	policy  sceneview.OverridePolicy
	hilites *sceneview.HiliteSet
}

func newTestViewContext(dev Device, policy sceneview.OverridePolicy) *testViewContext {
	return &testViewContext{
		OverridesAllocator: NewOverridesAllocator(dev),
		policy:             policy,
		hilites:            sceneview.NewHiliteSet(),
	}
}

func (c *testViewContext) Policy() sceneview.OverridePolicy      { return c.policy }
func (c *testViewContext) Hilites() *sceneview.HiliteSet         { return c.hilites }
func (c *testViewContext) FlashedId() sceneview.Id               { return sceneview.InvalidId }
func (c *testViewContext) OverridesTime() sceneview.Timestamp    { return 1 }
func (c *testViewContext) FlashTime() sceneview.Timestamp        { return 1 }
func (c *testViewContext) HiliteTime() sceneview.Timestamp       { return 1 }
func (c *testViewContext) RegisterBatch(sceneview.BatchHandle)   {}
func (c *testViewContext) UnregisterBatch(sceneview.BatchHandle) {}

func featureTable(n int) *sceneview.FeatureTable {
	ft := sceneview.NewFeatureTable(1)
	for i := 0; i < n; i++ {
		ft.Add(sceneview.Feature{ElementId: sceneview.Id(i + 1)})
	}
	ft.Seal()
	return ft
}

func buildState() scene.BranchState {
	st := scene.NewBranchState(sceneview.DefaultViewFlags())
	st.Policy = visiblePolicy
	return st
}

func TestBuildBucketsByPassAndSortsByOrder(t *testing.T) {
	edge := &testPrimitive{name: "edge", pass: sceneview.PassOpaqueGeneral, order: sceneview.OrderEdge}
	surfA := &testPrimitive{name: "surfA", pass: sceneview.PassOpaqueGeneral, order: sceneview.OrderSurface}
	surfB := &testPrimitive{name: "surfB", pass: sceneview.PassOpaqueGeneral, order: sceneview.OrderSurface}
	blend := &testPrimitive{name: "blend", pass: sceneview.PassTranslucent, order: sceneview.OrderSurface, translucent: true}

	root := scene.NewGraphicList(
		scene.NewPrimitiveNode(edge),
		scene.NewPrimitiveNode(surfA),
		scene.NewPrimitiveNode(blend),
		scene.NewPrimitiveNode(surfB),
	)
	cb := NewCommandBuilder(newTestViewContext(newFakeDevice(), visiblePolicy))
	list := cb.Build(root, buildState())

	if got := list.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}
	opaque := list.Pass(sceneview.PassOpaqueGeneral)
	if len(opaque) != 3 {
		t.Fatalf("opaque bucket size = %d, want 3", len(opaque))
	}
	// Surfaces precede the edge; equal orders keep traversal order.
	gotNames := []string{
		opaque[0].Primitive.(*testPrimitive).name,
		opaque[1].Primitive.(*testPrimitive).name,
		opaque[2].Primitive.(*testPrimitive).name,
	}
	want := []string{"surfA", "surfB", "edge"}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("opaque order = %v, want %v", gotNames, want)
		}
	}
	if len(list.Pass(sceneview.PassTranslucent)) != 1 {
		t.Error("translucent primitive missing from its bucket")
	}
}

func TestBuildSkipsPassNone(t *testing.T) {
	skipped := &testPrimitive{name: "skipped", pass: sceneview.PassNone}
	drawn := &testPrimitive{name: "drawn", pass: sceneview.PassOpaqueGeneral}
	root := scene.NewGraphicList(scene.NewPrimitiveNode(skipped), scene.NewPrimitiveNode(drawn))

	cb := NewCommandBuilder(newTestViewContext(newFakeDevice(), visiblePolicy))
	list := cb.Build(root, buildState())
	if got := list.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestBuildAttachesBatchOverrides(t *testing.T) {
	inBatch := &testPrimitive{name: "in", pass: sceneview.PassOpaqueGeneral, order: sceneview.OrderSurface}
	outside := &testPrimitive{name: "out", pass: sceneview.PassOpaqueGeneral, order: sceneview.OrderSurface}
	root := scene.NewGraphicList(
		scene.NewBatch(scene.NewPrimitiveNode(inBatch), featureTable(3), math32.Box3{}, sceneview.BatchPrimary),
		scene.NewPrimitiveNode(outside),
	)

	cb := NewCommandBuilder(newTestViewContext(newFakeDevice(), visiblePolicy))
	list := cb.Build(root, buildState())
	cmds := list.Pass(sceneview.PassOpaqueGeneral)
	if len(cmds) != 2 {
		t.Fatalf("bucket size = %d, want 2", len(cmds))
	}
	for _, cmd := range cmds {
		name := cmd.Primitive.(*testPrimitive).name
		if name == "in" && cmd.Overrides == nil {
			t.Error("batched primitive has no override encoding")
		}
		if name == "out" && cmd.Overrides != nil {
			t.Error("unbatched primitive carries an override encoding")
		}
	}
}

func TestBuildDropsAllHiddenBatch(t *testing.T) {
	hideAll := policyFunc(func(sceneview.Feature, sceneview.Id, sceneview.BatchType) (sceneview.Appearance, bool) {
		return sceneview.Appearance{}, false
	})
	p := &testPrimitive{name: "p", pass: sceneview.PassOpaqueGeneral}
	root := scene.NewBatch(scene.NewPrimitiveNode(p), featureTable(2), math32.Box3{}, sceneview.BatchPrimary)

	cb := NewCommandBuilder(newTestViewContext(newFakeDevice(), hideAll))
	st := scene.NewBranchState(sceneview.DefaultViewFlags())
	st.Policy = hideAll
	list := cb.Build(root, st)
	if got := list.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for all-hidden batch", got)
	}
}

func TestBuildDropsBatchWithoutTexture(t *testing.T) {
	dev := newFakeDevice()
	dev.failTextures = true
	p := &testPrimitive{name: "p", pass: sceneview.PassOpaqueGeneral}
	root := scene.NewBatch(scene.NewPrimitiveNode(p), featureTable(2), math32.Box3{}, sceneview.BatchPrimary)

	cb := NewCommandBuilder(newTestViewContext(dev, visiblePolicy))
	if got := cb.Build(root, buildState()).Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0 when texture allocation fails", got)
	}

	// The next frame retries and succeeds.
	dev.failTextures = false
	if got := cb.Build(root, buildState()).Count(); got != 1 {
		t.Errorf("Count() after recovery = %d, want 1", got)
	}
}

func TestBuildSnapshotsBranchState(t *testing.T) {
	var local math32.Matrix4
	local.SetRotationY(0.9)
	p := &testPrimitive{name: "p", pass: sceneview.PassOpaqueGeneral}
	box := math32.Box3{Min: math32.Vec3(-1, -1, -1), Max: math32.Vec3(1, 1, 1)}
	branch := scene.NewTransformBranch(scene.NewPrimitiveNode(p), local)
	branch.Clip = scene.NewClipBox(box)

	cb := NewCommandBuilder(newTestViewContext(newFakeDevice(), visiblePolicy))
	list := cb.Build(branch, buildState())
	cmds := list.Pass(sceneview.PassOpaqueGeneral)
	if len(cmds) != 1 {
		t.Fatalf("bucket size = %d, want 1", len(cmds))
	}
	if cmds[0].Transform != local {
		t.Error("command transform is not the composed branch transform")
	}
	if cmds[0].Clip == nil {
		t.Error("command lost the branch clip volume")
	}
}
