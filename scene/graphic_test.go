package scene

import (
	"reflect"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
)

// stubPrimitive is a minimal Primitive for traversal tests.
type stubPrimitive struct {
	name     string
	pass     sceneview.Pass
	disposed bool
}

func (p *stubPrimitive) Pass(*BranchState) sceneview.Pass   { return p.pass }
func (p *stubPrimitive) Order() sceneview.Order             { return sceneview.OrderSurface }
func (p *stubPrimitive) Technique() sceneview.TechniqueKind { return sceneview.TechniqueSurface }
func (p *stubPrimitive) Translucent() bool                  { return false }
func (p *stubPrimitive) Dispose()                           { p.disposed = true }

// recorderSink records traversal events as strings.
type recorderSink struct {
	events []string
}

func (r *recorderSink) AddPrimitive(p Primitive) {
	r.events = append(r.events, "prim:"+p.(*stubPrimitive).name)
}
func (r *recorderSink) PushBranch(*Branch) { r.events = append(r.events, "push") }
func (r *recorderSink) PopBranch()         { r.events = append(r.events, "pop") }
func (r *recorderSink) BeginBatch(*Batch)  { r.events = append(r.events, "begin") }
func (r *recorderSink) EndBatch()          { r.events = append(r.events, "end") }

func TestEmitCommandsEventOrder(t *testing.T) {
	a := &stubPrimitive{name: "a"}
	b := &stubPrimitive{name: "b"}
	c := &stubPrimitive{name: "c"}

	root := NewGraphicList(
		NewPrimitiveNode(a),
		NewBranch(NewGraphicList(
			NewBatch(NewPrimitiveNode(b), sealedTable(1), math32.Box3{}, sceneview.BatchPrimary),
		)),
		NewPrimitiveNode(c),
	)

	sink := &recorderSink{}
	root.EmitCommands(sink)

	want := []string{"prim:a", "push", "begin", "prim:b", "end", "pop", "prim:c"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("events = %v, want %v", sink.events, want)
	}
}

func TestCollectStatistics(t *testing.T) {
	root := NewGraphicList(
		NewPrimitiveNode(&stubPrimitive{name: "a"}),
		NewBranch(NewBatch(
			NewGraphicList(
				NewPrimitiveNode(&stubPrimitive{name: "b"}),
				NewPrimitiveNode(&stubPrimitive{name: "c"}),
			),
			sealedTable(5), math32.Box3{}, sceneview.BatchPrimary,
		)),
	)

	var stats Statistics
	root.CollectStatistics(&stats)
	want := Statistics{Primitives: 3, Batches: 1, Branches: 1, Features: 5}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestGraphicListDispose(t *testing.T) {
	a := &stubPrimitive{name: "a"}
	b := &stubPrimitive{name: "b"}
	l := NewGraphicList(NewPrimitiveNode(a), NewBranch(NewPrimitiveNode(b)))

	l.Dispose()
	if !a.disposed || !b.disposed {
		t.Error("Dispose did not reach every primitive")
	}
	if l.Graphics != nil {
		t.Error("Dispose did not empty the list")
	}
}
