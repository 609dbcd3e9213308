package sceneview

import "testing"

func TestPassOrdering(t *testing.T) {
	// The opaque passes all precede translucent, which precedes hilite and
	// the overlays.
	if !(PassOpaqueLinear < PassOpaquePlanar && PassOpaquePlanar < PassOpaqueGeneral) {
		t.Error("opaque passes out of order")
	}
	if PassOpaqueGeneral > PassTranslucent {
		t.Error("opaque does not precede translucent")
	}
	if PassTranslucent > PassHilite || PassHilite > PassViewOverlay {
		t.Error("translucent/hilite/overlay out of order")
	}
	if got := PassTranslucent.String(); got != "Translucent" {
		t.Errorf("PassTranslucent.String() = %q", got)
	}
}

func TestOrderPlanarBit(t *testing.T) {
	if got := OrderPlanarSurface.Base(); got != OrderSurface {
		t.Errorf("OrderPlanarSurface.Base() = %d, want OrderSurface", got)
	}
	if !OrderPlanarEdge.IsPlanar() {
		t.Error("OrderPlanarEdge.IsPlanar() = false")
	}
	if OrderEdge.IsPlanar() {
		t.Error("OrderEdge.IsPlanar() = true")
	}
	// Within a pass, surface < linear < edge < silhouette.
	if !(OrderSurface < OrderLinear && OrderLinear < OrderEdge && OrderEdge < OrderSilhouette) {
		t.Error("base orders out of sequence")
	}
}
