package sceneview

import "fmt"

// Pass is the frame-wide draw ordering key. Every draw command lands in
// exactly one pass; passes execute in ascending order.
type Pass uint8

const (
	// PassNone marks a primitive that is not drawn this frame.
	PassNone Pass = iota

	// PassBackground draws the view background.
	PassBackground

	// PassOpaqueLinear draws opaque polylines and point strings.
	PassOpaqueLinear

	// PassOpaquePlanar draws opaque planar surfaces.
	PassOpaquePlanar

	// PassOpaqueGeneral draws remaining opaque surfaces.
	PassOpaqueGeneral

	// PassClassification draws classifier volumes.
	PassClassification

	// PassTranslucent draws blended translucent geometry.
	PassTranslucent

	// PassHiddenEdge draws edges obscured by surfaces.
	PassHiddenEdge

	// PassHilite draws the hilite silhouette of hilited features.
	PassHilite

	// PassWorldOverlay draws world-space decorations over the scene.
	PassWorldOverlay

	// PassViewOverlay draws view-space decorations over everything.
	PassViewOverlay

	// NumPasses is the number of drawable passes (excluding PassNone).
	NumPasses = int(PassViewOverlay)
)

var passNames = [...]string{
	PassNone:           "None",
	PassBackground:     "Background",
	PassOpaqueLinear:   "OpaqueLinear",
	PassOpaquePlanar:   "OpaquePlanar",
	PassOpaqueGeneral:  "OpaqueGeneral",
	PassClassification: "Classification",
	PassTranslucent:    "Translucent",
	PassHiddenEdge:     "HiddenEdge",
	PassHilite:         "Hilite",
	PassWorldOverlay:   "WorldOverlay",
	PassViewOverlay:    "ViewOverlay",
}

// String returns the pass name.
func (p Pass) String() string {
	if int(p) < len(passNames) {
		return passNames[p]
	}
	return fmt.Sprintf("Pass(%d)", uint8(p))
}

// Order is the within-pass tie-break among primitives drawn by the same
// element: surface < linear < edge < silhouette. OrderPlanarBit marks
// planar geometry, which always wins ties against non-planar geometry of
// the same base kind at the same depth.
type Order uint8

const (
	OrderNone           Order = 0
	OrderBlankingRegion Order = 1
	OrderSurface        Order = 2
	OrderLinear         Order = 3
	OrderEdge           Order = 4
	OrderSilhouette     Order = 5

	// OrderPlanarBit is OR-ed onto a base order for planar geometry.
	OrderPlanarBit Order = 8

	OrderPlanarSurface    = OrderSurface | OrderPlanarBit
	OrderPlanarLinear     = OrderLinear | OrderPlanarBit
	OrderPlanarEdge       = OrderEdge | OrderPlanarBit
	OrderPlanarSilhouette = OrderSilhouette | OrderPlanarBit
)

// Base returns the order with the planar bit stripped.
func (o Order) Base() Order { return o &^ OrderPlanarBit }

// IsPlanar reports whether the planar bit is set.
func (o Order) IsPlanar() bool { return o&OrderPlanarBit != 0 }

// TechniqueKind names a family of shader program variants. Each primitive
// declares the family its geometry requires; the render package selects the
// variant within the family.
type TechniqueKind uint8

const (
	TechniqueSurface TechniqueKind = iota
	TechniquePolyline
	TechniquePointString
	TechniqueEdge
	TechniqueSilhouetteEdge

	// NumTechniqueKinds is the number of technique families.
	NumTechniqueKinds = int(TechniqueSilhouetteEdge) + 1
)

var techniqueKindNames = [...]string{
	TechniqueSurface:        "Surface",
	TechniquePolyline:       "Polyline",
	TechniquePointString:    "PointString",
	TechniqueEdge:           "Edge",
	TechniqueSilhouetteEdge: "SilhouetteEdge",
}

// String returns the family name.
func (k TechniqueKind) String() string {
	if int(k) < len(techniqueKindNames) {
		return techniqueKindNames[k]
	}
	return fmt.Sprintf("TechniqueKind(%d)", uint8(k))
}
