package sceneview

import "fmt"

// RenderMode selects the overall shading style of a view.
type RenderMode uint8

const (
	// ModeWireframe draws edges only.
	ModeWireframe RenderMode = iota

	// ModeHiddenLine draws edges with hidden lines removed.
	ModeHiddenLine

	// ModeSolidFill draws monochrome filled surfaces with edges.
	ModeSolidFill

	// ModeSmoothShade draws lit, materialed surfaces.
	ModeSmoothShade
)

// String returns a human-readable name for the mode.
func (m RenderMode) String() string {
	switch m {
	case ModeWireframe:
		return "Wireframe"
	case ModeHiddenLine:
		return "HiddenLine"
	case ModeSolidFill:
		return "SolidFill"
	case ModeSmoothShade:
		return "SmoothShade"
	default:
		return fmt.Sprintf("RenderMode(%d)", uint8(m))
	}
}

// ViewFlags is the subset of a view's display settings the compositor reads
// while resolving branch state and render passes.
type ViewFlags struct {
	Mode RenderMode

	// Geometry class visibility.
	Constructions bool
	Dimensions    bool
	Patterns      bool

	// Transparency enables the translucent pass; when false translucent
	// geometry renders opaque.
	Transparency bool

	// Edge display.
	VisibleEdges bool
	HiddenEdges  bool

	// ClipVolume enables clipping by the active clip volume.
	ClipVolume bool

	// Materials enables surface materials.
	Materials bool

	// Lighting enables the lighting model (ignored outside SmoothShade).
	Lighting bool
}

// DefaultViewFlags returns the flags of a freshly created smooth-shaded view.
func DefaultViewFlags() ViewFlags {
	return ViewFlags{
		Mode:         ModeSmoothShade,
		Transparency: true,
		ClipVolume:   true,
		Materials:    true,
		Lighting:     true,
	}
}

// ShowsClass reports whether geometry of class c is displayed.
func (vf ViewFlags) ShowsClass(c GeometryClass) bool {
	switch c {
	case ClassConstruction:
		return vf.Constructions
	case ClassDimension:
		return vf.Dimensions
	case ClassPattern:
		return vf.Patterns
	default:
		return true
	}
}

// EdgesRequired reports whether the mode or flags require edge geometry.
func (vf ViewFlags) EdgesRequired() bool {
	switch vf.Mode {
	case ModeWireframe, ModeHiddenLine, ModeSolidFill:
		return true
	default:
		return vf.VisibleEdges || vf.HiddenEdges
	}
}
