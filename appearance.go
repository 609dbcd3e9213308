package sceneview

// RgbColor is a color override as three 8-bit channels.
type RgbColor struct {
	R, G, B uint8
}

// LineCode is a mapped line pattern code as stored in the override encoding.
// The mapping from host line patterns to codes is performed by MapLineCode.
type LineCode uint8

// Host line pattern values understood by MapLineCode. Anything outside this
// range maps to LineCodeSolid.
const (
	linePatternSolid    = 0
	linePatternMaxFixed = 7
)

// LineCodeSolid is the code for an unpatterned line.
const LineCodeSolid LineCode = 0

// MapLineCode maps a host line pattern value to the code stored in the
// override encoding. The fixed patterns 0..7 map to themselves; everything
// else renders solid.
func MapLineCode(pattern int32) LineCode {
	if pattern < linePatternSolid || pattern > linePatternMaxFixed {
		return LineCodeSolid
	}
	return LineCode(pattern)
}

// Appearance is the resolved visual override for one feature, computed by
// the symbology policy. A channel participates only when its Has flag is
// set; unset channels leave the feature's intrinsic symbology alone.
//
// The absence of an Appearance altogether (the policy returning ok=false)
// is the designed encoding for a fully hidden feature.
type Appearance struct {
	RGB          RgbColor
	Transparency float32 // 0 = opaque .. 1 = fully transparent
	Weight       uint8
	Pattern      int32

	HasRGB          bool
	HasTransparency bool
	HasWeight       bool
	HasPattern      bool

	IgnoresMaterial bool
	NonLocatable    bool
	Emphasized      bool
}

// Overrides reports whether the appearance changes anything at all.
func (a Appearance) Overrides() bool {
	return a.HasRGB || a.HasTransparency || a.HasWeight || a.HasPattern ||
		a.IgnoresMaterial || a.NonLocatable || a.Emphasized
}

// FullyTransparent reports whether the appearance hides the feature
// outright via a transparency override of 1.
func (a Appearance) FullyTransparent() bool {
	return a.HasTransparency && a.Transparency >= 1
}

// OverridePolicy resolves the visual override for a feature. Implementations
// are pure: the same inputs always produce the same appearance until the
// owning context's override timestamp advances.
//
// Returning ok=false means the feature is fully hidden.
type OverridePolicy interface {
	AppearanceFor(f Feature, modelId Id, bt BatchType) (app Appearance, ok bool)
}
