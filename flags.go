package sceneview

import "strings"

// OvrFlags is the per-feature override bitmask stored in the first byte of a
// feature's encoded record.
//
// Invariant: when OvrVisibility is set the feature is hidden and every other
// channel of the record is meaningless; consumers must treat them as don't
// care.
type OvrFlags uint8

const (
	// OvrVisibility marks the feature hidden.
	OvrVisibility OvrFlags = 1 << iota

	// OvrRgb marks the color channels as overridden.
	OvrRgb

	// OvrAlpha marks the alpha channel as overridden.
	OvrAlpha

	// OvrWeight marks the line weight as overridden.
	OvrWeight

	// OvrFlashed marks the feature as the currently flashed element.
	OvrFlashed

	// OvrHilited marks the feature as a member of the hilite set.
	OvrHilited

	// OvrLineCode marks the line pattern code as overridden.
	OvrLineCode

	// OvrIgnoreMaterial suppresses the feature's material.
	OvrIgnoreMaterial
)

// Has reports whether every bit of mask is set.
func (f OvrFlags) Has(mask OvrFlags) bool { return f&mask == mask }

var ovrFlagNames = []struct {
	bit  OvrFlags
	name string
}{
	{OvrVisibility, "Visibility"},
	{OvrRgb, "Rgb"},
	{OvrAlpha, "Alpha"},
	{OvrWeight, "Weight"},
	{OvrFlashed, "Flashed"},
	{OvrHilited, "Hilited"},
	{OvrLineCode, "LineCode"},
	{OvrIgnoreMaterial, "IgnoreMaterial"},
}

// String returns a pipe-separated list of the set bits.
func (f OvrFlags) String() string {
	if f == 0 {
		return "None"
	}
	var sb strings.Builder
	for _, fn := range ovrFlagNames {
		if f&fn.bit != 0 {
			if sb.Len() > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(fn.name)
		}
	}
	return sb.String()
}

// Extra byte bits: the fourth byte of texel 0 carries state that is
// independent of the override flags.
const (
	extraNonLocatable uint8 = 1 << iota
	extraEmphasized
)
