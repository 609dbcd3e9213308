// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/sceneview"
)

// FeatureMode describes how much per-feature data a program variant reads.
type FeatureMode uint8

const (
	// FeatureNone: the variant reads no per-feature data.
	FeatureNone FeatureMode = iota

	// FeaturePick: the variant reads feature ids only, for locate.
	FeaturePick

	// FeatureOverrides: the variant reads the full override encoding.
	FeatureOverrides

	numFeatureModes = 3
)

// String returns the mode name.
func (m FeatureMode) String() string {
	switch m {
	case FeatureNone:
		return "None"
	case FeaturePick:
		return "Pick"
	case FeatureOverrides:
		return "Overrides"
	default:
		return fmt.Sprintf("FeatureMode(%d)", uint8(m))
	}
}

// TechniqueFlags is the lookup key selecting one program variant within a
// technique family. It is derived per draw command and never persisted on
// geometry.
//
// Invariant: IsHilite implies Mode != FeatureNone and !Translucent. The
// constructor enforces it; hilite draws silhouette geometry of featured
// batches and never blends.
type TechniqueFlags struct {
	Mode        FeatureMode
	Translucent bool
	HasClip     bool
	IsHilite    bool
}

// Variant index layout. The three non-hilite dimensions are independent:
// translucency spans featureStride, feature mode spans featureStride slots
// apart, and clip presence offsets by a full clipStride. The hilite
// sub-family (feature mode pinned to "has features") occupies the single
// slot between the feature-mode block and the clip offset, so the hilite
// range can never overlap the non-hilite range. A collision here would
// silently draw the wrong program, so the table layout is verified at
// construction.
const (
	featureStride = 2
	hiliteBase    = featureStride * numFeatureModes
	clipStride    = hiliteBase + 1

	// VariantCount is the size of every technique's variant table.
	VariantCount = 2 * clipStride
)

// NewTechniqueFlags builds a validated flag tuple. It panics on a hilite
// tuple with no feature mode or with translucency: those combinations have
// no program and requesting one is a programming error.
func NewTechniqueFlags(mode FeatureMode, translucent, hasClip, isHilite bool) TechniqueFlags {
	if isHilite && (mode == FeatureNone || translucent) {
		panic("render: hilite technique flags require a feature mode and opacity")
	}
	return TechniqueFlags{Mode: mode, Translucent: translucent, HasClip: hasClip, IsHilite: isHilite}
}

// VariantIndex maps the flag tuple to its slot in a technique's variant
// table. The mapping is injective over the full flag domain.
func (f TechniqueFlags) VariantIndex() int {
	idx := 0
	if f.HasClip {
		idx = clipStride
	}
	if f.IsHilite {
		return idx + hiliteBase
	}
	if f.Translucent {
		idx++
	}
	return idx + featureStride*int(f.Mode)
}

// allTechniqueFlags enumerates the full valid flag domain.
func allTechniqueFlags() []TechniqueFlags {
	var all []TechniqueFlags
	for _, clip := range []bool{false, true} {
		for mode := FeatureNone; mode <= FeatureOverrides; mode++ {
			for _, tr := range []bool{false, true} {
				all = append(all, NewTechniqueFlags(mode, tr, clip, false))
			}
		}
		all = append(all, NewTechniqueFlags(FeatureOverrides, false, clip, true))
	}
	return all
}

// verifyVariantLayout panics if two distinct flag tuples share a slot or
// fall outside the table. Run once at technique-set construction.
func verifyVariantLayout() {
	var seen [VariantCount]bool
	for _, f := range allTechniqueFlags() {
		idx := f.VariantIndex()
		if idx < 0 || idx >= VariantCount {
			panic(fmt.Sprintf("render: technique variant index %d out of range", idx))
		}
		if seen[idx] {
			panic(fmt.Sprintf("render: technique variant index collision at %d", idx))
		}
		seen[idx] = true
	}
}

// ProgramSource supplies the shader body of one variant of one technique
// family. Shader text and the shader-builder DSL are external; the
// compositor treats sources as opaque strings.
type ProgramSource func(kind sceneview.TechniqueKind, flags TechniqueFlags) string

// Technique is one family's statically sized table of precompiled program
// variants. Programs compile once, lazily, the first time their index is
// requested; CompileAll compiles every entry eagerly for startup
// validation.
type Technique struct {
	kind     sceneview.TechniqueKind
	device   Device
	source   ProgramSource
	programs [VariantCount]Program
}

// newTechnique creates an empty variant table for kind.
func newTechnique(kind sceneview.TechniqueKind, device Device, source ProgramSource) *Technique {
	return &Technique{kind: kind, device: device, source: source}
}

// Kind returns the technique family.
func (t *Technique) Kind() sceneview.TechniqueKind { return t.kind }

// GetProgram returns the variant for flags, compiling it on first request.
// A compile failure returns ErrProgramUnavailable (wrapped); the caller
// skips the draw and the compile is retried on the next request.
func (t *Technique) GetProgram(flags TechniqueFlags) (Program, error) {
	idx := flags.VariantIndex()
	if p := t.programs[idx]; p != nil {
		return p, nil
	}
	label := fmt.Sprintf("%s[%d]", t.kind, idx)
	p, err := t.device.CreateProgram(label, t.source(t.kind, flags))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProgramUnavailable, label, err)
	}
	t.programs[idx] = p
	return p, nil
}

// CompileAll eagerly compiles every variant in the table. Used for startup
// validation and tests.
func (t *Technique) CompileAll() error {
	for _, flags := range allTechniqueFlags() {
		if _, err := t.GetProgram(flags); err != nil {
			return err
		}
	}
	return nil
}

// Dispose releases every compiled variant.
func (t *Technique) Dispose() {
	for i, p := range t.programs {
		if p != nil {
			p.Dispose()
			t.programs[i] = nil
		}
	}
}

// TechniqueSet holds one Technique per family. It is owned by the renderer
// context; there are no package-level technique registries.
type TechniqueSet struct {
	techniques [sceneview.NumTechniqueKinds]*Technique
}

// NewTechniqueSet builds the per-family tables and verifies the variant
// index layout.
func NewTechniqueSet(device Device, source ProgramSource) *TechniqueSet {
	verifyVariantLayout()
	ts := &TechniqueSet{}
	for k := 0; k < sceneview.NumTechniqueKinds; k++ {
		ts.techniques[k] = newTechnique(sceneview.TechniqueKind(k), device, source)
	}
	return ts
}

// Technique returns the family's variant table.
func (ts *TechniqueSet) Technique(kind sceneview.TechniqueKind) *Technique {
	return ts.techniques[kind]
}

// CompileAll eagerly compiles every variant of every family.
func (ts *TechniqueSet) CompileAll() error {
	for _, t := range ts.techniques {
		if err := t.CompileAll(); err != nil {
			return err
		}
	}
	sceneview.Logger().Info("technique tables compiled",
		"families", len(ts.techniques), "variantsPerFamily", VariantCount)
	return nil
}

// Dispose releases every technique.
func (ts *TechniqueSet) Dispose() {
	for _, t := range ts.techniques {
		t.Dispose()
	}
}
