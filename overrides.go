package sceneview

// nearOpaqueThreshold: a transparency override closer than this to fully
// opaque encodes as fully opaque, so near-opaque features never reach the
// translucent pass.
const nearOpaqueThreshold = 1.0 / 255.0

// encodeAlpha converts a transparency override (0=opaque..1=transparent) to
// the encoded alpha byte.
func encodeAlpha(transparency float32) uint8 {
	if transparency < nearOpaqueThreshold {
		return 255
	}
	if transparency > 1 {
		transparency = 1
	}
	return uint8(255*(1-transparency) + 0.5)
}

// clampWeight clamps a line weight override to the encodable range.
func clampWeight(w uint8) uint8 {
	if w < 1 {
		return 1
	}
	if w > 31 {
		return 31
	}
	return w
}

// FeatureOverrides is the GPU-resident encoding of per-feature visual
// overrides for one (batch, viewing context) pair. It is created lazily the
// first time the batch draws into the context and disposed when either side
// goes away.
//
// A uniform feature table (exactly one feature) encodes as a small scalar
// record; a non-uniform table encodes as a lookup-table texture holding two
// RGBA8 texels per feature.
//
// The encoding tracks three independent "last synchronized" timestamps so
// Refresh can tell which of the context's policy, flash, and hilite states
// it has already consumed.
type FeatureOverrides struct {
	table     *FeatureTable
	batchType BatchType

	uniform bool

	// Uniform representation.
	recFlags  OvrFlags
	recWeight uint8
	recCode   LineCode
	recExtra  uint8
	recRGB    RgbColor
	recAlpha  uint8

	// Non-uniform representation.
	lut *lutBuffer
	tex OverridesTexture

	allHidden      bool
	anyOverridden  bool
	anyOpaque      bool
	anyTranslucent bool
	anyHilited     bool

	ovrSynced    Timestamp
	flashSynced  Timestamp
	hiliteSynced Timestamp
}

// NewFeatureOverrides builds the override encoding for table as seen by
// ctx. The representation is chosen from the table's classification; for a
// non-uniform table the lookup texture is created immediately and fully
// encoded.
//
// Returns an error (and no encoding) when the GPU cannot supply the lookup
// texture; the caller skips the batch for this frame and re-requests the
// encoding next frame.
//
// The table must be sealed.
func NewFeatureOverrides(table *FeatureTable, bt BatchType, ctx ViewingContext) (*FeatureOverrides, error) {
	if !table.Sealed() {
		panic("sceneview: NewFeatureOverrides on unsealed FeatureTable")
	}
	if table.Count() == 0 {
		panic("sceneview: NewFeatureOverrides on empty FeatureTable")
	}
	fo := &FeatureOverrides{
		table:     table,
		batchType: bt,
		uniform:   table.Uniform(),
	}
	if !fo.uniform {
		fo.lut = newLutBuffer(table.Count(), ctx.MaxTextureSize())
	}
	fo.rebuild(ctx)
	if !fo.uniform {
		tex, err := ctx.CreateOverridesTexture(fo.lut.width, fo.lut.height, fo.lut.data)
		if err != nil {
			return nil, err
		}
		fo.tex = tex
	}
	fo.ovrSynced = ctx.OverridesTime()
	fo.flashSynced = ctx.FlashTime()
	fo.hiliteSynced = ctx.HiliteTime()

	Logger().Debug("feature overrides created",
		"features", table.Count(), "uniform", fo.uniform,
		"allHidden", fo.allHidden, "anyOverridden", fo.anyOverridden)
	return fo, nil
}

// Uniform reports which representation the encoding uses.
func (fo *FeatureOverrides) Uniform() bool { return fo.uniform }

// AllHidden reports whether every feature is hidden.
func (fo *FeatureOverrides) AllHidden() bool { return fo.allHidden }

// AnyOverridden reports whether at least one feature has any override bit
// set, hidden features included.
func (fo *FeatureOverrides) AnyOverridden() bool { return fo.anyOverridden }

// AnyOpaque reports whether any feature's alpha override resolves opaque.
func (fo *FeatureOverrides) AnyOpaque() bool { return fo.anyOpaque }

// AnyTranslucent reports whether any feature's alpha override resolves
// translucent.
func (fo *FeatureOverrides) AnyTranslucent() bool { return fo.anyTranslucent }

// AnyHilited reports whether any visible feature is hilited.
func (fo *FeatureOverrides) AnyHilited() bool { return fo.anyHilited }

// Texture returns the lookup-table texture of a non-uniform encoding, or
// nil for a uniform one.
func (fo *FeatureOverrides) Texture() OverridesTexture { return fo.tex }

// TableSize returns the lookup-table dimensions, or (0, 0) for a uniform
// encoding.
func (fo *FeatureOverrides) TableSize() (width, height int) {
	if fo.lut == nil {
		return 0, 0
	}
	return fo.lut.width, fo.lut.height
}

// Data returns the CPU shadow of the lookup table, or nil for a uniform
// encoding. The slice aliases the encoding's buffer; callers must not
// mutate it.
func (fo *FeatureOverrides) Data() []byte {
	if fo.lut == nil {
		return nil
	}
	return fo.lut.data
}

// UniformRecord returns the scalar record of a uniform encoding. Only
// meaningful when Uniform is true.
func (fo *FeatureOverrides) UniformRecord() (flags OvrFlags, weight uint8, code LineCode, rgb RgbColor, alpha uint8) {
	return fo.recFlags, fo.recWeight, fo.recCode, fo.recRGB, fo.recAlpha
}

// Dispose releases the lookup texture, if any.
func (fo *FeatureOverrides) Dispose() {
	if fo.tex != nil {
		fo.tex.Dispose()
		fo.tex = nil
	}
}

// Refresh brings the encoding up to date with ctx.
//
// Three paths, chosen by comparing the context's change timestamps against
// the encoding's own:
//   - Policy advanced: every feature's appearance is re-derived from
//     scratch, including flash and hilite bits, because a policy change can
//     alter visibility and thereby invalidate the cached flag state.
//   - Only flash and/or hilite advanced: a cheaper pass rewrites the flag
//     byte of each visible feature; hidden features are left entirely alone
//     and never re-enter visibility through this path.
//   - Nothing advanced: no-op, no GPU upload.
//
// Each path records the timestamps it consulted, so a repeated Refresh with
// no intervening change is byte-identical and uploads nothing.
func (fo *FeatureOverrides) Refresh(ctx ViewingContext) error {
	ovrT, flashT, hilT := ctx.OverridesTime(), ctx.FlashTime(), ctx.HiliteTime()
	if ovrT > fo.ovrSynced {
		fo.rebuild(ctx)
		if err := fo.upload(); err != nil {
			return err
		}
		fo.ovrSynced, fo.flashSynced, fo.hiliteSynced = ovrT, flashT, hilT
		return nil
	}
	if flashT > fo.flashSynced || hilT > fo.hiliteSynced {
		fo.updateFlags(ctx)
		if err := fo.upload(); err != nil {
			return err
		}
		fo.flashSynced, fo.hiliteSynced = flashT, hilT
	}
	return nil
}

// upload pushes the CPU shadow to the GPU in one atomic update. Uniform
// encodings have no texture and upload nothing.
func (fo *FeatureOverrides) upload() error {
	if fo.tex == nil {
		return nil
	}
	return fo.tex.Update(fo.lut.data)
}

// resolve derives the full encoded record for feature i.
func (fo *FeatureOverrides) resolve(ctx ViewingContext, i int) (flags OvrFlags, weight uint8, code LineCode, extra uint8, rgb RgbColor, alpha uint8) {
	f := fo.table.At(i)
	modelId := fo.table.featureModelId(i)
	app, ok := ctx.Policy().AppearanceFor(f, modelId, fo.batchType)
	if !ok || app.FullyTransparent() {
		// Hidden: only the visibility bit; every other channel is
		// don't-care and left zero.
		return OvrVisibility, 0, 0, 0, RgbColor{}, 0
	}
	if app.HasRGB {
		flags |= OvrRgb
		rgb = app.RGB
	}
	if app.HasTransparency {
		flags |= OvrAlpha
		alpha = encodeAlpha(app.Transparency)
	}
	if app.HasWeight {
		flags |= OvrWeight
		weight = clampWeight(app.Weight)
	}
	if app.HasPattern {
		flags |= OvrLineCode
		code = MapLineCode(app.Pattern)
	}
	if app.IgnoresMaterial {
		flags |= OvrIgnoreMaterial
	}
	flags |= fo.flagBits(ctx, f, modelId)
	if app.NonLocatable {
		extra |= extraNonLocatable
	}
	if app.Emphasized {
		extra |= extraEmphasized
	}
	return flags, weight, code, extra, rgb, alpha
}

// flagBits computes the flash and hilite bits for a visible feature.
func (fo *FeatureOverrides) flagBits(ctx ViewingContext, f Feature, modelId Id) OvrFlags {
	var flags OvrFlags
	if f.ElementId.IsValid() && f.ElementId == ctx.FlashedId() {
		flags |= OvrFlashed
	}
	if ctx.Hilites().Matches(f, modelId) {
		flags |= OvrHilited
	}
	return flags
}

// rebuild re-derives every feature's record and the aggregate properties.
func (fo *FeatureOverrides) rebuild(ctx ViewingContext) {
	allHidden := true
	anyOverridden := false
	anyOpaque := false
	anyTranslucent := false
	anyHilited := false

	n := fo.table.Count()
	for i := 0; i < n; i++ {
		flags, weight, code, extra, rgb, alpha := fo.resolve(ctx, i)
		if fo.uniform {
			fo.recFlags, fo.recWeight, fo.recCode, fo.recExtra = flags, weight, code, extra
			fo.recRGB, fo.recAlpha = rgb, alpha
		} else {
			fo.lut.setTexel0(i, flags, weight, code, extra)
			fo.lut.setTexel1(i, rgb, alpha)
		}
		if flags != 0 {
			anyOverridden = true
		}
		if !flags.Has(OvrVisibility) {
			allHidden = false
			if flags.Has(OvrAlpha) {
				if alpha < 255 {
					anyTranslucent = true
				} else {
					anyOpaque = true
				}
			}
			if flags.Has(OvrHilited) {
				anyHilited = true
			}
		}
	}

	fo.allHidden = allHidden
	fo.anyOverridden = anyOverridden
	fo.anyOpaque = anyOpaque
	fo.anyTranslucent = anyTranslucent
	fo.anyHilited = anyHilited
}

// updateFlags rewrites only the flag byte of each visible feature with
// fresh flash and hilite bits. Weight, line code, extra, and color bytes
// stay untouched; hidden features are skipped entirely.
func (fo *FeatureOverrides) updateFlags(ctx ViewingContext) {
	anyOverridden := false
	anyHilited := false

	n := fo.table.Count()
	for i := 0; i < n; i++ {
		var old OvrFlags
		if fo.uniform {
			old = fo.recFlags
		} else {
			old = fo.lut.flags(i)
		}
		if old.Has(OvrVisibility) {
			anyOverridden = true
			continue
		}
		next := old&^(OvrFlashed|OvrHilited) | fo.flagBits(ctx, fo.table.At(i), fo.table.featureModelId(i))
		if fo.uniform {
			fo.recFlags = next
		} else if next != old {
			fo.lut.setFlags(i, next)
		}
		if next != 0 {
			anyOverridden = true
		}
		if next.Has(OvrHilited) {
			anyHilited = true
		}
	}

	fo.anyOverridden = anyOverridden
	fo.anyHilited = anyHilited
}
