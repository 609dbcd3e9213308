package scene

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
)

// Batch wraps a sub-graph whose primitives share one sealed feature table.
// It owns the table, the geometry's spatial range, and a lazily populated
// map from viewing context to that context's override encoding.
//
// Lifecycle: created when a grouped-feature subtree is finalized; Dispose
// releases the wrapped graphics and every owned encoding and unregisters
// the batch from each context it had been drawn into.
type Batch struct {
	child Graphic
	table *sceneview.FeatureTable
	rng   math32.Box3
	typ   sceneview.BatchType

	// overrides is keyed by context identity. Contexts registered here
	// hold a weak back-reference to the batch purely for disposal
	// notification.
	overrides map[sceneview.ViewingContext]*sceneview.FeatureOverrides
}

// NewBatch creates a batch over child. The table must be sealed and
// non-empty; a mismatch against its claimed classification is a
// programming error surfaced by the override encoder.
func NewBatch(child Graphic, table *sceneview.FeatureTable, rng math32.Box3, typ sceneview.BatchType) *Batch {
	if !table.Sealed() {
		panic("scene: NewBatch with unsealed FeatureTable")
	}
	return &Batch{
		child:     child,
		table:     table,
		rng:       rng,
		typ:       typ,
		overrides: make(map[sceneview.ViewingContext]*sceneview.FeatureOverrides),
	}
}

// FeatureTable returns the batch's feature table.
func (b *Batch) FeatureTable() *sceneview.FeatureTable { return b.table }

// Range returns the batch's spatial range.
func (b *Batch) Range() math32.Box3 { return b.rng }

// Type returns the batch type the symbology policy resolves against.
func (b *Batch) Type() sceneview.BatchType { return b.typ }

// Overrides looks up or lazily creates the batch's override encoding for
// ctx, registering the batch with the context for disposal notification,
// then refreshes the encoding against the context's current state.
//
// Returns ok=false when the encoding could not be (re)built this frame —
// the GPU declined a texture — in which case the caller skips the batch and
// the allocation is retried on the next request.
func (b *Batch) Overrides(ctx sceneview.ViewingContext) (*sceneview.FeatureOverrides, bool) {
	fo, exists := b.overrides[ctx]
	if !exists {
		built, err := sceneview.NewFeatureOverrides(b.table, b.typ, ctx)
		if err != nil {
			sceneview.Logger().Warn("batch overrides unavailable",
				"features", b.table.Count(), "err", err)
			return nil, false
		}
		b.overrides[ctx] = built
		ctx.RegisterBatch(b)
		return built, true
	}
	if err := fo.Refresh(ctx); err != nil {
		sceneview.Logger().Warn("batch overrides refresh failed", "err", err)
		return nil, false
	}
	return fo, true
}

// OnContextDisposed drops the batch's encoding for ctx. Called by the
// context when it is itself disposed; the batch must not call back into
// the context here.
func (b *Batch) OnContextDisposed(ctx sceneview.ViewingContext) {
	if fo, ok := b.overrides[ctx]; ok {
		fo.Dispose()
		delete(b.overrides, ctx)
	}
}

// EmitCommands brackets the child's emission in a batch scope.
func (b *Batch) EmitCommands(sink CommandSink) {
	sink.BeginBatch(b)
	if b.child != nil {
		b.child.EmitCommands(sink)
	}
	sink.EndBatch()
}

// Dispose releases the wrapped graphics and every owned encoding, and
// unregisters the batch from each context it had been drawn into.
func (b *Batch) Dispose() {
	if b.child != nil {
		b.child.Dispose()
		b.child = nil
	}
	for ctx, fo := range b.overrides {
		fo.Dispose()
		ctx.UnregisterBatch(b)
		delete(b.overrides, ctx)
	}
}

// CollectStatistics counts the batch, its features, and its subtree.
func (b *Batch) CollectStatistics(stats *Statistics) {
	stats.Batches++
	stats.Features += b.table.Count()
	if b.child != nil {
		b.child.CollectStatistics(stats)
	}
}

var _ Graphic = (*Batch)(nil)
