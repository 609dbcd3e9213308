package sceneview

import "errors"

// Context-facing errors.
var (
	// ErrTextureUnavailable is returned when the GPU cannot supply a
	// texture for an override lookup table. The caller skips drawing the
	// affected batch for the frame; the allocation is retried the next
	// time the batch's overrides are requested.
	ErrTextureUnavailable = errors.New("sceneview: override texture unavailable")
)

// Timestamp is a monotonic change counter. The clock source belongs to the
// viewing context, not to the encodings that compare against it; any
// strictly increasing counter satisfies the contract.
type Timestamp uint64

// OverridesTexture is the GPU-resident lookup table of a non-uniform
// override encoding. Implementations wrap a real texture handle; tests use
// in-memory fakes.
type OverridesTexture interface {
	// Update replaces the texture contents with data, a row-major RGBA8
	// buffer of exactly width*height*4 bytes. The upload is atomic: the
	// GPU never observes a partially written table.
	Update(data []byte) error

	// Dispose releases the texture. Further Update calls fail.
	Dispose()
}

// OverridesAllocator creates lookup-table textures for override encodings.
// Creation failure is recoverable and reported as an error, never a panic.
type OverridesAllocator interface {
	// CreateOverridesTexture creates a width x height RGBA8 texture
	// initialized with data. Returns ErrTextureUnavailable (possibly
	// wrapped) when the GPU cannot supply one.
	CreateOverridesTexture(width, height int, data []byte) (OverridesTexture, error)

	// MaxTextureSize returns the device's maximum texture dimension.
	MaxTextureSize() int
}

// BatchHandle is the disposal back-reference a viewing context keeps for
// each batch drawn into it. It is a weak association: the context never
// owns the batch, it only notifies it.
type BatchHandle interface {
	// OnContextDisposed tells the batch to drop its encoding for ctx.
	OnContextDisposed(ctx ViewingContext)
}

// ViewingContext is the collaborator an override encoding synchronizes
// against: the current symbology policy, hilite set and flashed element,
// and a monotonic timestamp for each of the three. The compositor never
// constructs viewing contexts; the host viewer does.
//
// Implementations must be comparable by identity (pointer types), because
// batches key their per-context encodings on the context value.
type ViewingContext interface {
	OverridesAllocator

	// Policy returns the current symbology override policy.
	Policy() OverridePolicy

	// Hilites returns the current hilite set.
	Hilites() *HiliteSet

	// FlashedId returns the currently flashed element, or InvalidId.
	FlashedId() Id

	// OverridesTime advances whenever the policy changes.
	OverridesTime() Timestamp

	// FlashTime advances whenever the flashed element changes.
	FlashTime() Timestamp

	// HiliteTime advances whenever the hilite set changes.
	HiliteTime() Timestamp

	// RegisterBatch records a batch so the context can notify it via
	// OnContextDisposed when the context itself is disposed.
	RegisterBatch(b BatchHandle)

	// UnregisterBatch removes a previously registered batch.
	UnregisterBatch(b BatchHandle)
}
