package sceneview

// View is the reference ViewingContext implementation: it owns the mutable
// symbology state of one viewer-side view (policy, flashed element, hilite
// set), advances the matching change timestamp on every mutation, and
// tracks the batches that hold encodings for it so disposal can notify
// them.
//
// Hosts with their own view abstraction can implement ViewingContext
// directly; View exists so simple hosts and the demo do not have to.
type View struct {
	alloc   OverridesAllocator
	policy  OverridePolicy
	hilites *HiliteSet
	flashed Id

	ovrTime    Timestamp
	flashTime  Timestamp
	hiliteTime Timestamp

	batches map[BatchHandle]struct{}
}

// NewView creates a view drawing through alloc with the given initial
// policy.
func NewView(alloc OverridesAllocator, policy OverridePolicy) *View {
	return &View{
		alloc:      alloc,
		policy:     policy,
		hilites:    NewHiliteSet(),
		ovrTime:    1,
		flashTime:  1,
		hiliteTime: 1,
		batches:    make(map[BatchHandle]struct{}),
	}
}

func (v *View) Policy() OverridePolicy   { return v.policy }
func (v *View) Hilites() *HiliteSet      { return v.hilites }
func (v *View) FlashedId() Id            { return v.flashed }
func (v *View) OverridesTime() Timestamp { return v.ovrTime }
func (v *View) FlashTime() Timestamp     { return v.flashTime }
func (v *View) HiliteTime() Timestamp    { return v.hiliteTime }

func (v *View) CreateOverridesTexture(width, height int, data []byte) (OverridesTexture, error) {
	return v.alloc.CreateOverridesTexture(width, height, data)
}

func (v *View) MaxTextureSize() int { return v.alloc.MaxTextureSize() }

func (v *View) RegisterBatch(b BatchHandle)   { v.batches[b] = struct{}{} }
func (v *View) UnregisterBatch(b BatchHandle) { delete(v.batches, b) }

// SetPolicy replaces the symbology policy and advances the override
// timestamp, forcing a full rebuild of every encoding on next refresh.
func (v *View) SetPolicy(p OverridePolicy) {
	v.policy = p
	v.ovrTime++
}

// SetFlashed changes the flashed element. A no-op when id is already
// flashed.
func (v *View) SetFlashed(id Id) {
	if v.flashed == id {
		return
	}
	v.flashed = id
	v.flashTime++
}

// HiliteElement adds an element to the hilite set.
func (v *View) HiliteElement(id Id) {
	v.hilites.AddElement(id)
	v.hiliteTime++
}

// HiliteModel adds a model to the hilite set.
func (v *View) HiliteModel(id Id) {
	v.hilites.AddModel(id)
	v.hiliteTime++
}

// UnhiliteElement removes an element from the hilite set.
func (v *View) UnhiliteElement(id Id) {
	v.hilites.RemoveElement(id)
	v.hiliteTime++
}

// ClearHilites empties the hilite set.
func (v *View) ClearHilites() {
	v.hilites.Clear()
	v.hiliteTime++
}

// Dispose notifies every registered batch that the view is going away.
// Batches drop their encodings for the view; the view must not be used
// afterwards.
func (v *View) Dispose() {
	for b := range v.batches {
		delete(v.batches, b)
		b.OnContextDisposed(v)
	}
}

var _ ViewingContext = (*View)(nil)
