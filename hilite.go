package sceneview

import "github.com/RoaringBitmap/roaring/roaring64"

// HiliteSet is the set of hilited elements and models in a viewing context.
// Membership is by element id; a whole model may be hilited as a shortcut
// for every element it contains.
//
// HiliteSet is not safe for concurrent mutation; the compositor is
// single-threaded per frame.
type HiliteSet struct {
	elements *roaring64.Bitmap
	models   *roaring64.Bitmap
}

// NewHiliteSet creates an empty hilite set.
func NewHiliteSet() *HiliteSet {
	return &HiliteSet{
		elements: roaring64.New(),
		models:   roaring64.New(),
	}
}

// AddElement adds an element id to the set.
func (h *HiliteSet) AddElement(id Id) {
	if id.IsValid() {
		h.elements.Add(uint64(id))
	}
}

// AddModel adds a model id to the set, hiliting every feature the model owns.
func (h *HiliteSet) AddModel(id Id) {
	if id.IsValid() {
		h.models.Add(uint64(id))
	}
}

// RemoveElement removes an element id from the set.
func (h *HiliteSet) RemoveElement(id Id) { h.elements.Remove(uint64(id)) }

// RemoveModel removes a model id from the set.
func (h *HiliteSet) RemoveModel(id Id) { h.models.Remove(uint64(id)) }

// Clear empties the set.
func (h *HiliteSet) Clear() {
	h.elements.Clear()
	h.models.Clear()
}

// IsEmpty reports whether nothing is hilited.
func (h *HiliteSet) IsEmpty() bool {
	return h.elements.IsEmpty() && h.models.IsEmpty()
}

// Len returns the number of explicitly hilited elements plus models.
func (h *HiliteSet) Len() int {
	return int(h.elements.GetCardinality() + h.models.GetCardinality())
}

// HasElement reports whether the element id is hilited directly.
func (h *HiliteSet) HasElement(id Id) bool { return h.elements.Contains(uint64(id)) }

// HasModel reports whether the model id is hilited.
func (h *HiliteSet) HasModel(id Id) bool { return h.models.Contains(uint64(id)) }

// Matches reports whether a feature owned by modelId is hilited, either
// directly by element id or through its owning model.
func (h *HiliteSet) Matches(f Feature, modelId Id) bool {
	if h.elements.Contains(uint64(f.ElementId)) {
		return true
	}
	return h.models.Contains(uint64(modelId))
}
