package sceneview

import "fmt"

// Id identifies an element, model, or subcategory. Ids are assigned by the
// host application; the compositor only compares them.
type Id uint64

// InvalidId is the zero Id. It never identifies a real element or model.
const InvalidId Id = 0

// IsValid reports whether the Id identifies something.
func (id Id) IsValid() bool { return id != InvalidId }

// GeometryClass describes the role of a feature's geometry.
type GeometryClass uint8

const (
	// ClassPrimary is ordinary model geometry.
	ClassPrimary GeometryClass = iota

	// ClassConstruction is construction-aid geometry.
	ClassConstruction

	// ClassDimension is dimension annotation geometry.
	ClassDimension

	// ClassPattern is area-pattern geometry.
	ClassPattern
)

// String returns a human-readable name for the class.
func (c GeometryClass) String() string {
	switch c {
	case ClassPrimary:
		return "Primary"
	case ClassConstruction:
		return "Construction"
	case ClassDimension:
		return "Dimension"
	case ClassPattern:
		return "Pattern"
	default:
		return fmt.Sprintf("GeometryClass(%d)", uint8(c))
	}
}

// BatchType distinguishes how a batch's geometry participates in the frame.
// The symbology policy may resolve different appearances per batch type.
type BatchType uint8

const (
	// BatchPrimary is ordinary scene geometry.
	BatchPrimary BatchType = iota

	// BatchVolumeClassifier is volume classification geometry.
	BatchVolumeClassifier

	// BatchPlanarClassifier is planar classification geometry.
	BatchPlanarClassifier
)

// Feature identifies one renderable unit within a batch: the element it
// belongs to, its subcategory, its geometry class, its owning model, and an
// optional animation node. Features are produced by geometry tessellation
// and referenced by index from the batch's vertex data.
type Feature struct {
	ElementId       Id
	SubCategoryId   Id
	ModelId         Id
	AnimationNodeId Id
	Class           GeometryClass
}

// FeatureTable is an ordered, indexable sequence of Features owned by one
// batch. Tables are append-only until Seal is called; a sealed table is
// read-only and may be visited by many viewing contexts' encodings.
//
// A table with exactly one distinct feature is classified uniform; this
// classification is frozen at Seal and determines which override encoding
// representation the table's batch uses.
type FeatureTable struct {
	modelId  Id
	features []Feature
	sealed   bool
	uniform  bool
}

// NewFeatureTable creates an empty feature table. modelId is the fallback
// owning model for features that do not carry their own.
func NewFeatureTable(modelId Id) *FeatureTable {
	return &FeatureTable{modelId: modelId}
}

// ModelId returns the table's fallback model id.
func (ft *FeatureTable) ModelId() Id { return ft.modelId }

// Add appends a feature and returns its index.
// Add panics if the table has been sealed.
func (ft *FeatureTable) Add(f Feature) int {
	if ft.sealed {
		panic("sceneview: Add on sealed FeatureTable")
	}
	ft.features = append(ft.features, f)
	return len(ft.features) - 1
}

// Seal freezes the table. After Seal the table is read-only and its
// uniform/non-uniform classification is immutable.
func (ft *FeatureTable) Seal() {
	ft.sealed = true
	ft.uniform = len(ft.features) == 1
}

// Sealed reports whether the table has been sealed.
func (ft *FeatureTable) Sealed() bool { return ft.sealed }

// Count returns the number of features in the table.
func (ft *FeatureTable) Count() int { return len(ft.features) }

// Uniform reports whether the table holds exactly one distinct feature.
// Only meaningful after Seal.
func (ft *FeatureTable) Uniform() bool { return ft.uniform }

// At returns the feature at index i.
func (ft *FeatureTable) At(i int) Feature { return ft.features[i] }

// FindIndex returns the index of the first feature equal to f, or -1.
func (ft *FeatureTable) FindIndex(f Feature) int {
	for i := range ft.features {
		if ft.features[i] == f {
			return i
		}
	}
	return -1
}

// featureModelId resolves the model the policy should see for feature i:
// the feature's own model if it has one, else the table fallback.
func (ft *FeatureTable) featureModelId(i int) Id {
	if m := ft.features[i].ModelId; m.IsValid() {
		return m
	}
	return ft.modelId
}
