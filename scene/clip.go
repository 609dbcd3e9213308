package scene

import "cogentcore.org/core/math32"

// ClipVolume is the clipping region a branch introduces. Clip geometry and
// GPU-side evaluation are external; the compositor only carries the volume
// through branch state and reports its presence to technique selection.
type ClipVolume interface {
	// TransformedBy returns the volume re-expressed under m. The receiver
	// is not mutated.
	TransformedBy(m *math32.Matrix4) ClipVolume
}

// ClipBox is an axis-aligned box clip. It ships for tests and simple hosts;
// real viewers supply richer volumes.
type ClipBox struct {
	Box math32.Box3
}

// NewClipBox creates a clip volume over the given box.
func NewClipBox(box math32.Box3) *ClipBox {
	return &ClipBox{Box: box}
}

// TransformedBy returns the axis-aligned bounds of the box under m.
func (c *ClipBox) TransformedBy(m *math32.Matrix4) ClipVolume {
	return &ClipBox{Box: c.Box.MulMatrix4(m)}
}
