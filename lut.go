package sceneview

import (
	"fmt"

	"github.com/chewxy/math32"
)

// texelsPerFeature is the encoded width of one feature in the lookup table:
// texel 0 holds {flags, weight, lineCode, extra}, texel 1 holds {r, g, b,
// alpha}.
const texelsPerFeature = 2

// bytesPerTexel is the RGBA8 texel size.
const bytesPerTexel = 4

// lutDimensions computes the rectangle of a non-uniform lookup table:
// row-major, texelsPerFeature texels per feature, no feature split across
// rows, width bounded by maxSize. The rectangle is near-square so neither
// dimension outgrows the other for large tables.
//
// Postcondition: width*height >= count*texelsPerFeature, width <= maxSize,
// height <= maxSize, width % texelsPerFeature == 0.
func lutDimensions(count, maxSize int) (width, height int) {
	nTexels := count * texelsPerFeature
	width = int(math32.Ceil(math32.Sqrt(float32(nTexels))))
	// Round up to a multiple of the per-feature texel count so a feature
	// never straddles a row boundary.
	if rem := width % texelsPerFeature; rem != 0 {
		width += texelsPerFeature - rem
	}
	if width > maxSize {
		width = maxSize - maxSize%texelsPerFeature
	}
	if width < texelsPerFeature {
		width = texelsPerFeature
	}
	height = (nTexels + width - 1) / width
	if height > maxSize {
		panic(fmt.Sprintf("sceneview: override table for %d features exceeds max texture size %d", count, maxSize))
	}
	return width, height
}

// lutBuffer is the CPU shadow of a non-uniform lookup table. Rebuilds and
// refreshes mutate the shadow, then upload it in one atomic texture update.
type lutBuffer struct {
	data   []byte
	width  int
	height int
}

func newLutBuffer(count, maxSize int) *lutBuffer {
	w, h := lutDimensions(count, maxSize)
	return &lutBuffer{
		data:   make([]byte, w*h*bytesPerTexel),
		width:  w,
		height: h,
	}
}

// featureOffset returns the byte offset of feature i's first texel.
// Texel offset is i*texelsPerFeature; rows are width texels.
func (b *lutBuffer) featureOffset(i int) int {
	return i * texelsPerFeature * bytesPerTexel
}

// setTexel0 writes the flags texel of feature i.
func (b *lutBuffer) setTexel0(i int, flags OvrFlags, weight uint8, code LineCode, extra uint8) {
	off := b.featureOffset(i)
	b.data[off+0] = uint8(flags)
	b.data[off+1] = weight
	b.data[off+2] = uint8(code)
	b.data[off+3] = extra
}

// setTexel1 writes the color texel of feature i.
func (b *lutBuffer) setTexel1(i int, rgb RgbColor, alpha uint8) {
	off := b.featureOffset(i) + bytesPerTexel
	b.data[off+0] = rgb.R
	b.data[off+1] = rgb.G
	b.data[off+2] = rgb.B
	b.data[off+3] = alpha
}

// flags returns the flag byte of feature i.
func (b *lutBuffer) flags(i int) OvrFlags {
	return OvrFlags(b.data[b.featureOffset(i)])
}

// setFlags rewrites only the flag byte of feature i, leaving weight,
// line code, extra, and the color texel untouched.
func (b *lutBuffer) setFlags(i int, flags OvrFlags) {
	b.data[b.featureOffset(i)] = uint8(flags)
}
