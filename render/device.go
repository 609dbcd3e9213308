// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/scene"
)

// Device errors. Resource exhaustion is recoverable: the caller skips the
// affected primitive or batch for the frame and retries on the next request.
var (
	// ErrDeviceUnavailable is returned when no GPU device is present.
	ErrDeviceUnavailable = errors.New("render: GPU device unavailable")

	// ErrProgramUnavailable is returned when a shader program cannot be
	// created.
	ErrProgramUnavailable = errors.New("render: shader program unavailable")
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu.App) implements the provider and passes it in;
// sceneview receives the device, it does not create one. DeviceHandle is an
// alias for gpucontext.DeviceProvider so any gpucontext host plugs in
// directly.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no GPU behind it. Hosts running
// headless pass it in; device construction then falls back to the in-memory
// device.
type NullDeviceHandle struct{}

// Device returns nil for the null handle.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null handle.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null handle.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns zero adapter metadata for the null handle.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// SurfaceFormat returns undefined format for the null handle.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// TextureDescriptor describes a 2D texture the compositor asks the device
// for. The compositor only ever needs single-mip, single-sample 2D
// textures.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the dimensions in texels.
	Width  int
	Height int

	// Format is the texel format; override lookup tables use RGBA8.
	Format gputypes.TextureFormat
}

// Texture is a device texture the compositor can refill in place.
type Texture interface {
	// Update atomically replaces the full texture contents.
	Update(data []byte) error

	// Dispose releases the texture.
	Dispose()
}

// Program is one compiled shader program variant.
type Program interface {
	// Dispose releases the program.
	Dispose()
}

// DrawArgs carries the per-call bindings of one draw.
type DrawArgs struct {
	Program   Program
	Primitive scene.Primitive
	Command   *DrawCommand
}

// Device is the narrow GPU contract the compositor consumes: texture
// creation and in-place update, shader program creation from a variant's
// source, and draw submission. Creation failures are explicit errors, never
// panics; a failed allocation is retried implicitly only when the caller
// re-requests construction.
type Device interface {
	// CreateTexture creates a texture initialized with data (row-major,
	// len = Width*Height*bytes-per-texel).
	CreateTexture(desc TextureDescriptor, data []byte) (Texture, error)

	// CreateProgram compiles one program variant from its source.
	CreateProgram(label, source string) (Program, error)

	// BindProgram makes prog current for subsequent draws.
	BindProgram(prog Program)

	// Draw issues one draw call with the given bindings.
	Draw(args DrawArgs) error

	// MaxTextureSize returns the device's maximum texture dimension.
	MaxTextureSize() int
}

// overridesAllocator adapts a Device to the root package's allocator
// contract so viewing contexts built on a Device can hand it straight to
// the override encoder.
type overridesAllocator struct {
	device Device
}

// NewOverridesAllocator wraps device as a sceneview.OverridesAllocator.
func NewOverridesAllocator(device Device) sceneview.OverridesAllocator {
	return &overridesAllocator{device: device}
}

func (a *overridesAllocator) CreateOverridesTexture(width, height int, data []byte) (sceneview.OverridesTexture, error) {
	tex, err := a.device.CreateTexture(TextureDescriptor{
		Label:  "feature-overrides-lut",
		Width:  width,
		Height: height,
		Format: gputypes.TextureFormatRGBA8Unorm,
	}, data)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

func (a *overridesAllocator) MaxTextureSize() int {
	return a.device.MaxTextureSize()
}
