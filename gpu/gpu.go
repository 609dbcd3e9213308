// Package gpu constructs render devices for sceneview.
//
// The HAL-backed device layers the compositor over a gogpu/wgpu device and
// queue supplied by the host; sceneview never creates its own GPU instance.
// The no-op device runs the full compositor path in memory for tests,
// benchmarks, and headless hosts.
package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	gpuimpl "github.com/gogpu/sceneview/internal/gpu"
	"github.com/gogpu/sceneview/render"
)

// NewDeviceFromHandle builds a render.Device from the host's device handle.
//
// A handle whose device and queue are HAL-backed yields the GPU device. A
// handle with no device at all (render.NullDeviceHandle, or any provider
// returning nil) yields the in-memory device so headless hosts run the full
// compositor path. A nil handle, or a handle whose device is not HAL-backed,
// is an error.
func NewDeviceFromHandle(handle render.DeviceHandle, maxTextureSize int) (render.Device, error) {
	if handle == nil {
		return nil, fmt.Errorf("%w: nil device handle", render.ErrDeviceUnavailable)
	}
	dev := handle.Device()
	if dev == nil {
		return gpuimpl.NewNoopDevice(maxTextureSize), nil
	}
	halDevice, ok := dev.(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: host device is not HAL-backed", render.ErrDeviceUnavailable)
	}
	halQueue, ok := handle.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: host queue is not HAL-backed", render.ErrDeviceUnavailable)
	}
	return gpuimpl.NewHalDevice(halDevice, halQueue, maxTextureSize)
}

// NewHalDevice wraps the host's HAL device and queue as a render.Device.
// maxTextureSize <= 0 selects a conservative default.
func NewHalDevice(device hal.Device, queue hal.Queue, maxTextureSize int) (render.Device, error) {
	return gpuimpl.NewHalDevice(device, queue, maxTextureSize)
}

// NewNoopDevice creates an in-memory device that records uploads and draws
// without touching a GPU.
func NewNoopDevice(maxTextureSize int) render.Device {
	return gpuimpl.NewNoopDevice(maxTextureSize)
}
