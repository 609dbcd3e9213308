// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Config configures a RendererContext.
type Config struct {
	// Device is the GPU device the compositor draws with. Required.
	Device Device

	// Source supplies shader bodies per technique variant. Required.
	Source ProgramSource

	// CompileEagerly compiles every technique variant at construction
	// instead of on first use. Useful for startup validation.
	CompileEagerly bool
}

// RendererContext owns the state the command builder and executor share:
// the device and the technique variant tables. It replaces any notion of
// global registries; construct one at renderer start-up and pass it by
// reference.
type RendererContext struct {
	Device     Device
	Techniques *TechniqueSet
}

// NewRendererContext validates config and builds the context.
func NewRendererContext(config Config) (*RendererContext, error) {
	if config.Device == nil {
		return nil, fmt.Errorf("render: config.Device is required")
	}
	if config.Source == nil {
		return nil, fmt.Errorf("render: config.Source is required")
	}
	rc := &RendererContext{
		Device:     config.Device,
		Techniques: NewTechniqueSet(config.Device, config.Source),
	}
	if config.CompileEagerly {
		if err := rc.Techniques.CompileAll(); err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Dispose releases the context's techniques. The device belongs to the
// host and is not touched.
func (rc *RendererContext) Dispose() {
	rc.Techniques.Dispose()
}
