// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/sceneview"

// Executor draws a frame's command list against the device, selecting the
// technique variant per command and binding a program only when it differs
// from the one currently bound.
//
// Execution is single-threaded and always runs the full list to completion
// for the current frame; a command whose program is unavailable is skipped,
// never retried within the frame.
type Executor struct {
	rc    *RendererContext
	bound Program
}

// NewExecutor creates an executor over the renderer context.
func NewExecutor(rc *RendererContext) *Executor {
	return &Executor{rc: rc}
}

// Execute draws every command in pass order.
func (e *Executor) Execute(list *CommandList) {
	e.bound = nil
	for p := sceneview.PassBackground; p <= sceneview.PassViewOverlay; p++ {
		cmds := list.Pass(p)
		for i := range cmds {
			e.draw(p, &cmds[i])
		}
	}
}

// flagsFor derives the variant key of one command: feature mode from the
// presence of an override encoding, translucency from the pass, hilite from
// the pass, clip from the branch snapshot. The second result is false when
// no variant exists for the command: hilite geometry emitted outside a
// batch has no feature data to hilite against.
func flagsFor(pass sceneview.Pass, cmd *DrawCommand) (TechniqueFlags, bool) {
	mode := FeatureNone
	if cmd.Overrides != nil {
		mode = FeatureOverrides
	}
	if pass == sceneview.PassHilite {
		if mode == FeatureNone {
			return TechniqueFlags{}, false
		}
		return NewTechniqueFlags(mode, false, cmd.Clip != nil, true), true
	}
	translucent := pass == sceneview.PassTranslucent || cmd.Primitive.Translucent()
	return NewTechniqueFlags(mode, translucent, cmd.Clip != nil, false), true
}

// draw resolves and binds the command's program variant and issues the
// draw call with the command's per-call bindings.
func (e *Executor) draw(pass sceneview.Pass, cmd *DrawCommand) {
	flags, ok := flagsFor(pass, cmd)
	if !ok {
		sceneview.Logger().Warn("draw skipped", "pass", pass,
			"reason", "hilite command without feature data")
		return
	}
	tech := e.rc.Techniques.Technique(cmd.Primitive.Technique())
	prog, err := tech.GetProgram(flags)
	if err != nil {
		sceneview.Logger().Warn("draw skipped", "pass", pass, "err", err)
		return
	}
	if prog != e.bound {
		e.rc.Device.BindProgram(prog)
		e.bound = prog
	}
	if err := e.rc.Device.Draw(DrawArgs{
		Program:   prog,
		Primitive: cmd.Primitive,
		Command:   cmd,
	}); err != nil {
		sceneview.Logger().Warn("draw failed", "pass", pass, "err", err)
	}
}
