// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/scene"
)

// CommandBuilder walks a scene graph depth-first, maintaining the branch
// state stack, and emits the frame's pass-bucketed draw commands for one
// viewing context.
//
// A builder is single-use per frame: construct, Build, read the list.
type CommandBuilder struct {
	ctx   sceneview.ViewingContext
	stack *scene.BranchStack
	list  *CommandList

	// overrides is the stack of open batch scopes' encodings, resolved
	// once per scope. A nil entry marks a scope whose encoding could not
	// be built this frame; its primitives are dropped.
	overrides []*sceneview.FeatureOverrides
}

// NewCommandBuilder creates a builder targeting ctx.
func NewCommandBuilder(ctx sceneview.ViewingContext) *CommandBuilder {
	return &CommandBuilder{ctx: ctx}
}

// Build traverses root under rootState and returns the ordered command
// list. Traversal always runs to completion for the frame; there is no
// cancellation.
func (cb *CommandBuilder) Build(root scene.Graphic, rootState scene.BranchState) *CommandList {
	cb.stack = scene.NewBranchStack(rootState)
	cb.list = &CommandList{}
	cb.overrides = cb.overrides[:0]
	if root != nil {
		root.EmitCommands(cb)
	}
	cb.list.sort()
	return cb.list
}

// AddPrimitive resolves the primitive's pass from the current branch state
// and appends a draw command. A primitive whose pass resolves to PassNone
// is skipped entirely; that is the sole visibility gate at this layer.
func (cb *CommandBuilder) AddPrimitive(p scene.Primitive) {
	state := cb.stack.Top()
	pass := p.Pass(state)
	if pass == sceneview.PassNone {
		return
	}
	cmd := DrawCommand{
		Primitive: p,
		Pass:      pass,
		Order:     p.Order(),
		Transform: state.Transform,
		Clip:      state.Clip,
	}
	if n := len(cb.overrides); n > 0 {
		fo := cb.overrides[n-1]
		if fo == nil || fo.AllHidden() {
			return
		}
		cmd.Overrides = fo
	}
	cb.list.add(cmd)
}

// PushBranch derives and pushes the branch's state.
func (cb *CommandBuilder) PushBranch(b *scene.Branch) {
	cb.stack.Push(b)
}

// PopBranch pops the branch's state.
func (cb *CommandBuilder) PopBranch() {
	cb.stack.Pop()
}

// BeginBatch opens a batch scope, resolving the batch's override encoding
// for the target context once for the whole scope. When the encoding cannot
// be built this frame the scope's primitives are dropped; the allocation is
// retried next frame.
func (cb *CommandBuilder) BeginBatch(b *scene.Batch) {
	fo, ok := b.Overrides(cb.ctx)
	if !ok {
		fo = nil
	}
	cb.overrides = append(cb.overrides, fo)
}

// EndBatch closes the innermost batch scope.
func (cb *CommandBuilder) EndBatch() {
	cb.overrides = cb.overrides[:len(cb.overrides)-1]
}

var _ scene.CommandSink = (*CommandBuilder)(nil)
