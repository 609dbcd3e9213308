// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render walks the scene graph into pass-ordered draw commands and
// executes them with the correct shader technique variant per command.
package render

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/scene"
)

// DrawCommand is one primitive draw, tagged with everything execution
// needs: the resolved pass and within-pass order, the branch state snapshot
// it was emitted under, and (when emitted inside a batch) the batch's
// per-context override encoding.
type DrawCommand struct {
	Primitive scene.Primitive
	Pass      sceneview.Pass
	Order     sceneview.Order

	// Transform is the cumulative branch transform at emission.
	Transform math32.Matrix4

	// Clip is the active clip volume at emission, or nil.
	Clip scene.ClipVolume

	// Overrides is the emitting batch's encoding for the target context,
	// or nil outside a batch.
	Overrides *sceneview.FeatureOverrides

	// seq is the traversal sequence number, the final ordering tie-break.
	seq int
}

// CommandList holds the frame's draw commands grouped into pass-indexed
// buckets in traversal order.
type CommandList struct {
	buckets [sceneview.NumPasses + 1][]DrawCommand
	count   int
}

// Count returns the total number of commands.
func (cl *CommandList) Count() int { return cl.count }

// Pass returns the commands of one pass in draw order: render-order first,
// traversal order second, never re-sorted by any other key. The stable
// tie-break keeps depth-ambiguous planar-vs-non-planar resolution identical
// across frames.
func (cl *CommandList) Pass(p sceneview.Pass) []DrawCommand {
	return cl.buckets[p]
}

// add appends cmd to its pass bucket.
func (cl *CommandList) add(cmd DrawCommand) {
	cmd.seq = cl.count
	cl.count++
	cl.buckets[cmd.Pass] = append(cl.buckets[cmd.Pass], cmd)
}

// sort orders every bucket by render order, preserving traversal order
// among equals. Buckets are small; insertion sort keeps the stability
// obvious.
func (cl *CommandList) sort() {
	for p := range cl.buckets {
		bucket := cl.buckets[p]
		for i := 1; i < len(bucket); i++ {
			for j := i; j > 0 && less(&bucket[j], &bucket[j-1]); j-- {
				bucket[j], bucket[j-1] = bucket[j-1], bucket[j]
			}
		}
	}
}

// less orders commands within a pass bucket.
func less(a, b *DrawCommand) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.seq < b.seq
}
