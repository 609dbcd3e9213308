// Package sceneview implements a scene-graph compositor for 3D viewers.
//
// The compositor decides what to draw, in what visual state, and with which
// shader program variant. It does not tessellate geometry, author shader
// bodies, or own raw GPU handles; those arrive through narrow interfaces.
//
// The root package holds the identity and symbology model shared by the
// subpackages: features and feature tables, resolved appearances, the
// per-feature override flag encoding, hilite sets, and view flags. The
// per-(batch, viewing context) override encoder also lives here because it
// is pure symbology: it consumes a feature table and a viewing context and
// produces a GPU-resident encoding of per-feature visual overrides.
//
// Subpackages:
//   - scene: drawable graph nodes (primitive, batch, branch, list) and the
//     inherited branch state stack.
//   - render: pass-ordered draw-command building plus shader technique
//     variant selection and execution.
//   - internal/gpu: wgpu/hal-backed implementation of the render device
//     interfaces, and an in-memory device for tests.
package sceneview
