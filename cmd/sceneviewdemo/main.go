// Command sceneviewdemo runs the compositor pipeline headlessly: it builds
// a small scene graph with feature batches, resolves per-feature overrides
// into lookup tables, orders draw commands into passes, and executes them
// against the in-memory device, printing what happened at each step.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"cogentcore.org/core/math32"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/internal/gpu"
	"github.com/gogpu/sceneview/render"
	"github.com/gogpu/sceneview/scene"
)

// demoPrimitive is a minimal scene.Primitive standing in for tessellated
// geometry.
type demoPrimitive struct {
	name        string
	pass        sceneview.Pass
	order       sceneview.Order
	kind        sceneview.TechniqueKind
	translucent bool
}

func (p *demoPrimitive) Pass(*scene.BranchState) sceneview.Pass { return p.pass }
func (p *demoPrimitive) Order() sceneview.Order                 { return p.order }
func (p *demoPrimitive) Technique() sceneview.TechniqueKind     { return p.kind }
func (p *demoPrimitive) Translucent() bool                      { return p.translucent }
func (p *demoPrimitive) Dispose()                               {}

// demoPolicy colors construction geometry and hides element 4.
type demoPolicy struct{}

func (demoPolicy) AppearanceFor(f sceneview.Feature, modelId sceneview.Id, bt sceneview.BatchType) (sceneview.Appearance, bool) {
	if f.ElementId == 4 {
		return sceneview.Appearance{}, false
	}
	if f.Class == sceneview.ClassConstruction {
		return sceneview.Appearance{
			HasRGB:          true,
			RGB:             sceneview.RgbColor{R: 255, G: 160, B: 0},
			HasTransparency: true,
			Transparency:    0.25,
		}, true
	}
	return sceneview.Appearance{}, true
}

func shaderSource(kind sceneview.TechniqueKind, flags render.TechniqueFlags) string {
	return fmt.Sprintf("// %s variant %d\n", kind, flags.VariantIndex())
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		sceneview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	device := gpu.NewNoopDevice(2048)
	rc, err := render.NewRendererContext(render.Config{
		Device:         device,
		Source:         shaderSource,
		CompileEagerly: true,
	})
	if err != nil {
		log.Fatalf("renderer context: %v", err)
	}
	defer rc.Dispose()

	table := sceneview.NewFeatureTable(100)
	table.Add(sceneview.Feature{ElementId: 1, SubCategoryId: 10})
	table.Add(sceneview.Feature{ElementId: 2, SubCategoryId: 10})
	table.Add(sceneview.Feature{ElementId: 3, SubCategoryId: 11, Class: sceneview.ClassConstruction})
	table.Add(sceneview.Feature{ElementId: 4, SubCategoryId: 11})
	table.Seal()

	var tilt math32.Matrix4
	tilt.SetRotationY(0.4)

	root := scene.NewGraphicList(
		scene.NewPrimitiveNode(&demoPrimitive{
			name: "ground", pass: sceneview.PassBackground,
			order: sceneview.OrderSurface, kind: sceneview.TechniqueSurface,
		}),
		scene.NewTransformBranch(
			scene.NewBatch(
				scene.NewGraphicList(
					scene.NewPrimitiveNode(&demoPrimitive{
						name: "walls", pass: sceneview.PassOpaqueGeneral,
						order: sceneview.OrderSurface, kind: sceneview.TechniqueSurface,
					}),
					scene.NewPrimitiveNode(&demoPrimitive{
						name: "edges", pass: sceneview.PassOpaqueGeneral,
						order: sceneview.OrderEdge, kind: sceneview.TechniqueEdge,
					}),
					scene.NewPrimitiveNode(&demoPrimitive{
						name: "glass", pass: sceneview.PassTranslucent,
						order: sceneview.OrderSurface, kind: sceneview.TechniqueSurface,
						translucent: true,
					}),
				),
				table, math32.Box3{}, sceneview.BatchPrimary,
			),
			tilt,
		),
	)
	defer root.Dispose()

	var stats scene.Statistics
	root.CollectStatistics(&stats)
	fmt.Printf("scene: %d primitives, %d batches, %d branches, %d features\n",
		stats.Primitives, stats.Batches, stats.Branches, stats.Features)

	view := sceneview.NewView(render.NewOverridesAllocator(device), demoPolicy{})
	defer view.Dispose()

	state := scene.NewBranchState(sceneview.DefaultViewFlags())
	state.Policy = view.Policy()

	builder := render.NewCommandBuilder(view)
	executor := render.NewExecutor(rc)

	drawFrame := func(label string) {
		list := builder.Build(root, state)
		executor.Execute(list)
		fmt.Printf("%s: %d commands", label, list.Count())
		for p := sceneview.PassBackground; p <= sceneview.PassViewOverlay; p++ {
			if cmds := list.Pass(p); len(cmds) > 0 {
				fmt.Printf("  %s=%d", p, len(cmds))
			}
		}
		fmt.Println()
	}

	drawFrame("frame 1")

	// Flash an element: only the flag bytes of the lookup table change.
	view.SetFlashed(2)
	drawFrame("frame 2 (flash element 2)")

	// Hilite the construction geometry's model.
	view.HiliteModel(100)
	drawFrame("frame 3 (hilite model 100)")

	uploads := 0
	for _, tex := range device.Textures {
		uploads += tex.Updates
	}
	fmt.Printf("device: %d programs compiled, %d binds, %d draws, %d texture uploads\n",
		len(device.Programs), device.Binds, device.Draws, uploads)
}
