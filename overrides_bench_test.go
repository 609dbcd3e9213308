package sceneview

import "testing"

// benchPolicy overrides a channel per element so the encoding is never
// uniform and the lookup table path stays hot.
var benchPolicy = policyFunc(func(f Feature, _ Id, _ BatchType) (Appearance, bool) {
	if f.ElementId%7 == 0 {
		return Appearance{}, false
	}
	return Appearance{HasWeight: true, Weight: uint8(f.ElementId % 32)}, true
})

func BenchmarkOverridesRebuild_1024Features(b *testing.B) {
	b.ReportAllocs()
	ctx := newTestContext(benchPolicy)
	fo, err := NewFeatureOverrides(makeTable(1024), BatchPrimary, ctx)
	if err != nil {
		b.Fatalf("NewFeatureOverrides() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.ovrT++
		if err := fo.Refresh(ctx); err != nil {
			b.Fatalf("Refresh() error = %v", err)
		}
	}
}

func BenchmarkOverridesFlashRefresh_1024Features(b *testing.B) {
	b.ReportAllocs()
	ctx := newTestContext(benchPolicy)
	fo, err := NewFeatureOverrides(makeTable(1024), BatchPrimary, ctx)
	if err != nil {
		b.Fatalf("NewFeatureOverrides() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternating flash target keeps each iteration a real flag pass.
		ctx.flashed = Id(1 + i%2)
		ctx.flashT++
		if err := fo.Refresh(ctx); err != nil {
			b.Fatalf("Refresh() error = %v", err)
		}
	}
}
