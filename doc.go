// Package glowgrid renders a continuously animated "digital grid" visual
// effect with [Ebitengine]: a dim grid background, glowing electrons that
// random-walk between grid vertices, cells that flicker to life at random,
// and a text presenter that spells out submitted text as lit grid cells
// with particle bursts.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, the
// render surfaces, and the input wiring for you:
//
//	glowgrid.Run(glowgrid.RunConfig{
//		Title: "glowgrid", Width: 800, Height: 600,
//	})
//
// For full control, build the pieces yourself: create an [Engine], attach
// two [Surface] values (the static grid background and the animation
// foreground), wire a [Presenter], and call [Engine.Step] once per frame
// from your own [ebiten.Game]:
//
//	eng := glowgrid.NewEngine(glowgrid.DefaultConfig())
//	eng.AttachSurfaces(
//		glowgrid.NewSurface(800, 600, false),
//		glowgrid.NewSurface(800, 600, false),
//	)
//	p := glowgrid.NewPresenter(eng)
//	p.Print("HELLO", time.Now())
//	// per frame: eng.Step(time.Now())
//
// # Model
//
// Everything is placed on a fixed grid pitch ([Pitch] pixels). An
// [Electron] steps toward a grid-aligned destination and, on arrival, picks
// a random neighboring vertex it has not recently visited. A [Cell] fills
// one grid square and respawns its corner electrons on a randomized
// 300-500ms schedule, decoupled from the frame rate. The [Engine] owns the
// active electron and pinned cell collections and prunes expired entries
// every frame; each frame also blends the background grid onto the
// foreground at low opacity, which is what produces the fading trails.
//
// All state is mutated from the frame thread only. There are no background
// goroutines: debounced resizes, print batches, and cell schedules are
// wall-clock deadlines checked during [Engine.Step].
//
// [Ebitengine]: https://ebitengine.org
package glowgrid
