package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
)

// View maps y-up world units onto the screen around the camera.
type View struct {
	Camera cp.Vector
	Zoom   float64
	Width  float64
	Height float64
}

func (v View) scale() float64 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.PixelsPerUnit * zoom
}

// ToScreen converts a world point to screen pixels.
func (v View) ToScreen(p cp.Vector) (float64, float64) {
	s := v.scale()
	return (p.X-v.Camera.X)*s + v.Width/2, v.Height/2 - (p.Y-v.Camera.Y)*s
}

// CameraView reads the first camera in w.
func CameraView(w *ecs.World, width, height float64) View {
	view := View{Zoom: 1, Width: width, Height: height}
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			view.Camera = cam.Position
			if cam.Zoom > 0 {
				view.Zoom = cam.Zoom
			}
		}
	}
	return view
}

// Signal tints layered over the player's sprite color.
var signalTints = []struct {
	signal character.Signal
	pulse  bool
	tint   color.RGBA
}{
	{signal: character.SignalHurt, pulse: true, tint: color.RGBA{R: 255, G: 80, B: 80, A: 255}},
	{signal: character.SignalHealing, tint: color.RGBA{R: 120, G: 255, B: 140, A: 255}},
	{signal: character.SignalCasting, tint: color.RGBA{R: 140, G: 170, B: 255, A: 255}},
	{signal: character.SignalDashing, tint: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	{signal: character.SignalAttacking, pulse: true, tint: color.RGBA{R: 255, G: 230, B: 150, A: 255}},
}

// RenderSystem draws every sprite as a rotated, tinted rectangle.
type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	view := CameraView(w, float64(bounds.Dx()), float64(bounds.Dy()))
	scale := view.scale()

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.SpriteComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.SpriteComponent.Kind())
		return si.Layer < sj.Layer
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Width <= 0 || s.Height <= 0 {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(s.Width*scale, s.Height*scale)
		// screen y points down, so world rotation flips sign
		op.GeoM.Rotate(-t.Rotation)
		x, y := view.ToScreen(cp.Vector{X: t.X, Y: t.Y})
		op.GeoM.Translate(x, y)

		op.ColorScale.ScaleWithColor(r.tint(w, e, s.Color))
		if flash, ok := ecs.Get(w, e, component.FlashComponent.Kind()); ok && flash.Amount > 0 {
			k := float32(1 - common.Clamp01(flash.Amount))
			op.ColorScale.Scale(k, k, k, 1)
		}
		screen.DrawImage(r.pixel, op)
	}
}

func (r *RenderSystem) tint(w *ecs.World, e ecs.Entity, base color.RGBA) color.RGBA {
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok || ch.Signals == nil {
		return base
	}
	for _, st := range signalTints {
		on := ch.Signals.Bool(st.signal)
		if st.pulse {
			on = ch.Signals.Pulsing(st.signal)
		}
		if on {
			return mix(base, st.tint, 0.5)
		}
	}
	return base
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(common.Lerp(float64(x), float64(y), t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
