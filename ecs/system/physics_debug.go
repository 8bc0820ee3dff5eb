package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
)

const debugCircleSegments = 16

// DrawPhysicsDebug outlines every shape in the space.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || w.PhysicsWorld() == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	cp.DrawSpace(w.PhysicsWorld().Space(), &physicsDebugDrawer{
		screen: screen,
		view:   CameraView(w, float64(b.Dx()), float64(b.Dy())),
	})
}

// DrawPlayerStateDebug prints the controller's flags in the corner.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	_, ch, _, ok := player(w)
	if !ok {
		return
	}
	s := ch.Controller.Snapshot()
	text := fmt.Sprintf("HP %d/%d  Mana %.2f\nGrounded %v  Jumping %v  AirJumps %d\nDashing %v  CanDash %v\nRecoil X %v  Y %v\nHealing %v  Casting %v  DownSpell %v\nInvincible %v  Coyote %.2f  Buffer %.1f",
		s.Health, s.MaxHealth, s.Mana,
		s.Grounded, s.Jumping, s.AirJumpsUsed,
		s.Dashing, s.CanDash,
		s.RecoilingX, s.RecoilingY,
		s.Healing, s.Casting, s.DownSpell,
		s.Invincible, s.Coyote, s.JumpBuffer)
	ebitenutil.DebugPrintAt(screen, text, 10, 40)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   View
}

var _ cp.Drawer = (*physicsDebugDrawer)(nil)

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.view.ToScreen(pos)
	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(math.Max(size, 2)), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.ToScreen(a)
	x2, y2 := d.view.ToScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := cp.Vector{X: center.X + radius, Y: center.Y}
	for i := 1; i <= debugCircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / debugCircleSegments
		next := cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius}
		d.drawLine(prev, next, c)
		prev = next
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
