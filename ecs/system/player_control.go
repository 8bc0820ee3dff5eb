package system

import (
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
)

// PlayerControlSystem runs the controller's decision phase once per frame
// with edges derived from the sampled buttons.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (p *PlayerControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.InputComponent.Kind(), component.CharacterComponent.Kind(), func(e ecs.Entity, input *component.Input, ch *component.Character) {
		if ch.Controller == nil {
			return
		}
		in := ch.Sampler.Sample(input.Buttons)
		ch.Controller.Update(dt, in)
		ch.Signals.Tick(dt)

		if flash, ok := ecs.Get(w, e, component.FlashComponent.Kind()); ok {
			flash.Amount = ch.Controller.FlashAmount()
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = !ch.Controller.State().IsLookingRight()
		}
	})
}
