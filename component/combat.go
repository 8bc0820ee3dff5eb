package component

import "github.com/jakecoffman/cp"

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit          CombatEventType = "hit"
	EventDeath        CombatEventType = "death"
	EventPlayerHurt   CombatEventType = "player_hurt"
	EventSpellHit     CombatEventType = "spell_hit"
	EventFireballHit  CombatEventType = "fireball_hit"
	EventRecoilStart  CombatEventType = "recoil_start"
	EventRecoilFinish CombatEventType = "recoil_finish"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type      CombatEventType
	Source    string
	Target    string
	Damage    float64
	Direction cp.Vector
	Force     float64
	Position  cp.Vector
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe appends a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
