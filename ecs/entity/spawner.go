package entity

import (
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
)

// EventSpawner queues spawn requests as world events. Controllers run in the
// middle of a frame, so SpawnSystem creates the entities afterwards.
type EventSpawner struct {
	World  *ecs.World
	Source ecs.Entity
}

var _ character.Spawner = (*EventSpawner)(nil)

func (s *EventSpawner) Spawn(fx character.Effect) {
	s.World.Events().Push(ecs.Event{Type: ecs.EventSpawnEffect, Source: s.Source, Data: fx})
}

func (s *EventSpawner) SetDownField(active bool) {
	s.World.Events().Push(ecs.Event{Type: ecs.EventDownField, Source: s.Source, Data: active})
}
