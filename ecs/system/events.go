package system

import (
	"github.com/milk9111/charcontrol/ecs"
	"go.uber.org/zap"
)

// EventLogSystem drains whatever is left in the event queue at the end of a
// frame, handing each event to the listeners and logging it.
type EventLogSystem struct {
	logger    *zap.Logger
	listeners []func(ecs.Event)
}

func NewEventLogSystem(logger *zap.Logger) *EventLogSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLogSystem{logger: logger}
}

// Listen registers fn for every drained event.
func (s *EventLogSystem) Listen(fn func(ecs.Event)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		s.logger.Debug("event", zap.String("type", string(evt.Type)), zap.Stringer("source", evt.Source), zap.Any("data", evt.Data))
		for _, fn := range s.listeners {
			fn(evt)
		}
	}
}
