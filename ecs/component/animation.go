package component

import "github.com/milk9111/charcontrol/character"

// pulseSeconds is how long a triggered signal stays visible to the renderer.
const pulseSeconds = 0.2

// AnimationSignals records the controller's animation signals. Bools are
// levels; triggers become short pulses that decay with Tick.
type AnimationSignals struct {
	bools  map[character.Signal]bool
	pulses map[character.Signal]float64
	counts map[character.Signal]int
}

var _ character.Animator = (*AnimationSignals)(nil)

func NewAnimationSignals() *AnimationSignals {
	return &AnimationSignals{
		bools:  map[character.Signal]bool{},
		pulses: map[character.Signal]float64{},
		counts: map[character.Signal]int{},
	}
}

func (a *AnimationSignals) SetBool(s character.Signal, v bool) {
	a.bools[s] = v
}

func (a *AnimationSignals) Trigger(s character.Signal) {
	a.pulses[s] = pulseSeconds
	a.counts[s]++
}

func (a *AnimationSignals) Bool(s character.Signal) bool {
	return a != nil && a.bools[s]
}

// Pulsing reports whether trigger s fired within the last pulse window.
func (a *AnimationSignals) Pulsing(s character.Signal) bool {
	return a != nil && a.pulses[s] > 0
}

// Triggers returns how many times s has fired.
func (a *AnimationSignals) Triggers(s character.Signal) int {
	if a == nil {
		return 0
	}
	return a.counts[s]
}

func (a *AnimationSignals) Tick(dt float64) {
	if a == nil {
		return
	}
	for s, left := range a.pulses {
		left -= dt
		if left <= 0 {
			delete(a.pulses, s)
			continue
		}
		a.pulses[s] = left
	}
}
