package character

import "github.com/milk9111/charcontrol/common"

// Input is one frame of player intent. Pressed and Released are edges; Held
// is the level signal.
type Input struct {
	X float64
	Y float64

	JumpPressed  bool
	JumpReleased bool
	DashPressed  bool

	AttackPressed bool

	CastPressed  bool
	CastHeld     bool
	CastReleased bool
}

// Buttons is the raw level state of every control for one frame.
type Buttons struct {
	X      float64
	Y      float64
	Jump   bool
	Dash   bool
	Attack bool
	Cast   bool
}

// InputSampler turns successive Buttons into Inputs with edges.
type InputSampler struct {
	prev Buttons
}

func (s *InputSampler) Sample(b Buttons) Input {
	in := Input{
		X:             common.Clamp(b.X, -1, 1),
		Y:             common.Clamp(b.Y, -1, 1),
		JumpPressed:   b.Jump && !s.prev.Jump,
		JumpReleased:  !b.Jump && s.prev.Jump,
		DashPressed:   b.Dash && !s.prev.Dash,
		AttackPressed: b.Attack && !s.prev.Attack,
		CastPressed:   b.Cast && !s.prev.Cast,
		CastHeld:      b.Cast,
		CastReleased:  !b.Cast && s.prev.Cast,
	}
	s.prev = b
	return in
}

// Reset forgets the previous frame so the next sample sees fresh presses.
func (s *InputSampler) Reset() {
	s.prev = Buttons{}
}
