package character

import "fmt"

// State is the shared flag record every subsystem reads. Fields only change
// through the transition methods below so the invariants hold in one place.
type State struct {
	jumping      bool
	dashing      bool
	recoilingX   bool
	recoilingY   bool
	lookingRight bool
	invincible   bool
	healing      bool
	casting      bool

	airJumpsUsed   int
	stepsXRecoiled int
	stepsYRecoiled int
}

func (s State) IsJumping() bool      { return s.jumping }
func (s State) IsDashing() bool      { return s.dashing }
func (s State) IsRecoilingX() bool   { return s.recoilingX }
func (s State) IsRecoilingY() bool   { return s.recoilingY }
func (s State) IsLookingRight() bool { return s.lookingRight }
func (s State) IsInvincible() bool   { return s.invincible }
func (s State) IsHealing() bool      { return s.healing }
func (s State) IsCasting() bool      { return s.casting }
func (s State) AirJumpsUsed() int    { return s.airJumpsUsed }
func (s State) StepsXRecoiled() int  { return s.stepsXRecoiled }
func (s State) StepsYRecoiled() int  { return s.stepsYRecoiled }

func (s *State) land() {
	s.jumping = false
	s.airJumpsUsed = 0
}

func (s *State) groundJump() {
	s.jumping = true
	s.airJumpsUsed = 0
}

func (s *State) airJump() {
	s.jumping = true
	s.airJumpsUsed++
}

func (s *State) cutJump() {
	s.jumping = false
}

func (s *State) resetAirJumps() {
	s.airJumpsUsed = 0
}

func (s *State) face(right bool) {
	s.lookingRight = right
}

func (s *State) beginDash() { s.dashing = true }
func (s *State) endDash()   { s.dashing = false }

func (s *State) startRecoilX() { s.recoilingX = true }
func (s *State) startRecoilY() { s.recoilingY = true }

// stepRecoilX counts one physics tick of horizontal recoil and clears the
// flag once limit ticks have elapsed.
func (s *State) stepRecoilX(limit int) bool {
	s.stepsXRecoiled++
	if s.stepsXRecoiled >= limit {
		s.stopRecoilX()
		return true
	}
	return false
}

func (s *State) stepRecoilY(limit int) bool {
	s.stepsYRecoiled++
	if s.stepsYRecoiled >= limit {
		s.stopRecoilY()
		return true
	}
	return false
}

func (s *State) stopRecoilX() {
	s.recoilingX = false
	s.stepsXRecoiled = 0
}

func (s *State) stopRecoilY() {
	s.recoilingY = false
	s.stepsYRecoiled = 0
}

func (s *State) beginInvincible() { s.invincible = true }
func (s *State) endInvincible()   { s.invincible = false }

func (s *State) beginHeal() bool {
	if s.casting {
		return false
	}
	s.healing = true
	return true
}

func (s *State) endHeal() { s.healing = false }

func (s *State) beginCast() bool {
	if s.healing {
		return false
	}
	s.casting = true
	return true
}

func (s *State) endCast() { s.casting = false }

// Check verifies the aggregator invariants against cfg.
func (s State) Check(cfg Config) error {
	if s.healing && s.casting {
		return fmt.Errorf("character: healing and casting at once")
	}
	if s.airJumpsUsed < 0 || s.airJumpsUsed > cfg.MaxAirJumps {
		return fmt.Errorf("character: air jumps used %d outside [0,%d]", s.airJumpsUsed, cfg.MaxAirJumps)
	}
	if s.stepsXRecoiled < 0 || s.stepsXRecoiled > cfg.RecoilXSteps {
		return fmt.Errorf("character: x recoil steps %d outside [0,%d]", s.stepsXRecoiled, cfg.RecoilXSteps)
	}
	if s.stepsYRecoiled < 0 || s.stepsYRecoiled > cfg.RecoilYSteps {
		return fmt.Errorf("character: y recoil steps %d outside [0,%d]", s.stepsYRecoiled, cfg.RecoilYSteps)
	}
	return nil
}
