package input

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.2

// Action names understood by DefaultBindings and the control system.
const (
	ActionLeft  = "left"
	ActionRight = "right"
	ActionUp    = "up"
	ActionDown  = "down"
	ActionJump  = "jump"
	ActionDebug = "debug"
)

// DefaultBindings maps actions to keyboard keys.
func DefaultBindings() map[string][]ebiten.Key {
	return map[string][]ebiten.Key{
		ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		ActionUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
		ActionDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
		ActionJump:  {ebiten.KeySpace},
		ActionDebug: {ebiten.KeyF1},
	}
}

// EbitenSource reads the live keyboard and first gamepad. Names are looked
// up in Bindings first, then parsed as ebiten key names such as "Q" or "ArrowUp".
// It must be polled from ebiten's Update.
type EbitenSource struct {
	Bindings map[string][]ebiten.Key

	parsed map[string]ebiten.Key
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{
		Bindings: DefaultBindings(),
		parsed:   make(map[string]ebiten.Key),
	}
}

func (s *EbitenSource) Pressed(name string) bool {
	if keys, ok := s.Bindings[name]; ok {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return s.gamepadPressed(name)
	}

	key, ok := s.lookup(name)
	return ok && ebiten.IsKeyPressed(key)
}

func (s *EbitenSource) lookup(name string) (ebiten.Key, bool) {
	if key, ok := s.parsed[name]; ok {
		return key, true
	}
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		log.Printf("Input: unknown key %q: %v", name, err)
		return 0, false
	}
	if s.parsed == nil {
		s.parsed = make(map[string]ebiten.Key)
	}
	s.parsed[name] = key
	return key, true
}

func (s *EbitenSource) gamepadPressed(action string) bool {
	gamepads := ebiten.AppendGamepadIDs(nil)
	if len(gamepads) == 0 {
		return false
	}
	id := gamepads[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return false
	}

	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch action {
	case ActionLeft:
		return x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
	case ActionRight:
		return x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
	case ActionUp:
		return y < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
	case ActionDown:
		return y > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
	case ActionJump:
		return ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return false
}
