package ebiten

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/adventurer/input"
)

var keyMap = map[eb.Key]input.Key{
	eb.KeyArrowLeft:  input.KeyLeft,
	eb.KeyArrowRight: input.KeyRight,
	eb.KeyArrowUp:    input.KeyUp,
	eb.KeyArrowDown:  input.KeyDown,
	eb.KeySpace:      input.KeySpace,
	eb.KeyEscape:     input.KeyEscape,
}

// TranslateKey maps an ebiten key to the game's key set. Keys the game has
// no name for become KeyOther.
func TranslateKey(k eb.Key) *input.Key {
	key, ok := keyMap[k]
	if !ok {
		key = input.KeyOther
	}
	return &key
}

// KeyReader turns ebiten's per-tick key state into key events: one Pressed
// per press and one Released per release. A tick that carries a release also
// re-presses every key still held, see input.Transitions.
type KeyReader struct {
	buf                     []eb.Key
	released, pressed, held []input.Key
}

// Append adds the key transitions of the current tick to events.
func (r *KeyReader) Append(events []input.KeyEvent) []input.KeyEvent {
	r.released = r.translate(r.released[:0], inpututil.AppendJustReleasedKeys)
	r.pressed = r.translate(r.pressed[:0], inpututil.AppendJustPressedKeys)
	if len(r.released) > 0 {
		r.held = r.translate(r.held[:0], inpututil.AppendPressedKeys)
	} else {
		r.held = r.held[:0]
	}
	return append(events, input.Transitions(r.released, r.pressed, r.held)...)
}

func (r *KeyReader) translate(dst []input.Key, appendKeys func([]eb.Key) []eb.Key) []input.Key {
	r.buf = appendKeys(r.buf[:0])
	for _, k := range r.buf {
		dst = append(dst, *TranslateKey(k))
	}
	return dst
}
