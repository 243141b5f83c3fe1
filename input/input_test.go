package input_test

import (
	"testing"

	"github.com/plus3/adventurer/input"
	"github.com/stretchr/testify/assert"
)

func TestQueueDrainKeepsOrder(t *testing.T) {
	q := &input.Queue{}
	q.Push(input.Press(input.KeyLeft), input.Release(input.KeyLeft))
	q.Push(input.KeyEvent{State: input.Released})
	assert.Equal(t, 3, q.Len())

	events := q.Drain()
	assert.Len(t, events, 3)
	assert.True(t, events[0].Is(input.KeyLeft))
	assert.Equal(t, input.Pressed, events[0].State)
	assert.Equal(t, input.Released, events[1].State)
	assert.Nil(t, events[2].Key)
	assert.False(t, events[2].Is(input.KeyLeft))

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestKeyEventString(t *testing.T) {
	assert.Equal(t, "Right Pressed", input.Press(input.KeyRight).String())
	assert.Equal(t, "<unknown> Released", input.KeyEvent{State: input.Released}.String())
}

func TestTransitions(t *testing.T) {
	left, right, other := input.KeyLeft, input.KeyRight, input.KeyOther

	tests := []struct {
		name     string
		released []input.Key
		pressed  []input.Key
		held     []input.Key
		want     []input.KeyEvent
	}{
		{"nothing", nil, nil, []input.Key{left}, []input.KeyEvent{}},
		{"press", nil, []input.Key{right}, []input.Key{right}, []input.KeyEvent{input.Press(right)}},
		{"held keys are not repeated without a release", nil, []input.Key{left}, []input.Key{left, right}, []input.KeyEvent{input.Press(left)}},
		{"release re-presses held keys", []input.Key{right}, nil, []input.Key{left},
			[]input.KeyEvent{input.Release(right), input.Press(left)}},
		{"release and press in one tick", []input.Key{right}, []input.Key{left}, []input.Key{left},
			[]input.KeyEvent{input.Release(right), input.Press(left)}},
		{"held duplicates collapse", []input.Key{left}, nil, []input.Key{other, other},
			[]input.KeyEvent{input.Release(left), input.Press(other)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, input.Transitions(tt.released, tt.pressed, tt.held))
		})
	}
}
