package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelFanOut(t *testing.T) {
	ch := NewChannel[int]()

	var got1, got2 []int

	ch.Subscribe(func(v int) {
		got1 = append(got1, v)
	})
	token2 := ch.Subscribe(func(v int) {
		got2 = append(got2, v)
	})

	assert.True(t, ch.HasSubscribers())

	ch.Emit(1)
	ch.Emit(2)

	ch.Unsubscribe(token2)

	ch.Emit(3)

	assert.Equal(t, []int{1, 2, 3}, got1)
	assert.Equal(t, []int{1, 2}, got2)
}

func TestChannelUnsubscribeDuringFanOut(t *testing.T) {
	ch := NewChannel[int]()

	var tokenLate Token

	var early, late []int

	ch.Subscribe(func(v int) {
		early = append(early, v)

		if v == 2 {
			ch.Unsubscribe(tokenLate)
		}
	})
	tokenLate = ch.Subscribe(func(v int) {
		late = append(late, v)
	})

	ch.Emit(1)
	ch.Emit(2)
	ch.Emit(3)

	assert.Equal(t, []int{1, 2, 3}, early)
	assert.Equal(t, []int{1}, late)
}

func TestChannelComplete(t *testing.T) {
	ch := NewChannel[int]()

	var got []int

	ch.Subscribe(func(v int) {
		got = append(got, v)
	})

	ch.Emit(1)
	ch.Complete()
	ch.Emit(2)

	assert.True(t, ch.Completed())
	assert.False(t, ch.HasSubscribers())
	assert.Equal(t, []int{1}, got)

	// subscribing after completion never fires
	ch.Subscribe(func(v int) {
		t.Fatal("should not be called")
	})
	ch.Emit(3)
}

func TestChannelNoSubscribers(t *testing.T) {
	ch := NewChannel[string]()

	assert.False(t, ch.HasSubscribers())

	// emitting with nobody listening is a no-op
	ch.Emit("x")
}
