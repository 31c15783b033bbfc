package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmit_SubscriptionOrder(t *testing.T) {
	var e Emitter[int]
	var order []string

	e.Subscribe(func(int) { order = append(order, "first") })
	e.Subscribe(func(int) { order = append(order, "second") })
	e.Subscribe(func(int) { order = append(order, "third") })

	e.Emit(1)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	var e Emitter[int]
	calls := 0

	unsub := e.Subscribe(func(int) { calls++ })
	e.Emit(1)
	unsub()
	e.Emit(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, e.Len())

	// double unsubscribe is harmless
	unsub()
}

func TestUnsubscribe_MidNotification(t *testing.T) {
	var e Emitter[int]
	var got []string

	var unsubB func()
	e.Subscribe(func(int) {
		got = append(got, "a")
		unsubB()
	})
	unsubB = e.Subscribe(func(int) { got = append(got, "b") })
	e.Subscribe(func(int) { got = append(got, "c") })

	e.Emit(1)

	// b was removed by a during the pass and must not run, not even once
	assert.Equal(t, []string{"a", "c"}, got)

	e.Emit(2)
	assert.Equal(t, []string{"a", "c", "a", "c"}, got)
}

func TestEmit_PanickingListenerIsIsolated(t *testing.T) {
	var e Emitter[string]
	var got []string

	e.Subscribe(func(string) { panic("listener bug") })
	e.Subscribe(func(v string) { got = append(got, v) })

	assert.NotPanics(t, func() { e.Emit("x") })
	assert.Equal(t, []string{"x"}, got)
}

func TestEmit_PayloadDelivered(t *testing.T) {
	var e Emitter[string]
	var got string

	e.Subscribe(func(v string) { got = v })
	e.Emit("toast")

	assert.Equal(t, "toast", got)
}
