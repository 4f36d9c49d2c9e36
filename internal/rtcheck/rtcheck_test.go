package rtcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertSafeNoOpWhenDisabled(t *testing.T) {
	Disable()
	Enter()
	defer Exit()
	AssertSafe("test-site") // must not panic
}

func TestAssertSafePanicsInAudioContext(t *testing.T) {
	Enable()
	defer Disable()
	Enter()
	defer Exit()

	assert.Panics(t, func() { AssertSafe("allocating-site") },
		"AssertSafe did not panic inside audio context with guard enabled")
}

func TestAssertSafeQuietOutsideAudioContext(t *testing.T) {
	Enable()
	defer Disable()
	Exit() // ensure not in context
	AssertSafe("outside-site")
}

func TestInAudioContextReflectsEnterExit(t *testing.T) {
	Enable()
	defer Disable()
	Exit()
	a := assert.New(t)
	a.False(InAudioContext(), "expected not in audio context before Enter")

	Enter()
	a.True(InAudioContext(), "expected in audio context after Enter")

	Exit()
	a.False(InAudioContext(), "expected not in audio context after Exit")
}
