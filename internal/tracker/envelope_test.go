package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	if v := env.Eval(-1); v != 0 {
		t.Fatalf("expected 0 before start, got %v", v)
	}
	if v := env.Eval(0); v != 0 {
		t.Fatalf("expected 0 at t=0, got %v", v)
	}
	if v := env.Eval(5); v != 5 {
		t.Fatalf("expected 5 at t=5, got %v", v)
	}
	if v := env.Eval(10); v != 10 {
		t.Fatalf("expected 10 at t=10, got %v", v)
	}
	if v := env.Eval(11); v != 10 {
		t.Fatalf("expected 10 after end, got %v", v)
	}
}

func TestEnvelopeValidate(t *testing.T) {
	unsorted := Envelope{Keys: []Keyframe{{T: 1}, {T: 0}}}
	assert.ErrorIs(t, unsorted.Validate(), diagnostics.ErrConfiguration)

	badEase := Envelope{Keys: []Keyframe{{T: 0, Ease: "bounce"}}}
	assert.ErrorIs(t, badEase.Validate(), diagnostics.ErrConfiguration)
}

func TestKeyedFollowsEnvelope(t *testing.T) {
	k, err := NewKeyed("phase", Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "smooth"},
		{T: 2, V: 4},
	}})
	require.NoError(t, err)
	_, err = k.Advance(1)
	require.NoError(t, err)
	assert.InDelta(t, 2, k.Get(), 1e-12)
	assert.False(t, k.Done())
	_, err = k.Advance(5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, k.Get())
	assert.True(t, k.Done())
}

func TestParseEase(t *testing.T) {
	for _, name := range EaseNames() {
		e, err := ParseEase(name)
		require.NoError(t, err, name)
		assert.Equal(t, 0.0, e(0), name)
		assert.Equal(t, 1.0, e(1), name)
	}
	_, err := ParseEase("bounce")
	assert.ErrorIs(t, err, diagnostics.ErrConfiguration)
}

func TestScalarAndOwnership(t *testing.T) {
	s, err := NewScalar("k", 2)
	require.NoError(t, err)
	v, err := s.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	a, b := new(int), new(int)
	require.NoError(t, s.Claim(a))
	require.NoError(t, s.Claim(a))
	assert.ErrorIs(t, s.Claim(b), diagnostics.ErrConfiguration)
	s.Release(a)
	assert.NoError(t, s.Claim(b))
}
