package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func structuredSession() *Session {
	return newSession("arn:db", Classify(`{"user":"admin","pass":"x1"}`))
}

func TestSession_DefaultMasked(t *testing.T) {
	t.Parallel()

	s := structuredSession()
	assert.Equal(t, []Row{
		{Key: "user", Display: Mask},
		{Key: "pass", Display: Mask},
	}, s.RenderRows())
	assert.Equal(t, []string{"user", "pass"}, s.Keys())

	plain := newSession("arn:token", Classify("plain-secret-123"))
	assert.Equal(t, []Row{{Key: "arn:token", Display: "******"}}, plain.RenderRows())
	assert.Equal(t, []string{"arn:token"}, plain.Keys())
}

func TestSession_ToggleRevealsAndRestores(t *testing.T) {
	t.Parallel()

	s := structuredSession()
	before := s.RenderRows()

	require.NoError(t, s.Toggle("pass"))
	assert.Equal(t, []Row{
		{Key: "user", Display: Mask},
		{Key: "pass", Display: "x1", Revealed: true},
	}, s.RenderRows())

	revealed, err := s.Revealed("pass")
	require.NoError(t, err)
	assert.True(t, revealed)

	require.NoError(t, s.Toggle("pass"))
	assert.Equal(t, before, s.RenderRows())

	revealed, err = s.Revealed("pass")
	require.NoError(t, err)
	assert.False(t, revealed)
}

func TestSession_PlainTextToggle(t *testing.T) {
	t.Parallel()

	s := newSession("arn:token", Classify("plain-secret-123"))

	require.NoError(t, s.Toggle("arn:token"))
	assert.Equal(t, []Row{{Key: "arn:token", Display: "plain-secret-123", Revealed: true}}, s.RenderRows())

	require.NoError(t, s.Toggle("arn:token"))
	assert.Equal(t, []Row{{Key: "arn:token", Display: Mask}}, s.RenderRows())
}

func TestSession_RawValueIgnoresVisibility(t *testing.T) {
	t.Parallel()

	s := structuredSession()

	v, err := s.RawValue("user")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	require.NoError(t, s.Toggle("user"))
	v, err = s.RawValue("user")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	plain := newSession("arn:token", Classify("plain-secret-123"))
	v, err = plain.RawValue("arn:token")
	require.NoError(t, err)
	assert.Equal(t, "plain-secret-123", v)
}

func TestSession_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	s := structuredSession()
	require.NoError(t, s.Toggle("user"))
	before := s.RenderRows()

	err := s.Toggle("nonexistent")
	require.Error(t, err)
	assert.True(t, IsUnknownField(err))
	var uf *UnknownFieldError
	require.ErrorAs(t, err, &uf)
	assert.Equal(t, "arn:db", uf.ID)
	assert.Equal(t, "nonexistent", uf.Key)
	assert.EqualError(t, err, `secret arn:db has no field "nonexistent"`)

	_, err = s.RawValue("nonexistent")
	assert.True(t, IsUnknownField(err))

	_, err = s.Revealed("nonexistent")
	assert.True(t, IsUnknownField(err))

	assert.Equal(t, before, s.RenderRows())

	plain := newSession("arn:token", Classify("plain-secret-123"))
	assert.True(t, IsUnknownField(plain.Toggle("value")))
	_, err = plain.RawValue("value")
	assert.True(t, IsUnknownField(err))
	assert.Equal(t, []Row{{Key: "arn:token", Display: Mask}}, plain.RenderRows())
}

func TestSession_VisibilityIsPerField(t *testing.T) {
	t.Parallel()

	s := newSession("arn:x", Classify(`{"a":"1","b":"2","c":"3"}`))
	require.NoError(t, s.Toggle("b"))
	require.NoError(t, s.Toggle("c"))
	require.NoError(t, s.Toggle("c"))

	assert.Equal(t, []Row{
		{Key: "a", Display: Mask},
		{Key: "b", Display: "2", Revealed: true},
		{Key: "c", Display: Mask},
	}, s.RenderRows())
}
