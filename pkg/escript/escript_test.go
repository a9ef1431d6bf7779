package escript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSimple(t *testing.T) {
	res, err := New().Run("1 + 2 * 3")
	require.NoError(t, err)
	n, ok := res.Float64()
	require.True(t, ok)
	assert.Equal(t, 7.0, n)
	assert.Equal(t, "Number", res.Kind())
	assert.Equal(t, "7", res.String())
}

func TestRunKinds(t *testing.T) {
	e := New()

	res, err := e.Run("'a' + 'b'")
	require.NoError(t, err)
	assert.Equal(t, "ab", res.String())

	res, err = e.Run("1 < 2")
	require.NoError(t, err)
	b, ok := res.Bool()
	require.True(t, ok)
	assert.True(t, b)

	res, err = e.Run("var unused = 1;")
	require.NoError(t, err)
	assert.True(t, res.IsUndefined())
}

func TestEngineStatePersists(t *testing.T) {
	e := New()
	_, err := e.Run("var counter = 10;")
	require.NoError(t, err)
	res, err := e.Run("counter + 1")
	require.NoError(t, err)
	assert.Equal(t, "11", res.String())
}

func TestCompileError(t *testing.T) {
	_, err := Compile("var = 1;")
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce), "error is %T", err)
	assert.NotEmpty(t, ce.Errors)
	assert.Contains(t, err.Error(), "Error at line")
}

func TestThrownError(t *testing.T) {
	_, err := New().Run("throw new TypeError('bad');")
	require.Error(t, err)
	var te *ThrownError
	require.True(t, errors.As(err, &te), "error is %T", err)
	assert.Contains(t, te.Error(), "TypeError")
	assert.Contains(t, te.Error(), "bad")
}

func TestThrownPrimitive(t *testing.T) {
	_, err := New().Run("throw 42;")
	require.Error(t, err)
	var te *ThrownError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "42")
}

func TestTrailingReferenceError(t *testing.T) {
	_, err := New().Run("missing")
	require.Error(t, err)
	var te *ThrownError
	require.True(t, errors.As(err, &te), "error is %T", err)
}

func TestDecodeSource(t *testing.T) {
	utf8 := []byte("var a = 1;")
	got, err := DecodeSource(utf8)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;", got)

	// UTF-16LE with BOM.
	le := []byte{0xFF, 0xFE}
	for _, c := range "a=1" {
		le = append(le, byte(c), 0)
	}
	got, err = DecodeSource(le)
	require.NoError(t, err)
	assert.Equal(t, "a=1", got)

	// UTF-16BE with BOM.
	be := []byte{0xFE, 0xFF}
	for _, c := range "a=2" {
		be = append(be, 0, byte(c))
	}
	got, err = DecodeSource(be)
	require.NoError(t, err)
	assert.Equal(t, "a=2", got)
}
