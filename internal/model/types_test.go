package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValType(t *testing.T) {
	for _, vt := range AllValTypes {
		parsed, err := ParseValType(vt.String())
		require.NoError(t, err)
		assert.Equal(t, vt, parsed)
	}

	parsed, err := ParseValType("Boolean")
	require.NoError(t, err)
	assert.Equal(t, ValTypeBool, parsed)

	_, err = ParseValType("list")
	assert.Error(t, err)
}

func TestParseUpdatePolicy(t *testing.T) {
	testCases := map[string]UpdatePolicy{
		"constant":         UpdateConstant,
		"set every repeat": UpdateEveryRepeat,
		"repeat":           UpdateEveryRepeat,
		"set every frame":  UpdateEveryFrame,
		"every_frame":      UpdateEveryFrame,
	}
	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			got, err := ParseUpdatePolicy(input)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}

	_, err := ParseUpdatePolicy("sometimes")
	assert.Error(t, err)
}

func TestParseTarget(t *testing.T) {
	tgt, err := ParseTarget("PsychoJS")
	require.NoError(t, err)
	assert.Equal(t, TargetWeb, tgt)

	tgt, err = ParseTarget("native")
	require.NoError(t, err)
	assert.Equal(t, TargetNative, tgt)

	_, err = ParseTarget("android")
	assert.Error(t, err)
}

func TestTargetSet(t *testing.T) {
	var empty TargetSet
	assert.False(t, empty.Has(TargetNative))
	assert.Empty(t, empty.Targets())

	native := NewTargetSet(TargetNative)
	assert.True(t, native.Has(TargetNative))
	assert.False(t, native.Has(TargetWeb))

	both := NewTargetSet(TargetWeb, TargetNative)
	assert.Equal(t, []Target{TargetNative, TargetWeb}, both.Targets())
	assert.Equal(t, "{native, web}", both.String())
}
