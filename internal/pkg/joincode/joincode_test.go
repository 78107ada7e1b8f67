package joincode

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func neverExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func TestGenerateShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code, err := Generate(context.Background(), neverExists)
		require.NoError(t, err)

		assert.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q", r)
		}
	})
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	var seen []string
	exists := func(_ context.Context, code string) (bool, error) {
		seen = append(seen, code)
		// the first two candidates collide
		return len(seen) <= 2, nil
	}

	code, err := Generate(context.Background(), exists)
	require.NoError(t, err)
	assert.Len(t, seen, 3)
	assert.Equal(t, seen[2], code)
}

func TestGenerateGivesUpWhenSpaceExhausted(t *testing.T) {
	alwaysExists := func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}

	_, err := Generate(context.Background(), alwaysExists)
	assert.Error(t, err)
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	failing := func(_ context.Context, _ string) (bool, error) {
		return false, boom
	}

	_, err := Generate(context.Background(), failing)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateProducesDistinctCodes(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := Generate(context.Background(), neverExists)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
