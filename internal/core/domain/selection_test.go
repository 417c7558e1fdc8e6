package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelection(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		sel, err := NewSelection("search", "id", "bbs")

		require.NoError(t, err)
		assert.Equal(t, []string{"search", "id", "bbs"}, sel.Names())
		assert.Equal(t, 3, sel.Len())
		assert.Equal(t, "search,id,bbs", sel.String())
		assert.False(t, sel.IsZero())
	})

	t.Run("rejects empty list", func(t *testing.T) {
		_, err := NewSelection()

		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewSelection("id", "  ")

		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewSelection("id", "append", "id")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Contains(t, err.Error(), `"id"`)
	})

	t.Run("names returns a copy", func(t *testing.T) {
		sel, err := NewSelection("id", "append")
		require.NoError(t, err)

		names := sel.Names()
		names[0] = "changed"

		assert.Equal(t, []string{"id", "append"}, sel.Names())
	})

	t.Run("input slice is not retained", func(t *testing.T) {
		in := []string{"id", "append"}
		sel, err := NewSelection(in...)
		require.NoError(t, err)

		in[0] = "changed"

		assert.Equal(t, []string{"id", "append"}, sel.Names())
	})
}

func TestSelection_Indexes(t *testing.T) {
	header := []string{"bbs", "n", "id", "search", "search_false_pos", "other"}

	t.Run("resolves in selection order", func(t *testing.T) {
		sel := mustSelection(t, "search", "bbs")

		idx, err := sel.Indexes(header)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 0}, idx)
	})

	t.Run("first duplicate header wins", func(t *testing.T) {
		sel := mustSelection(t, "id")

		idx, err := sel.Indexes([]string{"x", "id", "id"})

		require.NoError(t, err)
		assert.Equal(t, []int{1}, idx)
	})

	t.Run("reports every missing column", func(t *testing.T) {
		sel := mustSelection(t, "id", "append", "bbs", "zzz")

		_, err := sel.Indexes(header)

		var mce *MissingColumnError
		require.True(t, errors.As(err, &mce))
		assert.Equal(t, []string{"append", "zzz"}, mce.Missing)
	})

	t.Run("match is case sensitive", func(t *testing.T) {
		sel := mustSelection(t, "ID")

		_, err := sel.Indexes(header)

		assert.True(t, errors.Is(err, ErrMissingColumn))
	})
}
