package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

func TestProfileCmd_List(t *testing.T) {
	_, _, buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"profile", "list"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "filter")
	assert.Contains(t, out, "id,append")
	assert.Contains(t, out, "filtered/<dir>/fil-<name>")
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "bbs,n,id,search,search_false_pos")
	assert.Contains(t, out, "extracted-<name>.csv")
}

func TestProfileCmd_DefaultsToList(t *testing.T) {
	_, _, buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"profile"})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "id,append")
}

func TestProfileCmd_Show(t *testing.T) {
	_, _, buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"profile", "show", "extract"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Profile: extract")
	assert.Contains(t, out, "Index:     true")
	assert.Contains(t, out, "Traversal: flat")
	assert.Contains(t, out, "Config: /tmp/colfilter/config.toml")
}

func TestProfileCmd_ShowUnknown(t *testing.T) {
	setupCLITest(t)
	rootCmd.SetArgs([]string{"profile", "show", "bogus"})

	err := rootCmd.Execute()

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProfileCmd_SetColumns(t *testing.T) {
	_, profiles, buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"profile", "set-columns", "filter", "id,append", "ts"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{"id", "append", "ts"}, profiles.overrides[domain.ProfileFilter])
	assert.Contains(t, buf.String(), "Profile filter now keeps: id,append,ts")
}

func TestProfileCmd_SetColumnsInvalid(t *testing.T) {
	_, profiles, _ := setupCLITest(t)
	rootCmd.SetArgs([]string{"profile", "set-columns", "filter", "id,id"})

	err := rootCmd.Execute()

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, profiles.overrides)
}

func TestProfileCmd_Reset(t *testing.T) {
	_, profiles, buf := setupCLITest(t)
	profiles.overrides[domain.ProfileExtract] = []string{"id"}
	rootCmd.SetArgs([]string{"profile", "reset", "extract"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{domain.ProfileExtract}, profiles.resets)
	assert.NotContains(t, profiles.overrides, domain.ProfileExtract)
	assert.Contains(t, buf.String(), "Profile extract reset to defaults")
}

func TestProfileCmd_ServiceNotConfigured(t *testing.T) {
	for _, args := range [][]string{
		{"profile", "list"},
		{"profile", "show", "filter"},
		{"profile", "set-columns", "filter", "id"},
		{"profile", "reset", "filter"},
	} {
		t.Run(args[1], func(t *testing.T) {
			setupCLITest(t)
			profileService = nil
			rootCmd.SetArgs(args)

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "profile service not configured")
		})
	}
}

func TestProfileCmd_ListError(t *testing.T) {
	_, profiles, _ := setupCLITest(t)
	profiles.err = errMockFailure
	rootCmd.SetArgs([]string{"profile", "list"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, errMockFailure)
	assert.Contains(t, err.Error(), "failed to list profiles")
}

func TestDescribeLayout(t *testing.T) {
	tests := []struct {
		layout domain.Layout
		want   string
	}{
		{domain.Layout{Kind: domain.LayoutFiltered, Root: "filtered"}, "filtered/<dir>/fil-<name>"},
		{domain.Layout{Kind: domain.LayoutExtracted, Root: "."}, "extracted-<name>.csv"},
		{domain.Layout{Kind: domain.LayoutExtracted, Root: "out"}, "out/extracted-<name>.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, describeLayout(tt.layout))
		})
	}
}
