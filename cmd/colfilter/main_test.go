package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
	"github.com/custodia-labs/colfilter/internal/logger"
)

func TestExitCode(t *testing.T) {
	missing := &domain.MissingColumnError{Path: "a.csv", Missing: []string{"append"}}

	assert.Equal(t, exitMissingColumn, exitCode(missing))
	assert.Equal(t, exitMissingColumn, exitCode(fmt.Errorf("batch: %w", missing)))
	assert.Equal(t, exitMissingColumn, exitCode(errors.Join(errors.New("other"), missing)))
	assert.Equal(t, exitFailure, exitCode(&domain.IOError{Op: "read", Path: "a.csv", Err: errors.New("boom")}))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestParseEnv(t *testing.T) {
	t.Setenv("COLFILTER_CONFIG_DIR", "/tmp/cf")
	t.Setenv("COLFILTER_VERBOSE", "true")

	cfg, err := parseEnv()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/cf", cfg.ConfigDir)
	assert.True(t, cfg.Verbose)
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("COLFILTER_VERBOSE", "maybe")

	_, err := parseEnv()

	assert.ErrorContains(t, err, "parse env")
}

func TestNewServices_ConfigDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLFILTER_CONFIG_DIR", dir)
	t.Setenv("COLFILTER_VERBOSE", "1")
	defer logger.SetVerbose(false)

	svcs, err := newServices("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), svcs.Profiles.ConfigPath())
	assert.True(t, logger.IsVerbose())
}

func TestNewServices(t *testing.T) {
	svcs, err := newServices(t.TempDir())

	require.NoError(t, err)
	assert.NotNil(t, svcs.Batch)
	assert.NotNil(t, svcs.Profiles)
	assert.NotNil(t, svcs.Progress)

	p, err := svcs.Profiles.Get(domain.ProfileFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "append"}, p.Selection.Names())
}

func TestEndToEnd_Filter(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	in := filepath.Join(root, "runs")
	require.NoError(t, os.MkdirAll(filepath.Join(in, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.csv"), []byte("id,append,extra\n1,x,foo\n2,y,bar\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "nested", "b.csv"), []byte("append,id\nz,3\n"), 0644))

	svcs, err := newServices(filepath.Join(root, "config"))
	require.NoError(t, err)
	p, err := svcs.Profiles.Get(domain.ProfileFilter)
	require.NoError(t, err)
	p.Layout.Root = filepath.Join(root, "filtered")
	req := driving.BatchRequest{InputDir: in, Profile: p}

	report, err := svcs.Batch.Run(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(domain.OutcomeWritten))
	outA := filepath.Join(root, "filtered", "runs", "fil-a.csv")
	data, err := os.ReadFile(outA)
	require.NoError(t, err)
	assert.Equal(t, "id,append\n1,x\n2,y\n", string(data))
	data, err = os.ReadFile(filepath.Join(root, "filtered", "runs", "fil-b.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,append\n3,z\n", string(data))

	before, err := os.Stat(outA)
	require.NoError(t, err)

	report, err = svcs.Batch.Run(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(domain.OutcomeSkipped))
	after, err := os.Stat(outA)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestEndToEnd_ExtractMissingColumn(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bench.csv"), []byte("bbs,n,id\n1,2,3\n"), 0644))

	svcs, err := newServices(filepath.Join(root, "config"))
	require.NoError(t, err)
	p, err := svcs.Profiles.Get(domain.ProfileExtract)
	require.NoError(t, err)
	p.Layout.Root = root

	_, err = svcs.Batch.Run(context.Background(), driving.BatchRequest{InputDir: root, Profile: p})

	require.Error(t, err)
	assert.Equal(t, exitMissingColumn, exitCode(err))
	_, statErr := os.Stat(filepath.Join(root, "extracted-bench.csv.csv"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}
