package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/colfilter/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "colfilter", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_ServiceFactory(t *testing.T) {
	setupCLITest(t)
	batchRunner, profileService = nil, nil
	runner := &mockBatchRunner{report: sampleReport()}

	var gotDir string
	SetServiceFactory(func(dir string) (*Services, error) {
		gotDir = dir
		return &Services{Batch: runner, Profiles: newMockProfileService()}, nil
	})
	rootCmd.SetArgs([]string{"--config-dir", "/tmp/cf", "filter", "runs"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "/tmp/cf", gotDir)
	assert.Len(t, runner.requests, 1)
}

func TestRootCmd_ServiceFactoryError(t *testing.T) {
	setupCLITest(t)
	SetServiceFactory(func(string) (*Services, error) {
		return nil, errMockFailure
	})
	rootCmd.SetArgs([]string{"filter", "runs"})

	err := rootCmd.Execute()

	assert.True(t, errors.Is(err, errMockFailure))
	assert.Contains(t, err.Error(), "initialise services")
}

func TestRootCmd_Verbose(t *testing.T) {
	setupCLITest(t)
	defer logger.SetVerbose(false)
	rootCmd.SetArgs([]string{"--verbose", "version"})

	require.NoError(t, rootCmd.Execute())

	assert.True(t, logger.IsVerbose())
}
