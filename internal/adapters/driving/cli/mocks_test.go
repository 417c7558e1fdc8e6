package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
)

// mockBatchRunner implements driving.BatchRunner for testing.
type mockBatchRunner struct {
	requests []driving.BatchRequest
	report   *domain.BatchReport
	err      error
	watched  int
}

func (m *mockBatchRunner) Run(_ context.Context, req driving.BatchRequest) (*domain.BatchReport, error) {
	m.requests = append(m.requests, req)
	return m.report, m.err
}

func (m *mockBatchRunner) Watch(
	_ context.Context,
	req driving.BatchRequest,
	onBatch func(*domain.BatchReport, error),
) error {
	m.requests = append(m.requests, req)
	m.watched++
	onBatch(m.report, m.err)
	return nil
}

// mockProfileService implements driving.ProfileService for testing.
type mockProfileService struct {
	overrides map[string][]string
	resets    []string
	err       error
}

func newMockProfileService() *mockProfileService {
	return &mockProfileService{overrides: map[string][]string{}}
}

func (m *mockProfileService) Get(name string) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	p, err := domain.DefaultProfile(name)
	if err != nil {
		return domain.Profile{}, err
	}
	if cols, ok := m.overrides[name]; ok {
		sel, err := domain.NewSelection(cols...)
		if err != nil {
			return domain.Profile{}, err
		}
		p.Selection = sel
	}
	return p, nil
}

func (m *mockProfileService) List() ([]domain.Profile, error) {
	var out []domain.Profile
	for _, n := range domain.DefaultProfileNames() {
		p, err := m.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProfileService) SetColumns(name string, columns []string) error {
	if _, err := domain.DefaultProfile(name); err != nil {
		return err
	}
	if _, err := domain.NewSelection(columns...); err != nil {
		return err
	}
	m.overrides[name] = columns
	return nil
}

func (m *mockProfileService) Reset(name string) error {
	if _, err := domain.DefaultProfile(name); err != nil {
		return err
	}
	delete(m.overrides, name)
	m.resets = append(m.resets, name)
	return nil
}

func (m *mockProfileService) ConfigPath() string {
	return "/tmp/colfilter/config.toml"
}

var errMockFailure = errors.New("mock failure")

func sampleReport() *domain.BatchReport {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.BatchReport{
		RunID:     "run-1",
		Profile:   domain.ProfileFilter,
		InputDir:  "runs",
		OutputDir: "filtered/runs",
		Files: []domain.FileResult{
			{Input: "runs/a.csv", Output: "filtered/runs/fil-a.csv", Outcome: domain.OutcomeWritten, Rows: 2},
			{Input: "runs/b.csv", Output: "filtered/runs/fil-b.csv", Outcome: domain.OutcomeSkipped},
		},
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
}

// resetFlags restores every flag of cmd to its default.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// setupCLITest injects fakes and returns a buffer capturing command output.
func setupCLITest(t *testing.T) (*mockBatchRunner, *mockProfileService, *bytes.Buffer) {
	t.Helper()

	oldBatch, oldProfiles, oldProgress, oldSetup := batchRunner, profileService, progress, setupServices
	runner := &mockBatchRunner{report: sampleReport()}
	profiles := newMockProfileService()
	batchRunner, profileService, progress, setupServices = runner, profiles, nil, nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		batchRunner, profileService, progress, setupServices = oldBatch, oldProfiles, oldProgress, oldSetup
		rootCmd.SetArgs(nil)
		for _, c := range []*cobra.Command{filterCmd, extractCmd} {
			resetFlags(c)
		}
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	return runner, profiles, buf
}
