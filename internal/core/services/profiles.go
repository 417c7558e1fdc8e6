package services

import (
	"fmt"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// Profile configuration keys, relative to "profiles.<name>".
const (
	profileKeyColumns    = "columns"
	profileKeyOrder      = "order"
	profileKeyIndex      = "index"
	profileKeyPattern    = "pattern"
	profileKeyRecursive  = "recursive"
	profileKeyOutputRoot = "output_root"
)

// ProfileService layers configured overrides on top of the built-in profiles.
type ProfileService struct {
	config driven.ConfigStore
}

// NewProfileService creates a profile service. config may be nil,
// in which case only the built-in defaults are served.
func NewProfileService(config driven.ConfigStore) *ProfileService {
	return &ProfileService{config: config}
}

// Get returns the named profile with overrides applied and validated.
func (s *ProfileService) Get(name string) (domain.Profile, error) {
	p, err := domain.DefaultProfile(name)
	if err != nil {
		return domain.Profile{}, err
	}
	if s.config == nil {
		return p, nil
	}

	if cols := s.config.GetStringSlice(profileKey(name, profileKeyColumns)); len(cols) > 0 {
		sel, err := domain.NewSelection(cols...)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("profile %s columns: %w", name, err)
		}
		p.Selection = sel
	}

	if v := s.config.GetString(profileKey(name, profileKeyOrder)); v != "" {
		order, err := domain.ParseColumnOrder(v)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("profile %s: %w", name, err)
		}
		p.Options.Order = order
	}

	if _, ok := s.config.Get(profileKey(name, profileKeyIndex)); ok {
		p.Options.IncludeIndex = s.config.GetBool(profileKey(name, profileKeyIndex))
	}
	if _, ok := s.config.Get(profileKey(name, profileKeyRecursive)); ok {
		p.Recursive = s.config.GetBool(profileKey(name, profileKeyRecursive))
	}
	if v := s.config.GetString(profileKey(name, profileKeyPattern)); v != "" {
		p.Pattern = v
	}
	if v := s.config.GetString(profileKey(name, profileKeyOutputRoot)); v != "" {
		p.Layout.Root = v
	}

	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// List returns every built-in profile with overrides applied.
func (s *ProfileService) List() ([]domain.Profile, error) {
	names := domain.DefaultProfileNames()
	profiles := make([]domain.Profile, 0, len(names))
	for _, n := range names {
		p, err := s.Get(n)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// SetColumns persists a column override after validating it.
func (s *ProfileService) SetColumns(name string, columns []string) error {
	if _, err := domain.DefaultProfile(name); err != nil {
		return err
	}
	sel, err := domain.NewSelection(columns...)
	if err != nil {
		return err
	}
	if s.config == nil {
		return fmt.Errorf("set columns: config store not configured")
	}
	return s.config.Set(profileKey(name, profileKeyColumns), sel.Names())
}

// Reset drops every override for the named profile.
func (s *ProfileService) Reset(name string) error {
	if _, err := domain.DefaultProfile(name); err != nil {
		return err
	}
	if s.config == nil {
		return nil
	}
	return s.config.Delete("profiles." + name)
}

// ConfigPath returns the backing configuration file path, if any.
func (s *ProfileService) ConfigPath() string {
	if s.config == nil {
		return ""
	}
	return s.config.Path()
}

func profileKey(name, key string) string {
	return "profiles." + name + "." + key
}
