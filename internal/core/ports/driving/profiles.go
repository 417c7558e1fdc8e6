package driving

import "github.com/custodia-labs/colfilter/internal/core/domain"

// ProfileService resolves and edits named projection profiles.
type ProfileService interface {
	// Get returns the named profile with configured overrides applied.
	Get(name string) (domain.Profile, error)

	// List returns every known profile sorted by name.
	List() ([]domain.Profile, error)

	// SetColumns stores a column list override for the named profile.
	SetColumns(name string, columns []string) error

	// Reset removes all overrides for the named profile.
	Reset(name string) error

	// ConfigPath returns where overrides are persisted.
	ConfigPath() string
}
