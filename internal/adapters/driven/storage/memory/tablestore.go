package memory

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
)

// Ensure TableStore implements the interfaces.
var (
	_ driven.TableReader = (*TableStore)(nil)
	_ driven.TableWriter = (*TableStore)(nil)
	_ driven.FileSource  = (*TableStore)(nil)
)

// TableStore is an in-memory file tree of tables for testing.
// It mirrors the on-disk adapters: writes never overwrite, and a write
// into a missing directory fails.
type TableStore struct {
	mu         sync.RWMutex
	tables     map[string]*domain.Table
	dirs       map[string]bool
	reads      map[string]int
	writes     []string
	failReads  map[string]error
	failWrites map[string]error
}

// NewTableStore creates an empty in-memory table store.
func NewTableStore() *TableStore {
	return &TableStore{
		tables:     make(map[string]*domain.Table),
		dirs:       make(map[string]bool),
		reads:      make(map[string]int),
		failReads:  make(map[string]error),
		failWrites: make(map[string]error),
	}
}

// Put seeds a table at path, creating its parent directories.
func (s *TableStore) Put(path string, t *domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = filepath.Clean(path)
	s.tables[path] = cloneTable(t)
	s.mkdirAll(filepath.Dir(path))
}

// Table returns a copy of the table stored at path.
func (s *TableStore) Table(path string) (*domain.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return cloneTable(t), true
}

// Reads returns how many times path was read.
func (s *TableStore) Reads(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads[filepath.Clean(path)]
}

// Writes returns every path written, in write order.
func (s *TableStore) Writes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.writes)
}

// HasDir reports whether dir was created or seeded.
func (s *TableStore) HasDir(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirs[filepath.Clean(dir)]
}

// FailRead makes subsequent reads of path fail with err.
func (s *TableStore) FailRead(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads[filepath.Clean(path)] = err
}

// FailWrite makes subsequent writes of path fail with err.
func (s *TableStore) FailWrite(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites[filepath.Clean(path)] = err
}

// ReadTable returns a copy of the table at path.
func (s *TableStore) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	s.reads[path]++
	if err, ok := s.failReads[path]; ok {
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	t, ok := s.tables[path]
	if !ok {
		return nil, &domain.IOError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return cloneTable(t), nil
}

// WriteTable stores t at path if its directory exists and path is free.
func (s *TableStore) WriteTable(ctx context.Context, path string, t *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	if err, ok := s.failWrites[path]; ok {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	if !s.dirs[filepath.Dir(path)] {
		return &domain.IOError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	if _, ok := s.tables[path]; ok {
		return &domain.IOError{Op: "write", Path: path, Err: fs.ErrExist}
	}

	s.tables[path] = cloneTable(t)
	s.writes = append(s.writes, path)
	return nil
}

// List returns stored, non-hidden files under root in lexical order.
func (s *TableStore) List(ctx context.Context, root string, opts driven.ListOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	root = filepath.Clean(root)
	if !s.dirs[root] {
		return nil, &domain.IOError{Op: "list", Path: root, Err: fs.ErrNotExist}
	}

	var files []string
	for path := range s.tables {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if !opts.Recursive && strings.ContainsRune(rel, filepath.Separator) {
			continue
		}
		if hasHiddenPart(rel) || excluded(path, opts.ExcludeDirs) {
			continue
		}
		if opts.Match != nil && !opts.Match(filepath.Base(path)) {
			continue
		}
		files = append(files, filepath.Join(root, rel))
	}

	slices.Sort(files)
	return files, nil
}

// Exists reports whether a table is stored at path.
func (s *TableStore) Exists(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[filepath.Clean(path)]
	return ok, nil
}

// EnsureDir records dir and its parents as existing.
func (s *TableStore) EnsureDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mkdirAll(filepath.Clean(dir))
	return nil
}

// mkdirAll marks dir and its ancestors (caller must hold lock).
func (s *TableStore) mkdirAll(dir string) {
	for {
		s.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func hasHiddenPart(rel string) bool {
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func excluded(path string, dirs []string) bool {
	if len(dirs) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, d := range dirs {
		if abs == d || strings.HasPrefix(abs, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func cloneTable(t *domain.Table) *domain.Table {
	out := &domain.Table{
		Header: slices.Clone(t.Header),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = slices.Clone(r)
	}
	return out
}
