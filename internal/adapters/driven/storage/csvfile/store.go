// Package csvfile reads and writes comma-separated files on local disk.
package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// Verify interface compliance.
var (
	_ driven.TableReader = (*Store)(nil)
	_ driven.TableWriter = (*Store)(nil)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// errEmptyFile is reported when an input has no header record.
var errEmptyFile = errors.New("empty file")

// Store implements TableReader and TableWriter over the local filesystem.
type Store struct {
	filePerm os.FileMode
}

// New creates a Store that writes files with mode 0644.
func New() *Store {
	return &Store{filePerm: 0644}
}

// ReadTable parses the file at path. Records may be shorter than the
// header but not longer.
func (s *Store) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	// Short records are kept as read and padded on projection. Records
	// wider than the header are rejected.
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.IOError{Op: "read", Path: path, Err: errEmptyFile}
	}
	if err != nil {
		return nil, &domain.IOError{Op: "parse", Path: path, Err: err}
	}

	rows := [][]string{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.IOError{Op: "parse", Path: path, Err: err}
		}
		if len(record) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, &domain.IOError{Op: "parse", Path: path, Err: &csv.ParseError{
				StartLine: line,
				Line:      line,
				Column:    1,
				Err:       csv.ErrFieldCount,
			}}
		}
		rows = append(rows, record)
	}

	logger.Debug("csvfile: read %s (%d columns, %d rows)", path, len(header), len(rows))
	return &domain.Table{Header: header, Rows: rows}, nil
}

// WriteTable writes t next to path under a temporary name, syncs it and
// then links it into place. An existing file at path is never replaced.
func (s *Store) WriteTable(ctx context.Context, path string, t *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := tempPath(path)
	if err := s.writeTemp(tmp, t); err != nil {
		_ = os.Remove(tmp)
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	defer os.Remove(tmp)

	if err := publish(tmp, path); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	logger.Debug("csvfile: wrote %s (%d rows)", path, t.RowCount())
	return nil
}

func (s *Store) writeTemp(tmp string, t *domain.Table) error {
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.filePerm)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	w := csv.NewWriter(bw)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// publish makes tmp visible at path. Hard links fail when path exists;
// filesystems without link support fall back to a checked rename.
func publish(tmp, path string) error {
	err := os.Link(tmp, path)
	if err == nil || errors.Is(err, os.ErrExist) {
		return err
	}

	if _, statErr := os.Lstat(path); statErr == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	logger.Warn("csvfile: link unsupported for %s, renaming: %v", path, err)
	return os.Rename(tmp, path)
}

func tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}
