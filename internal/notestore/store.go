// Package notestore persists verified cash notes to disk, one file per note,
// under a content-derived path. It is an optional sink: sessions without a
// configured directory deposit notes to the ledger without writing files.
package notestore

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bochaco/stableset-net/internal/transfers"
)

// fileExtension is appended to the hex content address of each note file.
const fileExtension = ".cash_note"

// tmpSuffix marks in-progress writes; a crash mid-write leaves only a .tmp
// sibling, never a readable partial note file.
const tmpSuffix = ".tmp"

// Store writes cash notes into a base directory. Paths are a pure function
// of the note identity, so persisting the same note twice overwrites the
// file with byte-identical content.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. The directory is created on first
// write if absent.
func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
	}
}

// NotePath returns the file path the given note persists to.
func (s *Store) NotePath(note transfers.CashNote) string {
	addr := note.ContentAddress()
	return filepath.Join(s.baseDir, hex.EncodeToString(addr[:])+fileExtension)
}

// Persist writes the note's stable encoding to its content-addressed path.
// The write goes to a temporary sibling first and is moved into place with a
// rename. Safe to call any number of times with the same note.
func (s *Store) Persist(ctx context.Context, note transfers.CashNote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded, err := note.MarshalHex()
	if err != nil {
		return fmt.Errorf("encoding cash note %s: %w", note.UniquePubkey(), err)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("creating cash notes dir %s: %w", s.baseDir, err)
	}

	path := s.NotePath(note)
	tmpPath := path + tmpSuffix

	if err := os.WriteFile(tmpPath, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("writing cash note file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("finalizing cash note file %s: %w", path, err)
	}

	return nil
}
