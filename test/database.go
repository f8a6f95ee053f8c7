package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path for a fresh sqlite database file. Every
// test connects to its own file so that ledger fixtures cannot leak
// between tests. The file is cleaned up with the test's TempDir.
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String()+".db")
}
