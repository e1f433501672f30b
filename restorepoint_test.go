// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readFileHelper(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return b
}

func writeFileHelper(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestRestorePoint_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "block0.zrp")

	store := newLZ77Store()
	store.appendLiteral('a', 0)
	store.appendMatch(5, 3, 1)

	rp := &restorePoint{
		Mode:        restoreModeOptimalIteration,
		Iteration:   4,
		TotalCost:   123.456,
		SplitPoints: []int{10, 20, 35},
		StorePrefix: store,
	}

	if err := SaveRestorePoint(path, rp); err != nil {
		t.Fatalf("SaveRestorePoint failed: %v", err)
	}

	got, err := LoadRestorePoint(path)
	if err != nil {
		t.Fatalf("LoadRestorePoint failed: %v", err)
	}

	if got.Mode != rp.Mode || got.Iteration != rp.Iteration {
		t.Fatalf("mode/iteration mismatch: got (%d,%d) want (%d,%d)", got.Mode, got.Iteration, rp.Mode, rp.Iteration)
	}
	if len(got.SplitPoints) != len(rp.SplitPoints) {
		t.Fatalf("split point count mismatch: got %d want %d", len(got.SplitPoints), len(rp.SplitPoints))
	}
	for i := range rp.SplitPoints {
		if got.SplitPoints[i] != rp.SplitPoints[i] {
			t.Fatalf("split point %d mismatch: got %d want %d", i, got.SplitPoints[i], rp.SplitPoints[i])
		}
	}
	if got.StorePrefix.size() != store.size() {
		t.Fatalf("store prefix size mismatch: got %d want %d", got.StorePrefix.size(), store.size())
	}

	if err := RemoveRestorePoint(path); err != nil {
		t.Fatalf("RemoveRestorePoint failed: %v", err)
	}
	if err := RemoveRestorePoint(path); err != nil {
		t.Fatalf("RemoveRestorePoint on missing file should be a no-op, got %v", err)
	}
}

func TestLoadRestorePoint_RejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.zrp")

	store := newLZ77Store()
	store.appendLiteral('x', 0)
	rp := &restorePoint{Mode: restoreModeGreedySeed, StorePrefix: store}
	if err := SaveRestorePoint(path, rp); err != nil {
		t.Fatalf("SaveRestorePoint failed: %v", err)
	}

	raw := readFileHelper(t, path)
	raw[10] ^= 0xFF
	writeFileHelper(t, path, raw)

	_, err := LoadRestorePoint(path)
	if !errors.Is(err, ErrRestorePointMismatch) {
		t.Fatalf("expected ErrRestorePointMismatch for corrupted file, got %v", err)
	}
}
