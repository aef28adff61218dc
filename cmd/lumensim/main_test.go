package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputDirForContainsDemoID(t *testing.T) {
	dir := outputDirFor("empty-room")
	if !strings.Contains(dir, "empty-room") {
		t.Errorf("outputDirFor(%q) = %q, want it to contain the demo id", "empty-room", dir)
	}
	if !strings.HasPrefix(dir, "output"+string(filepath.Separator)) {
		t.Errorf("outputDirFor(%q) = %q, want it under output/", "empty-room", dir)
	}
}

func TestSnapshotFilenameIsSortableBySegmentCount(t *testing.T) {
	dir := t.TempDir()
	low := snapshotFilename(dir, 42)
	high := snapshotFilename(dir, 1_000_000)
	if !(low < high) {
		t.Errorf("snapshot filenames must sort by segment count: %q should sort before %q", low, high)
	}
}

func TestWriteSnapshotProducesAReadableFile(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	writeSnapshot(dir, img, 100)

	want := snapshotFilename(dir, 100)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected snapshot file at %s: %v", want, err)
	}
}
