package version

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCommitAndDate(t *testing.T) {
	info, ok := Parse("abc123 2024-01-01")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if info.Commit == nil || *info.Commit != "abc123" {
		t.Errorf("expected commit abc123, got %v", info.Commit)
	}
	if info.Date == nil || *info.Date != "2024-01-01" {
		t.Errorf("expected date 2024-01-01, got %v", info.Date)
	}
}

func TestParseCommitOnly(t *testing.T) {
	info, ok := Parse("abc123")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if info.Commit == nil || *info.Commit != "abc123" {
		t.Errorf("expected commit abc123, got %v", info.Commit)
	}
	if info.Date != nil {
		t.Errorf("expected absent date, got %q", *info.Date)
	}
}

func TestParseWhitespaceAndEmpty(t *testing.T) {
	if _, ok := Parse("   \n"); ok {
		t.Error("expected parse of blank content to fail")
	}
	if _, ok := Parse(""); ok {
		t.Error("expected parse of empty content to fail")
	}

	info, ok := Parse("  abc123   2024-01-01  \n")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if *info.Commit != "abc123" {
		t.Errorf("expected trimmed commit, got %q", *info.Commit)
	}
	if info.Date == nil || *info.Date != "2024-01-01" {
		t.Errorf("expected trimmed date, got %v", info.Date)
	}
}

func TestInfoCandidatePriority(t *testing.T) {
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "COMMIT"), []byte("fromcommit"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "version.txt"), []byte("fromversion 2024-02-02"), 0644); err != nil {
		t.Fatal(err)
	}

	info := Info(root)
	if info.Commit == nil || *info.Commit != "fromversion" {
		t.Errorf("expected version.txt to win, got %v", info.Commit)
	}
}

func TestInfoSkipsEmptyCandidate(t *testing.T) {
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "version.txt"), []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "COMMIT"), []byte("abc123"), 0644); err != nil {
		t.Fatal(err)
	}

	info := Info(root)
	if info.Commit == nil || *info.Commit != "abc123" {
		t.Errorf("expected empty candidate to be skipped, got %v", info.Commit)
	}
}

func TestInfoUnknown(t *testing.T) {
	info := Info(t.TempDir())
	if info.Commit != nil || info.Date != nil {
		t.Errorf("expected unknown version info, got %+v", info)
	}
}
