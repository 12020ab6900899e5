package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/csvpeek-cli/internal/utils"
)

func TestSafeWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.json")
	if err := utils.SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := utils.SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "two" {
		t.Fatalf("got %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	if err := utils.SafeWriteFile(filepath.Join(t.TempDir(), "nope", "x"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	first := utils.UniquePath(dir, "metrics", ".summary.md")
	if filepath.Base(first) != "metrics.summary.md" {
		t.Fatalf("first = %s", first)
	}
	if err := os.WriteFile(first, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	second := utils.UniquePath(dir, "metrics", ".summary.md")
	if filepath.Base(second) != "metrics__2.summary.md" {
		t.Fatalf("second = %s", second)
	}
	if err := os.WriteFile(second, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(utils.UniquePath(dir, "metrics", ".summary.md")); got != "metrics__3.summary.md" {
		t.Fatalf("third = %s", got)
	}
}

func TestStemOf(t *testing.T) {
	if got := utils.StemOf("/data/q1.report.csv"); got != "q1.report" {
		t.Fatalf("got %s", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("got %q", b)
	}
}
