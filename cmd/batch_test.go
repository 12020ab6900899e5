package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/csvpeek-cli/internal/output"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.csv", "c.tsv"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := expandInputs([]string{filepath.Join(dir, "*.csv"), filepath.Join(dir, "a.csv"), filepath.Join(dir, "c.tsv")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{"a.csv", "b.csv", "c.tsv"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if _, err := expandInputs([]string{filepath.Join(dir, "*.parquet")}); err == nil {
		t.Fatal("expected error when nothing matches")
	}
}

func TestReportBase(t *testing.T) {
	old := flagSheet
	defer func() { flagSheet = old }()

	flagSheet = ""
	if got := reportBase("/in/sales.xlsx"); got != "sales" {
		t.Fatalf("got %s", got)
	}
	flagSheet = "Q1 Data!"
	if got := reportBase("/in/sales.xlsx"); got != "sales__sheet-q1-data" {
		t.Fatalf("got %s", got)
	}
	if got := reportBase("/in/sales.csv"); got != "sales" {
		t.Fatalf("csv inputs ignore the sheet: got %s", got)
	}
	flagSheet = "***"
	if got := reportBase("/in/sales.xlsx"); got != "sales__sheet-sheet" {
		t.Fatalf("got %s", got)
	}
}

func TestSeparator(t *testing.T) {
	if separator(output.NDJSON) != "" || separator(output.Table) != "\n" || separator(output.YAML) != "---\n" {
		t.Fatal("unexpected separators")
	}
}
