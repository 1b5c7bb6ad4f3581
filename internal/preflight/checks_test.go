package preflight

import (
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Work directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir: %#v", result)
	}

	missing := CheckDirectoryAccess("Work directory", filepath.Join(dir, "nope"))
	if missing.Passed {
		t.Fatalf("expected failure for missing dir: %#v", missing)
	}
}

func TestFirstFailure(t *testing.T) {
	results := []Result{
		{Name: "A", Passed: true},
		{Name: "B", Passed: false, Detail: "broken"},
		{Name: "C", Passed: false},
	}
	failure, found := FirstFailure(results)
	if !found || failure.Name != "B" {
		t.Fatalf("expected first failure B, got %#v found=%v", failure, found)
	}
	if _, found := FirstFailure(results[:1]); found {
		t.Fatal("expected no failure")
	}
}
