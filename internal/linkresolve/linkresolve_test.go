package linkresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vzic-go/vzic/tzdata"
)

func TestResolveReemitCallsReemitFunc(t *testing.T) {
	links := []tzdata.LinkLine{{From: "Europe/Istanbul", To: "Asia/Istanbul"}}
	var calls [][2]string
	err := Resolve(t.TempDir(), links, ModeReemit, func(from, to string) error {
		calls = append(calls, [2]string{from, to})
		return nil
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(calls) != 1 || calls[0] != [2]string{"Europe/Istanbul", "Asia/Istanbul"} {
		t.Errorf("calls = %v, want [[Europe/Istanbul Asia/Istanbul]]", calls)
	}
}

func TestResolveAliasIgnoresBareNames(t *testing.T) {
	dir := t.TempDir()
	links := []tzdata.LinkLine{{From: "Europe/Istanbul", To: "Turkey"}}
	if err := Resolve(dir, links, ModeAlias, nil); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, err := os.Lstat(filepath.Join(dir, "Turkey.ics")); !os.IsNotExist(err) {
		t.Errorf("expected no file for bare Link target, got err = %v", err)
	}
}

func TestResolveAliasCreatesRelativeSymlink(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Europe"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Europe", "Istanbul.ics"), []byte("BEGIN:VCALENDAR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	links := []tzdata.LinkLine{{From: "Europe/Istanbul", To: "Asia/Istanbul"}}
	if err := Resolve(dir, links, ModeAlias, nil); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	linkPath := filepath.Join(dir, "Asia", "Istanbul.ics")
	info, err := os.Lstat(linkPath)
	if err != nil {
		t.Fatalf("Lstat(%s) error = %v", linkPath, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("%s is not a symlink", linkPath)
	}

	target, err := os.Readlink(linkPath)
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	wantTarget := filepath.Join("..", "Europe", "Istanbul.ics")
	if target != wantTarget {
		t.Errorf("symlink target = %q, want %q", target, wantTarget)
	}

	resolved, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading through symlink: %v", err)
	}
	if string(resolved) != "BEGIN:VCALENDAR\n" {
		t.Errorf("resolved content = %q", resolved)
	}
}

func TestResolveUnknownMode(t *testing.T) {
	links := []tzdata.LinkLine{{From: "A", To: "B"}}
	if err := Resolve(t.TempDir(), links, Mode("bogus"), nil); err == nil {
		t.Error("Resolve() with unknown mode: want error, got nil")
	}
}
