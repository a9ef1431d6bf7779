package escript

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every script under testdata/fixtures and snapshots its
// rendered final value (or error). The fixtures cover recursion, closures,
// prototype chains, exceptions, accessors, for-in order, switch
// fall-through, strict mode and numeric formatting end to end.
func TestFixtures(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "fixtures")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading fixture dir: %v", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".js" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}
			src, err := DecodeSource(data)
			if err != nil {
				t.Fatalf("decoding %s: %v", name, err)
			}

			var rendered string
			res, err := New().Run(src)
			if err != nil {
				rendered = "error: " + err.Error()
			} else {
				rendered = res.Kind() + ": " + res.String()
			}
			snaps.MatchSnapshot(t, rendered)
		})
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}
