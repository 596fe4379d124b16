package ports

import "testing"

func TestStoreLastOccurrenceWins(t *testing.T) {
	store := NewStore()

	first := &Record{Name: "foo-1.0", Comment: "First"}
	second := &Record{Name: "foo-1.0", Comment: "Second"}

	if overwrote := store.Add(first); overwrote {
		t.Error("first Add should not report an overwrite")
	}
	if overwrote := store.Add(second); !overwrote {
		t.Error("second Add should report an overwrite")
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}

	rec, ok := store.Get("foo-1.0")
	if !ok {
		t.Fatal("record not found")
	}
	if rec.Comment != "Second" {
		t.Errorf("Comment = %q, want the last occurrence", rec.Comment)
	}
}

func TestStoreSelect(t *testing.T) {
	store := NewStore()
	store.Add(&Record{Name: "foo-1.0", Origin: "/usr/ports/misc/foo", Maintainer: "john@example.com", Categories: []string{"misc"}})
	store.Add(&Record{Name: "bar-1.0", Origin: "/usr/ports/devel/bar", Maintainer: "jane@example.com", Categories: []string{"devel"}})
	store.Add(&Record{Name: "baz-1.0", Origin: "/usr/ports/misc/baz", Maintainer: "john@example.com", Categories: []string{"misc", "devel"}})

	store.Select([]string{"misc"}, nil, nil)
	selected := store.Selected()
	if len(selected) != 2 {
		t.Fatalf("Selected() = %v, want 2 entries", selected)
	}

	// Cross-record lookups still see the whole store
	if _, ok := store.Get("bar-1.0"); !ok {
		t.Error("unselected record should stay reachable via Get")
	}
}

func TestStoreSelectNormalizesMaintainer(t *testing.T) {
	store := NewStore()
	store.Add(&Record{Name: "foo-1.0", Origin: "/usr/ports/misc/foo", Maintainer: "portmgr@freebsd.org", Categories: []string{"misc"}})

	// A bare username must be normalized the same way the index side was
	store.Select(nil, []string{"portmgr"}, nil)
	if got := store.Selected(); len(got) != 1 {
		t.Errorf("Selected() = %v, want the portmgr port", got)
	}
}

func TestStoreByMaintainer(t *testing.T) {
	store := NewStore()
	store.Add(&Record{Name: "foo-1.0", Maintainer: "john@example.com", Categories: []string{"misc"}})
	store.Add(&Record{Name: "bar-1.0", Maintainer: "john@example.com", Categories: []string{"devel"}})
	store.Add(&Record{Name: "baz-1.0", Maintainer: "jane@example.com", Categories: []string{"misc"}})

	grouped := store.ByMaintainer()
	if len(grouped["john@example.com"]) != 2 {
		t.Errorf("john has %d ports, want 2", len(grouped["john@example.com"]))
	}
	if len(grouped["jane@example.com"]) != 1 {
		t.Errorf("jane has %d ports, want 1", len(grouped["jane@example.com"]))
	}
}
