package ports

import (
	"path"
	"sort"
	"sync"
)

// Store owns the collection of records produced by one index load. Records
// are keyed by package name; derived groupings are rebuilt on demand.
type Store struct {
	mu       sync.Mutex
	records  map[string]*Record
	selected map[string]bool
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Add inserts a record, overwriting any earlier record with the same name
// (last occurrence wins). It reports whether an overwrite happened.
func (s *Store) Add(r *Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, overwrote := s.records[r.Name]
	s.records[r.Name] = r
	return overwrote
}

// Get returns the record for a package name, if present. Lookups always see
// the full store, selection notwithstanding.
func (s *Store) Get(name string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[name]
	return r, ok
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Names returns all record names in sorted order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select restricts the working set to records matching any of the given
// categories AND maintainers AND port identifiers (the last component of
// the origin path). Empty lists mean "no restriction". The full store stays
// available for cross-record lookups.
func (s *Store) Select(categories, maintainers, portIDs []string) {
	if len(categories) == 0 && len(maintainers) == 0 && len(portIDs) == 0 {
		return
	}
	catSet := toSet(categories)
	mntSet := make(map[string]bool)
	for _, m := range maintainers {
		mntSet[NormalizeMaintainer(m)] = true
	}
	idSet := toSet(portIDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
	for name, r := range s.records {
		if len(mntSet) > 0 && !mntSet[r.Maintainer] {
			continue
		}
		if len(catSet) > 0 {
			match := false
			for _, c := range r.Categories {
				if catSet[c] {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if len(idSet) > 0 && !idSet[path.Base(r.Origin)] {
			continue
		}
		s.selected[name] = true
	}
}

// Selected returns the names of the selected records in sorted order, or
// every name when no selection was made.
func (s *Store) Selected() []string {
	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return s.Names()
	}
	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	s.mu.Unlock()
	sort.Strings(names)
	return names
}

// ByCategory groups selected record names per category.
func (s *Store) ByCategory() map[string][]string {
	out := make(map[string][]string)
	for _, name := range s.Selected() {
		r, _ := s.Get(name)
		for _, c := range r.Categories {
			out[c] = append(out[c], name)
		}
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

// ByMaintainer groups selected record names per normalized maintainer
// address.
func (s *Store) ByMaintainer() map[string][]string {
	out := make(map[string][]string)
	for _, name := range s.Selected() {
		r, _ := s.Get(name)
		out[r.Maintainer] = append(out[r.Maintainer], name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range items {
		if item != "" {
			set[item] = true
		}
	}
	return set
}
