package listview

// Selection is an immutable set of selected record identifiers. Every
// operation returns a new Selection; insertion order is kept for display.
type Selection struct {
	ids []string
	set map[string]struct{}
}

// NewSelection returns a Selection holding ids, ignoring duplicates.
func NewSelection(ids ...string) Selection {
	var s Selection
	return s.add(ids)
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

// Len returns the number of selected identifiers.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected identifiers in the order they were selected.
func (s Selection) IDs() []string {
	return append([]string{}, s.ids...)
}

// ToggleOne adds id when absent and removes it when present.
func (s Selection) ToggleOne(id string) Selection {
	if s.Has(id) {
		return s.remove(map[string]struct{}{id: {}})
	}
	return s.add([]string{id})
}

// ToggleAllVisible implements the tri-state header checkbox: when every
// visible id is selected they are all removed, otherwise the missing ones
// are added. Selections outside visible are left alone.
func (s Selection) ToggleAllVisible(visible []string) Selection {
	if len(visible) == 0 {
		return s
	}
	if s.AllVisibleSelected(visible) {
		drop := make(map[string]struct{}, len(visible))
		for _, id := range visible {
			drop[id] = struct{}{}
		}
		return s.remove(drop)
	}
	return s.add(visible)
}

// AllVisibleSelected reports whether visible is non-empty and every member
// is selected.
func (s Selection) AllVisibleSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Prune keeps only the identifiers for which keep returns true.
func (s Selection) Prune(keep func(id string) bool) Selection {
	drop := make(map[string]struct{})
	for _, id := range s.ids {
		if !keep(id) {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return s
	}
	return s.remove(drop)
}

func (s Selection) add(ids []string) Selection {
	out := Selection{
		ids: append(make([]string, 0, len(s.ids)+len(ids)), s.ids...),
		set: make(map[string]struct{}, len(s.ids)+len(ids)),
	}
	for id := range s.set {
		out.set[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := out.set[id]; ok || id == "" {
			continue
		}
		out.set[id] = struct{}{}
		out.ids = append(out.ids, id)
	}
	return out
}

func (s Selection) remove(drop map[string]struct{}) Selection {
	out := Selection{
		ids: make([]string, 0, len(s.ids)),
		set: make(map[string]struct{}, len(s.ids)),
	}
	for _, id := range s.ids {
		if _, ok := drop[id]; ok {
			continue
		}
		out.set[id] = struct{}{}
		out.ids = append(out.ids, id)
	}
	return out
}
