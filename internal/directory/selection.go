package directory

// AllSelected reports whether every id on the current page is selected.
// An empty page is never "all selected".
func AllSelected(selected, pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}
	for _, id := range pageIDs {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// ToggleAll implements the header checkbox: if the current page is already
// fully selected the selection empties, otherwise it becomes exactly the
// current page's id set.
func ToggleAll(selected, pageIDs []string) []string {
	if AllSelected(selected, pageIDs) {
		return nil
	}
	out := make([]string, len(pageIDs))
	copy(out, pageIDs)
	return out
}

// Toggle flips one row in and out of the selection.
func Toggle(selected []string, id string) []string {
	for i, s := range selected {
		if s == id {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	return append(selected, id)
}
