package directory

import (
	"reflect"
	"testing"
)

func TestAllSelected(t *testing.T) {
	page := []string{"a", "b", "c"}

	if AllSelected(nil, page) {
		t.Error("empty selection should not be all-selected")
	}
	if AllSelected([]string{"a", "b"}, page) {
		t.Error("partial selection should not be all-selected")
	}
	if !AllSelected([]string{"c", "a", "b"}, page) {
		t.Error("order must not matter")
	}
	// Selection may carry ids from other pages.
	if !AllSelected([]string{"a", "b", "c", "z"}, page) {
		t.Error("extra ids must not break all-selected")
	}
	if AllSelected([]string{"a"}, nil) {
		t.Error("an empty page is never all-selected")
	}
}

func TestToggleAll(t *testing.T) {
	page := []string{"a", "b"}

	got := ToggleAll(nil, page)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ToggleAll from empty = %v, want page ids", got)
	}

	if got := ToggleAll([]string{"b", "a"}, page); got != nil {
		t.Errorf("ToggleAll from full selection = %v, want nil", got)
	}

	got = ToggleAll([]string{"a"}, page)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ToggleAll from partial = %v, want full page", got)
	}
}

func TestToggle(t *testing.T) {
	sel := Toggle(nil, "a")
	if !reflect.DeepEqual(sel, []string{"a"}) {
		t.Fatalf("Toggle add = %v", sel)
	}
	sel = Toggle(sel, "b")
	sel = Toggle(sel, "a")
	if !reflect.DeepEqual(sel, []string{"b"}) {
		t.Fatalf("Toggle remove = %v", sel)
	}
}
