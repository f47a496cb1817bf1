package seltools

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func selectedTexts(t *testing.T, s *SelectElement) []string {
	t.Helper()
	opts, err := s.SelectedOptions()
	if err != nil {
		t.Fatalf("SelectedOptions returned error: %v", err)
	}
	var texts []string
	for _, o := range opts {
		text, _ := o.Text()
		texts = append(texts, text)
	}
	return texts
}

func TestSelectRejectsOtherElements(t *testing.T) {
	_, err := Select(&fakeElement{tag: "input"})
	if !errors.Is(err, ErrNotSelect) {
		t.Errorf("Select(<input>) error = %v, want ErrNotSelect", err)
	}
}

func TestSelectSingle(t *testing.T) {
	opts := newOptions(false, "Red", " Dark  Green ", "Blue")
	el := &fakeElement{tag: "SELECT", options: opts}
	s, err := Select(el)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if s.IsMultiple() {
		t.Error("IsMultiple() = true for a select without the multiple attribute")
	}
	if s.Element() != el {
		t.Error("Element() did not return the wrapped element")
	}

	if _, err := s.FirstSelectedOption(); !errors.Is(err, ErrNoOption) {
		t.Errorf("FirstSelectedOption error = %v, want ErrNoOption", err)
	}

	if err := s.SelectByVisibleText("Dark Green"); err != nil {
		t.Fatalf("SelectByVisibleText returned error: %v", err)
	}
	if err := s.SelectByValue("v2"); err != nil {
		t.Fatalf("SelectByValue returned error: %v", err)
	}
	if err := s.SelectByIndex(0); err != nil {
		t.Fatalf("SelectByIndex returned error: %v", err)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, []int{opts[0].clicks, opts[1].clicks, opts[2].clicks}); diff != "" {
		t.Errorf("option clicks differ (-want +got):\n%s", diff)
	}

	first, err := s.FirstSelectedOption()
	if err != nil {
		t.Fatalf("FirstSelectedOption returned error: %v", err)
	}
	if text, _ := first.Text(); text != "Red" {
		t.Errorf("FirstSelectedOption text = %q, want %q", text, "Red")
	}

	if err := s.SelectByIndex(3); !errors.Is(err, ErrNoOption) {
		t.Errorf("SelectByIndex(3) error = %v, want ErrNoOption", err)
	}
	if err := s.SelectByValue("v9"); !errors.Is(err, ErrNoOption) {
		t.Errorf("SelectByValue(v9) error = %v, want ErrNoOption", err)
	}
	if err := s.DeselectAll(); !errors.Is(err, ErrNotMultiple) {
		t.Errorf("DeselectAll on a single select error = %v, want ErrNotMultiple", err)
	}
	if err := s.DeselectByValue("v0"); !errors.Is(err, ErrNotMultiple) {
		t.Errorf("DeselectByValue on a single select error = %v, want ErrNotMultiple", err)
	}
}

func TestSelectMultiple(t *testing.T) {
	opts := newOptions(true, "a", "b", "b", "c")
	el := &fakeElement{tag: "select", attrs: map[string]string{"multiple": "true"}, options: opts}
	s, err := Select(el)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if !s.IsMultiple() {
		t.Fatal("IsMultiple() = false for a multi-select")
	}

	if err := s.SelectByVisibleText("b"); err != nil {
		t.Fatalf("SelectByVisibleText returned error: %v", err)
	}
	if err := s.SelectByIndex(3); err != nil {
		t.Fatalf("SelectByIndex returned error: %v", err)
	}
	// Selecting an already selected option must not toggle it off.
	if err := s.SelectByIndex(3); err != nil {
		t.Fatalf("SelectByIndex returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "b", "c"}, selectedTexts(t, s)); diff != "" {
		t.Errorf("selected options differ (-want +got):\n%s", diff)
	}

	if err := s.DeselectByValue("v1"); err != nil {
		t.Fatalf("DeselectByValue returned error: %v", err)
	}
	if err := s.DeselectByIndex(3); err != nil {
		t.Fatalf("DeselectByIndex returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, selectedTexts(t, s)); diff != "" {
		t.Errorf("selected options differ (-want +got):\n%s", diff)
	}

	if err := s.DeselectByVisibleText("b"); err != nil {
		t.Fatalf("DeselectByVisibleText returned error: %v", err)
	}
	if err := s.SelectByValue("v0"); err != nil {
		t.Fatalf("SelectByValue returned error: %v", err)
	}
	if err := s.DeselectAll(); err != nil {
		t.Fatalf("DeselectAll returned error: %v", err)
	}
	if got := selectedTexts(t, s); len(got) != 0 {
		t.Errorf("selected options after DeselectAll = %v, want none", got)
	}
}
