package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuffer_UndoRedo_RestoresTextAndCursor(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	b.InsertText("X")

	if !b.CanUndo() {
		t.Fatalf("expected undo available")
	}
	if !b.Undo() {
		t.Fatalf("expected undo to apply")
	}
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text after undo=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor after undo=%v, want %v", got, want)
	}

	if !b.Redo() {
		t.Fatalf("expected redo to apply")
	}
	if got, want := b.Text(), "aXb"; got != want {
		t.Fatalf("text after redo=%q, want %q", got, want)
	}
	if b.Redo() {
		t.Fatalf("expected redo stack empty")
	}
}

func TestBuffer_Undo_EmitsNarrowedChange(t *testing.T) {
	b := New("hello world", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 11}})
	b.InsertText("there")

	rec := record(b)
	b.Undo()

	want := []ChangeRecord{{
		From:    Pos{Row: 0, Col: 6},
		To:      Pos{Row: 0, Col: 11},
		Text:    []string{"world"},
		Removed: []string{"there"},
		Origin:  ChangeSourceHistory,
	}}
	if got, wantN := len(rec.batches), 1; got != wantN {
		t.Fatalf("batches=%d, want %d", got, wantN)
	}
	if diff := cmp.Diff(want, rec.batches[0]); diff != "" {
		t.Fatalf("undo records mismatch (-want +got):\n%s", diff)
	}
	if got, want := b.Text(), "hello world"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	r, ok := b.Selection()
	if !ok || r != (Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 11}}) {
		t.Fatalf("selection after undo=%v (ok=%v), want restored", r, ok)
	}
}

func TestBuffer_HistoryLimit(t *testing.T) {
	b := New("", Options{HistoryLimit: 2})
	b.InsertText("a")
	b.InsertText("b")
	b.InsertText("c")

	undos := 0
	for b.Undo() {
		undos++
	}
	if undos != 2 {
		t.Fatalf("undos=%d, want 2", undos)
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_NewEditClearsRedo(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.Undo()
	b.InsertText("b")

	if b.Redo() {
		t.Fatalf("expected redo cleared by new edit")
	}
}

func TestNarrowEdit(t *testing.T) {
	cases := []struct {
		before, after string
		start, end    int
		text          string
	}{
		{before: "abc", after: "abXc", start: 2, end: 2, text: "X"},
		{before: "aa", after: "a", start: 1, end: 2, text: ""},
		{before: "πテx", after: "πyx", start: 1, end: 2, text: "y"},
		{before: "", after: "new", start: 0, end: 0, text: "new"},
	}
	for _, tc := range cases {
		start, end, text, ok := narrowEdit(tc.before, tc.after)
		if !ok {
			t.Fatalf("narrowEdit(%q, %q) reported no change", tc.before, tc.after)
		}
		if start != tc.start || end != tc.end || text != tc.text {
			t.Fatalf("narrowEdit(%q, %q)=(%d, %d, %q), want (%d, %d, %q)",
				tc.before, tc.after, start, end, text, tc.start, tc.end, tc.text)
		}
	}

	if _, _, _, ok := narrowEdit("same", "same"); ok {
		t.Fatalf("expected identical texts to report no change")
	}
}
