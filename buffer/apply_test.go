package buffer

import "testing"

func TestBuffer_Apply_SequentialAndCursorAtLastEdit(t *testing.T) {
	b := New("hello", Options{})
	b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 0}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 6}}, Text: "\nY"},
	)

	if got, want := b.Text(), "Xhello\nY"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if !b.Undo() || b.Text() != "hello" {
		t.Fatalf("expected one undo step to restore %q, got %q", "hello", b.Text())
	}
}

func TestBuffer_ApplyRemote_RemapsCursorAndTagsSource(t *testing.T) {
	b := New("hello", Options{})
	b.SetCursor(Pos{Row: 0, Col: 2})
	rec := record(b)
	v := b.Version()

	changed := b.ApplyRemote(TextEdit{
		Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 0}},
		Text:  "X",
	})
	if !changed {
		t.Fatalf("expected changed=true")
	}
	if got, want := b.Text(), "Xhello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Version(), v+1; got != want {
		t.Fatalf("version=%d, want %d", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 3}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got, want := rec.before[0].Origin, ChangeSourceRemote; got != want {
		t.Fatalf("before origin=%v, want %v", got, want)
	}
	if got, want := rec.batches[0][0].Origin, ChangeSourceRemote; got != want {
		t.Fatalf("record origin=%v, want %v", got, want)
	}
}

func TestBuffer_ApplyRemote_InsertAtCursorLandsAfterIt(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})

	b.ApplyRemote(TextEdit{Range: Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 1}}, Text: "Z"})
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_ApplyRemote_CollapsedSelectionIsCleared(t *testing.T) {
	b := New("abcd", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 3}})

	b.ApplyRemote(TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 4}}, Text: ""})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want 0:0", got)
	}
}

func TestBuffer_ApplyRemote_NoOpAndHistory(t *testing.T) {
	b := New("a", Options{})
	b.InsertText("b")
	v := b.Version()

	if b.ApplyRemote(TextEdit{Text: ""}) {
		t.Fatalf("expected no-op remote edit to report false")
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if !b.CanUndo() {
		t.Fatalf("no-op remote edit must keep undo history")
	}

	b.ApplyRemote(TextEdit{Text: "z"})
	if b.CanUndo() {
		t.Fatalf("expected remote edit to drop undo history")
	}
}

func TestBuffer_ReplaceRangeFrom_DispatchesBySource(t *testing.T) {
	b := New("abc", Options{})

	b.ReplaceRangeFrom(ChangeSourceRemote, Range{Start: Pos{Row: 0, Col: 3}, End: Pos{Row: 0, Col: 3}}, "!")
	if ch, _ := b.LastChange(); ch.Source != ChangeSourceRemote {
		t.Fatalf("source=%v, want remote", ch.Source)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("remote edit moved cursor to %v", got)
	}

	b.ReplaceRangeFrom(ChangeSourceLocal, Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 1}}, "A")
	if ch, _ := b.LastChange(); ch.Source != ChangeSourceLocal {
		t.Fatalf("source=%v, want local", ch.Source)
	}
	if got, want := b.Text(), "Abc!"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
