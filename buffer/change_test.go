package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	before  []BeforeChange
	batches [][]ChangeRecord
}

func record(b *Buffer) *recorder {
	r := &recorder{}
	b.OnBeforeChange(func(ev BeforeChange) { r.before = append(r.before, ev) })
	b.OnChanges(func(batch []ChangeRecord) { r.batches = append(r.batches, batch) })
	return r
}

func TestBuffer_LastChange_InitialAndNoOp(t *testing.T) {
	b := New("a", Options{})

	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no initial change")
	}

	b.Move(Move{Unit: MoveRune, Dir: DirLeft}) // no-op at BOF
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change after no-op mutation")
	}
}

func TestBuffer_Change_InsertTextShape(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	v := b.Version()

	b.InsertText("X")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.Source, ChangeSourceLocal; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
	if got, want := ch.VersionBefore, v; got != want {
		t.Fatalf("version before=%d, want %d", got, want)
	}
	if got, want := ch.VersionAfter, v+1; got != want {
		t.Fatalf("version after=%d, want %d", got, want)
	}
	if got, want := ch.CursorAfter, (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor after=%v, want %v", got, want)
	}

	want := []ChangeRecord{{
		From:    Pos{Row: 0, Col: 1},
		To:      Pos{Row: 0, Col: 1},
		Text:    []string{"X"},
		Removed: []string{""},
		Origin:  ChangeSourceLocal,
	}}
	if diff := cmp.Diff(want, ch.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_Notifications_BeforeSeesOldDocument(t *testing.T) {
	b := New("hello\nworld", Options{})
	var seen string
	b.OnBeforeChange(func(ev BeforeChange) {
		seen = b.TextInRange(Range{Start: ev.From, End: ev.To})
	})

	b.SetSelection(Range{Start: Pos{Row: 0, Col: 3}, End: Pos{Row: 1, Col: 2}})
	b.InsertText("p")

	if got, want := seen, "lo\nwo"; got != want {
		t.Fatalf("text read in before-change=%q, want %q", got, want)
	}
	if got, want := b.Text(), "helprld"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Notifications_DeleteShape(t *testing.T) {
	b := New("ab\ncd", Options{})
	rec := record(b)
	b.SetCursor(Pos{Row: 1, Col: 0})

	b.DeleteBackward()

	wantBefore := []BeforeChange{{
		From:   Pos{Row: 0, Col: 2},
		To:     Pos{Row: 1, Col: 0},
		Text:   []string{""},
		Origin: ChangeSourceLocal,
	}}
	if diff := cmp.Diff(wantBefore, rec.before); diff != "" {
		t.Fatalf("before mismatch (-want +got):\n%s", diff)
	}
	if got, want := len(rec.batches), 1; got != want {
		t.Fatalf("batches=%d, want %d", got, want)
	}
	if got, want := rec.batches[0][0].RemovedText(), "\n"; got != want {
		t.Fatalf("removed=%q, want %q", got, want)
	}
	if got := rec.batches[0][0].InsertedText(); got != "" {
		t.Fatalf("inserted=%q, want empty", got)
	}
}

func TestBuffer_Notifications_ApplyBatchesInOrder(t *testing.T) {
	b := New("abcdef", Options{})
	rec := record(b)

	b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 1}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 6}, End: Pos{Row: 0, Col: 6}}, Text: "!"},
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 2}, End: Pos{Row: 0, Col: 2}}, Text: ""}, // no-op
	)

	if got, want := b.Text(), "Xbcdef!"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := len(rec.before), 2; got != want {
		t.Fatalf("before notifications=%d, want %d", got, want)
	}
	if got, want := len(rec.batches), 1; got != want {
		t.Fatalf("batches=%d, want %d", got, want)
	}
	if got, want := len(rec.batches[0]), 2; got != want {
		t.Fatalf("records in batch=%d, want %d", got, want)
	}
	if got, want := rec.batches[0][1].From, (Pos{Row: 0, Col: 6}); got != want {
		t.Fatalf("second record from=%v, want %v", got, want)
	}
}

func TestBuffer_Notifications_NoOpsEmitNothing(t *testing.T) {
	b := New("ab", Options{})
	rec := record(b)

	b.DeleteBackward()
	b.InsertText("")
	b.Move(Move{Unit: MoveRune, Dir: DirRight})
	b.Apply()

	if len(rec.before) != 0 || len(rec.batches) != 0 {
		t.Fatalf("expected no notifications, got %d before and %d batches", len(rec.before), len(rec.batches))
	}
}

func TestBuffer_Unsubscribe_IsIdempotent(t *testing.T) {
	b := New("", Options{})
	calls := 0
	unsubBefore := b.OnBeforeChange(func(BeforeChange) { calls++ })
	unsubChanges := b.OnChanges(func([]ChangeRecord) { calls++ })
	keep := 0
	b.OnChanges(func([]ChangeRecord) { keep++ })

	unsubBefore()
	unsubBefore()
	unsubChanges()
	unsubChanges()

	b.InsertText("x")
	if calls != 0 {
		t.Fatalf("unsubscribed listeners called %d times", calls)
	}
	if keep != 1 {
		t.Fatalf("remaining listener called %d times, want 1", keep)
	}
}

func TestChangeSource_String(t *testing.T) {
	if got, want := ChangeSourceRemote.String(), "remote"; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
}
