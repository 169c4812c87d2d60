package buffer

import "testing"

func TestBuffer_Move_RuneWrapsLines(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Row: 0, Col: 2})

	b.Move(Move{Unit: MoveRune, Dir: DirRight})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveRune, Dir: DirLeft})
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_UpDownClampsColumn(t *testing.T) {
	b := New("abcdef\nx\nlonger", Options{})
	b.SetCursor(Pos{Row: 0, Col: 5})

	b.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	b.Move(Move{Unit: MoveRune, Dir: DirDown})
	if got, want := b.Cursor(), (Pos{Row: 2, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_WordBoundaries(t *testing.T) {
	b := New("foo  bar baz", Options{})
	b.SetCursor(Pos{Row: 0, Col: 0})

	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := b.Cursor().Col, 3; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := b.Cursor().Col, 8; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got, want := b.Cursor().Col, 5; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
}

func TestBuffer_Move_DocEnds(t *testing.T) {
	b := New("ab\ncde", Options{})
	b.Move(Move{Unit: MoveDoc, Dir: DirEnd})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 3}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	b.Move(Move{Unit: MoveDoc, Dir: DirHome})
	if got, want := b.Cursor(), (Pos{}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_ExtendKeepsAnchor(t *testing.T) {
	b := New("hello", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})

	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection")
	}
	if got, want := r, (Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 3}}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveRune, Dir: DirLeft})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected non-extending move to clear selection")
	}
}

func TestBuffer_Move_StepsOverClusters(t *testing.T) {
	// e + combining acute, then woman + ZWJ + laptop, then x
	b := New("e\u0301\U0001F469\u200D\U0001F4BBx", Options{})

	var cols []int
	for range 3 {
		b.Move(Move{Unit: MoveRune, Dir: DirRight})
		cols = append(cols, b.Cursor().Col)
	}
	for range 3 {
		b.Move(Move{Unit: MoveRune, Dir: DirLeft})
		cols = append(cols, b.Cursor().Col)
	}
	want := []int{2, 5, 6, 5, 2, 0}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("cols=%v, want %v", cols, want)
		}
	}
}

func TestBuffer_Move_UpDownSnapsToClusterStart(t *testing.T) {
	b := New("abc\ne\u0301x", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})

	b.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_WordKeepsCombiningMarks(t *testing.T) {
	b := New("cafe\u0301 bar", Options{})
	b.SetCursor(Pos{Row: 0, Col: 0})

	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := b.Cursor().Col, 5; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.SetCursor(Pos{Row: 0, Col: 9})
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got, want := b.Cursor().Col, 6; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got, want := b.Cursor().Col, 0; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
}
