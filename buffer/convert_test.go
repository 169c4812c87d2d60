package buffer

import "testing"

var (
	strict  = ConvertPolicy{ClampMode: OffsetError}
	clamped = ConvertPolicy{ClampMode: OffsetClamp}
)

func TestBuffer_RuneLen(t *testing.T) {
	b := New("ab\nπテ\n", Options{})
	if got, want := b.RuneLen(), 6; got != want {
		t.Fatalf("rune len=%d, want %d", got, want)
	}
}

func TestBuffer_RuneOffsetRoundTrip(t *testing.T) {
	b := New("ab\nπテx\n\nz", Options{})
	n := b.RuneLen()

	for off := 0; off <= n; off++ {
		pos, ok := b.PosFromRuneOffset(off, strict)
		if !ok {
			t.Fatalf("PosFromRuneOffset(%d) failed", off)
		}
		back, ok := b.RuneOffsetFromPos(pos, strict)
		if !ok {
			t.Fatalf("RuneOffsetFromPos(%v) failed", pos)
		}
		if back != off {
			t.Fatalf("round trip %d -> %v -> %d", off, pos, back)
		}
	}
}

func TestBuffer_PosFromRuneOffset_LineBoundaries(t *testing.T) {
	b := New("ab\ncd", Options{})

	cases := []struct {
		off  int
		want Pos
	}{
		{off: 0, want: Pos{Row: 0, Col: 0}},
		{off: 2, want: Pos{Row: 0, Col: 2}},
		{off: 3, want: Pos{Row: 1, Col: 0}},
		{off: 5, want: Pos{Row: 1, Col: 2}},
	}
	for _, tc := range cases {
		got, ok := b.PosFromRuneOffset(tc.off, strict)
		if !ok || got != tc.want {
			t.Fatalf("PosFromRuneOffset(%d)=%v (ok=%v), want %v", tc.off, got, ok, tc.want)
		}
	}
}

func TestBuffer_ConvertPolicy_ErrorVsClamp(t *testing.T) {
	b := New("ab\ncd", Options{})

	if _, ok := b.PosFromRuneOffset(-1, strict); ok {
		t.Fatalf("expected strict conversion of -1 to fail")
	}
	if _, ok := b.PosFromRuneOffset(6, strict); ok {
		t.Fatalf("expected strict conversion past EOF to fail")
	}
	if got, ok := b.PosFromRuneOffset(99, clamped); !ok || got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("clamped offset=%v (ok=%v), want 1:2", got, ok)
	}

	if _, ok := b.RuneOffsetFromPos(Pos{Row: 0, Col: 3}, strict); ok {
		t.Fatalf("expected strict conversion of 0:3 to fail")
	}
	if got, ok := b.RuneOffsetFromPos(Pos{Row: 0, Col: 3}, clamped); !ok || got != 2 {
		t.Fatalf("clamped pos offset=%d (ok=%v), want 2", got, ok)
	}
	if _, ok := b.RuneOffsetFromPos(Pos{}, ConvertPolicy{ClampMode: 9}); ok {
		t.Fatalf("expected unknown clamp mode to fail")
	}
}
