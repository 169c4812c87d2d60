package collab

import "github.com/iw2rmb/flourish-collab/buffer"

// Host is the editor surface collab decorates and listens to.
// *buffer.Buffer implements it.
type Host interface {
	RuneLen() int
	RuneOffsetFromPos(pos buffer.Pos, p buffer.ConvertPolicy) (int, bool)
	PosFromRuneOffset(off int, p buffer.ConvertPolicy) (buffer.Pos, bool)
	TextInRange(r buffer.Range) string

	ReplaceRangeFrom(source buffer.ChangeSource, r buffer.Range, text string) bool

	OnBeforeChange(fn func(buffer.BeforeChange)) (unsubscribe func())
	OnChanges(fn func([]buffer.ChangeRecord)) (unsubscribe func())

	MarkRange(r buffer.Range, st buffer.MarkStyle) *buffer.Mark
	SetBookmark(p buffer.Pos, st buffer.MarkStyle) *buffer.Mark
}

var _ Host = (*buffer.Buffer)(nil)

var (
	strict  = buffer.ConvertPolicy{ClampMode: buffer.OffsetError}
	clamped = buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp}
)

func posAt(h Host, off int) buffer.Pos {
	p, _ := h.PosFromRuneOffset(off, clamped)
	return p
}

func offsetOf(h Host, p buffer.Pos) int {
	off, _ := h.RuneOffsetFromPos(p, clamped)
	return off
}
