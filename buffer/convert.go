package buffer

// OffsetClampMode controls how out-of-range offsets and positions are handled.
type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// Offsets are flat rune indices into Text(); '\n' counts as one rune.

// RuneLen returns the document length in runes.
func (b *Buffer) RuneLen() int {
	total := 0
	for row, line := range b.lines {
		total += len(line)
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

func (b *Buffer) PosFromRuneOffset(off int, p ConvertPolicy) (Pos, bool) {
	off, ok := clampOffset(off, b.RuneLen(), p.ClampMode)
	if !ok {
		return Pos{}, false
	}
	return b.runeOffsetToPos(off), true
}

func (b *Buffer) RuneOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	pos, ok := b.normalizePosForMode(pos, p.ClampMode)
	if !ok {
		return 0, false
	}
	return b.posToRuneOffset(pos), true
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}

func (b *Buffer) normalizePosForMode(pos Pos, mode OffsetClampMode) (Pos, bool) {
	switch mode {
	case OffsetError:
		if b.clampPos(pos) != pos {
			return Pos{}, false
		}
		return pos, true
	case OffsetClamp:
		return b.clampPos(pos), true
	default:
		return Pos{}, false
	}
}

func (b *Buffer) runeOffsetToPos(off int) Pos {
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}
		}
		off -= len(line) + 1
	}
	return b.endPos()
}

func (b *Buffer) posToRuneOffset(pos Pos) int {
	off := 0
	for row := 0; row < pos.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + pos.Col
}
