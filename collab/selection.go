package collab

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
)

// RemoteSelection is another user's selection, drawn as a host range mark
// with the user's color as background. An empty selection draws nothing.
type RemoteSelection struct {
	host Host
	log  *zap.Logger

	id    string
	label string
	style buffer.MarkStyle

	r        buffer.Range
	mark     *buffer.Mark
	visible  bool
	disposed bool

	onDispose func(*RemoteSelection)
}

func (s *RemoteSelection) ID() string    { return s.id }
func (s *RemoteSelection) Label() string { return s.label }
func (s *RemoteSelection) Color() string { return s.style.Color }

// SetOffsets selects the runes between start and end, in either order.
// Offsets are clamped into the document.
func (s *RemoteSelection) SetOffsets(start, end int) {
	if s.disposed {
		return
	}
	s.setRange(buffer.Range{Start: posAt(s.host, start), End: posAt(s.host, end)})
}

// SetPositions selects the text between start and end, in either order.
func (s *RemoteSelection) SetPositions(start, end buffer.Pos) {
	if s.disposed {
		return
	}
	s.SetOffsets(offsetOf(s.host, start), offsetOf(s.host, end))
}

func (s *RemoteSelection) setRange(r buffer.Range) {
	r = buffer.NormalizeRange(r)
	s.r = r
	if s.mark != nil {
		s.mark.Set(r)
	}
	s.log.Debug("selection moved", zap.String("id", s.id), zap.Stringer("start", r.Start), zap.Stringer("end", r.End))
}

// Offsets returns the selected span as rune offsets, start <= end.
func (s *RemoteSelection) Offsets() (start, end int) {
	r := s.Range()
	return offsetOf(s.host, r.Start), offsetOf(s.host, r.End)
}

func (s *RemoteSelection) Range() buffer.Range {
	if s.mark != nil {
		if r, ok := s.mark.Find(); ok {
			return r
		}
	}
	return buffer.Range{
		Start: posAt(s.host, offsetOf(s.host, s.r.Start)),
		End:   posAt(s.host, offsetOf(s.host, s.r.End)),
	}
}

func (s *RemoteSelection) Show() {
	if s.disposed || s.visible {
		return
	}
	s.visible = true
	s.mark = s.host.MarkRange(s.Range(), s.style)
}

func (s *RemoteSelection) Hide() {
	if !s.visible {
		return
	}
	s.r = s.Range()
	s.visible = false
	s.mark.Clear()
	s.mark = nil
}

func (s *RemoteSelection) IsVisible() bool { return s.visible }

// Dispose removes the selection from the document and from its manager.
// Calling it again is a no-op.
func (s *RemoteSelection) Dispose() {
	if s.disposed {
		return
	}
	s.Hide()
	s.disposed = true
	s.log.Debug("selection disposed", zap.String("id", s.id))
	if s.onDispose != nil {
		s.onDispose(s)
	}
}

func (s *RemoteSelection) IsDisposed() bool { return s.disposed }
