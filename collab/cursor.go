package collab

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
)

// RemoteCursor is another user's caret, drawn as a host bookmark in the
// user's color. While visible it follows edits; while hidden it keeps its
// last position, clamped into the document on use.
type RemoteCursor struct {
	host Host
	log  *zap.Logger

	id    string
	label string
	style buffer.MarkStyle

	pos      buffer.Pos
	mark     *buffer.Mark
	visible  bool
	disposed bool

	onDispose func(*RemoteCursor)
}

func (c *RemoteCursor) ID() string    { return c.id }
func (c *RemoteCursor) Label() string { return c.label }
func (c *RemoteCursor) Color() string { return c.style.Color }

// SetOffset moves the cursor to a rune offset, clamped into the document.
func (c *RemoteCursor) SetOffset(offset int) {
	if c.disposed {
		return
	}
	c.moveTo(posAt(c.host, offset))
}

// SetPosition moves the cursor to p, clamped into the document.
func (c *RemoteCursor) SetPosition(p buffer.Pos) {
	if c.disposed {
		return
	}
	// Round-trip through an offset to clamp against the host.
	c.moveTo(posAt(c.host, offsetOf(c.host, p)))
}

func (c *RemoteCursor) moveTo(p buffer.Pos) {
	c.pos = p
	if c.mark != nil {
		c.mark.Set(buffer.Range{Start: p, End: p})
	}
	c.log.Debug("cursor moved", zap.String("id", c.id), zap.Stringer("pos", p))
}

func (c *RemoteCursor) Offset() int {
	return offsetOf(c.host, c.Position())
}

func (c *RemoteCursor) Position() buffer.Pos {
	if c.mark != nil {
		if r, ok := c.mark.Find(); ok {
			return r.Start
		}
	}
	return posAt(c.host, offsetOf(c.host, c.pos))
}

func (c *RemoteCursor) Show() {
	if c.disposed || c.visible {
		return
	}
	c.visible = true
	c.mark = c.host.SetBookmark(c.Position(), c.style)
}

func (c *RemoteCursor) Hide() {
	if !c.visible {
		return
	}
	c.pos = c.Position()
	c.visible = false
	c.mark.Clear()
	c.mark = nil
}

func (c *RemoteCursor) IsVisible() bool { return c.visible }

// Dispose removes the cursor from the document and from its manager.
// Calling it again is a no-op.
func (c *RemoteCursor) Dispose() {
	if c.disposed {
		return
	}
	c.Hide()
	c.disposed = true
	c.log.Debug("cursor disposed", zap.String("id", c.id))
	if c.onDispose != nil {
		c.onDispose(c)
	}
}

func (c *RemoteCursor) IsDisposed() bool { return c.disposed }
