package collab

import (
	"strings"

	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
)

// ContentManagerOptions configures a ContentManager. Nil callbacks are no-ops.
type ContentManagerOptions struct {
	Host Host

	OnInsert  func(offset int, text string)
	OnReplace func(offset, length int, text string)
	OnDelete  func(offset, length int)

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// ContentManager classifies local edits of a Host into offset-based
// Insert/Replace/Delete events and plays remote edits back into the Host.
//
// Each atomic host change is measured on its before-change notification,
// while the old document is still readable, and queued. The changes batch
// that follows drains the queue in order. Edits attributed to
// buffer.ChangeSourceRemote, and anything raised while the manager itself is
// applying an edit, are not reported.
type ContentManager struct {
	host Host
	log  *zap.Logger

	onInsert  func(offset int, text string)
	onReplace func(offset, length int, text string)
	onDelete  func(offset, length int)

	pending    []QueuedChange
	suppressed bool
	disposed   bool

	unsubBefore  func()
	unsubChanges func()
}

func NewContentManager(opt ContentManagerOptions) (*ContentManager, error) {
	if opt.Host == nil {
		return nil, argError("Host", "must not be nil")
	}
	m := &ContentManager{
		host:      opt.Host,
		log:       opt.Logger,
		onInsert:  opt.OnInsert,
		onReplace: opt.OnReplace,
		onDelete:  opt.OnDelete,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.onInsert == nil {
		m.onInsert = func(int, string) {}
	}
	if m.onReplace == nil {
		m.onReplace = func(int, int, string) {}
	}
	if m.onDelete == nil {
		m.onDelete = func(int, int) {}
	}

	m.unsubBefore = m.host.OnBeforeChange(m.onBeforeChange)
	m.unsubChanges = m.host.OnChanges(m.onChanges)
	return m, nil
}

// Insert inserts text at offset without reporting it.
func (m *ContentManager) Insert(offset int, text string) error {
	if m.disposed {
		return ErrDisposed
	}
	if text == "" {
		return m.reject("insert", argError("text", "must not be empty"))
	}
	if err := m.checkSpan(offset, 0); err != nil {
		return m.reject("insert", err)
	}
	m.log.Debug("playback insert", zap.Int("offset", offset), zap.Int("runes", len([]rune(text))))
	m.play(offset, offset, text)
	return nil
}

// Replace replaces length runes at offset with text without reporting it.
func (m *ContentManager) Replace(offset, length int, text string) error {
	if m.disposed {
		return ErrDisposed
	}
	if err := m.checkSpan(offset, length); err != nil {
		return m.reject("replace", err)
	}
	m.log.Debug("playback replace", zap.Int("offset", offset), zap.Int("length", length), zap.Int("runes", len([]rune(text))))
	m.play(offset, offset+length, text)
	return nil
}

// Delete removes length runes at offset without reporting it.
func (m *ContentManager) Delete(offset, length int) error {
	if m.disposed {
		return ErrDisposed
	}
	if err := m.checkSpan(offset, length); err != nil {
		return m.reject("delete", err)
	}
	m.log.Debug("playback delete", zap.Int("offset", offset), zap.Int("length", length))
	m.play(offset, offset+length, "")
	return nil
}

// Dispose stops listening to the host. Calling it again is a no-op.
func (m *ContentManager) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.unsubBefore()
	m.unsubChanges()
	m.pending = nil
	m.log.Debug("content manager disposed")
}

func (m *ContentManager) IsDisposed() bool { return m.disposed }

func (m *ContentManager) checkSpan(offset, length int) error {
	n := m.host.RuneLen()
	if offset < 0 || offset > n {
		return argError("offset", "%d outside document of length %d", offset, n)
	}
	if length < 0 || offset+length > n {
		return argError("length", "%d at offset %d exceeds document of length %d", length, offset, n)
	}
	return nil
}

func (m *ContentManager) reject(op string, err error) error {
	m.log.Warn("rejected playback", zap.String("op", op), zap.Error(err))
	return err
}

func (m *ContentManager) play(from, to int, text string) {
	r := buffer.Range{Start: posAt(m.host, from), End: posAt(m.host, to)}

	prev := m.suppressed
	m.suppressed = true
	defer func() { m.suppressed = prev }()

	m.host.ReplaceRangeFrom(buffer.ChangeSourceRemote, r, text)
}

func (m *ContentManager) onBeforeChange(ev buffer.BeforeChange) {
	if m.suppressed || ev.Origin == buffer.ChangeSourceRemote {
		return
	}

	from, ok := m.host.RuneOffsetFromPos(ev.From, strict)
	if !ok {
		panic(&ChangeError{Reason: "change starts outside the document"})
	}
	to, ok := m.host.RuneOffsetFromPos(ev.To, strict)
	if !ok {
		panic(&ChangeError{Reason: "change ends outside the document"})
	}

	ch := QueuedChange{From: from, To: to}
	if from != to {
		removed := m.host.TextInRange(buffer.Range{Start: ev.From, End: ev.To})
		ch.Deleted = &removed
	}
	if !(len(ev.Text) == 0 || (len(ev.Text) == 1 && ev.Text[0] == "")) {
		inserted := strings.Join(ev.Text, "\n")
		ch.Inserted = &inserted
	}
	m.pending = append(m.pending, ch)
}

func (m *ContentManager) onChanges(batch []buffer.ChangeRecord) {
	if m.suppressed {
		return
	}

	for i := range batch {
		rec := batch[i]
		if rec.Origin == buffer.ChangeSourceRemote {
			continue
		}
		if len(m.pending) == 0 {
			panic(&ChangeError{Reason: "change reported without a before-change notification", Record: &rec})
		}
		ch := m.pending[0]
		m.pending = m.pending[1:]
		m.dispatch(ch, &rec)
	}

	if len(m.pending) > 0 {
		left := m.pending[0]
		m.pending = nil
		panic(&ChangeError{Reason: "before-change notification without a matching change", Queued: &left})
	}
}

func (m *ContentManager) dispatch(ch QueuedChange, rec *buffer.ChangeRecord) {
	switch {
	case ch.Inserted != nil && ch.Deleted == nil:
		m.log.Debug("classified change", zap.String("kind", "insert"), zap.Int("offset", ch.From))
		m.onInsert(ch.From, *ch.Inserted)
	case ch.Inserted != nil && ch.Deleted != nil:
		m.log.Debug("classified change", zap.String("kind", "replace"), zap.Int("offset", ch.From), zap.Int("length", ch.To-ch.From))
		m.onReplace(ch.From, ch.To-ch.From, *ch.Inserted)
	case ch.Deleted != nil:
		m.log.Debug("classified change", zap.String("kind", "delete"), zap.Int("offset", ch.From), zap.Int("length", ch.To-ch.From))
		m.onDelete(ch.From, ch.To-ch.From)
	default:
		panic(&ChangeError{Reason: "change neither inserts nor deletes", Record: rec, Queued: &ch})
	}
}
