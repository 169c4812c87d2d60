// Package collab decorates a shared buffer with other participants' presence
// and translates local edits to and from flat rune offsets.
//
// A ContentManager listens to a Host's change notifications and reports every
// local edit as exactly one Insert, Replace or Delete. Edits received from a
// sync engine are played back through the same manager so they are never
// reported as local edits.
//
// CursorManager and SelectionManager keep one decorator per remote user,
// keyed by id. Decorators are host marks, so they follow edits without any
// bookkeeping here.
//
// Everything runs on the caller's goroutine; none of the types are safe for
// concurrent use.
package collab
