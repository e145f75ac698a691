package condition

import (
	"log/slog"
	"slices"

	"github.com/udisondev/condengine/internal/propstream"
)

// List holds the conditions attached to one creature and drives their
// lifecycle. It is not safe for concurrent use; the owner serializes
// access together with the rest of the creature state.
type List struct {
	factory    *Factory
	limit      int
	conditions []Condition
}

// NewList creates an empty list. limit caps the number of attached
// conditions; 0 means unlimited. A nil factory uses the default options.
func NewList(f *Factory, limit int) *List {
	if f == nil {
		f = defaultFactory
	}
	return &List{
		factory:    f,
		limit:      limit,
		conditions: make([]Condition, 0, 8),
	}
}

// Add attaches c to cr. An already attached condition with the same type,
// id and sub id absorbs c through its Add merge and c is discarded.
// Otherwise c is started and kept only if Start succeeds.
func (l *List) Add(g Game, cr Creature, c Condition) bool {
	if c == nil {
		return false
	}

	if prev := l.Get(c.Type(), c.ID(), c.SubID()); prev != nil {
		prev.Add(g, cr, c)
		slog.Debug("condition merged",
			"creature", cr.ID(),
			"type", c.Type(),
			"id", c.ID(),
			"ticks", prev.Ticks())
		return true
	}

	if l.limit > 0 && len(l.conditions) >= l.limit {
		slog.Debug("condition limit reached",
			"creature", cr.ID(),
			"type", c.Type(),
			"limit", l.limit)
		return false
	}

	if !c.Start(g, cr) {
		return false
	}

	l.conditions = append(l.conditions, c)
	slog.Debug("condition started",
		"creature", cr.ID(),
		"type", c.Type(),
		"id", c.ID(),
		"ticks", c.Ticks())
	return true
}

// Execute advances every condition by interval milliseconds. Expired
// conditions are detached first and then ended, once each.
func (l *List) Execute(g Game, cr Creature, interval int32) {
	for i := 0; i < len(l.conditions); {
		c := l.conditions[i]
		if c.Execute(g, cr, interval) {
			i++
			continue
		}

		l.conditions = slices.Delete(l.conditions, i, i+1)
		c.End(g, cr)
		slog.Debug("condition ended",
			"creature", cr.ID(),
			"type", c.Type(),
			"id", c.ID())
	}
}

// Remove ends and detaches every condition of type t in scope id.
func (l *List) Remove(g Game, cr Creature, t Type, id ID) int {
	return l.removeFunc(g, cr, func(c Condition) bool {
		return c.Type() == t && c.ID() == id
	})
}

// RemoveByType ends and detaches every condition of type t.
func (l *List) RemoveByType(g Game, cr Creature, t Type) int {
	return l.removeFunc(g, cr, func(c Condition) bool {
		return c.Type() == t
	})
}

// Clear ends and detaches everything, e.g. when the creature despawns.
func (l *List) Clear(g Game, cr Creature) int {
	return l.removeFunc(g, cr, func(Condition) bool { return true })
}

func (l *List) removeFunc(g Game, cr Creature, match func(Condition) bool) int {
	var removed []Condition
	l.conditions = slices.DeleteFunc(l.conditions, func(c Condition) bool {
		if match(c) {
			removed = append(removed, c)
			return true
		}
		return false
	})

	for _, c := range removed {
		c.End(g, cr)
		slog.Debug("condition removed",
			"creature", cr.ID(),
			"type", c.Type(),
			"id", c.ID())
	}
	return len(removed)
}

// Get returns the attached condition matching type, id and sub id.
func (l *List) Get(t Type, id ID, subID uint32) Condition {
	for _, c := range l.conditions {
		if c.Type() == t && c.ID() == id && c.SubID() == subID {
			return c
		}
	}
	return nil
}

// Has reports whether an unexpired condition of type t with subID is attached.
func (l *List) Has(now int64, t Type, subID uint32) bool {
	for _, c := range l.conditions {
		if c.Type() != t || c.SubID() != subID {
			continue
		}
		if c.Ticks() == InfiniteTicks || c.EndTime() >= now {
			return true
		}
	}
	return false
}

// HasType reports whether any condition of type t is attached.
func (l *List) HasType(t Type) bool {
	return slices.ContainsFunc(l.conditions, func(c Condition) bool {
		return c.Type() == t
	})
}

// Icons returns the status bar bits of all attached conditions.
func (l *List) Icons() Icon {
	var icons Icon
	for _, c := range l.conditions {
		icons |= c.Icons()
	}
	return icons
}

// Len returns the number of attached conditions.
func (l *List) Len() int { return len(l.conditions) }

// Conditions returns a snapshot of the attached conditions.
func (l *List) Conditions() []Condition { return slices.Clone(l.conditions) }

// Serialize encodes the persistent conditions back to back.
// Returns nil when nothing needs saving.
func (l *List) Serialize() []byte {
	w := propstream.Get()
	defer w.Put()

	for _, c := range l.conditions {
		if c.IsPersistent() {
			EncodeTo(w, c)
		}
	}
	if w.Len() == 0 {
		return nil
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out
}

// Unserialize decodes a blob produced by Serialize. Decoding stops at the
// first malformed record; everything before it is returned.
func (l *List) Unserialize(data []byte) []Condition {
	r := propstream.NewReader(data)

	var out []Condition
	for r.Remaining() > 0 {
		c, err := l.factory.Decode(r)
		if err != nil {
			slog.Warn("dropping corrupt condition data",
				"offset", r.Position(),
				"decoded", len(out),
				"error", err)
			break
		}
		out = append(out, c)
	}
	return out
}

// Restore decodes data and attaches each condition to cr.
// Returns the number of conditions attached.
func (l *List) Restore(g Game, cr Creature, data []byte) int {
	var n int
	for _, c := range l.Unserialize(data) {
		if l.Add(g, cr, c) {
			n++
		}
	}
	return n
}
