package condition

import "log/slog"

// Invisible hides the creature from observers while attached.
type Invisible struct {
	base
}

// NewInvisible creates an invisibility condition.
func NewInvisible(id ID, t Type, ticks int32, buff bool, subID uint32) *Invisible {
	return &Invisible{base: newBase(id, t, ticks, buff, subID)}
}

func (c *Invisible) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	g.ChangeVisible(cr, false)
	return true
}

func (c *Invisible) End(g Game, cr Creature) {
	// Another source (item, second condition) may still keep it hidden.
	if cr.IsInvisible() {
		slog.Debug("invisibility kept by another source", "creature", cr.ID())
		return
	}
	g.ChangeVisible(cr, true)
}
