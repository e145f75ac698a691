package condition

import "github.com/udisondev/condengine/internal/model"

// SpellCooldown blocks recasting of one spell; SubID is the spell id.
type SpellCooldown struct {
	base
}

// NewSpellCooldown creates a per-spell cooldown.
func NewSpellCooldown(id ID, t Type, ticks int32, buff bool, subID uint32) *SpellCooldown {
	return &SpellCooldown{base: newBase(id, t, ticks, buff, subID)}
}

func (c *SpellCooldown) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}
	c.notify(cr)
	return true
}

func (c *SpellCooldown) Add(g Game, cr Creature, other Condition) {
	if !c.Update(g.Now(), other) {
		return
	}
	c.SetTicks(g.Now(), other.Ticks())
	c.notify(cr)
}

func (c *SpellCooldown) notify(cr Creature) {
	if c.subID == 0 || c.ticks <= 0 {
		return
	}
	if player, ok := cr.(Player); ok {
		player.SendSpellCooldown(c.subID, c.ticks)
	}
}

// SpellGroupCooldown blocks a whole spell group; SubID is the model.SpellGroup.
type SpellGroupCooldown struct {
	base
}

// NewSpellGroupCooldown creates a spell group cooldown.
func NewSpellGroupCooldown(id ID, t Type, ticks int32, buff bool, subID uint32) *SpellGroupCooldown {
	return &SpellGroupCooldown{base: newBase(id, t, ticks, buff, subID)}
}

func (c *SpellGroupCooldown) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}
	c.notify(cr)
	return true
}

func (c *SpellGroupCooldown) Add(g Game, cr Creature, other Condition) {
	if !c.Update(g.Now(), other) {
		return
	}
	c.SetTicks(g.Now(), other.Ticks())
	c.notify(cr)
}

func (c *SpellGroupCooldown) notify(cr Creature) {
	if c.subID == 0 || c.ticks <= 0 {
		return
	}
	if player, ok := cr.(Player); ok {
		player.SendSpellGroupCooldown(model.SpellGroup(c.subID), c.ticks)
	}
}
