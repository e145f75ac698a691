package condition

import (
	"fmt"

	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

const defaultRegenerationTicks = 1000

// Regeneration periodically restores health and mana.
type Regeneration struct {
	base

	internalHealthTicks uint32
	internalManaTicks   uint32

	healthTicks uint32
	manaTicks   uint32
	healthGain  uint32
	manaGain    uint32
}

// NewRegeneration creates a regeneration condition ticking every second
// until configured otherwise.
func NewRegeneration(id ID, t Type, ticks int32, buff bool, subID uint32) *Regeneration {
	return &Regeneration{
		base:        newBase(id, t, ticks, buff, subID),
		healthTicks: defaultRegenerationTicks,
		manaTicks:   defaultRegenerationTicks,
	}
}

func (c *Regeneration) Add(g Game, _ Creature, other Condition) {
	o, ok := other.(*Regeneration)
	if !ok || !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), other.Ticks())
	c.healthTicks = o.healthTicks
	c.manaTicks = o.manaTicks
	c.healthGain = o.healthGain
	c.manaGain = o.manaGain
}

func (c *Regeneration) Execute(g Game, cr Creature, interval int32) bool {
	c.internalHealthTicks += uint32(max(0, interval))
	c.internalManaTicks += uint32(max(0, interval))

	if cr.Zone() != model.ZoneProtection {
		if c.internalHealthTicks >= c.healthTicks {
			c.internalHealthTicks = 0

			before := cr.Health()
			cr.ChangeHealth(int32(c.healthGain))
			realGain := cr.Health() - before

			if c.isBuff && realGain > 0 {
				if player, ok := cr.(Player); ok {
					c.broadcastHeal(g, player, realGain)
				}
			}
		}

		if c.internalManaTicks >= c.manaTicks {
			c.internalManaTicks = 0
			cr.ChangeMana(int32(c.manaGain))
		}
	}

	return c.base.Execute(g, cr, interval)
}

func (c *Regeneration) broadcastHeal(g Game, player Player, amount int32) {
	suffix := "s."
	if amount == 1 {
		suffix = "."
	}

	pos := player.Position()
	self := fmt.Sprintf("You were healed for %d hitpoint%s", amount, suffix)
	player.SendHealMessage(model.MessageHealed, self, pos, amount, model.TextColorMayaBlue)

	others := fmt.Sprintf("%s was healed for %d hitpoint%s", player.Name(), amount, suffix)
	for _, spectator := range g.Spectators(pos) {
		if spectator.ID() == player.ID() {
			continue
		}
		spectator.SendHealMessage(model.MessageHealedOthers, others, pos, amount, model.TextColorMayaBlue)
	}
}

func (c *Regeneration) SetParam(param Param, value int32) bool {
	ret := c.base.SetParam(param, value)

	switch param {
	case ParamHealthGain:
		c.healthGain = uint32(value)
	case ParamHealthTicks:
		c.healthTicks = uint32(value)
	case ParamManaGain:
		c.manaGain = uint32(value)
	case ParamManaTicks:
		c.manaTicks = uint32(value)
	default:
		return ret
	}
	return true
}

func (c *Regeneration) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	_ = w.WriteByte(byte(AttrHealthTicks))
	w.WriteUint32(c.healthTicks)

	_ = w.WriteByte(byte(AttrHealthGain))
	w.WriteUint32(c.healthGain)

	_ = w.WriteByte(byte(AttrManaTicks))
	w.WriteUint32(c.manaTicks)

	_ = w.WriteByte(byte(AttrManaGain))
	w.WriteUint32(c.manaGain)
}

func (c *Regeneration) unserializeProp(attr Attr, r *propstream.Reader) error {
	var dst *uint32
	switch attr {
	case AttrHealthTicks:
		dst = &c.healthTicks
	case AttrHealthGain:
		dst = &c.healthGain
	case AttrManaTicks:
		dst = &c.manaTicks
	case AttrManaGain:
		dst = &c.manaGain
	default:
		return c.base.unserializeProp(attr, r)
	}

	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
