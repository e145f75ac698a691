package condition

import (
	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

// Soul periodically grants soul points to players.
type Soul struct {
	base

	internalSoulTicks uint32
	soulTicks         uint32
	soulGain          uint32
}

// NewSoul creates a soul regeneration condition.
func NewSoul(id ID, t Type, ticks int32, buff bool, subID uint32) *Soul {
	return &Soul{base: newBase(id, t, ticks, buff, subID)}
}

func (c *Soul) Add(g Game, _ Creature, other Condition) {
	o, ok := other.(*Soul)
	if !ok || !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), other.Ticks())
	c.soulTicks = o.soulTicks
	c.soulGain = o.soulGain
}

func (c *Soul) Execute(g Game, cr Creature, interval int32) bool {
	c.internalSoulTicks += uint32(max(0, interval))

	if player, ok := cr.(Player); ok && player.Zone() != model.ZoneProtection {
		if c.internalSoulTicks >= c.soulTicks {
			c.internalSoulTicks = 0
			player.ChangeSoul(int32(c.soulGain))
		}
	}

	return c.base.Execute(g, cr, interval)
}

func (c *Soul) SetParam(param Param, value int32) bool {
	ret := c.base.SetParam(param, value)

	switch param {
	case ParamSoulGain:
		c.soulGain = uint32(value)
	case ParamSoulTicks:
		c.soulTicks = uint32(value)
	default:
		return ret
	}
	return true
}

func (c *Soul) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	_ = w.WriteByte(byte(AttrSoulGain))
	w.WriteUint32(c.soulGain)

	_ = w.WriteByte(byte(AttrSoulTicks))
	w.WriteUint32(c.soulTicks)
}

func (c *Soul) unserializeProp(attr Attr, r *propstream.Reader) error {
	switch attr {
	case AttrSoulGain:
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		c.soulGain = v
		return nil
	case AttrSoulTicks:
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		c.soulTicks = v
		return nil
	}
	return c.base.unserializeProp(attr, r)
}
