package condition

import (
	"fmt"

	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

// Outfit overrides how the creature looks until it ends.
type Outfit struct {
	base

	outfit model.Outfit
}

// NewOutfit creates an outfit override condition.
func NewOutfit(id ID, t Type, ticks int32, buff bool, subID uint32) *Outfit {
	return &Outfit{base: newBase(id, t, ticks, buff, subID)}
}

// SetOutfit sets the outfit shown while the condition is attached.
func (c *Outfit) SetOutfit(outfit model.Outfit) { c.outfit = outfit }

// Outfit returns the override outfit.
func (c *Outfit) Outfit() model.Outfit { return c.outfit }

func (c *Outfit) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	g.ChangeOutfit(cr, c.outfit)
	return true
}

func (c *Outfit) End(g Game, cr Creature) {
	g.ChangeOutfit(cr, cr.DefaultOutfit())
}

func (c *Outfit) Add(g Game, cr Creature, other Condition) {
	o, ok := other.(*Outfit)
	if !ok || !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), o.ticks)
	c.outfit = o.outfit
	g.ChangeOutfit(cr, c.outfit)
}

func (c *Outfit) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	_ = w.WriteByte(byte(AttrOutfit))
	w.WriteUint16(c.outfit.LookType)
	w.WriteUint16(c.outfit.LookTypeEx)
	w.WriteUint16(c.outfit.LookMount)
	_ = w.WriteByte(c.outfit.LookHead)
	_ = w.WriteByte(c.outfit.LookBody)
	_ = w.WriteByte(c.outfit.LookLegs)
	_ = w.WriteByte(c.outfit.LookFeet)
	_ = w.WriteByte(c.outfit.LookAddons)
}

func (c *Outfit) unserializeProp(attr Attr, r *propstream.Reader) error {
	if attr != AttrOutfit {
		return c.base.unserializeProp(attr, r)
	}

	if r.Remaining() < model.OutfitRecordSize {
		return fmt.Errorf("outfit record: need %d bytes, have %d", model.OutfitRecordSize, r.Remaining())
	}
	var o model.Outfit
	o.LookType, _ = r.ReadUint16()
	o.LookTypeEx, _ = r.ReadUint16()
	o.LookMount, _ = r.ReadUint16()
	o.LookHead, _ = r.ReadByte()
	o.LookBody, _ = r.ReadByte()
	o.LookLegs, _ = r.ReadByte()
	o.LookFeet, _ = r.ReadByte()
	o.LookAddons, _ = r.ReadByte()
	c.outfit = o
	return nil
}
