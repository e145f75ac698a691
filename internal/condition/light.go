package condition

import (
	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

// Light makes the creature emit light that fades one level at a time
// over the condition's duration.
type Light struct {
	base

	lightInfo           model.LightInfo
	internalLightTicks  uint32
	lightChangeInterval uint32
}

// NewLight creates a light source condition.
func NewLight(id ID, t Type, ticks int32, buff bool, subID uint32, level, color uint8) *Light {
	return &Light{
		base:      newBase(id, t, ticks, buff, subID),
		lightInfo: model.LightInfo{Level: level, Color: color},
	}
}

// LightInfo returns the configured light level and color.
func (c *Light) LightInfo() model.LightInfo { return c.lightInfo }

// ChangeInterval returns the time between two level decrements.
func (c *Light) ChangeInterval() uint32 { return c.lightChangeInterval }

// changeInterval spreads the duration evenly over the light levels.
// A zero level leaves nothing to fade.
func (c *Light) changeInterval() uint32 {
	if c.lightInfo.Level == 0 || c.ticks <= 0 {
		return 0
	}
	return uint32(c.ticks) / uint32(c.lightInfo.Level)
}

func (c *Light) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	c.internalLightTicks = 0
	c.lightChangeInterval = c.changeInterval()
	cr.SetLight(c.lightInfo)
	g.ChangeLight(cr)
	return true
}

// Execute fades the light one level per change interval. A zero interval
// (infinite duration or level 0) keeps the light steady.
func (c *Light) Execute(g Game, cr Creature, interval int32) bool {
	if c.lightChangeInterval == 0 {
		return c.base.Execute(g, cr, interval)
	}

	c.internalLightTicks += uint32(max(0, interval))

	if c.internalLightTicks >= c.lightChangeInterval {
		c.internalLightTicks = 0

		light := cr.Light()
		if light.Level > 0 {
			light.Level--
			cr.SetLight(light)
			g.ChangeLight(cr)
		}
	}

	return c.base.Execute(g, cr, interval)
}

func (c *Light) End(g Game, cr Creature) {
	cr.SetNormalLight()
	g.ChangeLight(cr)
}

func (c *Light) Add(g Game, cr Creature, other Condition) {
	o, ok := other.(*Light)
	if !ok || !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), o.ticks)
	c.lightInfo = o.lightInfo
	c.lightChangeInterval = c.changeInterval()
	c.internalLightTicks = 0
	cr.SetLight(c.lightInfo)
	g.ChangeLight(cr)
}

func (c *Light) SetParam(param Param, value int32) bool {
	if c.base.SetParam(param, value) {
		return true
	}

	switch param {
	case ParamLightLevel:
		c.lightInfo.Level = uint8(value)
	case ParamLightColor:
		c.lightInfo.Color = uint8(value)
	default:
		return false
	}
	return true
}

func (c *Light) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	// Color and level are written 32 bits wide to keep the record layout stable.
	_ = w.WriteByte(byte(AttrLightColor))
	w.WriteUint32(uint32(c.lightInfo.Color))

	_ = w.WriteByte(byte(AttrLightLevel))
	w.WriteUint32(uint32(c.lightInfo.Level))

	_ = w.WriteByte(byte(AttrLightTicks))
	w.WriteUint32(c.internalLightTicks)

	_ = w.WriteByte(byte(AttrLightInterval))
	w.WriteUint32(c.lightChangeInterval)
}

func (c *Light) unserializeProp(attr Attr, r *propstream.Reader) error {
	switch attr {
	case AttrLightColor, AttrLightLevel, AttrLightTicks, AttrLightInterval:
	default:
		return c.base.unserializeProp(attr, r)
	}

	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	switch attr {
	case AttrLightColor:
		c.lightInfo.Color = uint8(v)
	case AttrLightLevel:
		c.lightInfo.Level = uint8(v)
	case AttrLightTicks:
		c.internalLightTicks = v
	case AttrLightInterval:
		c.lightChangeInterval = v
	}
	return nil
}
