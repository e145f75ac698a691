package condition

import (
	"log/slog"

	"github.com/udisondev/condengine/internal/propstream"
)

// Speed changes movement speed by a signed delta. When no explicit delta
// is configured it is sampled from two linear formulas of the creature's
// base speed: [minA*base+minB, maxA*base+maxB].
type Speed struct {
	base

	speedDelta int32

	minA float32
	minB float32
	maxA float32
	maxB float32
}

// NewSpeed creates a speed condition with an initial delta (0 = use formulas).
func NewSpeed(id ID, t Type, ticks int32, buff bool, subID uint32, changeSpeed int32) *Speed {
	return &Speed{
		base:       newBase(id, t, ticks, buff, subID),
		speedDelta: changeSpeed,
	}
}

// SpeedDelta returns the delta currently applied (or to be applied).
func (c *Speed) SpeedDelta() int32 { return c.speedDelta }

// SetFormulaVars sets the coefficients used to sample the delta.
func (c *Speed) SetFormulaVars(minA, minB, maxA, maxB float32) {
	c.minA = minA
	c.minB = minB
	c.maxA = maxA
	c.maxB = maxB
}

func (c *Speed) formulaValues(baseSpeed int32) (lo, hi int32) {
	lo = int32(float32(baseSpeed)*c.minA + c.minB)
	hi = int32(float32(baseSpeed)*c.maxA + c.maxB)
	return lo, hi
}

func (c *Speed) sampleDelta(g Game, cr Creature) {
	if c.speedDelta != 0 {
		return
	}
	lo, hi := c.formulaValues(cr.BaseSpeed())
	c.speedDelta = g.RandomInt(lo, hi)
}

// SetParam also retypes the condition: positive deltas are haste,
// everything else paralyze.
func (c *Speed) SetParam(param Param, value int32) bool {
	ret := c.base.SetParam(param, value)
	if param != ParamSpeed {
		return ret
	}

	c.speedDelta = value
	if value > 0 {
		c.condType = TypeHaste
	} else {
		c.condType = TypeParalyze
	}
	return true
}

func (c *Speed) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	c.sampleDelta(g, cr)
	g.ChangeSpeed(cr, c.speedDelta)
	return true
}

func (c *Speed) End(g Game, cr Creature) {
	g.ChangeSpeed(cr, -c.speedDelta)
}

// Add replaces the delta and applies only the difference to the creature,
// so start + merges + end always sum to zero.
func (c *Speed) Add(g Game, cr Creature, other Condition) {
	o, ok := other.(*Speed)
	if !ok || c.condType != o.condType {
		return
	}
	if c.ticks == InfiniteTicks && o.ticks > 0 {
		return
	}

	c.SetTicks(g.Now(), o.ticks)

	oldSpeedDelta := c.speedDelta
	c.speedDelta = o.speedDelta
	c.minA = o.minA
	c.maxA = o.maxA
	c.minB = o.minB
	c.maxB = o.maxB
	c.sampleDelta(g, cr)

	if change := c.speedDelta - oldSpeedDelta; change != 0 {
		g.ChangeSpeed(cr, change)
		slog.Debug("speed condition merged", "creature", cr.ID(), "delta", c.speedDelta, "change", change)
	}
}

func (c *Speed) Icons() Icon {
	icons := c.base.Icons()

	switch c.condType {
	case TypeHaste:
		icons |= IconHaste
	case TypeParalyze:
		icons |= IconParalyze
	}
	return icons
}

func (c *Speed) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	_ = w.WriteByte(byte(AttrSpeedDelta))
	w.WriteInt32(c.speedDelta)

	_ = w.WriteByte(byte(AttrFormulaMinA))
	w.WriteFloat32(c.minA)

	_ = w.WriteByte(byte(AttrFormulaMinB))
	w.WriteFloat32(c.minB)

	_ = w.WriteByte(byte(AttrFormulaMaxA))
	w.WriteFloat32(c.maxA)

	_ = w.WriteByte(byte(AttrFormulaMaxB))
	w.WriteFloat32(c.maxB)
}

func (c *Speed) unserializeProp(attr Attr, r *propstream.Reader) error {
	var dst *float32
	switch attr {
	case AttrSpeedDelta:
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		c.speedDelta = v
		return nil
	case AttrFormulaMinA:
		dst = &c.minA
	case AttrFormulaMinB:
		dst = &c.minB
	case AttrFormulaMaxA:
		dst = &c.maxA
	case AttrFormulaMaxB:
		dst = &c.maxB
	default:
		return c.base.unserializeProp(attr, r)
	}

	v, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
