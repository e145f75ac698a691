package condition

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

// DefaultTickInterval is the gap between two scheduled damage rounds.
const DefaultTickInterval int32 = 2000

// intervalRecordSize is the encoded size of an Interval.
const intervalRecordSize = 12

// Interval is one entry of a damage schedule.
type Interval struct {
	TimeLeft int32
	Value    int32
	Interval int32
}

// Damage deals health changes over time, either from a precomputed
// schedule or as a fixed periodic amount.
type Damage struct {
	base

	delayed     bool
	forceUpdate bool
	field       bool
	owner       uint32

	minDamage   int32
	maxDamage   int32
	startDamage int32

	periodDamage     int32
	periodDamageTick int32
	tickInterval     int32

	damageList []Interval
}

// NewDamage creates a damage condition. Its duration is derived from the
// schedule, so no ticks are taken here.
func NewDamage(id ID, t Type, buff bool, subID uint32, tickInterval int32) *Damage {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Damage{
		base:         newBase(id, t, 0, buff, subID),
		tickInterval: tickInterval,
	}
}

// Schedule returns a copy of the pending damage schedule.
func (c *Damage) Schedule() []Interval { return slices.Clone(c.damageList) }

// PeriodDamage returns the fixed periodic damage, 0 in schedule mode.
func (c *Damage) PeriodDamage() int32 { return c.periodDamage }

// TickInterval returns the gap between two damage rounds in ms.
func (c *Damage) TickInterval() int32 { return c.tickInterval }

// Owner returns the id of the creature credited with the damage.
func (c *Damage) Owner() uint32 { return c.owner }

// Delayed reports whether the first round waits for the first interval.
func (c *Damage) Delayed() bool { return c.delayed }

func (c *Damage) SetParam(param Param, value int32) bool {
	if c.base.SetParam(param, value) {
		return true
	}

	switch param {
	case ParamOwner:
		c.owner = uint32(value)
	case ParamForceUpdate:
		c.forceUpdate = value != 0
	case ParamDelayed:
		c.delayed = value != 0
	case ParamMaxValue:
		c.maxDamage = abs32(value)
	case ParamMinValue:
		c.minDamage = abs32(value)
	case ParamStartValue:
		c.startDamage = abs32(value)
	case ParamTickInterval:
		c.tickInterval = abs32(value)
	case ParamPeriodicDamage:
		c.periodDamage = value
	case ParamField:
		c.field = value != 0
	default:
		return false
	}
	return true
}

// AddDamage appends rounds entries of value every time milliseconds.
// rounds == -1 switches to infinite periodic mode instead; schedule
// entries are refused once periodic damage is configured.
func (c *Damage) AddDamage(now int64, rounds, time, value int32) bool {
	if rounds == -1 {
		c.periodDamage = value
		c.tickInterval = abs32(time)
		c.SetTicks(now, InfiniteTicks)
		return true
	}

	if c.periodDamage != 0 {
		return false
	}

	for range rounds {
		c.damageList = append(c.damageList, Interval{
			TimeLeft: time,
			Value:    value,
			Interval: time,
		})
		if c.ticks != InfiniteTicks {
			c.SetTicks(now, c.ticks+time)
		}
	}
	return true
}

// TotalDamage is the magnitude used to compare stacking damage conditions.
func (c *Damage) TotalDamage() int32 {
	var result int32
	if len(c.damageList) > 0 {
		for _, info := range c.damageList {
			result += info.Value
		}
	} else {
		result = c.minDamage + (c.maxDamage-c.minDamage)/2
	}
	return abs32(result)
}

// init builds the schedule from the configured bounds when it is empty.
func (c *Damage) init(g Game) bool {
	if c.periodDamage != 0 {
		return true
	}

	if len(c.damageList) == 0 {
		now := g.Now()
		c.SetTicks(now, 0)

		amount := g.RandomInt(c.minDamage, c.maxDamage)
		if amount != 0 {
			if c.startDamage > c.maxDamage {
				c.startDamage = c.maxDamage
			} else if c.startDamage == 0 {
				c.startDamage = defaultStartDamage(amount)
			}

			for _, value := range Distribute(amount, c.startDamage) {
				c.AddDamage(now, 1, c.tickInterval, -value)
			}

			slog.Debug("damage schedule built",
				"type", c.condType,
				"amount", amount,
				"start", c.startDamage,
				"rounds", len(c.damageList))
		}
	}
	return len(c.damageList) > 0
}

func (c *Damage) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	if !c.init(g) {
		return false
	}

	if !c.delayed {
		if damage, ok := c.nextDamage(); ok {
			return c.doDamage(g, cr, damage)
		}
	}
	return true
}

func (c *Damage) Execute(g Game, cr Creature, interval int32) bool {
	if c.periodDamage != 0 {
		c.periodDamageTick += interval
		if c.periodDamageTick >= c.tickInterval {
			c.periodDamageTick = 0
			c.doDamage(g, cr, c.periodDamage)
		}
	} else if len(c.damageList) > 0 {
		remove := cr.OnTickCondition(c.condType, c.ticks != InfiniteTicks)

		head := &c.damageList[0]
		head.TimeLeft -= interval
		if head.TimeLeft <= 0 {
			damage := head.Value
			if remove {
				c.damageList = c.damageList[1:]
			} else {
				head.TimeLeft = head.Interval
			}
			c.doDamage(g, cr, damage)
		}

		// A looping schedule does not consume duration.
		if !remove {
			if c.ticks > 0 {
				c.endTime += int64(interval)
			}
			interval = 0
		}
	}

	return c.base.Execute(g, cr, interval)
}

func (c *Damage) nextDamage() (int32, bool) {
	if c.periodDamage != 0 {
		return c.periodDamage, true
	}
	if len(c.damageList) > 0 {
		damage := c.damageList[0].Value
		if c.ticks != InfiniteTicks {
			c.damageList = c.damageList[1:]
		}
		return damage, true
	}
	return 0, false
}

func (c *Damage) doDamage(g Game, cr Creature, healthChange int32) bool {
	if cr.IsSuppress(c.condType) {
		return true
	}

	damage := CombatDamage{
		Origin: OriginCondition,
		Type:   CombatTypeFor(c.condType),
		Value:  healthChange,
	}

	var attacker Creature
	if c.owner != 0 {
		attacker = g.CreatureByID(c.owner)
	}

	if !cr.IsAttackable() || !g.CanDoCombat(attacker, cr) {
		if !cr.IsInGhostMode() {
			g.AddMagicEffect(cr.Position(), model.MagicEffectPoff)
		}
		return false
	}

	if g.CombatBlockHit(&damage, attacker, cr, c.field) {
		return false
	}
	return g.CombatChangeHealth(attacker, cr, damage)
}

// Update accepts a forced instance, refuses a finite one while this one
// loops forever, and otherwise lets the larger total damage win.
func (c *Damage) Update(_ int64, other Condition) bool {
	o, ok := other.(*Damage)
	if !ok {
		return false
	}
	if o.forceUpdate {
		return true
	}
	if c.ticks == InfiniteTicks && o.ticks > 0 {
		return false
	}
	return o.TotalDamage() > c.TotalDamage()
}

func (c *Damage) Add(g Game, cr Creature, other Condition) {
	o, ok := other.(*Damage)
	if !ok || o.condType != c.condType {
		return
	}
	if !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), o.ticks)
	c.owner = o.owner
	c.maxDamage = o.maxDamage
	c.minDamage = o.minDamage
	c.startDamage = o.startDamage
	c.tickInterval = o.tickInterval
	c.periodDamage = o.periodDamage

	// Keep the in-flight countdown of the current round.
	nextTimeLeft := c.tickInterval
	if len(c.damageList) > 0 {
		nextTimeLeft = c.damageList[0].TimeLeft
	}
	c.damageList = slices.Clone(o.damageList)

	if !c.init(g) {
		return
	}
	if len(c.damageList) > 0 {
		c.damageList[0].TimeLeft = nextTimeLeft
	}
	if !c.delayed {
		if damage, ok := c.nextDamage(); ok {
			c.doDamage(g, cr, damage)
		}
	}
}

func (c *Damage) Icons() Icon {
	icons := c.base.Icons()

	switch c.condType {
	case TypeFire:
		icons |= IconBurn
	case TypeEnergy:
		icons |= IconEnergy
	case TypeDrown:
		icons |= IconDrowning
	case TypePoison:
		icons |= IconPoison
	case TypeFreezing:
		icons |= IconFreezing
	case TypeDazzled:
		icons |= IconDazzled
	case TypeCursed:
		icons |= IconCursed
	case TypeBleeding:
		icons |= IconBleeding
	}
	return icons
}

func (c *Damage) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	_ = w.WriteByte(byte(AttrDelayed))
	w.WriteBool(c.delayed)

	_ = w.WriteByte(byte(AttrPeriodDamage))
	w.WriteInt32(c.periodDamage)

	for _, info := range c.damageList {
		_ = w.WriteByte(byte(AttrIntervalData))
		w.WriteInt32(info.TimeLeft)
		w.WriteInt32(info.Value)
		w.WriteInt32(info.Interval)
	}
}

func (c *Damage) unserializeProp(attr Attr, r *propstream.Reader) error {
	switch attr {
	case AttrDelayed:
		v, err := r.ReadByte()
		if err != nil {
			return err
		}
		c.delayed = v != 0
		return nil
	case AttrPeriodDamage:
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		c.periodDamage = v
		return nil
	case AttrOwner:
		// Attacker attribution does not survive a reload.
		return r.Skip(4)
	case AttrIntervalData:
		info, err := readInterval(r)
		if err != nil {
			return err
		}
		c.damageList = append(c.damageList, info)
		return nil
	}
	return c.base.unserializeProp(attr, r)
}

func readInterval(r *propstream.Reader) (Interval, error) {
	if r.Remaining() < intervalRecordSize {
		return Interval{}, fmt.Errorf("interval record: need %d bytes, have %d", intervalRecordSize, r.Remaining())
	}
	timeLeft, _ := r.ReadInt32()
	value, _ := r.ReadInt32()
	interval, _ := r.ReadInt32()
	return Interval{TimeLeft: timeLeft, Value: value, Interval: interval}, nil
}

// CombatTypeFor maps a damage condition type to the combat type it deals.
func CombatTypeFor(t Type) model.CombatType {
	switch t {
	case TypePoison:
		return model.CombatEarth
	case TypeFire:
		return model.CombatFire
	case TypeEnergy:
		return model.CombatEnergy
	case TypeBleeding:
		return model.CombatPhysical
	case TypeDrown:
		return model.CombatDrown
	case TypeFreezing:
		return model.CombatIce
	case TypeDazzled:
		return model.CombatHoly
	case TypeCursed:
		return model.CombatDeath
	default:
		return model.CombatNone
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
