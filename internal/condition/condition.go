package condition

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/condengine/internal/propstream"
)

// InfiniteTicks marks a condition that never expires on its own.
const InfiniteTicks int32 = -1

// EndTimeInfinite is the expiry timestamp of infinite conditions.
const EndTimeInfinite int64 = math.MaxInt64

var (
	ErrUnknownType  = errors.New("unknown condition type")
	ErrBadPrefix    = errors.New("malformed condition prefix")
	ErrUnknownAttr  = errors.New("unknown condition attribute")
	ErrAttrOverflow = errors.New("too many condition attribute entries")
)

// Condition is a time-bounded or permanent modifier attached to a creature.
//
// Lifecycle: Start exactly once on attach, Execute once per tick until it
// returns false, End exactly once on expiry or early removal. Add merges a
// compatible incoming instance into an already started one and never calls
// Start or End on the incoming instance.
//
// The set of implementations is closed: *Generic, *Attributes,
// *Regeneration, *Soul, *Damage, *Speed, *Invisible, *Outfit, *Light,
// *SpellCooldown and *SpellGroupCooldown.
type Condition interface {
	ID() ID
	Type() Type
	SubID() uint32
	Ticks() int32
	EndTime() int64
	IsBuff() bool

	SetParam(param Param, value int32) bool
	// SetTicks resets the remaining duration and recomputes the expiry.
	SetTicks(now int64, ticks int32)

	Start(g Game, cr Creature) bool
	Execute(g Game, cr Creature, interval int32) bool
	End(g Game, cr Creature)
	Add(g Game, cr Creature, other Condition)
	// Update is the stacking predicate consulted by Add.
	Update(now int64, other Condition) bool

	Icons() Icon
	IsPersistent() bool
	Serialize(w *propstream.Writer)

	common() *base
	unserializeProp(attr Attr, r *propstream.Reader) error
}

// base holds the fields and default behavior shared by every variant.
type base struct {
	id       ID
	condType Type
	subID    uint32
	ticks    int32
	endTime  int64
	isBuff   bool
}

func newBase(id ID, t Type, ticks int32, buff bool, subID uint32) base {
	b := base{
		id:       id,
		condType: t,
		subID:    subID,
		ticks:    ticks,
		isBuff:   buff,
	}
	if ticks == InfiniteTicks {
		b.endTime = EndTimeInfinite
	}
	return b
}

func (b *base) common() *base { return b }

// restoreTicks sets the duration read from a persisted prefix. endTime is
// recomputed by Start.
func (b *base) restoreTicks(ticks int32) {
	b.ticks = ticks
	if ticks == InfiniteTicks {
		b.endTime = EndTimeInfinite
	}
}

// ID returns the scope id.
func (b *base) ID() ID { return b.id }

// Type returns the condition type.
func (b *base) Type() Type { return b.condType }

// SubID returns the secondary id.
func (b *base) SubID() uint32 { return b.subID }

// Ticks returns the remaining duration in milliseconds, or InfiniteTicks.
func (b *base) Ticks() int32 { return b.ticks }

// EndTime returns the absolute expiry timestamp in milliseconds.
func (b *base) EndTime() int64 { return b.endTime }

// IsBuff reports the presentation buff flag.
func (b *base) IsBuff() bool { return b.isBuff }

func (b *base) SetTicks(now int64, ticks int32) {
	b.ticks = ticks
	if ticks == InfiniteTicks {
		b.endTime = EndTimeInfinite
		return
	}
	b.endTime = int64(ticks) + now
}

func (b *base) SetParam(param Param, value int32) bool {
	switch param {
	case ParamTicks:
		b.ticks = value
		if value == InfiniteTicks {
			b.endTime = EndTimeInfinite
		}
		return true
	case ParamBuffSpell:
		b.isBuff = value != 0
		return true
	case ParamSubID:
		b.subID = uint32(value)
		return true
	default:
		return false
	}
}

func (b *base) Start(g Game, _ Creature) bool {
	if b.ticks > 0 {
		b.endTime = int64(b.ticks) + g.Now()
	}
	return true
}

func (b *base) Execute(g Game, _ Creature, interval int32) bool {
	if b.ticks == InfiniteTicks {
		return true
	}

	// endTime is left alone here; it is only reset through SetTicks.
	b.ticks = max(0, b.ticks-interval)
	return b.endTime >= g.Now()
}

func (b *base) End(Game, Creature) {}

func (b *base) Add(g Game, _ Creature, other Condition) {
	if b.Update(g.Now(), other) {
		b.SetTicks(g.Now(), other.Ticks())
	}
}

// Update rejects a finite incoming instance while this one is infinite and
// otherwise accepts an incoming instance that would outlast this one.
func (b *base) Update(now int64, other Condition) bool {
	if b.condType != other.Type() {
		return false
	}

	otherTicks := other.Ticks()
	if b.ticks == InfiniteTicks && otherTicks > 0 {
		return false
	}
	if otherTicks == InfiniteTicks {
		return true
	}
	return now+int64(otherTicks) > b.endTime
}

func (b *base) Icons() Icon {
	if b.isBuff {
		return IconPartyBuff
	}
	return 0
}

// IsPersistent reports whether the condition survives a save/load cycle.
func (b *base) IsPersistent() bool {
	if b.ticks == InfiniteTicks {
		return false
	}
	return b.id == IDDefault || b.id == IDCombat
}

func (b *base) Serialize(w *propstream.Writer) {
	_ = w.WriteByte(byte(AttrType))
	w.WriteUint32(uint32(b.condType))

	_ = w.WriteByte(byte(AttrID))
	w.WriteUint32(uint32(b.id))

	_ = w.WriteByte(byte(AttrTicks))
	w.WriteUint32(uint32(b.ticks))

	_ = w.WriteByte(byte(AttrIsBuff))
	w.WriteBool(b.isBuff)

	_ = w.WriteByte(byte(AttrSubID))
	w.WriteUint32(b.subID)
}

func (b *base) unserializeProp(attr Attr, r *propstream.Reader) error {
	switch attr {
	case AttrType:
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		b.condType = Type(v)
	case AttrID:
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		b.id = ID(int32(v))
	case AttrTicks:
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		b.ticks = v
	case AttrIsBuff:
		v, err := r.ReadByte()
		if err != nil {
			return err
		}
		b.isBuff = v != 0
	case AttrSubID:
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		b.subID = v
	case AttrEnd:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAttr, attr)
	}
	return nil
}

// Unserialize reads tagged attributes into c until AttrEnd or the end of
// the stream. Unknown tags for the variant fall back to the common decoder;
// any failure aborts the whole record.
func Unserialize(c Condition, r *propstream.Reader) error {
	for {
		tag, err := r.ReadByte()
		if err != nil {
			return nil
		}
		attr := Attr(tag)
		if attr == AttrEnd {
			return nil
		}
		if err := c.unserializeProp(attr, r); err != nil {
			return fmt.Errorf("condition %s attribute %d: %w", c.Type(), attr, err)
		}
	}
}
