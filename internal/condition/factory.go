package condition

import (
	"fmt"

	"github.com/udisondev/condengine/internal/propstream"
)

// Options tunes conditions built by a Factory.
type Options struct {
	// DamageTickInterval is the gap between scheduled damage rounds in ms.
	DamageTickInterval int32
	// RegenerationTicks is the default health and mana regeneration period in ms.
	RegenerationTicks int32
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		DamageTickInterval: DefaultTickInterval,
		RegenerationTicks:  defaultRegenerationTicks,
	}
}

// constructor builds a fresh variant. param is type specific: the initial
// speed delta for Speed, packed level/color for Light, ignored otherwise.
type constructor func(opts Options, id ID, t Type, ticks, param int32, buff bool, subID uint32) Condition

// constructors maps every supported type to its variant.
var constructors = map[Type]constructor{}

func register(c constructor, types ...Type) {
	for _, t := range types {
		constructors[t] = c
	}
}

func init() {
	register(func(opts Options, id ID, t Type, _, _ int32, buff bool, subID uint32) Condition {
		return NewDamage(id, t, buff, subID, opts.DamageTickInterval)
	}, TypePoison, TypeFire, TypeEnergy, TypeDrown, TypeFreezing, TypeDazzled, TypeCursed, TypeBleeding)

	register(func(_ Options, id ID, t Type, ticks, param int32, buff bool, subID uint32) Condition {
		return NewSpeed(id, t, ticks, buff, subID, param)
	}, TypeHaste, TypeParalyze)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewInvisible(id, t, ticks, buff, subID)
	}, TypeInvisible)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewOutfit(id, t, ticks, buff, subID)
	}, TypeOutfit)

	register(func(_ Options, id ID, t Type, ticks, param int32, buff bool, subID uint32) Condition {
		return NewLight(id, t, ticks, buff, subID, uint8(param&0xFF), uint8((param>>8)&0xFF))
	}, TypeLight)

	register(func(opts Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		c := NewRegeneration(id, t, ticks, buff, subID)
		c.healthTicks = uint32(opts.RegenerationTicks)
		c.manaTicks = uint32(opts.RegenerationTicks)
		return c
	}, TypeRegeneration)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewSoul(id, t, ticks, buff, subID)
	}, TypeSoul)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewAttributes(id, t, ticks, buff, subID)
	}, TypeAttributes)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewSpellCooldown(id, t, ticks, buff, subID)
	}, TypeSpellCooldown)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewSpellGroupCooldown(id, t, ticks, buff, subID)
	}, TypeSpellGroupCooldown)

	register(func(_ Options, id ID, t Type, ticks, _ int32, buff bool, subID uint32) Condition {
		return NewGeneric(id, t, ticks, buff, subID)
	},
		TypeInFight, TypeDrunk, TypeExhaustWeapon, TypeExhaustCombat, TypeExhaustHeal,
		TypeMuted, TypeChannelMutedTicks, TypeYellTicks, TypePacified, TypeManaShield)
}

// Factory creates conditions and restores them from persisted records.
type Factory struct {
	opts Options
}

// NewFactory creates a factory. Zero option fields fall back to defaults.
func NewFactory(opts Options) *Factory {
	if opts.DamageTickInterval <= 0 {
		opts.DamageTickInterval = DefaultTickInterval
	}
	if opts.RegenerationTicks <= 0 {
		opts.RegenerationTicks = defaultRegenerationTicks
	}
	return &Factory{opts: opts}
}

// Create builds a fresh condition, or returns nil for an unsupported type.
func (f *Factory) Create(id ID, t Type, ticks, param int32, buff bool, subID uint32) Condition {
	ctor, ok := constructors[t]
	if !ok {
		return nil
	}
	return ctor(f.opts, id, t, ticks, param, buff, subID)
}

// Decode reads one condition from r. The record must open with the type,
// id, ticks, buff and sub id attributes in that order; the rest is read by
// the variant until AttrEnd. On any error no condition is returned.
func (f *Factory) Decode(r *propstream.Reader) (Condition, error) {
	t, err := readPrefixUint32(r, AttrType)
	if err != nil {
		return nil, err
	}
	id, err := readPrefixUint32(r, AttrID)
	if err != nil {
		return nil, err
	}
	ticks, err := readPrefixUint32(r, AttrTicks)
	if err != nil {
		return nil, err
	}

	if err := expectTag(r, AttrIsBuff); err != nil {
		return nil, err
	}
	buff, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPrefix, err)
	}

	subID, err := readPrefixUint32(r, AttrSubID)
	if err != nil {
		return nil, err
	}

	c := f.Create(ID(int32(id)), Type(t), int32(ticks), 0, buff != 0, subID)
	if c == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	// Damage derives its duration from the schedule on Create; a saved
	// record already carries the remaining duration.
	c.common().restoreTicks(int32(ticks))

	if err := Unserialize(c, r); err != nil {
		return nil, err
	}
	return c, nil
}

func expectTag(r *propstream.Reader, want Attr) error {
	tag, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadPrefix, err)
	}
	if Attr(tag) != want {
		return fmt.Errorf("%w: got attribute %d, want %d", ErrBadPrefix, tag, want)
	}
	return nil
}

func readPrefixUint32(r *propstream.Reader, want Attr) (uint32, error) {
	if err := expectTag(r, want); err != nil {
		return 0, err
	}
	v, err := r.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadPrefix, err)
	}
	return v, nil
}

var defaultFactory = NewFactory(DefaultOptions())

// Create builds a condition with the default options.
func Create(id ID, t Type, ticks, param int32, buff bool, subID uint32) Condition {
	return defaultFactory.Create(id, t, ticks, param, buff, subID)
}

// Decode reads one condition with the default options.
func Decode(r *propstream.Reader) (Condition, error) {
	return defaultFactory.Decode(r)
}

// Encode serializes c followed by the end marker.
func Encode(c Condition) []byte {
	w := propstream.Get()
	defer w.Put()

	EncodeTo(w, c)
	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out
}

// EncodeTo appends c and the end marker to w.
func EncodeTo(w *propstream.Writer, c Condition) {
	c.Serialize(w)
	_ = w.WriteByte(byte(AttrEnd))
}
