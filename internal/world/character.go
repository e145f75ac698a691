package world

import (
	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/model"
)

// Entity is a creature hosted by a World: either *Character or *Player.
type Entity interface {
	condition.Creature
	character() *Character
}

// Template describes a creature to spawn.
type Template struct {
	ID        uint32
	Name      string
	Position  model.Position
	MaxHealth int32
	MaxMana   int32
	BaseSpeed int32
	Outfit    model.Outfit
	Light     model.LightInfo

	// Immunities are combat types whose hits are always blocked.
	Immunities model.CombatType
	// Suppressions are condition types whose damage is ignored.
	Suppressions condition.Type
}

// Character is a creature with health, mana, speed and appearance, and the
// conditions attached to it.
type Character struct {
	id   uint32
	name string
	pos  model.Position

	health    int32
	maxHealth int32
	mana      int32
	maxMana   int32
	varStats  [model.StatCount]int32

	baseSpeed int32
	speed     int32

	visible    bool
	ghost      bool
	attackable bool

	immunities   model.CombatType
	suppressions condition.Type

	light         model.LightInfo
	defaultLight  model.LightInfo
	outfit        model.Outfit
	defaultOutfit model.Outfit

	conditions *condition.List
	world      *World
}

// NewCharacter creates a creature at full health and mana.
func NewCharacter(t Template) *Character {
	return &Character{
		id:            t.ID,
		name:          t.Name,
		pos:           t.Position,
		health:        t.MaxHealth,
		maxHealth:     t.MaxHealth,
		mana:          t.MaxMana,
		maxMana:       t.MaxMana,
		baseSpeed:     t.BaseSpeed,
		speed:         t.BaseSpeed,
		visible:       true,
		attackable:    true,
		immunities:    t.Immunities,
		suppressions:  t.Suppressions,
		light:         t.Light,
		defaultLight:  t.Light,
		outfit:        t.Outfit,
		defaultOutfit: t.Outfit,
	}
}

func (c *Character) character() *Character { return c }

func (c *Character) ID() uint32               { return c.id }
func (c *Character) Name() string             { return c.name }
func (c *Character) Position() model.Position { return c.pos }

// Zone returns the zone of the tile the character stands on.
func (c *Character) Zone() model.ZoneType {
	if c.world == nil {
		return model.ZoneNormal
	}
	return c.world.tileAt(c.pos).zone
}

func (c *Character) Health() int32 { return c.health }
func (c *Character) Mana() int32   { return c.mana }

// MaxHealth includes offsets applied by attribute conditions.
func (c *Character) MaxHealth() int32 {
	return c.maxHealth + c.varStats[model.StatMaxHitPoints]
}

// MaxMana includes offsets applied by attribute conditions.
func (c *Character) MaxMana() int32 {
	return c.maxMana + c.varStats[model.StatMaxManaPoints]
}

func (c *Character) ChangeHealth(delta int32) {
	c.health = min(max(0, c.health+delta), c.MaxHealth())
}

func (c *Character) ChangeMana(delta int32) {
	c.mana = min(max(0, c.mana+delta), c.MaxMana())
}

func (c *Character) BaseSpeed() int32 { return c.baseSpeed }

// Speed returns the current speed including condition deltas.
func (c *Character) Speed() int32 { return c.speed }

// IsInvisible reports whether an invisibility condition is still attached.
func (c *Character) IsInvisible() bool {
	return c.conditions != nil && c.conditions.HasType(condition.TypeInvisible)
}

// IsVisible reports the visibility last broadcast to spectators.
func (c *Character) IsVisible() bool { return c.visible }

func (c *Character) IsInGhostMode() bool { return c.ghost }

// SetGhostMode hides the character from combat effects.
func (c *Character) SetGhostMode(ghost bool) { c.ghost = ghost }

func (c *Character) IsAttackable() bool { return c.attackable }

// SetAttackable toggles whether the character can take combat damage.
func (c *Character) SetAttackable(attackable bool) { c.attackable = attackable }

func (c *Character) IsSuppress(t condition.Type) bool {
	return c.suppressions&t != 0
}

func (c *Character) Light() model.LightInfo         { return c.light }
func (c *Character) SetLight(light model.LightInfo) { c.light = light }
func (c *Character) SetNormalLight()                { c.light = c.defaultLight }

// Outfit returns the outfit currently shown.
func (c *Character) Outfit() model.Outfit        { return c.outfit }
func (c *Character) DefaultOutfit() model.Outfit { return c.defaultOutfit }

// OnTickCondition keeps a damage schedule looping while the character
// stands on a field of the matching kind.
func (c *Character) OnTickCondition(t condition.Type, remove bool) bool {
	if c.world == nil {
		return remove
	}
	if field := c.world.tileAt(c.pos).field; field != condition.TypeNone && field == t {
		return false
	}
	return remove
}

// Conditions returns the attached condition list.
func (c *Character) Conditions() *condition.List { return c.conditions }
