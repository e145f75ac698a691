package condition

import "github.com/udisondev/condengine/internal/model"

// Creature is the entity capability surface a condition operates on.
// Every method is called from the game loop goroutine only.
type Creature interface {
	ID() uint32
	Name() string
	Position() model.Position
	Zone() model.ZoneType

	Health() int32
	ChangeHealth(delta int32)
	ChangeMana(delta int32)
	BaseSpeed() int32

	// IsInvisible reports invisibility from any source still attached.
	IsInvisible() bool
	IsInGhostMode() bool
	IsAttackable() bool
	// IsSuppress reports whether damage of the given condition type is ignored.
	IsSuppress(t Type) bool

	Light() model.LightInfo
	SetLight(light model.LightInfo)
	SetNormalLight()
	DefaultOutfit() model.Outfit

	// OnTickCondition is invoked on every damage schedule tick. remove tells
	// whether the head entry will be consumed; the returned value replaces it,
	// so a creature standing in a field can keep a schedule looping.
	OnTickCondition(t Type, remove bool) bool
}

// Player is the additional surface of player-controlled creatures.
// Conditions type-assert Creature to Player where behavior is player-only.
type Player interface {
	Creature

	SkillLevel(skill model.Skill) int32
	SetVarSkill(skill model.Skill, delta int32)
	SendSkills()

	MaxHealth() int32
	MaxMana() int32
	Soul() int32
	MagicLevel() int32
	SetVarStat(stat model.Stat, delta int32)
	SendStats()
	ChangeSoul(delta int32)

	SendSpellCooldown(spellID uint32, ticks int32)
	SendSpellGroupCooldown(group model.SpellGroup, ticks int32)
	SendHealMessage(class model.MessageClass, text string, pos model.Position, amount int32, color model.TextColor)
}

// Clock is the time source for absolute expiry timestamps, in milliseconds.
type Clock interface {
	Now() int64
}

// Origin tells the combat layer where a health change came from.
type Origin uint8

const (
	OriginNone Origin = iota
	OriginCondition
	OriginSpell
	OriginMelee
	OriginRanged
)

// CombatDamage is a health change routed through the combat layer.
type CombatDamage struct {
	Origin Origin
	Type   model.CombatType
	Value  int32
}

// Game is the world capability handle passed into every condition operation.
type Game interface {
	Clock

	// RandomInt returns a uniformly distributed value in [min, max].
	RandomInt(min, max int32) int32

	// CreatureByID resolves a creature, returning nil when it is gone.
	CreatureByID(id uint32) Creature
	// Spectators returns the players able to see pos.
	Spectators(pos model.Position) []Player

	ChangeSpeed(cr Creature, delta int32)
	ChangeVisible(cr Creature, visible bool)
	ChangeOutfit(cr Creature, outfit model.Outfit)
	ChangeLight(cr Creature)
	AddMagicEffect(pos model.Position, effect model.MagicEffect)

	// CanDoCombat reports whether attacker may hurt target. attacker may be nil.
	CanDoCombat(attacker, target Creature) bool
	// CombatBlockHit returns true when the hit was fully blocked.
	CombatBlockHit(damage *CombatDamage, attacker, target Creature, field bool) bool
	CombatChangeHealth(attacker, target Creature, damage CombatDamage) bool
}
