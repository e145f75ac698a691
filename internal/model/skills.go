package model

// Skill identifies a trainable player skill.
type Skill uint8

const (
	SkillFist Skill = iota
	SkillClub
	SkillSword
	SkillAxe
	SkillDistance
	SkillShield
	SkillFishing

	SkillFirst = SkillFist
	SkillLast  = SkillFishing
)

// SkillCount is the number of trainable skills.
const SkillCount = int(SkillLast) + 1

var skillNames = [SkillCount]string{
	"fist", "club", "sword", "axe", "distance", "shield", "fishing",
}

func (s Skill) String() string {
	if int(s) < SkillCount {
		return skillNames[s]
	}
	return "unknown"
}

// Stat identifies a player attribute that can be modified by effects.
type Stat uint8

const (
	StatMaxHitPoints Stat = iota
	StatMaxManaPoints
	StatSoulPoints
	StatMagicPoints

	StatFirst = StatMaxHitPoints
	StatLast  = StatMagicPoints
)

// StatCount is the number of modifiable stats.
const StatCount = int(StatLast) + 1

var statNames = [StatCount]string{
	"maxHitPoints", "maxManaPoints", "soulPoints", "magicPoints",
}

func (s Stat) String() string {
	if int(s) < StatCount {
		return statNames[s]
	}
	return "unknown"
}

// SpellGroup is a shared cooldown bucket for spells.
type SpellGroup uint8

const (
	SpellGroupNone SpellGroup = iota
	SpellGroupAttack
	SpellGroupHealing
	SpellGroupSupport
	SpellGroupSpecial
)

// CombatType is the elemental type of a health change.
type CombatType uint16

const (
	CombatNone      CombatType = 0
	CombatPhysical  CombatType = 1 << 0
	CombatEnergy    CombatType = 1 << 1
	CombatEarth     CombatType = 1 << 2
	CombatFire      CombatType = 1 << 3
	CombatLifeDrain CombatType = 1 << 5
	CombatHealing   CombatType = 1 << 7
	CombatDrown     CombatType = 1 << 8
	CombatIce       CombatType = 1 << 9
	CombatHoly      CombatType = 1 << 10
	CombatDeath     CombatType = 1 << 11
)
