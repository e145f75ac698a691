package condition

// Type is the semantic kind of a condition. Values are bit flags so that
// suppression and immunity masks can be expressed as a single Type.
type Type uint32

const (
	TypeNone               Type = 0
	TypePoison             Type = 1 << 0
	TypeFire               Type = 1 << 1
	TypeEnergy             Type = 1 << 2
	TypeBleeding           Type = 1 << 3
	TypeHaste              Type = 1 << 4
	TypeParalyze           Type = 1 << 5
	TypeOutfit             Type = 1 << 6
	TypeInvisible          Type = 1 << 7
	TypeLight              Type = 1 << 8
	TypeManaShield         Type = 1 << 9
	TypeInFight            Type = 1 << 10
	TypeDrunk              Type = 1 << 11
	TypeExhaustWeapon      Type = 1 << 12
	TypeRegeneration       Type = 1 << 13
	TypeSoul               Type = 1 << 14
	TypeDrown              Type = 1 << 15
	TypeMuted              Type = 1 << 16
	TypeChannelMutedTicks  Type = 1 << 17
	TypeYellTicks          Type = 1 << 18
	TypeAttributes         Type = 1 << 19
	TypeFreezing           Type = 1 << 20
	TypeDazzled            Type = 1 << 21
	TypeCursed             Type = 1 << 22
	TypeExhaustCombat      Type = 1 << 23
	TypeExhaustHeal        Type = 1 << 24
	TypePacified           Type = 1 << 25
	TypeSpellCooldown      Type = 1 << 26
	TypeSpellGroupCooldown Type = 1 << 27
)

var typeNames = map[Type]string{
	TypeNone:               "none",
	TypePoison:             "poison",
	TypeFire:               "fire",
	TypeEnergy:             "energy",
	TypeBleeding:           "bleeding",
	TypeHaste:              "haste",
	TypeParalyze:           "paralyze",
	TypeOutfit:             "outfit",
	TypeInvisible:          "invisible",
	TypeLight:              "light",
	TypeManaShield:         "manashield",
	TypeInFight:            "infight",
	TypeDrunk:              "drunk",
	TypeExhaustWeapon:      "exhaust_weapon",
	TypeRegeneration:       "regeneration",
	TypeSoul:               "soul",
	TypeDrown:              "drown",
	TypeMuted:              "muted",
	TypeChannelMutedTicks:  "channel_muted_ticks",
	TypeYellTicks:          "yell_ticks",
	TypeAttributes:         "attributes",
	TypeFreezing:           "freezing",
	TypeDazzled:            "dazzled",
	TypeCursed:             "cursed",
	TypeExhaustCombat:      "exhaust_combat",
	TypeExhaustHeal:        "exhaust_heal",
	TypePacified:           "pacified",
	TypeSpellCooldown:      "spell_cooldown",
	TypeSpellGroupCooldown: "spell_group_cooldown",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType returns the type named by s, as printed by Type.String.
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s && t != TypeNone {
			return t, true
		}
	}
	return TypeNone, false
}

// ID is the scope slot a condition was attached through. It decides
// persistence eligibility, not uniqueness.
type ID int32

const (
	IDDefault  ID = -1
	IDCombat   ID = 0
	IDHead     ID = 1
	IDNecklace ID = 2
	IDBackpack ID = 3
	IDArmor    ID = 4
	IDRight    ID = 5
	IDLeft     ID = 6
	IDLegs     ID = 7
	IDFeet     ID = 8
	IDRing     ID = 9
	IDAmmo     ID = 10
)

// Param is a numeric configuration option accepted by SetParam.
type Param uint8

const (
	ParamOwner Param = iota + 1
	ParamTicks
	ParamHealthGain
	ParamHealthTicks
	ParamManaGain
	ParamManaTicks
	ParamDelayed
	ParamSpeed
	ParamLightLevel
	ParamLightColor
	ParamSoulGain
	ParamSoulTicks
	ParamMinValue
	ParamMaxValue
	ParamStartValue
	ParamTickInterval
	ParamForceUpdate
	ParamSkillMelee
	ParamSkillFist
	ParamSkillClub
	ParamSkillSword
	ParamSkillAxe
	ParamSkillDistance
	ParamSkillShield
	ParamSkillFishing
	ParamStatMaxHitPoints
	ParamStatMaxManaPoints
	ParamStatSoulPoints
	ParamStatMagicPoints
	ParamStatMaxHitPointsPercent
	ParamStatMaxManaPointsPercent
	ParamStatSoulPointsPercent
	ParamStatMagicPointsPercent
	ParamPeriodicDamage
	ParamSkillMeleePercent
	ParamSkillFistPercent
	ParamSkillClubPercent
	ParamSkillSwordPercent
	ParamSkillAxePercent
	ParamSkillDistancePercent
	ParamSkillShieldPercent
	ParamSkillFishingPercent
	ParamBuffSpell
	ParamSubID
	ParamField
)

// Attr is the one-byte tag of a persisted attribute record.
type Attr uint8

const (
	AttrType Attr = iota + 1
	AttrID
	AttrTicks
	AttrHealthTicks
	AttrHealthGain
	AttrManaTicks
	AttrManaGain
	AttrDelayed
	AttrOwner
	AttrIntervalData
	AttrSpeedDelta
	AttrFormulaMinA
	AttrFormulaMinB
	AttrFormulaMaxA
	AttrFormulaMaxB
	AttrLightColor
	AttrLightLevel
	AttrLightTicks
	AttrLightInterval
	AttrSoulTicks
	AttrSoulGain
	AttrSkills
	AttrStats
	AttrOutfit
	AttrPeriodDamage
	AttrIsBuff
	AttrSubID

	// AttrEnd terminates an encoded condition.
	AttrEnd Attr = 254
)

// Icon is the client status bar bitmask.
type Icon uint32

const (
	IconPoison     Icon = 1 << 0
	IconBurn       Icon = 1 << 1
	IconEnergy     Icon = 1 << 2
	IconDrunk      Icon = 1 << 3
	IconManaShield Icon = 1 << 4
	IconParalyze   Icon = 1 << 5
	IconHaste      Icon = 1 << 6
	IconSwords     Icon = 1 << 7
	IconDrowning   Icon = 1 << 8
	IconFreezing   Icon = 1 << 9
	IconDazzled    Icon = 1 << 10
	IconCursed     Icon = 1 << 11
	IconPartyBuff  Icon = 1 << 12
	IconRedSwords  Icon = 1 << 13
	IconPigeon     Icon = 1 << 14
	IconBleeding   Icon = 1 << 15
)
