package model

// Outfit describes how a creature looks to observers.
// Persisted as a fixed 11-byte record (three uint16 followed by five uint8).
type Outfit struct {
	LookType   uint16
	LookTypeEx uint16
	LookMount  uint16
	LookHead   uint8
	LookBody   uint8
	LookLegs   uint8
	LookFeet   uint8
	LookAddons uint8
}

// OutfitRecordSize is the encoded size of an Outfit.
const OutfitRecordSize = 11

// LightInfo is the light a creature emits.
type LightInfo struct {
	Level uint8
	Color uint8
}

// MagicEffect identifies a transient visual effect rendered at a position.
type MagicEffect uint8

const (
	MagicEffectNone       MagicEffect = 0
	MagicEffectDrawBlood  MagicEffect = 1
	MagicEffectLoseEnergy MagicEffect = 2
	MagicEffectPoff       MagicEffect = 3
	MagicEffectBlockHit   MagicEffect = 4
)

// TextColor is the client color of an animated text or message.
type TextColor uint8

const (
	TextColorBlue     TextColor = 5
	TextColorMayaBlue TextColor = 23
	TextColorRed      TextColor = 180
)

// MessageClass classifies a text message sent to a player.
type MessageClass uint8

const (
	MessageHealed MessageClass = iota + 1
	MessageHealedOthers
	MessageStatus
)
