package model

// ZoneType is the rule set of the tile a creature stands on.
type ZoneType uint8

const (
	ZoneNormal ZoneType = iota
	ZoneProtection
	ZoneNoPvp
	ZonePvp
)

func (z ZoneType) String() string {
	switch z {
	case ZoneProtection:
		return "protection"
	case ZoneNoPvp:
		return "nopvp"
	case ZonePvp:
		return "pvp"
	default:
		return "normal"
	}
}
