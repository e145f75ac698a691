package condition

// Generic is a passive condition whose only effect is its presence:
// exhaustion, muting, in-fight marker, mana shield and the like.
type Generic struct {
	base
}

// NewGeneric creates a passive condition.
func NewGeneric(id ID, t Type, ticks int32, buff bool, subID uint32) *Generic {
	return &Generic{base: newBase(id, t, ticks, buff, subID)}
}

func (c *Generic) Icons() Icon {
	icons := c.base.Icons()

	switch c.condType {
	case TypeManaShield:
		icons |= IconManaShield
	case TypeInFight:
		icons |= IconSwords
	case TypeDrunk:
		icons |= IconDrunk
	}
	return icons
}
