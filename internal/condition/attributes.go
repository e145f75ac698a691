package condition

import (
	"fmt"
	"math"

	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/propstream"
)

// Attributes applies flat and percentage skill/stat offsets to a player.
// Percent values are stored as "percent of current" (100 = unchanged) and
// are converted into flat deltas every time the offsets are applied.
type Attributes struct {
	base

	skills        [model.SkillCount]int32
	skillsPercent [model.SkillCount]int32
	stats         [model.StatCount]int32
	statsPercent  [model.StatCount]int32

	// decode cursors for repeated AttrSkills/AttrStats records
	currentSkill int
	currentStat  int
}

// NewAttributes creates an attribute modifier condition.
func NewAttributes(id ID, t Type, ticks int32, buff bool, subID uint32) *Attributes {
	return &Attributes{base: newBase(id, t, ticks, buff, subID)}
}

// SkillDelta returns the flat delta currently held for a skill.
func (c *Attributes) SkillDelta(skill model.Skill) int32 { return c.skills[skill] }

// StatDelta returns the flat delta currently held for a stat.
func (c *Attributes) StatDelta(stat model.Stat) int32 { return c.stats[stat] }

func (c *Attributes) Start(g Game, cr Creature) bool {
	if !c.base.Start(g, cr) {
		return false
	}

	if player, ok := cr.(Player); ok {
		c.apply(player)
	}
	return true
}

func (c *Attributes) End(_ Game, cr Creature) {
	player, ok := cr.(Player)
	if !ok {
		return
	}

	needUpdateSkills := false
	for i := range c.skills {
		if c.skills[i] != 0 || c.skillsPercent[i] != 0 {
			needUpdateSkills = true
			player.SetVarSkill(model.Skill(i), -c.skills[i])
		}
	}
	if needUpdateSkills {
		player.SendSkills()
	}

	needUpdateStats := false
	for i := range c.stats {
		if c.stats[i] != 0 {
			needUpdateStats = true
			player.SetVarStat(model.Stat(i), -c.stats[i])
		}
	}
	if needUpdateStats {
		player.SendStats()
	}
}

func (c *Attributes) Add(g Game, cr Creature, other Condition) {
	o, ok := other.(*Attributes)
	if !ok || !c.Update(g.Now(), other) {
		return
	}

	c.SetTicks(g.Now(), other.Ticks())

	// Take the old offsets off before copying the new payload in.
	c.End(g, cr)

	c.skills = o.skills
	c.skillsPercent = o.skillsPercent
	c.stats = o.stats
	c.statsPercent = o.statsPercent

	if player, ok := cr.(Player); ok {
		c.apply(player)
	}
}

func (c *Attributes) apply(player Player) {
	c.updatePercentSkills(player)
	c.updateSkills(player)
	c.updatePercentStats(player)
	c.updateStats(player)
}

func (c *Attributes) updatePercentSkills(player Player) {
	for i, percent := range c.skillsPercent {
		if percent == 0 {
			continue
		}
		c.skills[i] = percentDelta(player.SkillLevel(model.Skill(i)), percent)
	}
}

func (c *Attributes) updateSkills(player Player) {
	needUpdateSkills := false
	for i, delta := range c.skills {
		if delta != 0 {
			needUpdateSkills = true
			player.SetVarSkill(model.Skill(i), delta)
		}
	}
	if needUpdateSkills {
		player.SendSkills()
	}
}

func (c *Attributes) updatePercentStats(player Player) {
	for i, percent := range c.statsPercent {
		if percent == 0 {
			continue
		}

		var current int32
		switch model.Stat(i) {
		case model.StatMaxHitPoints:
			current = player.MaxHealth()
		case model.StatMaxManaPoints:
			current = player.MaxMana()
		case model.StatSoulPoints:
			current = player.Soul()
		case model.StatMagicPoints:
			current = player.MagicLevel()
		}
		c.stats[i] = percentDelta(current, percent)
	}
}

func (c *Attributes) updateStats(player Player) {
	needUpdateStats := false
	for i, delta := range c.stats {
		if delta != 0 {
			needUpdateStats = true
			player.SetVarStat(model.Stat(i), delta)
		}
	}
	if needUpdateStats {
		player.SendStats()
	}
}

// percentDelta converts "percent of current" into a flat offset:
// 150% of 40 is +20, 50% of 40 is -20.
func percentDelta(current, percent int32) int32 {
	return int32(math.Round(float64(current) * float64(percent-100) / 100))
}

func (c *Attributes) SetParam(param Param, value int32) bool {
	ret := c.base.SetParam(param, value)

	switch param {
	case ParamSkillMelee:
		c.skills[model.SkillClub] = value
		c.skills[model.SkillAxe] = value
		c.skills[model.SkillSword] = value
	case ParamSkillMeleePercent:
		c.skillsPercent[model.SkillClub] = max(0, value)
		c.skillsPercent[model.SkillAxe] = max(0, value)
		c.skillsPercent[model.SkillSword] = max(0, value)
	case ParamSkillFist:
		c.skills[model.SkillFist] = value
	case ParamSkillFistPercent:
		c.skillsPercent[model.SkillFist] = max(0, value)
	case ParamSkillClub:
		c.skills[model.SkillClub] = value
	case ParamSkillClubPercent:
		c.skillsPercent[model.SkillClub] = max(0, value)
	case ParamSkillSword:
		c.skills[model.SkillSword] = value
	case ParamSkillSwordPercent:
		c.skillsPercent[model.SkillSword] = max(0, value)
	case ParamSkillAxe:
		c.skills[model.SkillAxe] = value
	case ParamSkillAxePercent:
		c.skillsPercent[model.SkillAxe] = max(0, value)
	case ParamSkillDistance:
		c.skills[model.SkillDistance] = value
	case ParamSkillDistancePercent:
		c.skillsPercent[model.SkillDistance] = max(0, value)
	case ParamSkillShield:
		c.skills[model.SkillShield] = value
	case ParamSkillShieldPercent:
		c.skillsPercent[model.SkillShield] = max(0, value)
	case ParamSkillFishing:
		c.skills[model.SkillFishing] = value
	case ParamSkillFishingPercent:
		c.skillsPercent[model.SkillFishing] = max(0, value)
	case ParamStatMaxHitPoints:
		c.stats[model.StatMaxHitPoints] = value
	case ParamStatMaxManaPoints:
		c.stats[model.StatMaxManaPoints] = value
	case ParamStatSoulPoints:
		c.stats[model.StatSoulPoints] = value
	case ParamStatMagicPoints:
		c.stats[model.StatMagicPoints] = value
	case ParamStatMaxHitPointsPercent:
		c.statsPercent[model.StatMaxHitPoints] = max(0, value)
	case ParamStatMaxManaPointsPercent:
		c.statsPercent[model.StatMaxManaPoints] = max(0, value)
	case ParamStatSoulPointsPercent:
		c.statsPercent[model.StatSoulPoints] = max(0, value)
	case ParamStatMagicPointsPercent:
		c.statsPercent[model.StatMagicPoints] = max(0, value)
	default:
		return ret
	}
	return true
}

func (c *Attributes) Serialize(w *propstream.Writer) {
	c.base.Serialize(w)

	for _, v := range c.skills {
		_ = w.WriteByte(byte(AttrSkills))
		w.WriteInt32(v)
	}
	for _, v := range c.stats {
		_ = w.WriteByte(byte(AttrStats))
		w.WriteInt32(v)
	}
}

func (c *Attributes) unserializeProp(attr Attr, r *propstream.Reader) error {
	switch attr {
	case AttrSkills:
		if c.currentSkill >= len(c.skills) {
			return fmt.Errorf("%w: skills", ErrAttrOverflow)
		}
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		c.skills[c.currentSkill] = v
		c.currentSkill++
		return nil
	case AttrStats:
		if c.currentStat >= len(c.stats) {
			return fmt.Errorf("%w: stats", ErrAttrOverflow)
		}
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		c.stats[c.currentStat] = v
		c.currentStat++
		return nil
	}
	return c.base.unserializeProp(attr, r)
}
