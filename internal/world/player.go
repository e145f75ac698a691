package world

import (
	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/model"
)

const defaultMaxSoul = 100

// PlayerTemplate adds player progression to a Template.
type PlayerTemplate struct {
	Template

	MagicLevel int32
	Soul       int32
	Skills     [model.SkillCount]int32
}

// Player is a player-controlled Character with skills, soul points and an
// outbound message channel.
type Player struct {
	*Character

	skills     [model.SkillCount]int32
	varSkills  [model.SkillCount]int32
	magicLevel int32
	soul       int32

	icons condition.Icon
}

// NewPlayer creates a player.
func NewPlayer(t PlayerTemplate) *Player {
	return &Player{
		Character:  NewCharacter(t.Template),
		skills:     t.Skills,
		magicLevel: t.MagicLevel,
		soul:       t.Soul,
	}
}

// SkillLevel returns the effective level, never below zero.
func (p *Player) SkillLevel(skill model.Skill) int32 {
	return max(0, p.skills[skill]+p.varSkills[skill])
}

func (p *Player) SetVarSkill(skill model.Skill, delta int32) {
	p.varSkills[skill] += delta
}

func (p *Player) SendSkills() {
	if p.world != nil {
		p.world.notifier.Skills(p)
	}
}

func (p *Player) Soul() int32 { return p.soul }

// MaxSoul includes offsets applied by attribute conditions.
func (p *Player) MaxSoul() int32 {
	return defaultMaxSoul + p.varStats[model.StatSoulPoints]
}

func (p *Player) MagicLevel() int32 {
	return max(0, p.magicLevel+p.varStats[model.StatMagicPoints])
}

func (p *Player) SetVarStat(stat model.Stat, delta int32) {
	p.varStats[stat] += delta

	switch stat {
	case model.StatMaxHitPoints:
		p.health = min(p.health, p.MaxHealth())
	case model.StatMaxManaPoints:
		p.mana = min(p.mana, p.MaxMana())
	case model.StatSoulPoints:
		p.soul = min(p.soul, p.MaxSoul())
	}
}

func (p *Player) SendStats() {
	if p.world != nil {
		p.world.notifier.Stats(p)
	}
}

func (p *Player) ChangeSoul(delta int32) {
	p.soul = min(max(0, p.soul+delta), p.MaxSoul())
}

func (p *Player) SendSpellCooldown(spellID uint32, ticks int32) {
	if p.world != nil {
		p.world.notifier.SpellCooldown(p, spellID, ticks)
	}
}

func (p *Player) SendSpellGroupCooldown(group model.SpellGroup, ticks int32) {
	if p.world != nil {
		p.world.notifier.SpellGroupCooldown(p, group, ticks)
	}
}

func (p *Player) SendHealMessage(class model.MessageClass, text string, _ model.Position, amount int32, _ model.TextColor) {
	if p.world != nil {
		p.world.notifier.HealMessage(p, class, text, amount)
	}
}

// Icons returns the status icons last sent to the client.
func (p *Player) Icons() condition.Icon { return p.icons }
