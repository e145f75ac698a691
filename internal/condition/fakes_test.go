package condition

import "github.com/udisondev/condengine/internal/model"

// fakeGame records every world side effect a condition triggers.
type fakeGame struct {
	now int64

	// rnd overrides RandomInt; nil returns the lower bound.
	rnd func(lo, hi int32) int32

	creatures  map[uint32]Creature
	spectators []Player

	denyCombat bool
	blockHit   bool

	speedChanges  []int32
	visibility    []bool
	outfits       []model.Outfit
	lightChanges  int
	magicEffects  []model.MagicEffect
	combatDamages []CombatDamage
}

func newFakeGame() *fakeGame {
	return &fakeGame{now: 1_000_000, creatures: map[uint32]Creature{}}
}

func (g *fakeGame) Now() int64 { return g.now }

func (g *fakeGame) advance(ms int32) { g.now += int64(ms) }

func (g *fakeGame) RandomInt(lo, hi int32) int32 {
	if g.rnd != nil {
		return g.rnd(lo, hi)
	}
	return lo
}

func (g *fakeGame) CreatureByID(id uint32) Creature {
	if cr, ok := g.creatures[id]; ok {
		return cr
	}
	return nil
}

func (g *fakeGame) Spectators(model.Position) []Player { return g.spectators }

func (g *fakeGame) ChangeSpeed(_ Creature, delta int32) {
	g.speedChanges = append(g.speedChanges, delta)
}

func (g *fakeGame) ChangeVisible(_ Creature, visible bool) {
	g.visibility = append(g.visibility, visible)
}

func (g *fakeGame) ChangeOutfit(_ Creature, outfit model.Outfit) {
	g.outfits = append(g.outfits, outfit)
}

func (g *fakeGame) ChangeLight(Creature) { g.lightChanges++ }

func (g *fakeGame) AddMagicEffect(_ model.Position, effect model.MagicEffect) {
	g.magicEffects = append(g.magicEffects, effect)
}

func (g *fakeGame) CanDoCombat(_, _ Creature) bool { return !g.denyCombat }

func (g *fakeGame) CombatBlockHit(*CombatDamage, Creature, Creature, bool) bool {
	return g.blockHit
}

func (g *fakeGame) CombatChangeHealth(_, target Creature, damage CombatDamage) bool {
	g.combatDamages = append(g.combatDamages, damage)
	target.ChangeHealth(damage.Value)
	return true
}

func (g *fakeGame) speedSum() int32 {
	var sum int32
	for _, d := range g.speedChanges {
		sum += d
	}
	return sum
}

type fakeCreature struct {
	id   uint32
	name string
	pos  model.Position
	zone model.ZoneType

	health    int32
	maxHealth int32
	mana      int32
	maxMana   int32
	baseSpeed int32

	invisible     bool
	ghost         bool
	notAttackable bool
	suppress      Type
	// loop keeps damage schedules cycling, like standing in a field.
	loop bool

	light       model.LightInfo
	normalLight model.LightInfo
	outfit      model.Outfit
}

func newFakeCreature(id uint32) *fakeCreature {
	return &fakeCreature{
		id:          id,
		name:        "rat",
		pos:         model.NewPosition(100, 100, 7),
		zone:        model.ZoneNormal,
		health:      100,
		maxHealth:   200,
		mana:        50,
		maxMana:     100,
		baseSpeed:   220,
		normalLight: model.LightInfo{Level: 1, Color: 215},
		outfit:      model.Outfit{LookType: 21},
	}
}

func (c *fakeCreature) ID() uint32               { return c.id }
func (c *fakeCreature) Name() string             { return c.name }
func (c *fakeCreature) Position() model.Position { return c.pos }
func (c *fakeCreature) Zone() model.ZoneType     { return c.zone }
func (c *fakeCreature) Health() int32            { return c.health }
func (c *fakeCreature) BaseSpeed() int32         { return c.baseSpeed }
func (c *fakeCreature) IsInvisible() bool        { return c.invisible }
func (c *fakeCreature) IsInGhostMode() bool      { return c.ghost }
func (c *fakeCreature) IsAttackable() bool       { return !c.notAttackable }
func (c *fakeCreature) IsSuppress(t Type) bool   { return c.suppress&t != 0 }
func (c *fakeCreature) Light() model.LightInfo   { return c.light }
func (c *fakeCreature) SetNormalLight()          { c.light = c.normalLight }
func (c *fakeCreature) DefaultOutfit() model.Outfit {
	return c.outfit
}

func (c *fakeCreature) SetLight(light model.LightInfo) { c.light = light }

func (c *fakeCreature) ChangeHealth(delta int32) {
	c.health = min(max(0, c.health+delta), c.maxHealth)
}

func (c *fakeCreature) ChangeMana(delta int32) {
	c.mana = min(max(0, c.mana+delta), c.maxMana)
}

func (c *fakeCreature) OnTickCondition(_ Type, remove bool) bool {
	return remove && !c.loop
}

type healMessage struct {
	class  model.MessageClass
	text   string
	amount int32
}

type fakePlayer struct {
	*fakeCreature

	skills     [model.SkillCount]int32
	varSkills  [model.SkillCount]int32
	varStats   [model.StatCount]int32
	soul       int32
	magicLevel int32

	skillsSent int
	statsSent  int

	messages       []healMessage
	spellCooldowns map[uint32]int32
	groupCooldowns map[model.SpellGroup]int32
}

func newFakePlayer(id uint32, name string) *fakePlayer {
	cr := newFakeCreature(id)
	cr.name = name
	p := &fakePlayer{
		fakeCreature:   cr,
		soul:           100,
		magicLevel:     40,
		spellCooldowns: map[uint32]int32{},
		groupCooldowns: map[model.SpellGroup]int32{},
	}
	for i := range p.skills {
		p.skills[i] = 10
	}
	return p
}

func (p *fakePlayer) SkillLevel(skill model.Skill) int32 {
	return p.skills[skill] + p.varSkills[skill]
}

func (p *fakePlayer) SetVarSkill(skill model.Skill, delta int32) { p.varSkills[skill] += delta }
func (p *fakePlayer) SendSkills()                               { p.skillsSent++ }

func (p *fakePlayer) MaxHealth() int32  { return p.maxHealth + p.varStats[model.StatMaxHitPoints] }
func (p *fakePlayer) MaxMana() int32    { return p.maxMana + p.varStats[model.StatMaxManaPoints] }
func (p *fakePlayer) Soul() int32       { return p.soul }
func (p *fakePlayer) MagicLevel() int32 { return p.magicLevel + p.varStats[model.StatMagicPoints] }

func (p *fakePlayer) SetVarStat(stat model.Stat, delta int32) { p.varStats[stat] += delta }
func (p *fakePlayer) SendStats()                              { p.statsSent++ }
func (p *fakePlayer) ChangeSoul(delta int32)                  { p.soul += delta }

func (p *fakePlayer) SendSpellCooldown(spellID uint32, ticks int32) {
	p.spellCooldowns[spellID] = ticks
}

func (p *fakePlayer) SendSpellGroupCooldown(group model.SpellGroup, ticks int32) {
	p.groupCooldowns[group] = ticks
}

func (p *fakePlayer) SendHealMessage(class model.MessageClass, text string, _ model.Position, amount int32, _ model.TextColor) {
	p.messages = append(p.messages, healMessage{class: class, text: text, amount: amount})
}
