package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/condengine/internal/model"
)

func TestPercentDelta(t *testing.T) {
	tests := []struct {
		current int32
		percent int32
		want    int32
	}{
		{40, 150, 20},
		{40, 50, -20},
		{40, 100, 0},
		{15, 110, 2},
		{15, 90, -2},
		{7, 0, -7},
		{0, 300, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentDelta(tt.current, tt.percent),
			"current=%d percent=%d", tt.current, tt.percent)
	}
}

func TestAttributes_StartEnd(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "knight")

	c := NewAttributes(IDDefault, TypeAttributes, 10000, true, 0)
	require.True(t, c.SetParam(ParamSkillMelee, 5))
	require.True(t, c.SetParam(ParamSkillShield, -3))
	require.True(t, c.SetParam(ParamStatMaxHitPoints, 50))

	require.True(t, c.Start(g, p))
	assert.Equal(t, int32(5), p.varSkills[model.SkillClub])
	assert.Equal(t, int32(5), p.varSkills[model.SkillSword])
	assert.Equal(t, int32(5), p.varSkills[model.SkillAxe])
	assert.Equal(t, int32(-3), p.varSkills[model.SkillShield])
	assert.Equal(t, int32(50), p.varStats[model.StatMaxHitPoints])
	assert.Equal(t, 1, p.skillsSent)
	assert.Equal(t, 1, p.statsSent)

	c.End(g, p)
	assert.Equal(t, [model.SkillCount]int32{}, p.varSkills)
	assert.Equal(t, [model.StatCount]int32{}, p.varStats)
	assert.Equal(t, 2, p.skillsSent)
	assert.Equal(t, 2, p.statsSent)
}

func TestAttributes_Percent(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "sorcerer")
	p.maxHealth = 200

	c := NewAttributes(IDDefault, TypeAttributes, 10000, true, 0)
	require.True(t, c.SetParam(ParamStatMaxHitPointsPercent, 150))
	require.True(t, c.SetParam(ParamStatMagicPointsPercent, -20))
	require.True(t, c.SetParam(ParamSkillDistancePercent, 130))

	require.True(t, c.Start(g, p))
	assert.Equal(t, int32(100), c.StatDelta(model.StatMaxHitPoints))
	assert.Zero(t, c.StatDelta(model.StatMagicPoints), "negative percent is clamped to zero and ignored")
	assert.Equal(t, int32(3), c.SkillDelta(model.SkillDistance))
	assert.Equal(t, int32(300), p.MaxHealth())

	c.End(g, p)
	assert.Equal(t, int32(200), p.MaxHealth())
	assert.Equal(t, int32(40), p.MagicLevel())
}

func TestAttributes_NegativeSkillPercentIgnored(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "knight")

	c := NewAttributes(IDDefault, TypeAttributes, 10000, false, 0)
	require.True(t, c.SetParam(ParamSkillFistPercent, -50))
	require.True(t, c.SetParam(ParamSkillMeleePercent, -10))
	assert.Zero(t, c.skillsPercent[model.SkillFist])
	assert.Zero(t, c.skillsPercent[model.SkillSword])

	require.True(t, c.Start(g, p))
	assert.Zero(t, c.SkillDelta(model.SkillFist))
	assert.Equal(t, int32(10), p.SkillLevel(model.SkillFist))
	assert.Zero(t, p.skillsSent)
}

func TestAttributes_AddReplacesOffsets(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "paladin")

	c := NewAttributes(IDDefault, TypeAttributes, 1000, false, 0)
	require.True(t, c.SetParam(ParamSkillDistance, 4))
	require.True(t, c.Start(g, p))

	other := NewAttributes(IDDefault, TypeAttributes, 5000, false, 0)
	require.True(t, other.SetParam(ParamSkillDistance, 9))
	c.Add(g, p, other)

	assert.Equal(t, int32(9), p.varSkills[model.SkillDistance])
	assert.Equal(t, int32(5000), c.Ticks())

	c.End(g, p)
	assert.Zero(t, p.varSkills[model.SkillDistance])
}

func TestAttributes_IgnoresNonPlayers(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := NewAttributes(IDDefault, TypeAttributes, 1000, false, 0)
	require.True(t, c.SetParam(ParamSkillFist, 4))
	assert.True(t, c.Start(g, cr))
	c.End(g, cr)
}

func TestRegeneration_HealsOnThreshold(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "druid")
	p.health = 100
	p.mana = 10

	other := newFakePlayer(2, "knight")
	g.spectators = []Player{p, other}

	c := NewRegeneration(IDDefault, TypeRegeneration, 60000, true, 0)
	require.True(t, c.SetParam(ParamHealthGain, 5))
	require.True(t, c.SetParam(ParamHealthTicks, 3000))
	require.True(t, c.SetParam(ParamManaGain, 7))
	require.True(t, c.SetParam(ParamManaTicks, 2000))
	require.True(t, c.Start(g, p))

	g.advance(2000)
	require.True(t, c.Execute(g, p, 2000))
	assert.Equal(t, int32(100), p.Health())
	assert.Equal(t, int32(17), p.mana)

	g.advance(1000)
	require.True(t, c.Execute(g, p, 1000))
	assert.Equal(t, int32(105), p.Health())

	require.Len(t, p.messages, 1)
	assert.Equal(t, healMessage{class: model.MessageHealed, text: "You were healed for 5 hitpoints.", amount: 5}, p.messages[0])
	require.Len(t, other.messages, 1)
	assert.Equal(t, "druid was healed for 5 hitpoints.", other.messages[0].text)
	assert.Equal(t, model.MessageHealedOthers, other.messages[0].class)
}

func TestRegeneration_SingularMessage(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "druid")
	p.health = p.maxHealth - 1

	c := NewRegeneration(IDDefault, TypeRegeneration, 60000, true, 0)
	require.True(t, c.SetParam(ParamHealthGain, 10))
	require.True(t, c.Start(g, p))

	g.advance(1000)
	c.Execute(g, p, 1000)

	require.Len(t, p.messages, 1)
	assert.Equal(t, "You were healed for 1 hitpoint.", p.messages[0].text)
	assert.Equal(t, int32(1), p.messages[0].amount)
}

func TestRegeneration_NoMessage(t *testing.T) {
	tests := []struct {
		name   string
		buff   bool
		health int32
	}{
		{"not a buff", false, 100},
		{"already full", true, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGame()
			p := newFakePlayer(1, "druid")
			p.health = tt.health

			c := NewRegeneration(IDDefault, TypeRegeneration, 60000, tt.buff, 0)
			require.True(t, c.SetParam(ParamHealthGain, 10))
			require.True(t, c.Start(g, p))

			g.advance(1000)
			c.Execute(g, p, 1000)
			assert.Empty(t, p.messages)
		})
	}
}

func TestRegeneration_ProtectionZone(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)
	cr.zone = model.ZoneProtection

	c := NewRegeneration(IDDefault, TypeRegeneration, 60000, false, 0)
	require.True(t, c.SetParam(ParamHealthGain, 10))
	require.True(t, c.SetParam(ParamManaGain, 10))
	require.True(t, c.Start(g, cr))

	g.advance(5000)
	c.Execute(g, cr, 5000)
	assert.Equal(t, int32(100), cr.Health())
	assert.Equal(t, int32(50), cr.mana)
}

func TestRegeneration_AddCopiesRates(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := NewRegeneration(IDDefault, TypeRegeneration, 1000, false, 0)
	require.True(t, c.Start(g, cr))

	other := NewRegeneration(IDDefault, TypeRegeneration, 5000, false, 0)
	require.True(t, other.SetParam(ParamHealthGain, 12))
	c.Add(g, cr, other)

	g.advance(1000)
	c.Execute(g, cr, 1000)
	assert.Equal(t, int32(112), cr.Health())
}

func TestSoul(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "druid")
	p.soul = 0

	c := NewSoul(IDDefault, TypeSoul, 60000, false, 0)
	require.True(t, c.SetParam(ParamSoulGain, 1))
	require.True(t, c.SetParam(ParamSoulTicks, 2000))
	require.True(t, c.Start(g, p))

	for range 4 {
		g.advance(1000)
		c.Execute(g, p, 1000)
	}
	assert.Equal(t, int32(2), p.soul)

	p.zone = model.ZoneProtection
	for range 4 {
		g.advance(1000)
		c.Execute(g, p, 1000)
	}
	assert.Equal(t, int32(2), p.soul)
}

func TestInvisible(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := NewInvisible(IDDefault, TypeInvisible, 1000, false, 0)
	require.True(t, c.Start(g, cr))
	assert.Equal(t, []bool{false}, g.visibility)

	cr.invisible = true
	c.End(g, cr)
	assert.Equal(t, []bool{false}, g.visibility, "still invisible through another source")

	cr.invisible = false
	c.End(g, cr)
	assert.Equal(t, []bool{false, true}, g.visibility)
}

func TestOutfit(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := NewOutfit(IDDefault, TypeOutfit, 1000, false, 0)
	c.SetOutfit(model.Outfit{LookType: 230})
	require.True(t, c.Start(g, cr))

	other := NewOutfit(IDDefault, TypeOutfit, 5000, false, 0)
	other.SetOutfit(model.Outfit{LookType: 35, LookHead: 2})
	c.Add(g, cr, other)

	c.End(g, cr)
	assert.Equal(t, []model.Outfit{
		{LookType: 230},
		{LookType: 35, LookHead: 2},
		cr.DefaultOutfit(),
	}, g.outfits)
}

func TestSpellCooldown(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "druid")

	c := NewSpellCooldown(IDDefault, TypeSpellCooldown, 2000, false, 42)
	require.True(t, c.Start(g, p))
	assert.Equal(t, int32(2000), p.spellCooldowns[42])

	c.Add(g, p, NewSpellCooldown(IDDefault, TypeSpellCooldown, 4000, false, 42))
	assert.Equal(t, int32(4000), p.spellCooldowns[42])

	noSpell := NewSpellCooldown(IDDefault, TypeSpellCooldown, 2000, false, 0)
	require.True(t, noSpell.Start(g, p))
	assert.Len(t, p.spellCooldowns, 1)
}

func TestSpellGroupCooldown(t *testing.T) {
	g := newFakeGame()
	p := newFakePlayer(1, "druid")

	c := NewSpellGroupCooldown(IDDefault, TypeSpellGroupCooldown, 2000, false, uint32(model.SpellGroupHealing))
	require.True(t, c.Start(g, p))
	assert.Equal(t, int32(2000), p.groupCooldowns[model.SpellGroupHealing])

	c.Add(g, p, NewSpellGroupCooldown(IDDefault, TypeSpellGroupCooldown, 1000, false, uint32(model.SpellGroupHealing)))
	assert.Equal(t, int32(2000), p.groupCooldowns[model.SpellGroupHealing], "shorter cooldown is ignored")
}
