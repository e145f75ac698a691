package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/condengine/internal/model"
)

func newPoison(t *testing.T, minDmg, maxDmg int32, delayed bool) *Damage {
	t.Helper()

	c, ok := Create(IDCombat, TypePoison, 0, 0, false, 0).(*Damage)
	require.True(t, ok)
	require.True(t, c.SetParam(ParamMinValue, minDmg))
	require.True(t, c.SetParam(ParamMaxValue, maxDmg))
	if delayed {
		require.True(t, c.SetParam(ParamDelayed, 1))
	}
	return c
}

func scheduleSum(list []Interval) int32 {
	var s int32
	for _, info := range list {
		s += info.Value
	}
	return s
}

func TestDamage_PoisonSchedule(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 10, 10, true)
	require.True(t, c.Start(g, cr))

	schedule := c.Schedule()
	require.NotEmpty(t, schedule)
	assert.Equal(t, int32(-10), scheduleSum(schedule))
	assert.Equal(t, int32(-1), schedule[0].Value)
	for _, info := range schedule {
		assert.Equal(t, DefaultTickInterval, info.Interval)
		assert.Equal(t, DefaultTickInterval, info.TimeLeft)
	}

	assert.Equal(t, int32(len(schedule))*DefaultTickInterval, c.Ticks())
	assert.Equal(t, g.Now()+int64(c.Ticks()), c.EndTime())
	assert.Empty(t, g.combatDamages, "delayed damage waits for the first round")
}

func TestDamage_StartDealsFirstRound(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 10, 10, false)
	require.True(t, c.Start(g, cr))

	require.Len(t, g.combatDamages, 1)
	assert.Equal(t, int32(-1), g.combatDamages[0].Value)
	assert.Equal(t, model.CombatEarth, g.combatDamages[0].Type)
	assert.Equal(t, OriginCondition, g.combatDamages[0].Origin)
	assert.Equal(t, int32(99), cr.Health())
	assert.Len(t, c.Schedule(), 9)
}

func TestDamage_ExecuteRunsSchedule(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 10, 10, false)
	require.True(t, c.Start(g, cr))

	alive := true
	for alive {
		g.advance(1000)
		alive = c.Execute(g, cr, 1000)
	}

	assert.Equal(t, int32(90), cr.Health())
	assert.Len(t, g.combatDamages, 10)
	assert.Empty(t, c.Schedule())
}

func TestDamage_StartFailsWithoutDamage(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 0, 0, false)
	assert.False(t, c.Start(g, cr))
}

func TestDamage_StackingKeepsStrongerSchedule(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 10, 10, true)
	require.True(t, c.Start(g, cr))
	before := c.Schedule()
	ticks := c.Ticks()

	tests := []struct {
		name   string
		minDmg int32
		maxDmg int32
	}{
		{"weaker", 5, 5},
		{"equal", 10, 10},
		{"weaker range", 0, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Add(g, cr, newPoison(t, tt.minDmg, tt.maxDmg, true))
			assert.Equal(t, before, c.Schedule())
			assert.Equal(t, ticks, c.Ticks())
		})
	}
}

func TestDamage_StackingStrongerReplaces(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 10, 10, true)
	require.True(t, c.Start(g, cr))

	g.advance(500)
	c.Execute(g, cr, 500)
	require.Equal(t, DefaultTickInterval-500, c.Schedule()[0].TimeLeft)

	c.Add(g, cr, newPoison(t, 40, 40, true))

	schedule := c.Schedule()
	assert.Equal(t, int32(-40), scheduleSum(schedule))
	assert.Equal(t, DefaultTickInterval-500, schedule[0].TimeLeft, "running round keeps its countdown")
}

func TestDamage_ForceUpdate(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := newPoison(t, 40, 40, true)
	require.True(t, c.Start(g, cr))

	weaker := newPoison(t, 10, 10, true)
	require.True(t, weaker.SetParam(ParamForceUpdate, 1))
	c.Add(g, cr, weaker)

	assert.Equal(t, int32(-10), scheduleSum(c.Schedule()))
}

func TestDamage_TotalDamage(t *testing.T) {
	c := newPoison(t, 10, 30, true)
	assert.Equal(t, int32(20), c.TotalDamage())

	g := newFakeGame()
	require.True(t, c.AddDamage(g.Now(), 3, 1000, -7))
	assert.Equal(t, int32(21), c.TotalDamage())
}

func TestDamage_Periodic(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)

	c := NewDamage(IDCombat, TypeFire, false, 0, 0)
	require.True(t, c.AddDamage(g.Now(), -1, 1000, -5))
	assert.Equal(t, InfiniteTicks, c.Ticks())
	assert.False(t, c.AddDamage(g.Now(), 2, 1000, -1), "schedule entries are refused in periodic mode")

	require.True(t, c.Start(g, cr))
	require.Len(t, g.combatDamages, 1)
	assert.Equal(t, model.CombatFire, g.combatDamages[0].Type)

	g.advance(500)
	assert.True(t, c.Execute(g, cr, 500))
	assert.Len(t, g.combatDamages, 1)

	g.advance(500)
	assert.True(t, c.Execute(g, cr, 500))
	assert.Len(t, g.combatDamages, 2)
	assert.Equal(t, int32(90), cr.Health())
}

func TestDamage_LoopingScheduleKeepsDuration(t *testing.T) {
	g := newFakeGame()
	cr := newFakeCreature(1)
	cr.loop = true

	c := newPoison(t, 10, 10, true)
	require.True(t, c.Start(g, cr))
	rounds := len(c.Schedule())
	endTime := c.EndTime()
	ticks := c.Ticks()

	g.advance(DefaultTickInterval)
	assert.True(t, c.Execute(g, cr, DefaultTickInterval))

	assert.Len(t, c.Schedule(), rounds, "looping round is not consumed")
	assert.Equal(t, DefaultTickInterval, c.Schedule()[0].TimeLeft)
	assert.Equal(t, endTime+int64(DefaultTickInterval), c.EndTime())
	assert.Equal(t, ticks, c.Ticks())
	assert.Len(t, g.combatDamages, 1)
}

func TestDamage_Delivery(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(g *fakeGame, cr *fakeCreature)
		wantStart bool
		wantHits  int
		wantPoff  bool
	}{
		{
			name:      "normal",
			setup:     func(*fakeGame, *fakeCreature) {},
			wantStart: true,
			wantHits:  1,
		},
		{
			name:      "suppressed",
			setup:     func(_ *fakeGame, cr *fakeCreature) { cr.suppress = TypePoison },
			wantStart: true,
		},
		{
			name:     "not attackable",
			setup:    func(_ *fakeGame, cr *fakeCreature) { cr.notAttackable = true },
			wantPoff: true,
		},
		{
			name:     "combat denied",
			setup:    func(g *fakeGame, _ *fakeCreature) { g.denyCombat = true },
			wantPoff: true,
		},
		{
			name: "combat denied in ghost mode",
			setup: func(g *fakeGame, cr *fakeCreature) {
				g.denyCombat = true
				cr.ghost = true
			},
		},
		{
			name:  "blocked",
			setup: func(g *fakeGame, _ *fakeCreature) { g.blockHit = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGame()
			cr := newFakeCreature(1)
			tt.setup(g, cr)

			c := newPoison(t, 10, 10, false)
			assert.Equal(t, tt.wantStart, c.Start(g, cr))
			assert.Len(t, g.combatDamages, tt.wantHits)
			if tt.wantPoff {
				assert.Equal(t, []model.MagicEffect{model.MagicEffectPoff}, g.magicEffects)
			} else {
				assert.Empty(t, g.magicEffects)
			}
		})
	}
}

func TestDamage_SetParam(t *testing.T) {
	c := NewDamage(IDCombat, TypeEnergy, false, 0, 0)

	assert.True(t, c.SetParam(ParamOwner, 42))
	assert.Equal(t, uint32(42), c.Owner())
	assert.True(t, c.SetParam(ParamMinValue, -15))
	assert.Equal(t, int32(15), c.minDamage)
	assert.True(t, c.SetParam(ParamTickInterval, 500))
	assert.Equal(t, int32(500), c.tickInterval)
	assert.True(t, c.SetParam(ParamField, 1))
	assert.True(t, c.field)
	assert.True(t, c.SetParam(ParamBuffSpell, 1))

	assert.False(t, c.SetParam(ParamLightLevel, 3))
}

func TestCombatTypeFor(t *testing.T) {
	tests := []struct {
		t    Type
		want model.CombatType
	}{
		{TypePoison, model.CombatEarth},
		{TypeFire, model.CombatFire},
		{TypeEnergy, model.CombatEnergy},
		{TypeBleeding, model.CombatPhysical},
		{TypeDrown, model.CombatDrown},
		{TypeFreezing, model.CombatIce},
		{TypeDazzled, model.CombatHoly},
		{TypeCursed, model.CombatDeath},
		{TypeHaste, model.CombatNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CombatTypeFor(tt.t), tt.t.String())
	}
}
