package world

import (
	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/model"
)

type heal struct {
	player uint32
	class  model.MessageClass
	text   string
	amount int32
}

// recorder keeps notifications for assertions.
type recorder struct {
	speeds     map[uint32]int32
	visibility map[uint32]bool
	outfits    map[uint32]model.Outfit
	lights     map[uint32]model.LightInfo
	health     []condition.CombatDamage
	effects    []model.MagicEffect
	icons      map[uint32]condition.Icon
	heals      []heal
	cooldowns  map[uint32]int32
	skills     int
	stats      int
}

func newRecorder() *recorder {
	return &recorder{
		speeds:     map[uint32]int32{},
		visibility: map[uint32]bool{},
		outfits:    map[uint32]model.Outfit{},
		lights:     map[uint32]model.LightInfo{},
		icons:      map[uint32]condition.Icon{},
		cooldowns:  map[uint32]int32{},
	}
}

func (r *recorder) CreatureSpeed(cr *Character, speed int32)       { r.speeds[cr.ID()] = speed }
func (r *recorder) CreatureVisibility(cr *Character, visible bool) { r.visibility[cr.ID()] = visible }
func (r *recorder) CreatureOutfit(cr *Character, o model.Outfit)   { r.outfits[cr.ID()] = o }
func (r *recorder) CreatureLight(cr *Character, l model.LightInfo) { r.lights[cr.ID()] = l }

func (r *recorder) MagicEffect(_ model.Position, e model.MagicEffect) {
	r.effects = append(r.effects, e)
}

func (r *recorder) CreatureHealth(_ *Character, damage condition.CombatDamage) {
	r.health = append(r.health, damage)
}

func (r *recorder) Icons(p *Player, icons condition.Icon) { r.icons[p.ID()] = icons }
func (r *recorder) Skills(*Player)                        { r.skills++ }
func (r *recorder) Stats(*Player)                         { r.stats++ }

func (r *recorder) SpellCooldown(_ *Player, spellID uint32, ticks int32) {
	r.cooldowns[spellID] = ticks
}

func (r *recorder) SpellGroupCooldown(*Player, model.SpellGroup, int32) {}

func (r *recorder) HealMessage(p *Player, class model.MessageClass, text string, amount int32) {
	r.heals = append(r.heals, heal{player: p.ID(), class: class, text: text, amount: amount})
}
