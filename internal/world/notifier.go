package world

import (
	"log/slog"

	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/model"
)

// Notifier receives every change a client would have to be told about.
// Calls are made with the World lock held and must not call back into it.
type Notifier interface {
	CreatureSpeed(cr *Character, speed int32)
	CreatureVisibility(cr *Character, visible bool)
	CreatureOutfit(cr *Character, outfit model.Outfit)
	CreatureLight(cr *Character, light model.LightInfo)
	CreatureHealth(cr *Character, damage condition.CombatDamage)
	MagicEffect(pos model.Position, effect model.MagicEffect)

	Icons(p *Player, icons condition.Icon)
	Skills(p *Player)
	Stats(p *Player)
	SpellCooldown(p *Player, spellID uint32, ticks int32)
	SpellGroupCooldown(p *Player, group model.SpellGroup, ticks int32)
	HealMessage(p *Player, class model.MessageClass, text string, amount int32)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier; nil logger uses slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CreatureSpeed(cr *Character, speed int32) {
	n.logger.Debug("creature speed", "creature", cr.ID(), "speed", speed)
}

func (n *LogNotifier) CreatureVisibility(cr *Character, visible bool) {
	n.logger.Debug("creature visibility", "creature", cr.ID(), "visible", visible)
}

func (n *LogNotifier) CreatureOutfit(cr *Character, outfit model.Outfit) {
	n.logger.Debug("creature outfit", "creature", cr.ID(), "lookType", outfit.LookType)
}

func (n *LogNotifier) CreatureLight(cr *Character, light model.LightInfo) {
	n.logger.Debug("creature light", "creature", cr.ID(), "level", light.Level, "color", light.Color)
}

func (n *LogNotifier) CreatureHealth(cr *Character, damage condition.CombatDamage) {
	n.logger.Debug("creature health",
		"creature", cr.ID(),
		"change", damage.Value,
		"combatType", damage.Type,
		"health", cr.Health())
}

func (n *LogNotifier) MagicEffect(pos model.Position, effect model.MagicEffect) {
	n.logger.Debug("magic effect", "pos", pos.String(), "effect", effect)
}

func (n *LogNotifier) Icons(p *Player, icons condition.Icon) {
	n.logger.Debug("player icons", "player", p.ID(), "icons", uint32(icons))
}

func (n *LogNotifier) Skills(p *Player) {
	n.logger.Debug("player skills", "player", p.ID())
}

func (n *LogNotifier) Stats(p *Player) {
	n.logger.Debug("player stats",
		"player", p.ID(),
		"maxHealth", p.MaxHealth(),
		"maxMana", p.MaxMana(),
		"magicLevel", p.MagicLevel())
}

func (n *LogNotifier) SpellCooldown(p *Player, spellID uint32, ticks int32) {
	n.logger.Debug("spell cooldown", "player", p.ID(), "spell", spellID, "ticks", ticks)
}

func (n *LogNotifier) SpellGroupCooldown(p *Player, group model.SpellGroup, ticks int32) {
	n.logger.Debug("spell group cooldown", "player", p.ID(), "group", group, "ticks", ticks)
}

func (n *LogNotifier) HealMessage(p *Player, class model.MessageClass, text string, amount int32) {
	n.logger.Info(text, "player", p.ID(), "class", class, "amount", amount)
}
