package world

import (
	"cmp"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/model"
)

// tile holds per-position properties that conditions react to.
type tile struct {
	zone  model.ZoneType
	field condition.Type
}

// World hosts creatures and implements the capability handle conditions
// use to act on them.
//
// Public methods take the world lock. The condition.Game methods do not:
// they are only called by conditions while the lock is already held.
type World struct {
	mu sync.Mutex

	now      func() int64
	rng      *rand.Rand
	factory  *condition.Factory
	limit    int
	notifier Notifier

	regions   map[regionKey]*Region
	creatures map[uint32]Entity
	tiles     map[model.Position]tile
}

var _ condition.Game = (*World)(nil)

// Option configures a World.
type Option func(*World)

// WithClock replaces the millisecond wall clock.
func WithClock(now func() int64) Option {
	return func(w *World) { w.now = now }
}

// WithRand replaces the random source.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithNotifier replaces the log notifier.
func WithNotifier(n Notifier) Option {
	return func(w *World) { w.notifier = n }
}

// WithFactory sets the factory used to decode saved conditions.
func WithFactory(f *condition.Factory) Option {
	return func(w *World) { w.factory = f }
}

// WithConditionLimit caps conditions per creature (0 = unlimited).
func WithConditionLimit(n int) Option {
	return func(w *World) { w.limit = n }
}

// New creates an empty world.
func New(opts ...Option) *World {
	w := &World{
		now:       func() int64 { return time.Now().UnixMilli() },
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x636f6e64)),
		factory:   condition.NewFactory(condition.DefaultOptions()),
		regions:   make(map[regionKey]*Region),
		creatures: make(map[uint32]Entity),
		tiles:     make(map[model.Position]tile),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.notifier == nil {
		w.notifier = NewLogNotifier(nil)
	}
	return w
}

// Factory returns the factory conditions should be created with.
func (w *World) Factory() *condition.Factory { return w.factory }

// SetTile sets the zone and field of a position.
func (w *World) SetTile(pos model.Position, zone model.ZoneType, field condition.Type) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if zone == model.ZoneNormal && field == condition.TypeNone {
		delete(w.tiles, pos)
		return
	}
	w.tiles[pos] = tile{zone: zone, field: field}
}

func (w *World) tileAt(pos model.Position) tile {
	return w.tiles[pos]
}

// Spawn adds a creature to the world.
func (w *World) Spawn(e Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.creatures[e.ID()]; ok {
		return fmt.Errorf("creature %d already spawned", e.ID())
	}

	c := e.character()
	c.world = w
	c.conditions = condition.NewList(w.factory, w.limit)

	w.creatures[e.ID()] = e
	w.regionFor(c.pos).Add(e)

	slog.Debug("creature spawned", "creature", e.ID(), "name", e.Name(), "pos", c.pos.String())
	return nil
}

// Despawn ends every condition of the creature and removes it.
// Returns the creature's persistent conditions captured before removal.
func (w *World) Despawn(id uint32) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	if !ok {
		return nil, fmt.Errorf("creature %d not found", id)
	}

	c := e.character()
	data := c.conditions.Serialize()
	c.conditions.Clear(w, e)

	w.regionFor(c.pos).Remove(id)
	delete(w.creatures, id)
	c.world = nil

	slog.Debug("creature despawned", "creature", id)
	return data, nil
}

// Move relocates a creature.
func (w *World) Move(id uint32, pos model.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	if !ok {
		return fmt.Errorf("creature %d not found", id)
	}

	c := e.character()
	if keyOf(c.pos) != keyOf(pos) {
		w.regionFor(c.pos).Remove(id)
		w.regionFor(pos).Add(e)
	}
	c.pos = pos
	return nil
}

// Creature returns a hosted creature.
func (w *World) Creature(id uint32) (Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	return e, ok
}

// Count returns number of hosted creatures
func (w *World) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.creatures)
}

// AddCondition attaches c to a creature.
func (w *World) AddCondition(id uint32, c condition.Condition) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	if !ok {
		return false, fmt.Errorf("creature %d not found", id)
	}

	added := e.character().conditions.Add(w, e, c)
	w.refreshIcons(e)
	return added, nil
}

// RemoveCondition ends and detaches conditions of type t in scope condID.
func (w *World) RemoveCondition(id uint32, t condition.Type, condID condition.ID) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	if !ok {
		return 0, fmt.Errorf("creature %d not found", id)
	}

	n := e.character().conditions.Remove(w, e, t, condID)
	w.refreshIcons(e)
	return n, nil
}

// Restore attaches conditions saved by Snapshot or Despawn.
func (w *World) Restore(id uint32, data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.creatures[id]
	if !ok {
		return 0, fmt.Errorf("creature %d not found", id)
	}

	n := e.character().conditions.Restore(w, e, data)
	w.refreshIcons(e)
	return n, nil
}

// Tick advances every creature's conditions by interval milliseconds.
func (w *World) Tick(interval int32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range w.sortedCreatures() {
		e.character().conditions.Execute(w, e, interval)
		w.refreshIcons(e)
	}
}

// Snapshot serializes the persistent conditions of every creature.
// Creatures with nothing to persist map to nil.
func (w *World) Snapshot() map[uint32][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[uint32][]byte, len(w.creatures))
	for id, e := range w.creatures {
		out[id] = e.character().conditions.Serialize()
	}
	return out
}

func (w *World) sortedCreatures() []Entity {
	list := make([]Entity, 0, len(w.creatures))
	for _, e := range w.creatures {
		list = append(list, e)
	}
	slices.SortFunc(list, func(a, b Entity) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return list
}

func (w *World) regionFor(pos model.Position) *Region {
	key := keyOf(pos)
	region, ok := w.regions[key]
	if !ok {
		region = NewRegion(key.rx, key.ry, key.z)
		w.regions[key] = region
	}
	return region
}

func (w *World) refreshIcons(e Entity) {
	p, ok := e.(*Player)
	if !ok {
		return
	}
	if icons := p.conditions.Icons(); icons != p.icons {
		p.icons = icons
		w.notifier.Icons(p, icons)
	}
}

// Now returns the current time in milliseconds.
func (w *World) Now() int64 { return w.now() }

// RandomInt returns a uniform value in [lo, hi]; swapped bounds are accepted.
func (w *World) RandomInt(lo, hi int32) int32 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + int32(w.rng.Int64N(int64(hi)-int64(lo)+1))
}

func (w *World) CreatureByID(id uint32) condition.Creature {
	e, ok := w.creatures[id]
	if !ok {
		return nil
	}
	return e
}

// Spectators returns the players whose view window contains pos.
func (w *World) Spectators(pos model.Position) []condition.Player {
	var out []condition.Player
	for _, key := range viewKeys(pos) {
		region, ok := w.regions[key]
		if !ok {
			continue
		}
		for _, e := range region.Snapshot() {
			p, ok := e.(*Player)
			if !ok || !p.pos.InRange(pos, ViewRangeX, ViewRangeY) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func (w *World) ChangeSpeed(cr condition.Creature, delta int32) {
	c, ok := asCharacter(cr)
	if !ok {
		return
	}
	c.speed += delta
	w.notifier.CreatureSpeed(c, c.speed)
}

func (w *World) ChangeVisible(cr condition.Creature, visible bool) {
	c, ok := asCharacter(cr)
	if !ok {
		return
	}
	c.visible = visible
	w.notifier.CreatureVisibility(c, visible)
}

func (w *World) ChangeOutfit(cr condition.Creature, outfit model.Outfit) {
	c, ok := asCharacter(cr)
	if !ok {
		return
	}
	c.outfit = outfit
	w.notifier.CreatureOutfit(c, outfit)
}

func (w *World) ChangeLight(cr condition.Creature) {
	c, ok := asCharacter(cr)
	if !ok {
		return
	}
	w.notifier.CreatureLight(c, c.light)
}

func (w *World) AddMagicEffect(pos model.Position, effect model.MagicEffect) {
	w.notifier.MagicEffect(pos, effect)
}

// CanDoCombat forbids damage into or out of protection zones, and between
// players in no-pvp zones.
func (w *World) CanDoCombat(attacker, target condition.Creature) bool {
	if target.Zone() == model.ZoneProtection {
		return false
	}
	if attacker == nil {
		return true
	}
	if attacker.Zone() == model.ZoneProtection {
		return false
	}

	_, attackerIsPlayer := attacker.(condition.Player)
	_, targetIsPlayer := target.(condition.Player)
	if attackerIsPlayer && targetIsPlayer && target.Zone() == model.ZoneNoPvp {
		return false
	}
	return true
}

// CombatBlockHit blocks damage of a type the target is immune to.
func (w *World) CombatBlockHit(damage *condition.CombatDamage, _, target condition.Creature, _ bool) bool {
	if damage.Value >= 0 {
		return false
	}

	c, ok := asCharacter(target)
	if !ok {
		return false
	}
	if c.immunities&damage.Type != 0 {
		damage.Value = 0
		w.AddMagicEffect(c.pos, model.MagicEffectBlockHit)
		return true
	}
	return false
}

func (w *World) CombatChangeHealth(attacker, target condition.Creature, damage condition.CombatDamage) bool {
	c, ok := asCharacter(target)
	if !ok {
		return false
	}

	before := c.health
	c.ChangeHealth(damage.Value)
	w.notifier.CreatureHealth(c, damage)

	if before > 0 && c.health == 0 {
		var attackerID uint32
		if attacker != nil {
			attackerID = attacker.ID()
		}
		slog.Info("creature died",
			"creature", c.id,
			"name", c.name,
			"attacker", attackerID,
			"combatType", damage.Type)
	}
	return true
}

func asCharacter(cr condition.Creature) (*Character, bool) {
	e, ok := cr.(Entity)
	if !ok {
		return nil, false
	}
	return e.character(), true
}
