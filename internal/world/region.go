package world

import (
	"cmp"
	"slices"
)

// Region represents a single RegionSize×RegionSize block of tiles on one floor.
// Not safe for concurrent use: guarded by the owning World's mutex.
type Region struct {
	key regionKey

	creatures map[uint32]Entity

	// Snapshot cache, rebuilt lazily after Add/Remove.
	snapshot      []Entity
	snapshotDirty bool
}

// NewRegion creates a new region
func NewRegion(rx, ry uint16, z uint8) *Region {
	return &Region{
		key:       regionKey{rx: rx, ry: ry, z: z},
		creatures: make(map[uint32]Entity),
	}
}

// RX returns region X index
func (r *Region) RX() uint16 {
	return r.key.rx
}

// RY returns region Y index
func (r *Region) RY() uint16 {
	return r.key.ry
}

// Z returns the floor
func (r *Region) Z() uint8 {
	return r.key.z
}

// Add adds creature to region
func (r *Region) Add(e Entity) {
	r.creatures[e.ID()] = e
	r.snapshotDirty = true
}

// Remove removes creature from region
func (r *Region) Remove(id uint32) {
	if _, ok := r.creatures[id]; !ok {
		return
	}
	delete(r.creatures, id)
	r.snapshotDirty = true
}

// Len returns number of creatures in region
func (r *Region) Len() int {
	return len(r.creatures)
}

// Snapshot returns the region's creatures ordered by ID.
// IMPORTANT: Returned slice is shared, DO NOT modify.
func (r *Region) Snapshot() []Entity {
	if !r.snapshotDirty && r.snapshot != nil {
		return r.snapshot
	}

	snapshot := make([]Entity, 0, len(r.creatures))
	for _, e := range r.creatures {
		snapshot = append(snapshot, e)
	}
	slices.SortFunc(snapshot, func(a, b Entity) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	r.snapshot = snapshot
	r.snapshotDirty = false
	return snapshot
}
