package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/event"
)

func TestPickupCollection(t *testing.T) {
	f := newFixture(t)
	s := NewPickupSystem(f.world, f.combat, f.bus)
	collected := record[event.PickupCollected](f)
	p := &f.world.Player
	p.Health = 50
	near := p.Position.Add(mgl64.Vec3{0, 1, 0})

	f.combat.SpawnPickup(component.PickupXP, near, 40)
	f.combat.SpawnPickup(component.PickupHealth, near, 15)
	f.combat.SpawnPickup(component.PickupXP, p.Position.Add(mgl64.Vec3{5, 0, 0}), 40)

	s.Update(tick)

	if p.XP != 40 || p.Health != 65 {
		t.Fatalf("xp %d health %d", p.XP, p.Health)
	}
	if f.world.Pickups.Len() != 1 {
		t.Fatalf("pickups left = %d", f.world.Pickups.Len())
	}
	f.flush()
	if len(*collected) != 2 || (*collected)[0].Kind != "xp" || (*collected)[1].Kind != "health" {
		t.Fatalf("collected = %+v", *collected)
	}
}

func TestDeadPlayerCollectsNothing(t *testing.T) {
	f := newFixture(t)
	s := NewPickupSystem(f.world, f.combat, f.bus)
	p := &f.world.Player
	f.combat.SpawnPickup(component.PickupXP, p.Position, 40)
	f.combat.ApplyDamage(p.MaxHealth)

	s.Update(tick)

	if p.XP != 0 || p.Health != 0 {
		t.Fatalf("xp %d health %d", p.XP, p.Health)
	}
	if f.world.Pickups.Len() != 1 {
		t.Fatal("pickup collected by a dead player")
	}
	if f.combat.GrantXP(500) || p.XP != 0 {
		t.Fatal("xp granted after death")
	}
}
