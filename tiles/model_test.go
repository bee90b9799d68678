package tiles

import (
	"math/rand"
	"testing"
)

func TestShiftRejectsOutOfBoundsMove(t *testing.T) {
	m := NewTilesModel(5, 5, nil)
	tile := NewTile("wall", 1, 1)
	m.Add("walls", 4, 4, tile)

	if ok := m.Shift(1, 0); ok {
		t.Fatalf("expected shift crossing the east boundary to be rejected")
	}
	if got := m.Layer("walls", EntitiesBelowLayer).TileAt(4, 4); got != tile {
		t.Fatalf("rejected shift must leave placements unchanged")
	}
}

func TestShiftRoundTrip(t *testing.T) {
	m := NewTilesModel(10, 10, nil)
	tile := NewTile("rock", 1, 1)
	m.Add("props", 2, 3, tile)

	if ok := m.Shift(3, 2); !ok {
		t.Fatalf("expected shift to succeed")
	}
	if got := m.Layer("props", EntitiesBelowLayer).TileAt(5, 5); got != tile {
		t.Fatalf("expected tile at shifted position (5,5), found %v", got)
	}

	if ok := m.Shift(-3, -2); !ok {
		t.Fatalf("expected reverse shift to succeed")
	}
	if got := m.Layer("props", EntitiesBelowLayer).TileAt(2, 3); got != tile {
		t.Fatalf("expected tile back at original position (2,3) after round trip, found %v", got)
	}
}

func TestPickVariantRespectsBaseWeight(t *testing.T) {
	m := NewTilesModel(1, 1, rand.New(rand.NewSource(7)))
	base := NewTile("grass_base", 1, 1)
	variant := NewTile("grass_variant", 1, 1)
	kind := &TerrainKind{ID: "grass", Base: base, BaseWeight: 1_000_000, Variants: []*Tile{variant}}

	for i := 0; i < 100; i++ {
		if got := m.PickVariant(kind); got != base {
			t.Fatalf("expected overwhelming base weight to always pick base, got %v", got)
		}
	}
}

func TestPickVariantNoVariantsReturnsBase(t *testing.T) {
	m := NewTilesModel(1, 1, nil)
	base := NewTile("grass_base", 1, 1)
	kind := &TerrainKind{ID: "grass", Base: base}

	if got := m.PickVariant(kind); got != base {
		t.Fatalf("expected base tile when no variants registered, got %v", got)
	}
}

func TestSetTerrainIndexClearDistinguishesFromUnset(t *testing.T) {
	m := NewTilesModel(3, 3, nil)
	if _, has := m.TerrainAt(1, 1); has {
		t.Fatalf("expected no terrain on a fresh model")
	}

	m.SetTerrainIndex(1, 1, "grass")
	if id, has := m.TerrainAt(1, 1); !has || id != "grass" {
		t.Fatalf("expected terrain 'grass' at (1,1), got %q, %v", id, has)
	}

	m.SetTerrainIndex(1, 1, "")
	if _, has := m.TerrainAt(1, 1); has {
		t.Fatalf("expected terrain cleared after SetTerrainIndex with empty id")
	}
}
