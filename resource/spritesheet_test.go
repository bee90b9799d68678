package resource

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestNewSpritesheetCutsNamedAreas(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "sheet.png"), 64, 64)

	builder := SpritesheetBuilder{
		ID:         "terrain",
		Src:        "sheet.png",
		SourceDirs: []string{dir},
		Groups: map[string]SpritesheetGroup{
			"grass": {
				Width: 16, Height: 16,
				Areas: map[string][]int{
					"base": {0, 0},
				},
			},
		},
	}

	sheet, err := NewSpritesheet(builder)
	if err != nil {
		t.Fatalf("NewSpritesheet: %v", err)
	}

	sprite, ok := sheet.Sprites["base"]
	if !ok {
		t.Fatalf("expected sprite 'base' to be cut")
	}
	if sprite.Width != 16 || sprite.Height != 16 {
		t.Fatalf("unexpected sprite size: %dx%d", sprite.Width, sprite.Height)
	}
	if sprite.FullID() != "terrain/base" {
		t.Fatalf("unexpected full id: %s", sprite.FullID())
	}
}

func TestNewSpritesheetAppliesGridMultiplierAndPrefix(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "sheet.png"), 64, 64)

	builder := SpritesheetBuilder{
		ID:             "terrain",
		Src:            "sheet.png",
		SourceDirs:     []string{dir},
		GridMultiplier: 2,
		Groups: map[string]SpritesheetGroup{
			"grass": {
				Width: 8, Height: 8,
				Prefix: "grass_",
				Areas: map[string][]int{
					"a": {1, 1},
				},
			},
		},
	}

	sheet, err := NewSpritesheet(builder)
	if err != nil {
		t.Fatalf("NewSpritesheet: %v", err)
	}

	sprite, ok := sheet.Sprites["grass_a"]
	if !ok {
		t.Fatalf("expected prefixed sprite 'grass_a'")
	}
	if sprite.X != 2 || sprite.Y != 2 || sprite.Width != 16 || sprite.Height != 16 {
		t.Fatalf("expected grid multiplier to scale position and size, got x=%d y=%d w=%d h=%d", sprite.X, sprite.Y, sprite.Width, sprite.Height)
	}
}

func TestNewSpritesheetRejectsOutOfBoundsArea(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "sheet.png"), 16, 16)

	builder := SpritesheetBuilder{
		ID:         "terrain",
		Src:        "sheet.png",
		SourceDirs: []string{dir},
		Groups: map[string]SpritesheetGroup{
			"grass": {
				Width: 16, Height: 16,
				Areas: map[string][]int{
					"oob": {10, 10},
				},
			},
		},
	}

	sheet, err := NewSpritesheet(builder)
	if err != nil {
		t.Fatalf("NewSpritesheet: %v", err)
	}
	if _, ok := sheet.Sprites["oob"]; ok {
		t.Fatalf("expected out-of-bounds sprite to be rejected")
	}
}

func TestNewSpritesheetMissingSourceReturnsError(t *testing.T) {
	builder := SpritesheetBuilder{ID: "terrain", Src: "missing.png", SourceDirs: []string{t.TempDir()}}
	if _, err := NewSpritesheet(builder); err == nil {
		t.Fatalf("expected an error when the source image cannot be found")
	}
}

func TestSheetCacheRoundTrip(t *testing.T) {
	cache := newSheetCache()
	sheet := &Spritesheet{ID: "a"}
	cache.put(sheet)

	got, ok := cache.get("a")
	if !ok || got != sheet {
		t.Fatalf("expected cached sheet to be retrievable")
	}
	if _, ok := cache.get("missing"); ok {
		t.Fatalf("expected a miss for an unknown id")
	}
}
