package resource

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"
)

// Sprite is a single named sub-rectangle of a Spritesheet's source image,
// along with the OpenGL-style normalized texture coordinates a renderer
// would use to sample it (bottom-left, top-left, bottom-right, top-right).
type Sprite struct {
	SheetID  string
	SpriteID string

	X, Y          int
	Width, Height int

	TexCoords [8]float32
}

// FullID is the sheet-qualified id a tile or image builder references a
// sprite by.
func (s *Sprite) FullID() string { return s.SheetID + "/" + s.SpriteID }

func newSprite(sheetID, spriteID string, imageW, imageH, x, y, w, h int) *Sprite {
	fw, fh := float32(imageW), float32(imageH)
	xMin := float32(x) / fw
	yMin := (fh - float32(y+h)) / fh
	xMax := float32(x+w) / fw
	yMax := (fh - float32(y)) / fh

	return &Sprite{
		SheetID: sheetID, SpriteID: spriteID,
		X: x, Y: y, Width: w, Height: h,
		TexCoords: [8]float32{xMin, yMax, xMin, yMin, xMax, yMax, xMax, yMin},
	}
}

// SpritesheetGroupTemplate is a reusable (size, areas) pair a group can
// pull in via from_template, so sheets with many same-sized sprites don't
// repeat their size on every group.
type SpritesheetGroupTemplate struct {
	Width, Height int
	Areas         map[string][]int
}

// SpritesheetGroup is one named cluster of sprites within a sheet, sharing
// a base position/size and an optional id prefix.
type SpritesheetGroup struct {
	Width, Height         int
	X, Y                  int
	Prefix                string
	Areas                 map[string][]int
	FromTemplate          string
	SimpleImageGenScale   int
	GridMultiplier        int
}

// SpritesheetBuilder is the as-loaded form of a spritesheet definition.
type SpritesheetBuilder struct {
	ID                  string
	Src                 string
	SourceDirs          []string
	Width, Height       int
	SimpleImageGenScale int
	GridMultiplier      int
	Groups              map[string]SpritesheetGroup
	Templates           map[string]SpritesheetGroupTemplate
}

// Spritesheet is a decoded source image plus every sprite cut from it.
type Spritesheet struct {
	ID      string
	Image   image.Image
	Sprites map[string]*Sprite

	// Generated holds any additionally scaled sub-images requested via a
	// group or sheet simple_image_gen_scale, keyed by the sprite's full id.
	Generated map[string]image.Image
}

// NewSpritesheet resolves builder.Src against builder.SourceDirs (later
// roots override earlier ones, so the list is searched in reverse),
// decodes it, and cuts out every sprite named by builder's groups.
func NewSpritesheet(builder SpritesheetBuilder) (*Spritesheet, error) {
	var img image.Image
	for i := len(builder.SourceDirs) - 1; i >= 0; i-- {
		path := filepath.Join(builder.SourceDirs[i], builder.Src)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		decoded, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			continue
		}
		img = decoded
		break
	}
	if img == nil {
		return nil, fmt.Errorf("resource: unable to read spritesheet source %q from any of %v", builder.Src, builder.SourceDirs)
	}

	bounds := img.Bounds()
	imageW, imageH := bounds.Dx(), bounds.Dy()
	multiplier := builder.GridMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	sheet := &Spritesheet{ID: builder.ID, Image: img, Sprites: map[string]*Sprite{}, Generated: map[string]image.Image{}}

	for _, group := range builder.Groups {
		baseW, baseH := group.Width, group.Height
		areas := map[string][]int{}
		if group.FromTemplate != "" {
			if tmpl, ok := builder.Templates[group.FromTemplate]; ok {
				baseW, baseH = tmpl.Width, tmpl.Height
				for k, v := range tmpl.Areas {
					areas[k] = v
				}
			} else {
				logger.Warn("spritesheet template not found", "sheet", builder.ID, "template", group.FromTemplate)
				continue
			}
		}
		for k, v := range group.Areas {
			areas[k] = v
		}

		groupMultiplier := group.GridMultiplier
		if groupMultiplier == 0 {
			groupMultiplier = multiplier
		}

		for baseID, coords := range areas {
			spriteID := baseID
			if group.Prefix != "" {
				spriteID = group.Prefix + baseID
			}

			var x, y, w, h int
			switch len(coords) {
			case 2:
				x, y, w, h = group.X+coords[0], group.Y+coords[1], baseW, baseH
			case 4:
				x, y, w, h = group.X+coords[0], group.Y+coords[1], baseW+coords[2], baseH+coords[3]
			default:
				logger.Warn("sprite coordinates must be [x,y] or [x,y,w,h]", "sheet", builder.ID, "sprite", spriteID)
				continue
			}
			x, y, w, h = x*groupMultiplier, y*groupMultiplier, w*groupMultiplier, h*groupMultiplier

			if _, exists := sheet.Sprites[spriteID]; exists {
				logger.Warn("duplicate sprite id", "sheet", builder.ID, "sprite", spriteID)
				continue
			}
			if x < 0 || y < 0 || x+w > imageW || y+h > imageH {
				logger.Warn("sprite coordinates fall outside image bounds", "sheet", builder.ID, "sprite", spriteID)
				continue
			}

			sprite := newSprite(builder.ID, spriteID, imageW, imageH, x, y, w, h)
			sheet.Sprites[spriteID] = sprite

			scale := group.SimpleImageGenScale
			if scale == 0 {
				scale = builder.SimpleImageGenScale
			}
			if scale > 0 {
				sheet.Generated[sprite.FullID()] = scaleSprite(img, x, y, w, h, scale)
			}
		}
	}

	return sheet, nil
}

// scaleSprite crops the (x,y,w,h) rectangle out of src and downsamples it
// by the given integer scale using a nearest-neighbour resize, matching
// the authoring convention of drawing sprites at an integer multiple of
// their logical size.
func scaleSprite(src image.Image, x, y, w, h, scale int) image.Image {
	cropped := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(cropped, cropped.Bounds(), src, image.Pt(x, y), draw.Src)

	dstW, dstH := w/scale, h/scale
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)
	return dst
}

// sheetCache memoizes decoded spritesheets by id, since the same sheet
// may be referenced by many tiles and images.
type sheetCache struct {
	mu     sync.RWMutex
	sheets map[string]*Spritesheet
}

func newSheetCache() *sheetCache {
	return &sheetCache{sheets: map[string]*Spritesheet{}}
}

func (c *sheetCache) get(id string) (*Spritesheet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sheets[id]
	return s, ok
}

func (c *sheetCache) put(s *Spritesheet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheets[s.ID] = s
}
