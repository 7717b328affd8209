package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/object"
)

const blinkFrequency = 10.0

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	groundColor     = color.RGBA{60, 200, 90, 255}
	shipColor       = color.RGBA{60, 220, 90, 255}
	topAlienColor   = color.RGBA{220, 90, 220, 255}
	midAlienColor   = color.RGBA{90, 210, 230, 255}
	lowAlienColor   = color.RGBA{235, 235, 235, 255}
	ufoColor        = color.RGBA{230, 60, 60, 255}
	shotColor       = color.RGBA{255, 255, 255, 255}
	bombColor       = color.RGBA{250, 220, 80, 255}
	textColor       = color.RGBA{240, 240, 240, 255}
	dimTextColor    = color.RGBA{160, 160, 160, 255}
)

var hudFace font.Face = basicfont.Face7x13

// rect is a screen-space rectangle, origin top left.
type rect struct {
	X, Y, W, H float32
}

// screenRect converts a field box centred at (x, y) into screen space,
// flipping y so the floor is at the bottom of the window.
func screenRect(fieldH, x, y, halfW, halfH float64) rect {
	return rect{
		X: float32(x - halfW),
		Y: float32(fieldH - (y + halfH)),
		W: float32(2 * halfW),
		H: float32(2 * halfH),
	}
}

// maskRects splits r into one rect per set bit of m.
func maskRects(dst []rect, m *draw.Mask, r rect) []rect {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return dst
	}
	cw := r.W / float32(w)
	ch := r.H / float32(h)
	for my := 0; my < h; my++ {
		for mx := 0; mx < w; mx++ {
			if m.At(mx, my) {
				dst = append(dst, rect{r.X + float32(mx)*cw, r.Y + float32(my)*ch, cw, ch})
			}
		}
	}
	return dst
}

// spriteLook returns the mask and color a sprite is drawn with. A nil mask
// means a solid rectangle.
func spriteLook(s *game.Sprite) (*draw.Mask, color.RGBA) {
	switch s.Kind {
	case object.KindPlayer:
		return &draw.MaskShip, shipColor
	case object.KindUFO:
		return &draw.MaskUFO, ufoColor
	case object.KindAlien:
		switch s.Variant {
		case object.AlienTop:
			return &draw.MaskAlienTop, topAlienColor
		case object.AlienMid:
			return &draw.MaskAlienMid, midAlienColor
		default:
			return &draw.MaskAlienBottom, lowAlienColor
		}
	case object.KindHitSplat:
		return &draw.MaskSplat, bombColor
	case object.KindAlienBullet:
		return nil, bombColor
	default:
		return nil, shotColor
	}
}

func drawSnapshot(screen *ebiten.Image, snap *game.Snapshot, best int) {
	screen.Fill(backgroundColor)

	var cells []rect
	for i := range snap.Sprites {
		s := &snap.Sprites[i]
		if s.Kind == object.KindPlayer && !object.ShouldRenderBlink(s.Invulnerable, blinkFrequency) {
			continue
		}
		r := screenRect(snap.Height, s.X, s.Y, s.HalfW, s.HalfH)
		mask, c := spriteLook(s)
		if mask == nil {
			vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, c, false)
			continue
		}
		cells = maskRects(cells[:0], mask, r)
		for _, cell := range cells {
			vector.DrawFilledRect(screen, cell.X, cell.Y, cell.W, cell.H, c, false)
		}
	}

	ground := screenRect(snap.Height, snap.Width/2, 0, snap.Width/2, 1)
	vector.DrawFilledRect(screen, ground.X, ground.Y, ground.W, ground.H, groundColor, false)

	drawHUD(screen, snap)
	if snap.GameOver {
		drawGameOver(screen, snap, best)
	}
}

func drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	width := int(snap.Width)
	text.Draw(screen, fmt.Sprintf("LIVES %d", snap.Lives), hudFace, 10, 20, textColor)
	drawCentered(screen, fmt.Sprintf("SCORE %06d", snap.Score), width/2, 20, textColor)
	wave := fmt.Sprintf("WAVE %d", snap.Wave)
	text.Draw(screen, wave, hudFace, width-10-textWidth(wave), 20, textColor)
}

func drawGameOver(screen *ebiten.Image, snap *game.Snapshot, best int) {
	cx := int(snap.Width) / 2
	cy := int(snap.Height) / 2

	overlay := screenRect(snap.Height, snap.Width/2, snap.Height/2, 170, 60)
	vector.DrawFilledRect(screen, overlay.X, overlay.Y, overlay.W, overlay.H, color.RGBA{0, 0, 0, 200}, false)
	vector.StrokeRect(screen, overlay.X, overlay.Y, overlay.W, overlay.H, 2, groundColor, false)

	drawCentered(screen, "GAME OVER", cx, cy-30, ufoColor)
	drawCentered(screen, fmt.Sprintf("Score: %d   Wave: %d", snap.Score, snap.Wave), cx, cy-6, textColor)
	drawCentered(screen, fmt.Sprintf("Best this session: %d", best), cx, cy+12, dimTextColor)
	drawCentered(screen, "Press R to play again, Q or ESC to quit", cx, cy+36, textColor)
}

func drawCentered(screen *ebiten.Image, s string, cx, y int, c color.Color) {
	text.Draw(screen, s, hudFace, cx-textWidth(s)/2, y, c)
}

func textWidth(s string) int {
	return text.BoundString(hudFace, s).Dx()
}
