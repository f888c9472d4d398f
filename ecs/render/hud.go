package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/evescroller/game"
)

// HUDState is everything the HUD shows for one frame.
type HUDState struct {
	State game.State
	// Loading is the loader text while a scene load is running.
	Loading string
	// Progress is the load progress in [0,1].
	Progress float64
	// Collected is the collectible counter label; empty hides it.
	Collected string
	Level     string
	Debug     []string
}

type HUD struct {
	small *text.GoTextFace
	large *text.GoTextFace
}

func NewHUD() (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	return &HUD{
		small: &text.GoTextFace{Source: src, Size: 18},
		large: &text.GoTextFace{Source: src, Size: 48},
	}, nil
}

var (
	textColor  = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	dimColor   = color.RGBA{A: 0xb0}
	barColor   = color.RGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff}
	debugColor = color.RGBA{R: 0x9f, G: 0xe0, B: 0x9f, A: 0xff}
)

func (h *HUD) Draw(screen *ebiten.Image, s HUDState) {
	b := screen.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())

	switch {
	case s.Loading != "":
		vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), dimColor, false)
		h.centered(screen, h.large, s.Loading, sw/2, sh/2-40)
		barW := sw * 0.4
		vector.StrokeRect(screen, float32(sw/2-barW/2), float32(sh/2+20), float32(barW), 16, 2, textColor, false)
		vector.DrawFilledRect(screen, float32(sw/2-barW/2), float32(sh/2+20), float32(barW*s.Progress), 16, barColor, false)
	case s.State == game.StateTitleScreen:
		h.centered(screen, h.large, "evescroller", sw/2, sh/2-60)
		h.centered(screen, h.small, "press any key", sw/2, sh/2+20)
	case s.State == game.StateLoading:
		h.centered(screen, h.large, "Loading...", sw/2, sh/2-24)
	}

	if s.Collected != "" && s.State == game.StatePlaying {
		h.at(screen, h.small, s.Collected, 16, 12, textColor)
	}
	if s.Level != "" && s.State == game.StatePlaying {
		w, _ := text.Measure(s.Level, h.small, 0)
		h.at(screen, h.small, s.Level, sw-w-16, 12, textColor)
	}

	for i, line := range s.Debug {
		h.at(screen, h.small, line, 16, sh-24*float64(len(s.Debug)-i)-8, debugColor)
	}
}

func (h *HUD) centered(screen *ebiten.Image, face *text.GoTextFace, msg string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, msg, face, op)
}

func (h *HUD) at(screen *ebiten.Image, face *text.GoTextFace, msg string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, msg, face, op)
}
