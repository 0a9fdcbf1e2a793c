package main

import (
	"flag"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/zephyrtronium/keycalc"
	"github.com/zephyrtronium/keycalc/keymap"
)

const (
	cellWidth     = 64
	cellHeight    = 48
	displayHeight = 48
	margin        = 6
	lineHeight    = 16
)

var (
	background = color.RGBA{0x20, 0x22, 0x28, 0xff}
	panel      = color.RGBA{0x10, 0x11, 0x14, 0xff}
	button     = color.RGBA{0x3a, 0x3e, 0x48, 0xff}
)

// glyphs replaces characters the debug font can't draw.
var glyphs = strings.NewReplacer("÷", "/", "√", "sqrt", "π", "pi", "²", "^2")

// namedKeys are the keys that don't produce input characters.
var namedKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyEnter, keymap.Enter},
	{ebiten.KeyNumpadEnter, keymap.Enter},
	{ebiten.KeyBackspace, keymap.Backspace},
	{ebiten.KeyEscape, keymap.Escape},
}

type calc struct {
	engine *keycalc.Engine
	keys   keymap.Keymap
	pad    keymap.Keypad
	chars  []rune
}

func (g *calc) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w, h := g.padSize()
		if b, ok := g.pad.Hit(x, y-displayHeight, w, h); ok {
			g.keys.Press(g.engine, b.Key)
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.keys.Press(g.engine, string(r))
	}
	for _, k := range namedKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.keys.Press(g.engine, k.name)
		}
	}
	return nil
}

func (g *calc) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w, _ := g.padSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), displayHeight, panel, false)
	d := g.engine.Render()
	ebitenutil.DebugPrintAt(screen, glyphs.Replace(d.Previous), margin, margin)
	ebitenutil.DebugPrintAt(screen, glyphs.Replace(d.Current), margin, margin+lineHeight)
	for row, buttons := range g.pad {
		for col, b := range buttons {
			x := col * cellWidth
			y := displayHeight + row*cellHeight
			vector.DrawFilledRect(screen, float32(x+1), float32(y+1), cellWidth-2, cellHeight-2, button, false)
			ebitenutil.DebugPrintAt(screen, glyphs.Replace(b.Label), x+margin, y+cellHeight/2-lineHeight/2)
		}
	}
}

func (g *calc) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.padSize()
	return w, displayHeight + h
}

// padSize returns the size of the keypad area below the display.
func (g *calc) padSize() (int, int) {
	cols, rows := g.pad.Size()
	return cols * cellWidth, rows * cellHeight
}

func main() {
	log.SetFlags(0)
	var (
		mapname string
		scale   int
	)
	flag.StringVar(&mapname, "keymap", "", "YAML file of key bindings to use over the defaults")
	flag.IntVar(&scale, "scale", 2, "window scale factor")
	flag.Parse()
	if scale <= 0 {
		log.Fatalf("scale (%d) must be positive", scale)
	}

	km, err := keymap.LoadFile(mapname)
	if err != nil {
		log.Fatal(err)
	}

	g := &calc{
		engine: keycalc.NewEngine(),
		keys:   km,
		pad:    keymap.DefaultKeypad(),
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("keycalc")
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
