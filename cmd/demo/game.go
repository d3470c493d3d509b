package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/engine2d/ecs/render"
	"github.com/milk9111/engine2d/ecs/system"
	"github.com/milk9111/engine2d/engine"
	"github.com/milk9111/engine2d/input"
	"github.com/milk9111/engine2d/loop"
	"github.com/milk9111/engine2d/prefabs"
)

var background = color.RGBA{R: 0x1b, G: 0x1d, B: 0x26, A: 0xff}

type Game struct {
	engine  *engine.Engine
	src     input.Source
	watcher *prefabs.Watcher

	clock   loop.Clock
	stepper *loop.Stepper
	keys    *input.Poller

	sprites *render.SpriteRenderer
	overlay *render.DebugOverlay
	debug   bool
	status  string
}

func NewGame(eng *engine.Engine, src input.Source, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		engine:  eng,
		src:     src,
		watcher: watcher,
		stepper: loop.NewStepper(eng.Config.LoopConfig()),
		keys:    input.NewPoller(input.ActionDebug),
		sprites: render.NewSpriteRenderer(prefabs.EmbeddedFS()),
		overlay: render.NewDebugOverlay(eng.Physics),
		debug:   debug,
	}
	eng.Physics.OnCollisionEnter(func(c system.Collision) {
		switch system.PlayerTag {
		case c.EntityA.Tag:
			g.status = "player touched " + c.EntityB.Tag
		case c.EntityB.Tag:
			g.status = "player touched " + c.EntityA.Tag
		}
	})
	return g
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.keys.Poll(g.src).JustPressed(input.ActionDebug) {
		g.debug = !g.debug
	}

	dt := g.clock.Tick(time.Now())
	g.stepper.Advance(dt, g.engine.Update)
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.engine.Reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	entities := g.engine.World.Entities()
	g.sprites.Draw(screen, entities)
	if g.debug {
		g.overlay.Draw(screen, entities)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %d  %s", g.clock.FPS(), g.status), 10, g.engine.Config.Window.Height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.engine.Config.Window.Width, g.engine.Config.Window.Height
}
