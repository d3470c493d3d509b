package main

import (
	_ "embed"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/engine2d/config"
	"github.com/milk9111/engine2d/engine"
	"github.com/milk9111/engine2d/input"
	"github.com/milk9111/engine2d/prefabs"
)

//go:embed demo.yaml
var demoConfig []byte

func main() {
	configPath := flag.String("config", "", "YAML config file (the built-in demo config is used when empty)")
	prefabDir := flag.String("prefabs", "", "prefab directory overriding the embedded prefabs")
	scene := flag.String("scene", "demo_scene.yaml", "scene file to load")
	debug := flag.Bool("debug", false, "start with the physics debug overlay on")
	watch := flag.Bool("watch", false, "hot reload prefabs and scripts from the prefab directory")
	flag.Parse()

	cfg, err := config.Parse(demoConfig)
	if err != nil {
		log.Fatal(err)
	}
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *prefabDir != "" {
		cfg.PrefabDir = *prefabDir
	}

	src := input.NewEbitenSource()
	eng, err := engine.New(cfg, prefabs.NewLibrary(cfg.PrefabDir), src)
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.LoadScene(*scene); err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			log.Fatalf("Watcher: %v", err)
		}
		defer watcher.Close()
		log.Printf("Watcher: watching %s", cfg.PrefabDir)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Loop.TargetFPS)

	game := NewGame(eng, src, watcher, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
