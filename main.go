package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charcore/character"
	"github.com/milk9111/charcore/config"
	"github.com/milk9111/charcore/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	opts, err := config.LoadOptions()
	if err != nil {
		log.Fatal(err)
	}
	opts.Debug = opts.Debug || *debug

	prefabs.SetDir(opts.PrefabDir)

	char, err := character.Load(opts.Character, character.Options{GroundProbe: opts.GroundProbe})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if opts.Watch {
		watcher, err = prefabs.NewWatcher(opts.PrefabDir, filepath.Join(opts.PrefabDir, "scripts"))
		if err != nil {
			log.Printf("main: hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("charcore")

	game := NewGame(opts, char, watcher)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
