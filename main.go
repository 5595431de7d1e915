package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/squashjump/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "start with the physics debug overlay on")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload tuning when files in the prefab dir change")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose yaml files override the embedded tuning")
	mute := flag.Bool("mute", false, "start with sound muted")
	seed := flag.Uint64("seed", 0, "seed for shake and particle randomness (0 picks one from the clock)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	prefabs.SetOverrideDir(*prefabDir)
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 960)
	ebiten.SetWindowTitle("squashjump")

	game := NewGame(gameOptions{debug: *debug, watch: *watch, mute: *mute, seed: *seed})
	defer game.Close()

	// The aim cursor is drawn by the game.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
