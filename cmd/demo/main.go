// Command demo is an interactive viewer for tile maps: it builds a map from
// a scene description, seeds it with a Tengo terrain script, and renders it
// with a pannable, zoomable camera and switchable overhang modes. Without
// flags it runs an embedded scene against a generated placeholder atlas, so
// it needs no files on disk.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scenePath := flag.String("scene", "", "scene YAML to load (embedded scene otherwise)")
	watchFiles := flag.Bool("watch", false, "rebuild when the scene or its script change on disk")
	fullscreen := flag.Bool("fullscreen", false, "start fullscreen")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tilemap demo")
	if *fullscreen {
		ebiten.SetFullscreen(true)
	}

	game, err := NewGame(*scenePath, *watchFiles)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
