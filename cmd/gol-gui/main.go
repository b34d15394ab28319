//go:build ebiten

package main

import (
	"errors"
	"log"

	"github.com/lisp-ceo/gol/internal/app"
	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/integrii/flaggy"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind()
	flaggy.Parse()

	fill, err := life.ParseFill(cfg.Fill)
	if err != nil {
		log.Fatal(err)
	}
	u, err := life.NewWithConfig(life.Config{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Fill:    fill,
		Seed:    cfg.Seed,
		Threads: cfg.Threads,
	})
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(u, cfg.Scale, cfg.TPS, cfg.Seed)
	size := u.Size()

	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
