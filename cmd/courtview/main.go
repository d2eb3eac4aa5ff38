package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"smartcourt/internal/audio"
	"smartcourt/internal/config"
	"smartcourt/internal/driver"
	"smartcourt/internal/scene"
	"smartcourt/internal/terminal"
	"smartcourt/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	fps := flag.Int("fps", 0, "Frame rate (default: 30)")
	seed := flag.Uint64("seed", 0, "Random seed (default: time)")
	outcome := flag.String("outcome", "", "Point outcome policy: random or reach")
	shots := flag.Int("shots", 0, "Generate a rally with this many shots")
	mute := flag.Bool("mute", false, "Disable the contact sound")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{FPS: *fps, Seed: *seed, Outcome: *outcome, Shots: *shots})

	var cues *audio.Cues
	if !*mute {
		cues = audio.NewCues()
		if err := cues.Initialize(); err != nil {
			// Non-fatal, the viewer runs without sound
			log.Printf("Audio initialization failed: %v", err)
			cues = nil
		} else {
			defer cues.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	simOpts := cfg.SimOptions()
	textures := texture.CourtCache(scene.CourtTexture, simOpts.Court, cfg.TextureSize, cfg.TextureSize*2, cfg.CourtTexture)
	drv := driver.New(simOpts,
		driver.WithFrameRate(cfg.FPS),
		driver.WithTextures(textures),
		driver.WithOverlay(false),
	)
	if cues != nil {
		drv.OnEvent(cues.Handle)
	}

	surface := terminal.NewSurface(screen)
	if err := drv.Mount(surface); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v (terminal too small?)\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := drv.Start(ctx); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	terminal.Run(ctx, surface, drv)
	drv.Unmount()
}
