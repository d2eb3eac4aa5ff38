package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartcourt/internal/config"
	"smartcourt/internal/driver"
	"smartcourt/internal/scene"
	"smartcourt/internal/server"
	"smartcourt/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	addr := flag.String("addr", "", "Listen address (default: $SERVER_ADDR or :8080)")
	width := flag.Int("width", 0, "Frame width in pixels (default: 640)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 360)")
	fps := flag.Int("fps", 0, "Frame rate (default: 30)")
	seed := flag.Uint64("seed", 0, "Random seed (default: time)")
	outcome := flag.String("outcome", "", "Point outcome policy: random or reach")
	flag.Parse()

	fmt.Println("=== SmartCourt host ===")

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		ServerAddr: *addr,
		Width:      *width,
		Height:     *height,
		FPS:        *fps,
		Seed:       *seed,
		Outcome:    *outcome,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := server.NewHub()
	go hub.Run(ctx)

	simOpts := cfg.SimOptions()
	textures := texture.CourtCache(scene.CourtTexture, simOpts.Court, cfg.TextureSize, cfg.TextureSize*2, cfg.CourtTexture)
	drv := driver.New(simOpts,
		driver.WithFrameRate(cfg.FPS),
		driver.WithSupersample(cfg.Supersample),
		driver.WithTextures(textures),
	)

	surface := server.NewSurface(cfg.Width, cfg.Height, hub)
	srvHandlers := server.New(ctx, drv, surface, hub, cfg.CORSOrigins)
	drv.OnEvent(srvHandlers.PublishEvent)

	if err := drv.Mount(surface); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := drv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Simulation running at %dx%d, %d fps\n", cfg.Width, cfg.Height, cfg.FPS)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      srvHandlers.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Listening on %s\n", cfg.ServerAddr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/snapshot")
		fmt.Println("    GET  /api/v1/frame.webp")
		fmt.Println("    POST /api/v1/viewport")
		fmt.Println("    POST /api/contact")
		fmt.Println("    GET  /ws")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("Server error: %v\n", err)
		drv.Unmount()
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("Could not stop server: %v\n", err)
			}
		}
	}

	drv.Unmount()
	fmt.Println("✓ Shutdown complete")
}
