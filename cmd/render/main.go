package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartcourt/internal/batch"
	"smartcourt/internal/config"
	"smartcourt/internal/scene"
	"smartcourt/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Frame width in pixels (default: 640)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 360)")
	supersample := flag.Int("supersample", 0, "Samples per pixel side (default: 2)")
	fps := flag.Int("fps", 0, "Frames per simulated second (default: 30)")
	duration := flag.Float64("duration", 0, "Simulated seconds to export (default: 10)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	seed := flag.Uint64("seed", 0, "Random seed for outcomes and generated rallies (default: time)")
	outcome := flag.String("outcome", "", "Point outcome policy: random or reach")
	shots := flag.Int("shots", 0, "Generate a rally with this many shots instead of the reference rally")
	outputDir := flag.String("output", "", "Output directory (default: ./renders)")
	courtTex := flag.String("texture", "", "Court texture image overriding the painted one")
	noHUD := flag.Bool("nohud", false, "Render without the score overlay")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:    *outputDir,
		CourtTexture: *courtTex,
		Width:        *width,
		Height:       *height,
		Supersample:  *supersample,
		Workers:      *workers,
		FPS:          *fps,
		Duration:     *duration,
		Seed:         *seed,
		Outcome:      *outcome,
		Shots:        *shots,
	})

	simOpts := cfg.SimOptions()
	textures := texture.CourtCache(scene.CourtTexture, simOpts.Court, cfg.TextureSize, cfg.TextureSize*2, cfg.CourtTexture)

	fmt.Println("SmartCourt rally renderer → WebP")
	fmt.Printf("Frames: %d (%.1fs at %d fps), %dx%d x%d, Workers: %d\n",
		cfg.Frames(), cfg.Duration, cfg.FPS, cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Seed: %d, Outcome: %s\n", cfg.Seed, cfg.Outcome)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		TexResolver: textures,
		Sim:         simOpts,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		FPS:         cfg.FPS,
		Frames:      cfg.Frames(),
		Workers:     cfg.Workers,
		Overlay:     !*noHUD,
		Start:       start,
	}

	results, err := batch.Run(batchCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Image, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(batchCfg, results)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
