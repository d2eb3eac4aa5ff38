// Package batch exports a rally as a numbered WebP frame sequence. The
// simulation is stepped at a fixed rate on one goroutine; encoding fans
// out to a worker pool.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"smartcourt/internal/overlay"
	"smartcourt/internal/postprocess"
	"smartcourt/internal/raster"
	"smartcourt/internal/sim"
	"smartcourt/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	TexResolver texture.Resolver
	Sim         sim.Options
	Width       int
	Height      int
	Supersample int
	FPS         int
	Frames      int
	Workers     int
	Overlay     bool
	// Start is the wall-clock time of frame 0, shown by the HUD clock.
	Start time.Time
	// Quiet disables the progress reporter.
	Quiet bool
}

// Result holds the outcome of exporting one frame.
type Result struct {
	Frame   int
	Image   string
	Snap    sim.Snapshot
	Success bool
	Error   string
}

type job struct {
	idx  int
	img  *image.NRGBA
	snap sim.Snapshot
}

// Run steps a fresh world Frames times at 1/FPS seconds per frame,
// renders each frame and writes it as OutputDir/frames/NNNNN.webp.
func Run(cfg Config) ([]Result, error) {
	if cfg.FPS <= 0 || cfg.Frames <= 0 || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("batch: run: invalid settings %dx%d, %d frames at %d fps", cfg.Width, cfg.Height, cfg.Frames, cfg.FPS)
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	opts := cfg.Sim
	opts.Width, opts.Height = cfg.Width, cfg.Height
	world, err := sim.New(opts)
	if err != nil {
		return nil, fmt.Errorf("batch: run: %w", err)
	}
	defer world.Teardown()

	frameDir := filepath.Join(cfg.OutputDir, "frames")
	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: mkdir %s: %w", frameDir, err)
	}

	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if !cfg.Quiet {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan job, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = encodeFrame(frameDir, j)
				processed.Add(1)
			}
		}()
	}

	// Produce frames in simulation order
	renderer := raster.NewRenderer(cfg.TexResolver)
	fb := raster.NewFrameBuffer(cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)
	dt := 1.0 / float64(cfg.FPS)
	wall := cfg.Start
	if wall.IsZero() {
		wall = start
	}
	for i := 0; i < total; i++ {
		world.Tick(dt)
		snap := world.Snapshot(wall.Add(time.Duration(world.Elapsed() * float64(time.Second))))
		world.Events()

		renderer.Render(fb, world.Scene, world.Camera)
		img := fb.Image()
		if cfg.Supersample > 1 {
			img = postprocess.Downsample(img, cfg.Width, cfg.Height)
		}
		if cfg.Overlay {
			overlay.Draw(img, snap)
		}
		jobs <- job{idx: i, img: img, snap: snap}
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results, nil
}

// FrameName is the file name of frame i relative to the output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frames/%05d.webp", i)
}

func encodeFrame(frameDir string, j job) Result {
	name := FrameName(j.idx)
	res := Result{Frame: j.idx, Image: name, Snap: j.snap}

	outPath := filepath.Join(frameDir, filepath.Base(name))
	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, j.img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
