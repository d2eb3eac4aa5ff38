package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"smartcourt/internal/court"
	"smartcourt/internal/texture"
)

func dumpTexture(src texture.Source, dst string) error {
	img, err := src()
	if err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	b := img.Bounds()
	fmt.Printf("OK  %s  (%dx%d)\n", dst, b.Dx(), b.Dy())
	return nil
}

func main() {
	width := flag.Int("width", court.DefaultTextureWidth, "Texture width in pixels")
	height := flag.Int("height", court.DefaultTextureHeight, "Texture height in pixels")
	in := flag.String("in", "", "Convert this TGA/PNG/JPEG court image instead of painting one")
	out := flag.String("out", "court.webp", "Output WebP path")
	flag.Parse()

	src := texture.Procedural(court.Default(), *width, *height)
	if *in != "" {
		src = texture.File(*in)
	}

	if err := dumpTexture(src, *out); err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}
}
