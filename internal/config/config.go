package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Config holds all configurable paths, simulation and render settings.
type Config struct {
	// Paths
	BaseDir      string `json:"base_dir"`
	OutputDir    string `json:"output_dir"`
	CourtTexture string `json:"court_texture"`

	// Render settings
	Width       int `json:"width"`
	Height      int `json:"height"`
	Supersample int `json:"supersample"`
	TextureSize int `json:"texture_size"`
	Workers     int `json:"workers"`

	// Export
	FPS      int     `json:"fps"`
	Duration float64 `json:"duration"`

	// Simulation
	Seed        uint64  `json:"seed"`
	Outcome     string  `json:"outcome"`
	ReachRadius float64 `json:"reach_radius"`
	Shots       int     `json:"shots"`
	TrailSize   int     `json:"trail_size"`
	PointsToWin int     `json:"points_to_win"`

	// Server
	ServerAddr  string   `json:"server_addr"`
	CORSOrigins []string `json:"cors_origins"`
}

// Outcome policies.
const (
	OutcomeRandom = "random"
	OutcomeReach  = "reach"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty, then the environment
// for the server settings, then the config file.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.CourtTexture != "" {
		c.CourtTexture = flags.CourtTexture
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Duration > 0 {
		c.Duration = flags.Duration
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Outcome != "" {
		c.Outcome = flags.Outcome
	}
	if flags.Shots > 0 {
		c.Shots = flags.Shots
	}
	if flags.ServerAddr != "" {
		c.ServerAddr = flags.ServerAddr
	}

	c.ServerAddr = getEnv("SERVER_ADDR", c.ServerAddr)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.CourtTexture != "" && !filepath.IsAbs(c.CourtTexture) {
		c.CourtTexture = filepath.Join(c.BaseDir, c.CourtTexture)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.TextureSize <= 0 {
		c.TextureSize = 512
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Duration <= 0 {
		c.Duration = 10
	}

	// Simulation
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	switch c.Outcome {
	case OutcomeRandom, OutcomeReach:
	default:
		c.Outcome = OutcomeRandom
	}
	if c.ReachRadius <= 0 {
		c.ReachRadius = 1.5
	}
	if c.TrailSize <= 0 {
		c.TrailSize = 24
	}
	if c.PointsToWin <= 0 {
		c.PointsToWin = 4
	}

	// Server
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
}

// Frames returns how many frames an export of Duration seconds at FPS
// contains.
func (c *Config) Frames() int {
	n := int(c.Duration*float64(c.FPS) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir      string
	OutputDir    string
	CourtTexture string
	Width        int
	Height       int
	Supersample  int
	Workers      int
	FPS          int
	Duration     float64
	Seed         uint64
	Outcome      string
	Shots        int
	ServerAddr   string
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
