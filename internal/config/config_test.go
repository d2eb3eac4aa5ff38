package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"width": 320, "height": 200, "outcome": "reach", "seed": 7, "cors_origins": ["http://a"]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 200 || cfg.Outcome != OutcomeReach || cfg.Seed != 7 {
		t.Errorf("Load() = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad json) = nil error")
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("CORS_ORIGINS", "")
	base := t.TempDir()
	var cfg Config
	cfg.Resolve(Flags{BaseDir: base})

	if cfg.Width != 640 || cfg.Height != 360 || cfg.Supersample != 2 {
		t.Errorf("render defaults = %dx%d x%d", cfg.Width, cfg.Height, cfg.Supersample)
	}
	if cfg.OutputDir != filepath.Join(base, "renders") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Outcome != OutcomeRandom || cfg.PointsToWin != 4 || cfg.TrailSize != 24 {
		t.Errorf("simulation defaults = %q %d %d", cfg.Outcome, cfg.PointsToWin, cfg.TrailSize)
	}
	if cfg.ServerAddr != ":8080" || !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("server defaults = %q %v", cfg.ServerAddr, cfg.CORSOrigins)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if got := cfg.Frames(); got != 300 {
		t.Errorf("Frames() = %d, want 300", got)
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	cfg := Config{Width: 100, OutputDir: "out", ServerAddr: ":7000", Outcome: "bogus"}
	cfg.Resolve(Flags{BaseDir: "/srv", Width: 200, ServerAddr: ":7500"})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats file", cfg.Width, 200},
		{"relative output joined", cfg.OutputDir, filepath.Join("/srv", "out")},
		{"env beats flag", cfg.ServerAddr, ":9000"},
		{"cors from env", cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}},
		{"unknown outcome", cfg.Outcome, OutcomeRandom},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSimOptions(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		shots int
	}{
		{"reference rally", Config{Seed: 3, Outcome: OutcomeRandom, TrailSize: 12, PointsToWin: 5}, 0},
		{"generated rally", Config{Seed: 3, Outcome: OutcomeReach, ReachRadius: 2, Shots: 9}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.cfg.SimOptions()
			if len(opts.Script) != tt.shots {
				t.Errorf("len(Script) = %d, want %d", len(opts.Script), tt.shots)
			}
			if opts.Script != nil {
				if err := opts.Script.Validate(); err != nil {
					t.Errorf("generated script: %v", err)
				}
			}
			if opts.Rally.Outcome == nil {
				t.Error("Outcome not set")
			}
			if opts.TrailSize != tt.cfg.TrailSize || opts.Rally.PointsToWin != tt.cfg.PointsToWin {
				t.Errorf("options = %+v", opts)
			}
		})
	}
}
