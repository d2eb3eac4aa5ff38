package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame   int     `json:"frame"`
	Image   string  `json:"image"`
	Elapsed float64 `json:"elapsed"`
	Clock   string  `json:"clock"`
	State   string  `json:"state"`
	Segment int     `json:"segment"`
	Camera  string  `json:"camera"`
	ScoreA  string  `json:"score_a"`
	ScoreB  string  `json:"score_b"`
	Rallies int     `json:"rallies"`
}

// Manifest is the manifest.json document.
type Manifest struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	FPS    int             `json:"fps"`
	Frames []ManifestEntry `json:"frames"`
}

// NewManifest lists the successfully written frames of a run.
func NewManifest(cfg Config, results []Result) Manifest {
	m := Manifest{Width: cfg.Width, Height: cfg.Height, FPS: cfg.FPS}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame:   r.Frame,
			Image:   r.Image,
			Elapsed: r.Snap.Elapsed,
			Clock:   r.Snap.Clock,
			State:   r.Snap.State,
			Segment: r.Snap.Segment,
			Camera:  r.Snap.Camera,
			ScoreA:  r.Snap.LabelA,
			ScoreB:  r.Snap.LabelB,
			Rallies: r.Snap.Rallies,
		})
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
