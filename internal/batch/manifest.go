package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name       string  `json:"name"`
	Projection string  `json:"projection"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Rotate     float64 `json:"rotate"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Image      string  `json:"image,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every job and its outcome.
// results must be index-aligned with jobs, as returned by Run.
func WriteManifest(path string, jobs []Job, results []Result) error {
	if len(jobs) != len(results) {
		return fmt.Errorf("batch: manifest: %d jobs but %d results", len(jobs), len(results))
	}
	entries := make([]ManifestEntry, len(jobs))
	for i, j := range jobs {
		s := j.Settings
		entries[i] = ManifestEntry{
			Name:       j.Name,
			Projection: s.Projection,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			Rotate:     s.Rotate,
			Width:      s.Width,
			Height:     s.Height,
			Image:      results[i].Image,
			Error:      results[i].Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
