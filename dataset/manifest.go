package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// LabelRecord is one manifest entry.
type LabelRecord struct {
	ImageID       string `json:"image_id"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	CaptchaString string `json:"captcha_string"`
	Filename      string `json:"filename"`
	Difficulty    string `json:"difficulty"`
}

// imageID formats the 1-based ordinal of a sample.
func imageID(i int) string {
	return fmt.Sprintf("%06d", i)
}

// WriteManifest writes records to path as an indented JSON array. A nil
// slice is written as an empty array.
func WriteManifest(path string, records []LabelRecord) error {
	if records == nil {
		records = []LabelRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("dataset: write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) ([]LabelRecord, error) {
	// #nosec G304 -- Manifest path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read manifest: %w", err)
	}
	var records []LabelRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset: decode manifest: %w", err)
	}
	return records, nil
}
