// Package export renders journal metadata and grouped transactions back to
// plain-text journal format.
package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abstratium-dev/abstraccount/pkg/api"
)

// Style controls how exported journal text is rendered.
type Style struct {
	// StatusMarkers maps transaction status values to their text marker.
	StatusMarkers map[string]string `yaml:"status_markers"`
	// AlignColumn is the column posting amounts are right-aligned towards.
	AlignColumn int `yaml:"align_column"`
	// SectionHeaders toggles the banner comments between file sections.
	SectionHeaders bool `yaml:"section_headers"`
}

// DefaultStyle returns the stock journal rendering style: cleared
// transactions marked with "*", pending with "!", uncleared unmarked.
func DefaultStyle() Style {
	return Style{
		StatusMarkers: map[string]string{
			api.StatusCleared:   "*",
			api.StatusPending:   "!",
			api.StatusUncleared: "",
		},
		AlignColumn:    80,
		SectionHeaders: true,
	}
}

// LoadStyle reads a style from a YAML file. Unset fields fall back to the
// defaults.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()

	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("failed to read style file: %w", err)
	}

	var loaded struct {
		StatusMarkers  map[string]string `yaml:"status_markers"`
		AlignColumn    int               `yaml:"align_column"`
		SectionHeaders *bool             `yaml:"section_headers"`
	}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return style, fmt.Errorf("failed to parse style YAML: %w", err)
	}

	for status, marker := range loaded.StatusMarkers {
		style.StatusMarkers[status] = marker
	}
	if loaded.AlignColumn > 0 {
		style.AlignColumn = loaded.AlignColumn
	}
	if loaded.SectionHeaders != nil {
		style.SectionHeaders = *loaded.SectionHeaders
	}

	return style, nil
}

// marker returns the text marker for a transaction status. Unknown statuses
// render unmarked.
func (s Style) marker(status string) string {
	return s.StatusMarkers[status]
}
