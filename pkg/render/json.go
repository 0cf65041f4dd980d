package render

import (
	"encoding/json"

	"github.com/matzehuels/parcoords/pkg/chart"
)

// RenderJSON encodes snap as indented JSON.
func RenderJSON(snap chart.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
