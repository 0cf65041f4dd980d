package dimension

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/parcoords/pkg/errors"
)

// Metadata is user-supplied information about one attribute.
// Empty fields are left untouched.
type Metadata struct {
	Name      string `json:"name" toml:"name" yaml:"name"`
	Unit      string `json:"unit,omitempty" toml:"unit" yaml:"unit,omitempty"`
	Objective string `json:"objective,omitempty" toml:"objective" yaml:"objective,omitempty"` // "min" or "max"
	Color     string `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
}

// Warning reports metadata that could not be applied.
// Warnings never abort registration of the remaining entries.
type Warning struct {
	Name    string
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s.%s: %s", w.Name, w.Field, w.Message)
}

// Register applies metadata to the model and returns what was skipped.
// Each warning is also logged at warn level when logger is non-nil.
//
// Skipped entries:
//   - any field for an attribute the model does not contain
//   - an objective that is not a recognised direction
//   - a color on an attribute that is not a criterion, or a malformed color
func (m *Model) Register(meta []Metadata, logger *log.Logger) []Warning {
	var warnings []Warning
	warn := func(name, field, format string, args ...any) {
		w := Warning{Name: name, Field: field, Message: fmt.Sprintf(format, args...)}
		warnings = append(warnings, w)
		if logger != nil {
			logger.Warn("Ignoring dimension metadata", "dimension", name, "field", field, "reason", w.Message)
		}
	}

	for _, md := range meta {
		i, ok := m.index[md.Name]
		if !ok {
			warn(md.Name, "name", "attribute does not exist")
			continue
		}
		d := &m.descs[i]

		if md.Unit != "" {
			d.Unit = md.Unit
		}

		if md.Objective != "" {
			dir, ok := ParseDirection(md.Objective)
			if !ok {
				warn(md.Name, "objective", "unrecognised direction %q (want min or max)", md.Objective)
			} else if d.Objective == nil {
				d.Objective = &Objective{Direction: dir}
			} else {
				d.Objective.Direction = dir
			}
		}

		if md.Color != "" {
			switch {
			case d.Objective == nil:
				warn(md.Name, "color", "colors apply to criteria only")
			case errors.ValidateHexColor(md.Color) != nil:
				warn(md.Name, "color", "invalid color %q", md.Color)
			default:
				d.Objective.Color = md.Color
			}
		}
	}
	return warnings
}
