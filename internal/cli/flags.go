package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/config"
	"github.com/matzehuels/parcoords/pkg/render"
)

// parseFormats parses a comma-separated format string into a slice.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(render.Formats, f) {
			return fmt.Errorf("invalid format: %s (must be one of %s)", f, strings.Join(render.Formats, ", "))
		}
	}
	return nil
}

// parseList splits a comma-separated list of names, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseBrush parses "name=lo:hi" into a brush in domain units.
func parseBrush(s string) (config.Brush, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return config.Brush{}, fmt.Errorf("invalid brush %q (want name=lo:hi)", s)
	}
	loStr, hiStr, ok := strings.Cut(rng, ":")
	if !ok {
		return config.Brush{}, fmt.Errorf("invalid brush %q (want name=lo:hi)", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(loStr), 64)
	if err != nil {
		return config.Brush{}, fmt.Errorf("brush %s: low bound: %w", name, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(hiStr), 64)
	if err != nil {
		return config.Brush{}, fmt.Errorf("brush %s: high bound: %w", name, err)
	}
	return config.Brush{Name: strings.TrimSpace(name), Lo: lo, Hi: hi}, nil
}

// parseLine parses "x1,y1,x2,y2" into the endpoints of a line brush.
func parseLine(s string) (a, b gg.Point, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return a, b, fmt.Errorf("invalid line %q (want x1,y1,x2,y2)", s)
	}
	var v [4]float64
	for i, p := range parts {
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return a, b, fmt.Errorf("invalid line %q: %w", s, err)
		}
	}
	return gg.Pt(v[0], v[1]), gg.Pt(v[2], v[3]), nil
}

// outputPath picks the file written for one format. With a single format an
// explicit output is used as is; otherwise it is a base path whose extension
// is replaced. Without an output the data file name is used as the base.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = filepath.Base(input)
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}
