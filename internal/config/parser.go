package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/rasterpaint/internal/surface"
)

// ErrBadColor is returned for a value that is neither a known color name nor
// a hex color.
var ErrBadColor = errors.New("invalid color")

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "mask":
			err = setMaskField(cfg, key, value)
		case "filters":
			err = setFilterField(&cfg.Filters, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "viewer":
			err = setColorField(&cfg.Viewer, key, value)
		case "palette":
			var col surface.Color
			col, err = ParseColor(value)
			if err == nil {
				cfg.Palette[strings.ToLower(key)] = col
			}
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "undo_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		if n < 1 {
			return fmt.Errorf("undo_depth must be at least 1, got %d", n)
		}
		cfg.UndoDepth = n
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setMaskField(cfg *Config, key, value string) error {
	if strings.ToLower(key) != "color" {
		return nil
	}
	col, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}
	cfg.MaskColor = col
	return nil
}

func setFilterField(f *Filters, key, value string) error {
	float := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
		if v <= 0 {
			return fmt.Errorf("key %s must be positive, got %v", key, v)
		}
		*dst = v
		return nil
	}
	integer := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		*dst = v
		return nil
	}
	switch strings.ToLower(key) {
	case "blur_sigma":
		return float(&f.BlurSigma)
	case "unsharpen_sigma":
		return float(&f.UnsharpenSigma)
	case "unsharpen_threshold":
		return integer(&f.UnsharpenThreshold)
	case "brighten":
		return integer(&f.Brighten)
	case "gray_r":
		return float(&f.GrayR)
	case "gray_g":
		return float(&f.GrayG)
	case "gray_b":
		return float(&f.GrayB)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

var colorType = reflect.TypeOf(surface.Color(0))

// setColorField sets the surface.Color field of *dst whose name matches key
// case-insensitively. Unknown keys are ignored.
func setColorField(dst any, key, value string) error {
	val := reflect.ValueOf(dst).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != colorType {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG color name such as
// "tomato" or "transparent".
func ParseColor(s string) (surface.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		name := strings.ToLower(s)
		if name == "transparent" {
			return surface.Transparent, nil
		}
		if c, ok := colornames.Map[name]; ok {
			return surface.RGBA(c.R, c.G, c.B, c.A), nil
		}
		return 0, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	hex := strings.TrimPrefix(s, "#")
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	switch len(hex) {
	case 6:
		return surface.RGBA(uint8(val>>16), uint8(val>>8), uint8(val), 255), nil
	case 8:
		return surface.RGBA(uint8(val>>24), uint8(val>>16), uint8(val>>8), uint8(val)), nil
	}
	return 0, fmt.Errorf("%q: invalid hex length: %w", s, ErrBadColor)
}
