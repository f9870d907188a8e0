package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RuntimeConfig holds user overrides for appearance.
// Nil fields fall back to the package defaults.
type RuntimeConfig struct {
	MarginColorR *uint8
	MarginColorG *uint8
	MarginColorB *uint8

	GridColorR *uint8
	GridColorG *uint8
	GridColorB *uint8

	LabelFontSize *float64
	ColorMap      *string
	Annotation    *string
}

// ParseHexColor parses "RRGGBB" or "#RRGGBB" (case-insensitive)
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: colour %q must have 6 hex digits", ErrInvalidConfiguration, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: colour %q is not hexadecimal", ErrInvalidConfiguration, s)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// SetMarginColor sets the margin colour from a hex string
func (c *RuntimeConfig) SetMarginColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.MarginColorR, c.MarginColorG, c.MarginColorB = &r, &g, &b
	return nil
}

// SetGridColor sets the gridline and label colour from a hex string
func (c *RuntimeConfig) SetGridColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.GridColorR, c.GridColorG, c.GridColorB = &r, &g, &b
	return nil
}

// GetMarginColor returns the margin colour, or the default unless all three channels are set
func (c *RuntimeConfig) GetMarginColor() (uint8, uint8, uint8) {
	if c.MarginColorR != nil && c.MarginColorG != nil && c.MarginColorB != nil {
		return *c.MarginColorR, *c.MarginColorG, *c.MarginColorB
	}
	return MarginColorR, MarginColorG, MarginColorB
}

// GetGridColor returns the gridline colour, or the default unless all three channels are set
func (c *RuntimeConfig) GetGridColor() (uint8, uint8, uint8) {
	if c.GridColorR != nil && c.GridColorG != nil && c.GridColorB != nil {
		return *c.GridColorR, *c.GridColorG, *c.GridColorB
	}
	return GridColorR, GridColorG, GridColorB
}

// GetLabelFontSize returns the label font size in points
func (c *RuntimeConfig) GetLabelFontSize() float64 {
	if c.LabelFontSize != nil && *c.LabelFontSize > 0 {
		return *c.LabelFontSize
	}
	return LabelFontSize
}

// GetColorMap returns the colour map name
func (c *RuntimeConfig) GetColorMap() string {
	if c.ColorMap != nil && *c.ColorMap != "" {
		return *c.ColorMap
	}
	return ColorMap
}

// GetAnnotation returns the annotation mode name
func (c *RuntimeConfig) GetAnnotation() string {
	if c.Annotation != nil && *c.Annotation != "" {
		return *c.Annotation
	}
	return Annotation
}
