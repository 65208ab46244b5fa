package platform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position controls how a wallpaper image is fitted to a monitor. Values
// match DESKTOP_WALLPAPER_POSITION.
type Position int

const (
	PositionCenter Position = iota
	PositionTile
	PositionStretch
	PositionFit
	PositionFill
	PositionSpan
)

var positionNames = [...]string{
	PositionCenter:  "Center",
	PositionTile:    "Tile",
	PositionStretch: "Stretch",
	PositionFit:     "Fit",
	PositionFill:    "Fill",
	PositionSpan:    "Span",
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	return p >= PositionCenter && p <= PositionSpan
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// ParsePosition parses a position name, ignoring case.
func ParsePosition(s string) (Position, error) {
	for i, name := range positionNames {
		if strings.EqualFold(name, s) {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wallpaper position %q", s)
}

// MarshalText encodes the symbolic name.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid wallpaper position %d", int(p))
	}
	return []byte(positionNames[p]), nil
}

// UnmarshalText decodes the symbolic name.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalJSON accepts the symbolic name or the raw enum number.
func (p *Position) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Position(n).Valid() {
			return fmt.Errorf("invalid wallpaper position %d", n)
		}
		*p = Position(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("wallpaper position must be a string: %w", err)
	}
	return p.UnmarshalText([]byte(s))
}
