package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var errUnknownColor = errors.New("unknown color preset")

// ColorPreset is a solid surface color selectable from the menu.
type ColorPreset int

const (
	ColorWhite ColorPreset = iota + 1
	ColorRuby
	ColorEmerald
	ColorOcean
	ColorGold
	ColorSilver
)

// ColorPresets lists all presets in menu order.
var ColorPresets = [...]ColorPreset{ColorWhite, ColorRuby, ColorEmerald, ColorOcean, ColorGold, ColorSilver}

func (c ColorPreset) String() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorRuby:
		return "Ruby"
	case ColorEmerald:
		return "Emerald"
	case ColorOcean:
		return "Ocean"
	case ColorGold:
		return "Gold"
	case ColorSilver:
		return "Silver"
	}
	return fmt.Sprintf("ColorPreset(%d)", int(c))
}

// RGB returns the preset's color with components in [0, 1].
func (c ColorPreset) RGB() (mgl32.Vec3, error) {
	switch c {
	case ColorWhite:
		return mgl32.Vec3{1, 1, 1}, nil
	case ColorRuby:
		return mgl32.Vec3{0.8, 0, 0}, nil
	case ColorEmerald:
		return mgl32.Vec3{0, 0.6, 0}, nil
	case ColorOcean:
		return mgl32.Vec3{0, 0.4, 0.8}, nil
	case ColorGold:
		return mgl32.Vec3{0.83, 0.68, 0.21}, nil
	case ColorSilver:
		return mgl32.Vec3{0.75, 0.75, 0.75}, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("%w %d", errUnknownColor, int(c))
}
