package cleaning

import (
	"fmt"
	"strings"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Variant selects which binary cleanup steps run.
type Variant int

const (
	// ClosingOnly applies a 2x2 closing without component filtering.
	ClosingOnly Variant = iota
	// ComponentOnly removes small components without morphology.
	ComponentOnly
	// Both applies the closing and then removes small components.
	Both
)

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case ClosingOnly:
		return "closing_only"
	case ComponentOnly:
		return "component_only"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// ParseVariant accepts the names returned by String. Dashes are accepted in
// place of underscores and matching is case-insensitive.
func ParseVariant(s string) (Variant, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "closing_only", "closing":
		return ClosingOnly, nil
	case "component_only", "components", "component":
		return ComponentOnly, nil
	case "both", "":
		return Both, nil
	default:
		return 0, fmt.Errorf("%w: unknown variant %q", raster.ErrInvalidParameter, s)
	}
}

// Polarity tells the pipeline which intensities are foreground.
type Polarity int

const (
	// DarkOnLight treats dark pixels as foreground (ink on paper).
	DarkOnLight Polarity = iota
	// LightOnDark treats bright pixels as foreground.
	LightOnDark
)

// String returns the configuration name of the polarity.
func (p Polarity) String() string {
	switch p {
	case DarkOnLight:
		return "dark_on_light"
	case LightOnDark:
		return "light_on_dark"
	default:
		return "unknown"
	}
}

// ParsePolarity accepts the names returned by String. An empty string yields
// DarkOnLight.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "dark_on_light", "dark", "":
		return DarkOnLight, nil
	case "light_on_dark", "light":
		return LightOnDark, nil
	default:
		return 0, fmt.Errorf("%w: unknown polarity %q", raster.ErrInvalidParameter, s)
	}
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	if v < ClosingOnly || v > Both {
		return nil, fmt.Errorf("%w: unknown variant %d", raster.ErrInvalidParameter, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant name accepted by ParseVariant.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText encodes the polarity by name.
func (p Polarity) MarshalText() ([]byte, error) {
	if p != DarkOnLight && p != LightOnDark {
		return nil, fmt.Errorf("%w: unknown polarity %d", raster.ErrInvalidParameter, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a polarity name accepted by ParsePolarity.
func (p *Polarity) UnmarshalText(text []byte) error {
	parsed, err := ParsePolarity(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
