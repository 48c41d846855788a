package choreography

import (
	"fmt"

	"github.com/go-drift/choreo/pkg/graphics"
)

// Property names an animatable target property.
type Property int

const (
	Alpha Property = iota
	ScaleX
	ScaleY
	Rotation
	RotationX
	RotationY
	TranslationX
	TranslationY
	TranslationZ
	PositionX
	PositionY
	Width
	Height
	Color
	CornerRadii
	Margins
	Paddings

	propertyCount
)

var propertyNames = [propertyCount]string{
	Alpha:        "alpha",
	ScaleX:       "scaleX",
	ScaleY:       "scaleY",
	Rotation:     "rotation",
	RotationX:    "rotationX",
	RotationY:    "rotationY",
	TranslationX: "translationX",
	TranslationY: "translationY",
	TranslationZ: "translationZ",
	PositionX:    "positionX",
	PositionY:    "positionY",
	Width:        "width",
	Height:       "height",
	Color:        "color",
	CornerRadii:  "cornerRadii",
	Margins:      "margins",
	Paddings:     "paddings",
}

func (p Property) String() string {
	if p >= 0 && p < propertyCount {
		return propertyNames[p]
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// ParseProperty resolves a property by its String name.
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if n == name {
			return Property(p), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", name)
}

// Scalar reports whether the property holds a single float64.
func (p Property) Scalar() bool {
	return p >= Alpha && p <= Height
}

// requires returns the capability a target needs for the property to be
// animated on it.
func (p Property) requires() Capabilities {
	switch p {
	case Width, Height:
		return Capabilities{Resizable: true}
	case Color:
		return Capabilities{Colorable: true}
	case CornerRadii:
		return Capabilities{MutableCorners: true}
	case Margins:
		return Capabilities{HasMargins: true}
	case Paddings:
		return Capabilities{HasPaddings: true}
	}
	return Capabilities{}
}

// Properties is a snapshot of every animatable value of a target.
type Properties struct {
	Alpha        float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	RotationX    float64
	RotationY    float64
	TranslationX float64
	TranslationY float64
	TranslationZ float64
	PositionX    float64
	PositionY    float64
	Width        float64
	Height       float64
	Color        graphics.Color
	CornerRadii  graphics.CornerRadii
	Margins      graphics.Insets
	Paddings     graphics.Insets
}

// DefaultProperties returns an untransformed, opaque snapshot whose position
// and size come from bounds.
func DefaultProperties(bounds graphics.Rect) Properties {
	return Properties{
		Alpha:     1,
		ScaleX:    1,
		ScaleY:    1,
		PositionX: bounds.Left,
		PositionY: bounds.Top,
		Width:     bounds.Width(),
		Height:    bounds.Height(),
		Color:     graphics.ColorTransparent,
	}
}

func (p *Properties) scalar(prop Property) *float64 {
	switch prop {
	case Alpha:
		return &p.Alpha
	case ScaleX:
		return &p.ScaleX
	case ScaleY:
		return &p.ScaleY
	case Rotation:
		return &p.Rotation
	case RotationX:
		return &p.RotationX
	case RotationY:
		return &p.RotationY
	case TranslationX:
		return &p.TranslationX
	case TranslationY:
		return &p.TranslationY
	case TranslationZ:
		return &p.TranslationZ
	case PositionX:
		return &p.PositionX
	case PositionY:
		return &p.PositionY
	case Width:
		return &p.Width
	case Height:
		return &p.Height
	}
	return nil
}

// Value returns the value of prop: a float64 for scalar properties, a
// graphics.Color, graphics.CornerRadii or graphics.Insets otherwise.
func (p *Properties) Value(prop Property) any {
	if f := p.scalar(prop); f != nil {
		return *f
	}
	switch prop {
	case Color:
		return p.Color
	case CornerRadii:
		return p.CornerRadii
	case Margins:
		return p.Margins
	case Paddings:
		return p.Paddings
	}
	return nil
}

// Set stores v into prop. It returns an error when v has the wrong type.
func (p *Properties) Set(prop Property, v any) error {
	if f := p.scalar(prop); f != nil {
		x, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%s: want float64, got %T", prop, v)
		}
		*f = x
		return nil
	}
	var ok bool
	switch prop {
	case Color:
		p.Color, ok = v.(graphics.Color)
	case CornerRadii:
		p.CornerRadii, ok = v.(graphics.CornerRadii)
	case Margins:
		p.Margins, ok = v.(graphics.Insets)
	case Paddings:
		p.Paddings, ok = v.(graphics.Insets)
	default:
		return fmt.Errorf("unknown property %v", prop)
	}
	if !ok {
		return fmt.Errorf("%s: unexpected value type %T", prop, v)
	}
	return nil
}
