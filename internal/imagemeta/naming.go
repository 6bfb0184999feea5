package imagemeta

import "math"

// ColorName maps an RGB value to a symbolic name from a fixed vocabulary
// using HSV thresholds. Achromatic checks (value, saturation) run before the
// hue ladder. The ladder assigns blue to hues in [150, 210), which covers
// sky and water tones; fully saturated monitor blue (hue 240) classifies as
// purple.
func ColorName(r, g, b uint8) string {
	h, s, v := rgbToHSV(float64(r), float64(g), float64(b))

	switch {
	case v < 0.2:
		return "black"
	case v > 0.8 && s < 0.2:
		return "white"
	case s < 0.2:
		return "gray"
	case h < 15 || h > 345:
		return "red"
	case h < 45:
		return "orange"
	case h < 75:
		return "yellow"
	case h < 150:
		return "green"
	case h < 210:
		return "blue"
	case h < 270:
		return "purple"
	case h < 330:
		return "pink"
	default:
		return "red"
	}
}

// rgbToHSV converts 0-255 channel values to hue in degrees and saturation
// and value in [0, 1].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	delta := max - min

	v = max / 255
	if max == 0 {
		s = 0
	} else {
		s = delta / max
	}

	if delta == 0 {
		h = 0
	} else {
		switch max {
		case r:
			h = (g - b) / delta
		case g:
			h = 2 + (b-r)/delta
		case b:
			h = 4 + (r-g)/delta
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}
	return h, s, v
}
