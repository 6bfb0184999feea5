// Package describe assembles natural-language image descriptions from
// categorical analysis results. Each clause comes from a static lookup table
// keyed by category; fragments carry their own leading punctuation so the
// concatenation needs no separator logic.
package describe

import (
	"fmt"
	"strings"

	"go-image-describer/internal/inference"
	"go-image-describer/pkg/models"
)

var orientationClauses = map[string]string{
	"ultra_wide_panoramic": " captured in an ultra-wide panoramic format that's perfect for sweeping vistas and expansive scenes",
	"wide_landscape":       " shot in a wide landscape format ideal for scenic compositions",
	"standard_landscape":   " captured in standard landscape orientation",
	"square_format":        " composed in a square format that creates balanced, centered framing",
	"portrait_format":      " shot in portrait orientation, ideal for vertical subjects",
}

const orientationFallback = " with good compositional framing"

var subjectClauses = map[string]string{
	"natural_landscape":       ". This appears to be a landscape photograph featuring natural outdoor elements. The combination of colors suggests scenery that includes sky, water, or vegetation, creating a harmonious natural composition.",
	"nature_scene":            ". This image captures a nature scene with organic elements and earth tones. The composition likely features vegetation, terrain, or wildlife in their natural environment.",
	"sky_or_water_scene":      ". The color palette indicates this image features sky or water elements, possibly clouds, horizon lines, or aquatic scenes that create a sense of openness and tranquility.",
	"architectural_scene":     ". This appears to be architectural photography featuring buildings, structures, or urban elements. The neutral color palette suggests modern or contemporary design aesthetics.",
	"high_contrast_subject":   ". This image uses dramatic contrast and limited color palette to create visual impact. The composition likely features strong lighting, silhouettes, or bold graphic elements.",
	"possible_portrait":       ". The composition and color palette suggest this might be portrait photography, possibly featuring people or close-up subjects with careful attention to lighting and framing.",
	"minimalist_composition":  ". This image embraces minimalist aesthetics with a restrained color palette and clean composition. The simplicity creates visual elegance and focus.",
	"warm_colorful_scene":     ". This vibrant image features warm, energetic colors that create visual excitement. The palette suggests subjects like flowers, sunset scenes, or colorful environments.",
	"artistic_creative_scene": ". This appears to be creative or artistic photography with an intentional color palette designed to evoke emotion and visual interest.",
	"diverse_colorful_scene":  ". This image features a rich, diverse color palette that creates visual complexity and interest. The variety of colors suggests a dynamic, engaging subject matter.",
	"balanced_composition":    ". This image demonstrates thoughtful composition with a balanced color palette that creates visual harmony and professional appeal.",
}

const subjectFallback = ". This image shows careful attention to composition and visual elements."

var moodClauses = map[string]string{
	"dramatic_moody":      " The dramatic lighting and contrast create a moody, atmospheric quality that draws viewer attention.",
	"serene_peaceful":     " The color palette creates a serene, peaceful atmosphere that's calming and contemplative.",
	"natural_fresh":       " The natural tones evoke freshness and vitality, suggesting outdoor environments or organic subjects.",
	"energetic_warm":      " The warm colors create an energetic, inviting atmosphere that feels vibrant and engaging.",
	"bright_cheerful":     " The bright palette creates a cheerful, optimistic mood that's uplifting and positive.",
	"creative_artistic":   " The unique color choices suggest artistic creativity and intentional aesthetic decisions.",
	"clean_minimal":       " The clean, minimal palette creates a sophisticated, contemporary aesthetic.",
	"balanced_harmonious": " The balanced color relationships create visual harmony and professional polish.",
}

const moodFallback = " The color choices contribute to the overall visual impact."

// photographyClauses has no fallback: unmatched types add no clause.
var photographyClauses = map[string]string{
	"portrait_photography":      " This appears to be portrait-style photography with careful attention to subject framing and lighting.",
	"panoramic_photography":     " The panoramic format is designed to capture expansive views and wide scenic compositions.",
	"architectural_photography": " This represents architectural photography focusing on structural elements and design.",
	"landscape_photography":     " This is landscape photography showcasing natural environments and scenic beauty.",
	"artistic_photography":      " This represents artistic photography with creative vision and aesthetic intent.",
	"professional_photography":  " The technical quality indicates professional photography standards and equipment.",
}

// Compose builds the full description: dimension clause, orientation clause,
// subject clause, mood clause, resolution clause, photography-type clause.
// The result is always non-empty.
func Compose(a inference.Analysis, m *models.ImageMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "This is a %d x %d pixel image", m.Width, m.Height)
	b.WriteString(clause(orientationClauses, a.Orientation, orientationFallback))
	b.WriteString(clause(subjectClauses, a.LikelySubject, subjectFallback))
	b.WriteString(clause(moodClauses, a.Mood, moodFallback))
	b.WriteString(resolutionClause(m.TotalPixels))
	if frag, ok := photographyClauses[a.PhotographyType]; ok {
		b.WriteString(frag)
	}

	return b.String()
}

func clause(table map[string]string, category, fallback string) string {
	if frag, ok := table[category]; ok {
		return frag
	}
	return fallback
}

// resolutionClause comments on capture quality by megapixel band; images
// under 2 megapixels get no clause.
func resolutionClause(totalPixels int) string {
	switch {
	case totalPixels > 15_000_000:
		return " The exceptional resolution (15+ megapixels) indicates professional-grade capture suitable for large format printing, detailed analysis, or commercial use."
	case totalPixels > 10_000_000:
		return " The high resolution (10+ megapixels) ensures excellent detail and quality suitable for professional applications and large displays."
	case totalPixels > 5_000_000:
		return " The good resolution (5+ megapixels) provides clear detail suitable for most display and print purposes."
	case totalPixels > 2_000_000:
		return " The standard resolution provides adequate detail for web use and standard printing."
	default:
		return ""
	}
}
