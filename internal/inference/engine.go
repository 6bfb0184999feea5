// Package inference maps pixel statistics to categorical judgments about an
// image's likely content. Every judgment comes from an ordered rule table
// evaluated top to bottom with first-match-wins semantics, so precedence is
// auditable and each rule is testable in isolation. Inference is pure and
// total: identical input always yields the identical Analysis, and every
// table carries a default category.
package inference

// Analysis holds the categorical judgments derived from one image.
type Analysis struct {
	Orientation     string
	LikelySubject   string
	Mood            string
	Setting         string
	PhotographyType string
}

// Input carries the facts the rule tables evaluate: the set of detected
// color names (order-insensitive) plus the image geometry.
type Input struct {
	Colors      ColorSet
	AspectRatio float64
	Width       int
	Height      int
}

func (in Input) totalPixels() int {
	return in.Width * in.Height
}

// ColorSet is a set of detected color names.
type ColorSet map[string]struct{}

// NewColorSet builds a ColorSet from the given names.
func NewColorSet(names ...string) ColorSet {
	set := make(ColorSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether the set contains every given name.
func (s ColorSet) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; !ok {
			return false
		}
	}
	return true
}

// HasAny reports whether the set contains at least one of the given names.
func (s ColorSet) HasAny(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of distinct color names.
func (s ColorSet) Len() int {
	return len(s)
}

// rule pairs a predicate with the category it selects.
type rule struct {
	when     func(Input) bool
	category string
}

func firstMatch(rules []rule, in Input, fallback string) string {
	for _, r := range rules {
		if r.when(in) {
			return r.category
		}
	}
	return fallback
}

var orientationRules = []rule{
	{func(in Input) bool { return in.AspectRatio > 2.0 }, "ultra_wide_panoramic"},
	{func(in Input) bool { return in.AspectRatio > 1.6 }, "wide_landscape"},
	{func(in Input) bool { return in.AspectRatio > 1.2 }, "standard_landscape"},
	{func(in Input) bool { return in.AspectRatio > 0.8 }, "square_format"},
}

var subjectRules = []rule{
	{func(in Input) bool { return in.Colors.Has("green", "blue") }, "natural_landscape"},
	{func(in Input) bool { return in.Colors.Has("green", "brown") }, "nature_scene"},
	{func(in Input) bool { return in.Colors.Has("blue", "white") }, "sky_or_water_scene"},
	{func(in Input) bool { return in.Colors.Has("white", "gray") }, "architectural_scene"},
	{func(in Input) bool { return in.Colors.Has("black") && in.Colors.Len() <= 2 }, "high_contrast_subject"},
	{func(in Input) bool { return in.AspectRatio < 1.0 && in.Colors.HasAny("beige", "tan") }, "possible_portrait"},
	{func(in Input) bool { return in.Colors.Len() <= 2 }, "minimalist_composition"},
	{func(in Input) bool { return in.Colors.HasAny("red", "orange", "yellow") }, "warm_colorful_scene"},
	{func(in Input) bool { return in.Colors.HasAny("purple", "pink") }, "artistic_creative_scene"},
	{func(in Input) bool { return in.Colors.Len() >= 4 }, "diverse_colorful_scene"},
}

var moodRules = []rule{
	{func(in Input) bool { return in.Colors.Has("black") && in.Colors.Len() <= 2 }, "dramatic_moody"},
	{func(in Input) bool { return in.Colors.Has("blue", "white") }, "serene_peaceful"},
	{func(in Input) bool { return in.Colors.Has("green") }, "natural_fresh"},
	{func(in Input) bool { return in.Colors.HasAny("red", "orange") }, "energetic_warm"},
	{func(in Input) bool { return in.Colors.Has("yellow") }, "bright_cheerful"},
	{func(in Input) bool { return in.Colors.HasAny("purple", "pink") }, "creative_artistic"},
	{func(in Input) bool { return in.Colors.Has("white", "gray") }, "clean_minimal"},
}

var settingRules = []rule{
	{func(in Input) bool { return in.Colors.Has("green", "blue") }, "outdoor_natural"},
	{func(in Input) bool { return in.Colors.Has("blue") && in.AspectRatio > 1.5 }, "open_sky_water"},
	{func(in Input) bool { return in.Colors.Has("white", "gray") }, "urban_architectural"},
	{func(in Input) bool { return in.Colors.Has("brown", "green") }, "rural_countryside"},
	{func(in Input) bool { return in.Colors.Has("black") }, "studio_controlled"},
}

var photographyRules = []rule{
	{func(in Input) bool { return in.AspectRatio < 0.9 && in.totalPixels() > 2_000_000 }, "portrait_photography"},
	{func(in Input) bool { return in.AspectRatio > 1.8 }, "panoramic_photography"},
	{func(in Input) bool { return in.Colors.Has("white", "gray") && in.AspectRatio > 1.2 }, "architectural_photography"},
	{func(in Input) bool { return in.Colors.Has("green", "blue") }, "landscape_photography"},
	{func(in Input) bool { return in.Colors.Len() <= 2 }, "artistic_photography"},
	{func(in Input) bool { return in.totalPixels() > 10_000_000 }, "professional_photography"},
}

// Infer evaluates all five rule tables against the input.
func Infer(in Input) Analysis {
	return Analysis{
		Orientation:     firstMatch(orientationRules, in, "portrait_format"),
		LikelySubject:   firstMatch(subjectRules, in, "balanced_composition"),
		Mood:            firstMatch(moodRules, in, "balanced_harmonious"),
		Setting:         firstMatch(settingRules, in, "general_environment"),
		PhotographyType: firstMatch(photographyRules, in, "general_photography"),
	}
}
