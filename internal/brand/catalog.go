package brand

import "strings"

type ColorScheme struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

type VisualStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GraphicType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalogs is a read-only snapshot of the selectable options. The owning
// layer may grow its own copy at runtime; prompt building only ever sees
// the snapshot passed in.
type Catalogs struct {
	ColorSchemes []ColorScheme `json:"color_schemes"`
	VisualStyles []VisualStyle `json:"visual_styles"`
	GraphicTypes []GraphicType `json:"graphic_types"`
	AspectRatios []string      `json:"aspect_ratios"`
}

var defaultColorSchemes = []ColorScheme{
	{ID: "vibrant", Name: "Vibrant & Bold", Colors: []string{"#FF3B6B", "#FFB400", "#00C2A8", "#2D2A4A"}},
	{ID: "earthy", Name: "Earthy Tones", Colors: []string{"#8C6A4F", "#C9A227", "#5F7161", "#EFE6DD"}},
	{ID: "ocean", Name: "Ocean Blues", Colors: []string{"#03045E", "#0077B6", "#00B4D8", "#CAF0F8"}},
	{ID: "sunset", Name: "Sunset Warmth", Colors: []string{"#FF6D00", "#FF8500", "#FFB600", "#7B2D26"}},
	{ID: "mono", Name: "Monochrome", Colors: []string{"#111111", "#555555", "#AAAAAA", "#F5F5F5"}},
	{ID: "pastel", Name: "Soft Pastels", Colors: []string{"#FFD6E0", "#C1E7E3", "#FFEF9F", "#E4D0F4"}},
}

var defaultVisualStyles = []VisualStyle{
	{ID: "flat", Name: "Flat Design", Description: "flat vector design, solid fills, crisp geometric shapes, no gradients or textures"},
	{ID: "gradient", Name: "Modern Gradient", Description: "smooth layered gradients, soft glow, contemporary tech-brand polish"},
	{ID: "hand_drawn", Name: "Hand Drawn", Description: "hand-drawn illustration, organic linework, warm approachable character"},
	{ID: "3d", Name: "3D Render", Description: "soft 3D render, rounded forms, studio lighting, subtle depth and shadow"},
	{ID: "line_art", Name: "Line Art", Description: "minimal single-weight line art, generous negative space, precise strokes"},
	{ID: "retro", Name: "Retro Print", Description: "retro print aesthetic, slight grain, limited inks, mid-century poster feel"},
}

var defaultGraphicTypes = []GraphicType{
	{ID: "logo", Name: "logo", Description: "a distinctive brand mark, readable at small sizes, centered on a clean background"},
	{ID: "icon", Name: "app icon", Description: "a single bold app icon, simple silhouette, instantly recognizable"},
	{ID: "hero", Name: "hero banner", Description: "a wide hero banner with a clear focal point and room for overlaid text"},
	{ID: "pattern", Name: "seamless pattern", Description: "a repeating seamless pattern suitable for backgrounds and packaging"},
	{ID: "illustration", Name: "illustration", Description: "a standalone branded illustration telling a small visual story"},
	{ID: "social", Name: "social media post", Description: "a social media graphic, bold composition, thumb-stopping contrast"},
}

var defaultAspectRatios = []string{"1:1", "16:9", "9:16", "4:3", "3:4"}

// DefaultCatalogs returns a fresh copy of the built-in options, safe for
// the caller to extend.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		ColorSchemes: append([]ColorScheme(nil), defaultColorSchemes...),
		VisualStyles: append([]VisualStyle(nil), defaultVisualStyles...),
		GraphicTypes: append([]GraphicType(nil), defaultGraphicTypes...),
		AspectRatios: append([]string(nil), defaultAspectRatios...),
	}
}

func (c Catalogs) Clone() Catalogs {
	return Catalogs{
		ColorSchemes: append([]ColorScheme(nil), c.ColorSchemes...),
		VisualStyles: append([]VisualStyle(nil), c.VisualStyles...),
		GraphicTypes: append([]GraphicType(nil), c.GraphicTypes...),
		AspectRatios: append([]string(nil), c.AspectRatios...),
	}
}

func (c Catalogs) ColorScheme(id string) (ColorScheme, bool) {
	id = normalizeID(id)
	for _, cs := range c.ColorSchemes {
		if normalizeID(cs.ID) == id {
			return cs, true
		}
	}
	return ColorScheme{}, false
}

func (c Catalogs) VisualStyle(id string) (VisualStyle, bool) {
	id = normalizeID(id)
	for _, vs := range c.VisualStyles {
		if normalizeID(vs.ID) == id {
			return vs, true
		}
	}
	return VisualStyle{}, false
}

func (c Catalogs) GraphicType(id string) (GraphicType, bool) {
	id = normalizeID(id)
	for _, gt := range c.GraphicTypes {
		if normalizeID(gt.ID) == id {
			return gt, true
		}
	}
	return GraphicType{}, false
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
