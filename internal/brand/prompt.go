package brand

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is a snapshot of the user's choices at the moment of a request.
type Config struct {
	Prompt        string
	ColorSchemeID string
	VisualStyleID string
	GraphicTypeID string
	AspectRatio   string // "W:H", e.g. "1:1", "16:9"
}

const (
	fallbackPalette     = "standard colors"
	fallbackStyle       = "clean style"
	fallbackGraphicType = "image"
)

// BuildGenerationPrompt renders the instruction text for an initial
// generation. Missing catalog entries fall back to generic placeholders
// so a stale id never fails the request.
func BuildGenerationPrompt(cfg Config, cat Catalogs) string {
	palette := fallbackPalette
	if cs, ok := cat.ColorScheme(cfg.ColorSchemeID); ok {
		palette = strings.Join(cs.Colors, ", ")
	}

	styleDesc := fallbackStyle
	if vs, ok := cat.VisualStyle(cfg.VisualStyleID); ok {
		styleDesc = vs.Description
	}

	typeName := fallbackGraphicType
	typeDesc := ""
	if gt, ok := cat.GraphicType(cfg.GraphicTypeID); ok {
		typeName = gt.Name
		typeDesc = gt.Description
	}

	var b strings.Builder
	b.Grow(1024)

	b.WriteString("TASK: Create a " + typeName + " for a brand.\n")
	if typeDesc != "" {
		b.WriteString("- " + typeDesc + "\n")
	}
	b.WriteString("\n")

	b.WriteString("VISUAL STYLE:\n")
	b.WriteString("- " + styleDesc + "\n\n")

	b.WriteString("COLOR PALETTE (STRICT):\n")
	b.WriteString("- Use only these colors: " + palette + "\n")
	b.WriteString("- Do not introduce colors outside this palette except neutral white for background.\n\n")

	b.WriteString("CONTENT REQUEST:\n")
	b.WriteString("- " + strings.TrimSpace(cfg.Prompt) + "\n\n")

	b.WriteString("Render at professional quality: clean composition, sharp edges, production-ready.")

	return strings.TrimSpace(b.String())
}

// BuildRefinementPrompt renders the instruction text for editing an
// already generated image. Here a missing catalog entry resolves to the
// empty string: the constraint is already baked into the attached image,
// so it is omitted rather than replaced with a placeholder.
func BuildRefinementPrompt(refinement string, cfg Config, cat Catalogs) string {
	styleDesc := ""
	if vs, ok := cat.VisualStyle(cfg.VisualStyleID); ok {
		styleDesc = vs.Description
	}

	palette := ""
	if cs, ok := cat.ColorScheme(cfg.ColorSchemeID); ok {
		palette = strings.Join(cs.Colors, ", ")
	}

	var b strings.Builder
	b.Grow(512)

	b.WriteString("TASK: Edit the attached image.\n\n")

	b.WriteString("CHANGE REQUEST:\n")
	b.WriteString("- " + strings.TrimSpace(refinement) + "\n\n")

	b.WriteString("PRESERVE:\n")
	b.WriteString("- Visual style: " + styleDesc + "\n")
	b.WriteString("- Color palette: " + palette + "\n")
	b.WriteString("- Everything not named in the change request stays as it is.\n\n")

	b.WriteString("Return the edited image only.")

	return strings.TrimSpace(b.String())
}

// NormalizeAspectRatio canonicalizes a "W:H" string; it returns "" for
// anything that does not parse as two positive integers.
func NormalizeAspectRatio(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return ""
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", w, h)
}
