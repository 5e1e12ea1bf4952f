package brand

import "strings"

// ParseArgs resolves free-form option tokens ("color=ocean", "3d",
// "ar=16:9") against the catalogs, starting from defaults. Tokens that
// match nothing are returned so the caller can warn about them.
func ParseArgs(raw string, defaults Config, cat Catalogs) (Config, []string) {
	cfg := defaults
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cfg, nil
	}

	var unknown []string
	for _, tok := range strings.Fields(raw) {
		orig := tok
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}

		if strings.HasPrefix(tok, "color=") || strings.HasPrefix(tok, "colors=") {
			key := strings.TrimPrefix(strings.TrimPrefix(tok, "colors="), "color=")
			if _, ok := cat.ColorScheme(key); ok {
				cfg.ColorSchemeID = key
				continue
			}
		}
		if strings.HasPrefix(tok, "style=") {
			key := strings.TrimPrefix(tok, "style=")
			if _, ok := cat.VisualStyle(key); ok {
				cfg.VisualStyleID = key
				continue
			}
		}
		if strings.HasPrefix(tok, "type=") {
			key := strings.TrimPrefix(tok, "type=")
			if _, ok := cat.GraphicType(key); ok {
				cfg.GraphicTypeID = key
				continue
			}
		}
		if strings.HasPrefix(tok, "ar=") || strings.HasPrefix(tok, "aspect=") {
			key := strings.TrimPrefix(strings.TrimPrefix(tok, "aspect="), "ar=")
			if norm := NormalizeAspectRatio(key); norm != "" {
				cfg.AspectRatio = norm
				continue
			}
		}

		if _, ok := cat.ColorScheme(tok); ok {
			cfg.ColorSchemeID = tok
			continue
		}
		if _, ok := cat.VisualStyle(tok); ok {
			cfg.VisualStyleID = tok
			continue
		}
		if _, ok := cat.GraphicType(tok); ok {
			cfg.GraphicTypeID = tok
			continue
		}
		if norm := NormalizeAspectRatio(tok); norm != "" {
			cfg.AspectRatio = norm
			continue
		}

		unknown = append(unknown, orig)
	}

	return cfg, unknown
}
