package gemini

// GeneratedImage is the normalized result of one generation or
// refinement call. DataURL is always "data:" + MimeType + ";base64," +
// Data, derived from the other two fields rather than independent state.
type GeneratedImage struct {
	DataURL  string `json:"data_url"`
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

type GenerateOptions struct {
	AspectRatio string
}
