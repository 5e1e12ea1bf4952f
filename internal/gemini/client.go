package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	defaultModel     = "gemini-2.5-flash-image"
	defaultImageMime = "image/png"
)

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		model:      model,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// Generate requests a fresh image for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GeneratedImage{}, errors.New("prompt is empty")
	}

	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}
	if ar := strings.TrimSpace(opts.AspectRatio); ar != "" {
		req.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: ar}
	}

	return c.request(ctx, req)
}

// Refine asks the model to edit a previously generated image according
// to the prompt. The prior image travels as an inlineData part next to
// the instruction text.
func (c *Client) Refine(ctx context.Context, prompt string, img GeneratedImage, opts GenerateOptions) (GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GeneratedImage{}, errors.New("prompt is empty")
	}
	if strings.TrimSpace(img.Data) == "" {
		return GeneratedImage{}, errors.New("no image to refine")
	}

	mimeType := strings.TrimSpace(img.MimeType)
	if mimeType == "" {
		mimeType = defaultImageMime
	}

	req := generateContentRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: prompt},
					{InlineData: &blob{
						Data:     stripDataURLPrefix(img.Data),
						MimeType: mimeType,
					}},
				},
			},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}
	if ar := strings.TrimSpace(opts.AspectRatio); ar != "" {
		req.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: ar}
	}

	return c.request(ctx, req)
}

func (c *Client) request(ctx context.Context, req generateContentRequest) (GeneratedImage, error) {
	decoded, err := c.generateContent(ctx, c.model, req)
	if err != nil && req.GenerationConfig.ImageConfig != nil {
		if isUnknownFieldError(err, "imageConfig") {
			req.GenerationConfig.ImageConfig = nil
			decoded, err = c.generateContent(ctx, c.model, req)
		}
	}
	if err != nil {
		c.logger.Error("gemini request failed", "model", c.model, "err", err)
		return GeneratedImage{}, &TransportError{Err: err}
	}

	return extractImage(decoded)
}

func (c *Client) generateContent(ctx context.Context, model string, payload generateContentRequest) (generateContentResponse, error) {
	if c.httpClient == nil {
		return generateContentResponse{}, errors.New("http client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return generateContentResponse{}, fmt.Errorf("gemini API %s: %s", httpResp.Status, strings.TrimSpace(string(rawBody)))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return generateContentResponse{}, fmt.Errorf("decode response: %w", err)
	}

	return decoded, nil
}

// extractImage normalizes the reply into a single image result. The
// reply can legitimately carry an image, a refusal as plain text, or
// nothing; each case maps to a distinct outcome. The first inlineData
// part of the first candidate wins.
func extractImage(resp generateContentResponse) (GeneratedImage, error) {
	if len(resp.Candidates) == 0 {
		return GeneratedImage{}, ErrEmptyResponse
	}

	parts := resp.Candidates[0].Content.Parts

	for _, p := range parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		mimeType := strings.TrimSpace(p.InlineData.MimeType)
		if mimeType == "" {
			mimeType = defaultImageMime
		}
		return GeneratedImage{
			DataURL:  fmt.Sprintf("data:%s;base64,%s", mimeType, p.InlineData.Data),
			Data:     p.InlineData.Data,
			MimeType: mimeType,
		}, nil
	}

	for _, p := range parts {
		if strings.TrimSpace(p.Text) != "" {
			return GeneratedImage{}, &RefusedError{Text: p.Text}
		}
	}

	return GeneratedImage{}, ErrNoImageData
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string `json:"text,omitempty"`
	InlineData *blob  `json:"inlineData,omitempty"`
}

type blob struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

func stripDataURLPrefix(value string) string {
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		return value[idx+1:]
	}
	return value
}

func isUnknownFieldError(err error, field string) bool {
	message := err.Error()
	return strings.Contains(message, "Unknown name") && strings.Contains(message, field)
}
