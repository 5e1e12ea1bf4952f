package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/planetoftheweb/bananabrand/internal/brand"
	"github.com/planetoftheweb/bananabrand/internal/gemini"
	"github.com/planetoftheweb/bananabrand/internal/httpclient"
)

//go:embed static/*
var staticFS embed.FS

type server struct {
	gem    *gemini.Client
	logger *slog.Logger

	mu       sync.Mutex
	catalogs brand.Catalogs
}

type apiError struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	ColorScheme string `json:"color_scheme"`
	VisualStyle string `json:"visual_style"`
	GraphicType string `json:"graphic_type"`
	AspectRatio string `json:"aspect_ratio"`
}

type refineRequest struct {
	Refinement  string                `json:"refinement"`
	Image       gemini.GeneratedImage `json:"image"`
	ColorScheme string                `json:"color_scheme"`
	VisualStyle string                `json:"visual_style"`
	AspectRatio string                `json:"aspect_ratio"`
}

type imageResponse struct {
	Image gemini.GeneratedImage `json:"image"`
}

func main() {
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		panic("GEMINI_API_KEY is required")
	}

	addr := strings.TrimSpace(getEnv("WEB_ADDR", ":8080"))

	httpTimeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 180 * time.Second
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: getEnvBool("PREFER_IPV4", true),
		Timeout:    httpTimeout,
	})

	gem := gemini.New(gemini.Options{
		APIKey:     apiKey,
		BaseURL:    strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")),
		APIVersion: strings.TrimSpace(getEnv("GEMINI_API_VERSION", "v1beta")),
		Model:      strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.5-flash-image")),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	s := &server{
		gem:      gem,
		logger:   logger,
		catalogs: brand.DefaultCatalogs(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/refine", s.handleRefine)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticSub)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           withLogging(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("web started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
}

// handleOptions serves the catalog snapshot and, on POST, appends a
// user-defined color scheme. IDs stay unique within the catalog.
func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.snapshot())
	case http.MethodPost:
		var scheme brand.ColorScheme
		if err := json.NewDecoder(r.Body).Decode(&scheme); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
			return
		}

		scheme.ID = strings.ToLower(strings.TrimSpace(scheme.ID))
		scheme.Name = strings.TrimSpace(scheme.Name)
		if scheme.ID == "" || scheme.Name == "" || len(scheme.Colors) == 0 {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "id, name and colors are required"})
			return
		}

		s.mu.Lock()
		if _, exists := s.catalogs.ColorScheme(scheme.ID); exists {
			s.mu.Unlock()
			writeJSON(w, http.StatusConflict, apiError{Error: "color scheme id already exists"})
			return
		}
		s.catalogs.ColorSchemes = append(s.catalogs.ColorSchemes, scheme)
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, s.snapshot())
	default:
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
	}
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "prompt is required"})
		return
	}

	cfg := brand.Config{
		Prompt:        req.Prompt,
		ColorSchemeID: req.ColorScheme,
		VisualStyleID: req.VisualStyle,
		GraphicTypeID: req.GraphicType,
		AspectRatio:   brand.NormalizeAspectRatio(req.AspectRatio),
	}

	instruction := brand.BuildGenerationPrompt(cfg, s.snapshot())

	ctx, cancel := requestContext(r)
	defer cancel()

	img, err := s.gem.Generate(ctx, instruction, gemini.GenerateOptions{AspectRatio: cfg.AspectRatio})
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{Image: img})
}

func (s *server) handleRefine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
		return
	}
	if strings.TrimSpace(req.Refinement) == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "refinement text is required"})
		return
	}
	if strings.TrimSpace(req.Image.Data) == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "image is required"})
		return
	}

	cfg := brand.Config{
		ColorSchemeID: req.ColorScheme,
		VisualStyleID: req.VisualStyle,
		AspectRatio:   brand.NormalizeAspectRatio(req.AspectRatio),
	}

	instruction := brand.BuildRefinementPrompt(req.Refinement, cfg, s.snapshot())

	ctx, cancel := requestContext(r)
	defer cancel()

	img, err := s.gem.Refine(ctx, instruction, req.Image, gemini.GenerateOptions{AspectRatio: cfg.AspectRatio})
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{Image: img})
}

func (s *server) snapshot() brand.Catalogs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogs.Clone()
}

func (s *server) writeGenerationError(w http.ResponseWriter, err error) {
	var transport *gemini.TransportError
	if errors.As(err, &transport) {
		writeJSON(w, http.StatusBadGateway, apiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 240)) * time.Second
	if timeout <= 0 {
		timeout = 240 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
