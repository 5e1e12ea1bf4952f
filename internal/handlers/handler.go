package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/planetoftheweb/bananabrand/internal/brand"
	"github.com/planetoftheweb/bananabrand/internal/gemini"
	"github.com/planetoftheweb/bananabrand/internal/session"
	"github.com/planetoftheweb/bananabrand/internal/telegram"
)

type Options struct {
	Telegram *telegram.Client
	Gemini   *gemini.Client
	Sessions *session.Store
	Catalogs brand.Catalogs
	Logger   *slog.Logger
}

type Handler struct {
	tg       *telegram.Client
	gem      *gemini.Client
	sessions *session.Store
	catalogs brand.Catalogs
	logger   *slog.Logger
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tg:       opts.Telegram,
		gem:      opts.Gemini,
		sessions: opts.Sessions,
		catalogs: opts.Catalogs,
		logger:   logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	if msg.Text != "" {
		return h.handleText(ctx, chatID, userID, msg.Text)
	}

	return nil
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return h.tg.SendText(chatID,
			"🍌 Banana Brand\n\n"+
				"Pick brand options, then describe the graphic you want.\n\n"+
				"Commands:\n"+
				"/options - List color schemes, styles, types and ratios\n"+
				"/set <tokens> - Choose options, e.g. /set ocean 3d type=hero ar=16:9\n"+
				"/current - Show current selection\n"+
				"/generate <description> - Create a graphic\n"+
				"/reset - Back to defaults\n\n"+
				"After a graphic is created, any plain message refines it.",
		)
	case "help":
		return h.tg.SendText(chatID,
			"🍌 Help\n\n"+
				"/set picks options by id: color schemes, visual styles, graphic types, or an aspect ratio like 16:9.\n"+
				"/generate <description> creates a new graphic with the current selection.\n"+
				"Plain text after that edits the latest graphic while keeping your style and palette.\n"+
				"/reset clears the selection and the current graphic.",
		)
	case "options":
		return h.tg.SendText(chatID, h.formatOptions())
	case "current":
		sess := h.sessions.Get(chatID, userID)
		return h.tg.SendText(chatID, h.formatCurrent(sess))
	case "set":
		cfg, unknown := brand.ParseArgs(msg.CommandArguments(), h.sessions.Get(chatID, userID).Config, h.catalogs)
		sess := h.sessions.Update(chatID, userID, func(s *session.Session) {
			s.Config = cfg
		})

		reply := h.formatCurrent(sess)
		if len(unknown) > 0 {
			reply += "\n\n⚠️ Ignored: " + strings.Join(unknown, ", ")
		}
		return h.tg.SendText(chatID, reply)
	case "reset":
		h.sessions.Reset(chatID, userID)
		return h.tg.SendText(chatID, "✅ Selection and graphic cleared.")
	case "generate":
		prompt := strings.TrimSpace(msg.CommandArguments())
		if prompt == "" {
			return h.tg.SendText(chatID, "❌ Describe the graphic.\nExample: /generate a coffee roastery called Night Owl")
		}
		return h.generate(ctx, chatID, userID, prompt)
	default:
		return h.tg.SendText(chatID, "Unknown command. /help lists what I can do.")
	}
}

func (h *Handler) handleText(ctx context.Context, chatID int64, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sess := h.sessions.Get(chatID, userID)
	if sess.Current != nil {
		return h.refine(ctx, chatID, userID, text)
	}
	return h.generate(ctx, chatID, userID, text)
}

func (h *Handler) generate(ctx context.Context, chatID int64, userID int64, prompt string) error {
	if !h.sessions.TryAcquire(chatID, userID) {
		return h.tg.SendText(chatID, "⏳ Still working on the previous graphic, one moment.")
	}
	defer h.sessions.Release(chatID, userID)

	h.tg.SendTyping(chatID)

	sess := h.sessions.Get(chatID, userID)
	cfg := sess.Config
	cfg.Prompt = prompt

	instruction := brand.BuildGenerationPrompt(cfg, h.catalogs)

	img, err := h.gem.Generate(ctx, instruction, gemini.GenerateOptions{AspectRatio: cfg.AspectRatio})
	if err != nil {
		h.logger.Error("generation failed", "chat_id", chatID, "err", err)
		return h.tg.SendText(chatID, "❌ "+err.Error())
	}

	h.sessions.Update(chatID, userID, func(s *session.Session) {
		s.Config = cfg
		s.Current = &img
	})

	return h.tg.SendPhotoDataURL(chatID, img.DataURL, "Send a message to refine it.")
}

func (h *Handler) refine(ctx context.Context, chatID int64, userID int64, text string) error {
	if !h.sessions.TryAcquire(chatID, userID) {
		return h.tg.SendText(chatID, "⏳ Still working on the previous graphic, one moment.")
	}
	defer h.sessions.Release(chatID, userID)

	h.tg.SendTyping(chatID)

	sess := h.sessions.Get(chatID, userID)
	if sess.Current == nil {
		return h.tg.SendText(chatID, "Nothing to refine yet. /generate creates the first graphic.")
	}

	instruction := brand.BuildRefinementPrompt(text, sess.Config, h.catalogs)

	img, err := h.gem.Refine(ctx, instruction, *sess.Current, gemini.GenerateOptions{AspectRatio: sess.Config.AspectRatio})
	if err != nil {
		h.logger.Error("refinement failed", "chat_id", chatID, "err", err)
		return h.tg.SendText(chatID, "❌ "+err.Error())
	}

	h.sessions.Update(chatID, userID, func(s *session.Session) {
		s.Current = &img
	})

	return h.tg.SendPhotoDataURL(chatID, img.DataURL, "Refined. Keep going or /reset.")
}

func (h *Handler) formatOptions() string {
	var b strings.Builder
	b.WriteString("🎨 Color schemes:\n")
	for _, cs := range h.catalogs.ColorSchemes {
		b.WriteString(fmt.Sprintf("  %s - %s (%s)\n", cs.ID, cs.Name, strings.Join(cs.Colors, ", ")))
	}
	b.WriteString("\n✏️ Visual styles:\n")
	for _, vs := range h.catalogs.VisualStyles {
		b.WriteString(fmt.Sprintf("  %s - %s\n", vs.ID, vs.Name))
	}
	b.WriteString("\n🖼 Graphic types:\n")
	for _, gt := range h.catalogs.GraphicTypes {
		b.WriteString(fmt.Sprintf("  %s - %s\n", gt.ID, gt.Name))
	}
	b.WriteString("\n📐 Aspect ratios: " + strings.Join(h.catalogs.AspectRatios, ", "))
	return b.String()
}

func (h *Handler) formatCurrent(sess session.Session) string {
	cfg := sess.Config

	colorName := cfg.ColorSchemeID
	if cs, ok := h.catalogs.ColorScheme(cfg.ColorSchemeID); ok {
		colorName = cs.Name
	}
	styleName := cfg.VisualStyleID
	if vs, ok := h.catalogs.VisualStyle(cfg.VisualStyleID); ok {
		styleName = vs.Name
	}
	typeName := cfg.GraphicTypeID
	if gt, ok := h.catalogs.GraphicType(cfg.GraphicTypeID); ok {
		typeName = gt.Name
	}

	status := "no graphic yet"
	if sess.Current != nil {
		status = "graphic ready, plain text refines it"
	}

	return fmt.Sprintf(
		"Current selection:\n  Colors: %s\n  Style: %s\n  Type: %s\n  Ratio: %s\n  (%s)",
		colorName, styleName, typeName, cfg.AspectRatio, status,
	)
}
