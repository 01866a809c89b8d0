package chat

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/platform/auth"
	"github.com/carebridge/carebridge/internal/platform/llm"
)

// TurnProcessor runs the post-turn pipeline in the background. It must never
// block or fail the chat response.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, patientID uuid.UUID, conversation []llm.Message, latest string)
}

type Handler struct {
	svc       *Service
	processor TurnProcessor
	log       zerolog.Logger
}

func NewHandler(svc *Service, processor TurnProcessor, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, processor: processor, log: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("patient", "provider", "admin"))
	g.POST("/chat", h.Chat)
	g.GET("/chat/greeting", h.Greeting)
	g.POST("/chat/end", h.End)
}

type chatRequest struct {
	PatientID uuid.UUID     `json:"patient_id"`
	Messages  []llm.Message `json:"messages"`
}

// Chat streams the assistant reply as raw text chunks, then hands the turn to
// the pipeline on a detached context.
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages are required")
	}

	ch, err := h.svc.StreamReply(c.Request().Context(), req.Messages)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "assistant unavailable")
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	resp.WriteHeader(http.StatusOK)
	for chunk := range ch {
		if _, err := resp.Write([]byte(chunk)); err != nil {
			h.log.Warn().Err(err).Msg("chat stream write failed")
			break
		}
		resp.Flush()
	}

	if h.processor != nil && req.PatientID != uuid.Nil {
		conversation := make([]llm.Message, len(req.Messages))
		copy(conversation, req.Messages)
		latest := latestUserMessage(conversation)
		go h.processor.ProcessTurn(context.Background(), req.PatientID, conversation, latest)
	}
	return nil
}

func (h *Handler) Greeting(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"text": h.svc.Greeting()})
}

type endResponse struct {
	ClosingMessage string `json:"closing_message"`
	Summary        string `json:"summary"`
}

func (h *Handler) End(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	closing, summary, err := h.svc.EndSession(c.Request().Context(), req.Messages)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "assistant unavailable")
	}
	return c.JSON(http.StatusOK, endResponse{ClosingMessage: closing, Summary: summary})
}

func latestUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}
