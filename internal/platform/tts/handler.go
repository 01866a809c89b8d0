package tts

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

type Handler struct {
	client       Client
	defaultVoice string
}

func NewHandler(client Client, defaultVoice string) *Handler {
	if defaultVoice == "" {
		defaultVoice = DefaultVoiceID
	}
	return &Handler{client: client, defaultVoice: defaultVoice}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("patient", "provider", "admin"))
	g.POST("/tts", h.Synthesize)
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

func (h *Handler) Synthesize(c echo.Context) error {
	var req synthesizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	voice := req.VoiceID
	if voice == "" {
		voice = h.defaultVoice
	}
	audio, err := h.client.Synthesize(c.Request().Context(), req.Text, voice)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "speech synthesis failed")
	}
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}
