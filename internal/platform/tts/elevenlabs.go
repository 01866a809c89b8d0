// Package tts converts text to speech through the ElevenLabs API.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.elevenlabs.io/v1/text-to-speech"

// DefaultVoiceID is Rachel, a professional female voice.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// modelID selects the faster turbo model for lower latency.
const modelID = "eleven_turbo_v2"

// Client synthesizes speech from text.
type Client interface {
	Synthesize(ctx context.Context, text string, voiceID string) ([]byte, error)
}

type elevenLabsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures the ElevenLabs client.
type Option func(*elevenLabsClient)

// WithBaseURL overrides the API URL, used in tests.
func WithBaseURL(url string) Option {
	return func(c *elevenLabsClient) {
		c.baseURL = url
	}
}

// NewElevenLabsClient creates a client for the ElevenLabs text-to-speech API.
func NewElevenLabsClient(apiKey string, opts ...Option) Client {
	c := &elevenLabsClient{
		apiKey:  apiKey,
		baseURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ttsRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	} `json:"voice_settings"`
}

func (c *elevenLabsClient) Synthesize(ctx context.Context, text string, voiceID string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("elevenlabs api key is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, voiceID)

	reqBody := ttsRequest{
		Text:    text,
		ModelID: modelID,
	}
	reqBody.VoiceSettings.Stability = 0.5
	reqBody.VoiceSettings.SimilarityBoost = 0.75

	jsonBody, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error: %s - %s", resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}
