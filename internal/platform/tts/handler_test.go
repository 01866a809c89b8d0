package tts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeSynth struct {
	audio     []byte
	err       error
	gotText   string
	gotVoice  string
	callCount int
}

func (f *fakeSynth) Synthesize(_ context.Context, text, voiceID string) ([]byte, error) {
	f.callCount++
	f.gotText = text
	f.gotVoice = voiceID
	return f.audio, f.err
}

func newHandlerContext(body string) (*fakeSynth, echo.Context, *httptest.ResponseRecorder) {
	synth := &fakeSynth{audio: []byte("mp3-bytes")}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return synth, e.NewContext(req, rec), rec
}

func TestHandler_Synthesize(t *testing.T) {
	synth, c, rec := newHandlerContext(`{"text":"Take your medication at noon"}`)
	h := NewHandler(synth, "")
	if err := h.Synthesize(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %s", ct)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Errorf("expected audio bytes in body")
	}
	if synth.gotVoice != DefaultVoiceID {
		t.Errorf("expected default voice, got %s", synth.gotVoice)
	}
}

func TestHandler_Synthesize_CustomVoice(t *testing.T) {
	synth, c, _ := newHandlerContext(`{"text":"hello","voice_id":"custom-voice"}`)
	h := NewHandler(synth, "")
	if err := h.Synthesize(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synth.gotVoice != "custom-voice" {
		t.Errorf("expected custom voice, got %s", synth.gotVoice)
	}
}

func TestHandler_Synthesize_EmptyText(t *testing.T) {
	synth, c, _ := newHandlerContext(`{"text":"   "}`)
	h := NewHandler(synth, "")
	err := h.Synthesize(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
	if synth.callCount != 0 {
		t.Error("expected no provider call for empty text")
	}
}

func TestHandler_Synthesize_ProviderError(t *testing.T) {
	synth, c, _ := newHandlerContext(`{"text":"hello"}`)
	synth.err = fmt.Errorf("provider down")
	h := NewHandler(synth, "")
	err := h.Synthesize(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %v", err)
	}
}
