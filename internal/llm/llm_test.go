package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock(" {\"a\":1} "))
}

func TestExtractText(t *testing.T) {
	_, err := extractText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("Bon"), genai.Text("jour")}},
	}}}
	text, err := extractText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", text)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-2.5-flash")
	assert.Error(t, err)
}

func TestGroq_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gk", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama", req.Model)
		assert.Len(t, req.Messages, 2)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Madame, Monsieur  "}}]}`))
	}))
	defer srv.Close()

	g, err := NewGroq("gk", "llama", srv.URL+"/", 5*time.Second)
	require.NoError(t, err)

	out, err := g.Complete(context.Background(), []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Madame, Monsieur", out)
	assert.Equal(t, "llama", g.Model())
}

func TestGroq_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error with message", http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"rate_limit"}}`},
		{"http error without body", http.StatusBadGateway, ``},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":" "}}]}`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g, err := NewGroq("gk", "llama", srv.URL, time.Second)
			require.NoError(t, err)
			_, err = g.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
			assert.Error(t, err)
		})
	}
}

func TestNewGroq_Validation(t *testing.T) {
	_, err := NewGroq("", "m", "http://x", time.Second)
	assert.Error(t, err)
	_, err = NewGroq("k", "", "http://x", time.Second)
	assert.Error(t, err)
}

func TestImages_GenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "b64_json", req.ResponseFormat)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	}))
	defer srv.Close()

	i, err := NewImages("ik", "dall-e-3", srv.URL, time.Second)
	require.NoError(t, err)

	img, err := i.GenerateImage(context.Background(), "portrait")
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png), img.DataURL())
}

func TestImages_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	i, err := NewImages("ik", "dall-e-3", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = i.GenerateImage(context.Background(), "portrait")
	assert.Error(t, err)
}
