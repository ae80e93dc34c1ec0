package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Images implements ImageGenerator against an OpenAI-compatible images endpoint.
type Images struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ ImageGenerator = (*Images)(nil)

func NewImages(apiKey, model, baseURL string, timeout time.Duration) (*Images, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("IMAGE_API_KEY is required")
	}
	return &Images{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}, nil
}

func (i *Images) Model() string { return i.model }

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

func (i *Images) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	var parsed imageResponse
	err := postJSON(ctx, i.httpClient, i.baseURL+"/images/generations", i.apiKey, imageRequest{
		Model:          i.model,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	}, &parsed)
	if err != nil {
		return Image{}, fmt.Errorf("image provider: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return Image{}, fmt.Errorf("image provider returned no image")
	}
	data, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	return Image{Data: data, MimeType: "image/png"}, nil
}

// DataURL encodes img as a data: URL.
func (img Image) DataURL() string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
