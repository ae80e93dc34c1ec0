package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverapi/internal/config"
)

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/files/document/u1/1.pdf", joinURL("https://cdn.example.com/files/", "/document/u1/1.pdf"))
	assert.Equal(t, "https://cdn.example.com/avatar/u1/2.png", joinURL("https://cdn.example.com", "avatar/u1/2.png"))
}

func TestNew_UnsupportedBackend(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{Backend: "ftp"})
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg, "")
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestNewGCS_RequiresBucket(t *testing.T) {
	s, err := NewGCS(context.Background(), config.GCSConfig{}, "")
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestURL(t *testing.T) {
	m := &minioStorage{baseURL: "http://localhost:9000/files"}
	assert.Equal(t, "http://localhost:9000/files/document/u1/1.pdf", m.URL("document/u1/1.pdf"))

	g := &gcsStorage{baseURL: joinURL(gcsPublicHost, "files")}
	assert.Equal(t, "https://storage.googleapis.com/files/cv/u1/1.pdf", g.URL("cv/u1/1.pdf"))
}
