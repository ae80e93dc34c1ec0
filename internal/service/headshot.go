package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/llm"
	"coverapi/internal/model"
	"coverapi/internal/repository"
	"coverapi/internal/storage"
)

// HeadshotInput selects the kind of portrait to generate.
type HeadshotInput struct {
	UserID string
	Type   string
	Style  string
}

// HeadshotResult carries the image as a data URL and the stored file record.
type HeadshotResult struct {
	Image string              `json:"image"`
	File  *model.UploadedFile `json:"file"`
}

// HeadshotService generates professional portraits and keeps them in the user's files.
type HeadshotService interface {
	Generate(ctx context.Context, in HeadshotInput) (*HeadshotResult, error)
}

type headshotService struct {
	images llm.ImageGenerator
	store  storage.Storage
	files  repository.FileRepository
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewHeadshotService(images llm.ImageGenerator, store storage.Storage, files repository.FileRepository, log logrus.FieldLogger) HeadshotService {
	return &headshotService{images: images, store: store, files: files, log: log, now: time.Now}
}

func headshotPrompt(kind, style string) string {
	if kind == "" {
		kind = "professional"
	}
	if style == "" {
		style = "corporate"
	}
	return fmt.Sprintf(
		"A high quality %s headshot portrait photograph in a %s style, neutral background, soft studio lighting, sharp focus, suitable for a CV or LinkedIn profile.",
		kind, style,
	)
}

func (s *headshotService) Generate(ctx context.Context, in HeadshotInput) (*HeadshotResult, error) {
	if !validUserID(in.UserID) {
		return nil, apperror.Validation("userId", "userId requis")
	}

	img, err := s.images.GenerateImage(ctx, headshotPrompt(strings.TrimSpace(in.Type), strings.TrimSpace(in.Style)))
	if err != nil {
		return nil, apperror.Dependency("Images", err)
	}

	now := s.now().UTC()
	ms := now.UnixMilli()
	key := fmt.Sprintf("%s/%s/%d.png", model.FileTypeHeadshot, in.UserID, ms)
	rec := &model.UploadedFile{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		FileType:    model.FileTypeHeadshot,
		FileName:    fmt.Sprintf("headshot-%d.png", ms),
		FileURL:     s.store.URL(key),
		FileSize:    int64(len(img.Data)),
		MimeType:    img.MimeType,
		StoragePath: key,
		CreatedAt:   now,
	}

	stored, err := storeBlob(ctx, s.store, s.files, s.log, bytes.NewReader(img.Data), storage.PutObjectOptions{
		Size:        int64(len(img.Data)),
		ContentType: img.MimeType,
		Metadata:    map[string]string{"user-id": in.UserID, "model": s.images.Model()},
	}, rec)
	if err != nil {
		return nil, err
	}
	return &HeadshotResult{Image: img.DataURL(), File: stored}, nil
}
