package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/cache"
	"coverapi/internal/model"
	"coverapi/internal/repository"
	"coverapi/internal/storage"
)

// allowedMIME lists the content types accepted per upload category.
var allowedMIME = map[model.FileType][]string{
	model.FileTypeAvatar: {"image/jpeg", "image/png", "image/webp"},
	model.FileTypeCV: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	model.FileTypeDocument: {"application/pdf", "image/jpeg", "image/png"},
}

var extByMIME = map[string]string{
	"image/jpeg":         "jpg",
	"image/png":          "png",
	"image/webp":         "webp",
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

// UploadInput describes one multipart upload.
type UploadInput struct {
	UserID      string
	Type        model.FileType
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// FileService defines the use cases for user files.
type FileService interface {
	// Upload checks the MIME type, stores the blob at {type}/{userId}/{unixMillis}.{ext} and records it.
	// Avatar uploads also repoint the user's avatar and drop the cached profile.
	Upload(ctx context.Context, in UploadInput) (*model.UploadedFile, error)

	// Delete removes a file owned by userID from storage, then deletes its record.
	Delete(ctx context.Context, fileID, userID string) error

	// List returns the files of userID, newest first.
	List(ctx context.Context, userID string) ([]model.UploadedFile, error)
}

type fileService struct {
	store   storage.Storage
	files   repository.FileRepository
	users   repository.UserRepository
	cache   cache.Cache
	log     logrus.FieldLogger
	now     func() time.Time
	signTTL time.Duration
}

// FileOption customizes a FileService.
type FileOption func(*fileService)

// WithSignedURLs makes Upload and List attach a pre-signed download URL valid for ttl.
// Use it when the bucket is private and file_url cannot be fetched directly.
func WithSignedURLs(ttl time.Duration) FileOption {
	return func(s *fileService) { s.signTTL = ttl }
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, files repository.FileRepository, users repository.UserRepository, c cache.Cache, log logrus.FieldLogger, opts ...FileOption) FileService {
	s := &fileService{store: store, files: files, users: users, cache: c, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AllowedMIME reports whether contentType may be uploaded as t.
func AllowedMIME(t model.FileType, contentType string) bool {
	ct := normalizeMIME(contentType)
	for _, m := range allowedMIME[t] {
		if m == ct {
			return true
		}
	}
	return false
}

func normalizeMIME(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func validUserID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

// fileExt derives the key extension from the checked MIME type; the client file name is never trusted.
func fileExt(contentType string) string {
	if ext, ok := extByMIME[normalizeMIME(contentType)]; ok {
		return ext
	}
	return "bin"
}

// attachDownloadURL fills DownloadURL when signed URLs are enabled. Signing failures leave it empty.
func (s *fileService) attachDownloadURL(ctx context.Context, f *model.UploadedFile) {
	if s.signTTL <= 0 || f.StoragePath == "" {
		return
	}
	u, err := s.store.PresignGet(ctx, f.StoragePath, s.signTTL)
	if err != nil {
		s.log.WithError(err).WithField("file_id", f.ID).Warn("presign download url failed")
		return
	}
	f.DownloadURL = u
}

func (s *fileService) Upload(ctx context.Context, in UploadInput) (*model.UploadedFile, error) {
	if in.Reader == nil {
		return nil, apperror.Validation("file", "Fichier requis")
	}
	if !validUserID(in.UserID) {
		return nil, apperror.Validation("userId", "userId requis")
	}
	if _, ok := allowedMIME[in.Type]; !ok {
		return nil, apperror.Validation("type", "Type de fichier invalide")
	}
	if !AllowedMIME(in.Type, in.ContentType) {
		return nil, apperror.Validation("file", fmt.Sprintf("Type MIME non autorisé pour %s: %s", in.Type, in.ContentType))
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s/%s/%d.%s", in.Type, in.UserID, now.UnixMilli(), fileExt(in.ContentType))

	rec := &model.UploadedFile{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		FileType:    in.Type,
		FileName:    in.FileName,
		FileURL:     s.store.URL(key),
		FileSize:    in.Size,
		MimeType:    normalizeMIME(in.ContentType),
		StoragePath: key,
		CreatedAt:   now,
	}
	stored, err := storeBlob(ctx, s.store, s.files, s.log, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: rec.MimeType,
		Metadata: map[string]string{
			"original-filename": in.FileName,
			"user-id":           in.UserID,
		},
	}, rec)
	if err != nil {
		return nil, err
	}

	if in.Type == model.FileTypeAvatar {
		s.updateAvatar(ctx, in.UserID, stored.FileURL)
	}
	s.attachDownloadURL(ctx, stored)
	return stored, nil
}

func (s *fileService) updateAvatar(ctx context.Context, userID, url string) {
	log := s.log.WithField("user_id", userID)
	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		log.WithError(err).Warn("avatar update failed")
	}
	if err := s.cache.Delete(ctx, cache.ProfileKey(userID)); err != nil {
		log.WithError(err).Warn("profile cache invalidation failed")
	}
}

func (s *fileService) Delete(ctx context.Context, fileID, userID string) error {
	if strings.TrimSpace(fileID) == "" {
		return apperror.Validation("fileId", "fileId requis")
	}
	if strings.TrimSpace(userID) == "" {
		return apperror.Validation("userId", "userId requis")
	}

	f, err := s.files.FindByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		return persistenceOrNotFound(err, "Fichier non trouvé", "find file")
	}
	// Storage first; if this fails the record stays so the blob is still reachable.
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return apperror.Persistence("delete storage", err)
	}
	if err := s.files.Delete(ctx, f.ID); err != nil {
		return apperror.Persistence("delete file record", err)
	}
	return nil
}

func (s *fileService) List(ctx context.Context, userID string) ([]model.UploadedFile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.Validation("userId", "userId requis")
	}
	files, err := s.files.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list files", err)
	}
	if files == nil {
		files = []model.UploadedFile{}
	}
	for i := range files {
		s.attachDownloadURL(ctx, &files[i])
	}
	return files, nil
}
