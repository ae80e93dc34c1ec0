package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"coverapi/internal/apperror"
	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// CoverLetterService manages stored cover letters.
type CoverLetterService interface {
	// List returns every letter, newest first.
	List(ctx context.Context) ([]model.CoverLetter, error)
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error)
}

type coverLetterService struct {
	repo repository.CoverLetterRepository
	now  func() time.Time
}

func NewCoverLetterService(repo repository.CoverLetterRepository) CoverLetterService {
	return &coverLetterService{repo: repo, now: time.Now}
}

func (s *coverLetterService) List(ctx context.Context) ([]model.CoverLetter, error) {
	letters, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence("list cover letters", err)
	}
	slices.SortStableFunc(letters, func(a, b model.CoverLetter) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if letters == nil {
		letters = []model.CoverLetter{}
	}
	return letters, nil
}

func (s *coverLetterService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Validation("id", "ID requis")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceOrNotFound(err, "Lettre de motivation non trouvée", "delete cover letter")
	}
	return nil
}

func (s *coverLetterService) Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now().UTC()
	}
	out, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, apperror.Persistence("save cover letter", err)
	}
	return out, nil
}
