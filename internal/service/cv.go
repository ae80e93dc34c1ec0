package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"coverapi/internal/apperror"
	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// CVService stores CVs as free-form records.
type CVService interface {
	// Save stores fields under an id derived from the creation time in milliseconds.
	Save(ctx context.Context, fields map[string]any) (*model.CVRecord, error)
	Get(ctx context.Context, id string) (*model.CVRecord, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]model.CVRecord, error)
}

type cvService struct {
	repo repository.CVRepository
	now  func() time.Time
}

func NewCVService(repo repository.CVRepository) CVService {
	return &cvService{repo: repo, now: time.Now}
}

// maxIDAttempts bounds how far Save walks forward from the clock when ids collide.
const maxIDAttempts = 16

// reserved keys are owned by the record and never stored as client fields.
var reservedCVKeys = []string{"id", "createdAt", "updatedAt"}

func (s *cvService) Save(ctx context.Context, fields map[string]any) (*model.CVRecord, error) {
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	for _, k := range reservedCVKeys {
		delete(data, k)
	}

	now := s.now().UTC()
	ms := now.UnixMilli()
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		var rec *model.CVRecord
		rec, err = s.repo.Create(ctx, &model.CVRecord{
			ID:        strconv.FormatInt(ms+int64(attempt), 10),
			Data:      data,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err == nil {
			return rec, nil
		}
		// Saves in the same millisecond take the next free one.
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	return nil, apperror.Persistence("save cv", err)
}

func (s *cvService) Get(ctx context.Context, id string) (*model.CVRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Validation("id", "ID requis")
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, persistenceOrNotFound(err, "CV non trouvé", "load cv")
	}
	return rec, nil
}

func (s *cvService) List(ctx context.Context) ([]model.CVRecord, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence("list cvs", err)
	}
	if recs == nil {
		recs = []model.CVRecord{}
	}
	return recs, nil
}
