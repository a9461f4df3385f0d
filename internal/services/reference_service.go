package services

import (
	"context"
	"fmt"
	"time"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
	"dealerpos/internal/repositories"
	"dealerpos/internal/utils"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ReferenceSource yields the raw reference tables.
type ReferenceSource interface {
	Load(ctx context.Context) (map[string]models.Table, error)
}

// ReferenceWriter accepts new names for the form lists.
type ReferenceWriter interface {
	AddEntry(ctx context.Context, kind repositories.ReferenceKind, name string) error
}

const referenceCacheKey = "reference"

// ReferenceService caches the parsed reference data. It is safe for
// concurrent use; failed loads are never cached.
type ReferenceService struct {
	Source ReferenceSource
	// Writer is nil for read-only sources such as a workbook.
	Writer ReferenceWriter

	cache *expirable.LRU[string, models.ReferenceData]
}

func NewReferenceService(source ReferenceSource, writer ReferenceWriter, ttl time.Duration) *ReferenceService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ReferenceService{
		Source: source,
		Writer: writer,
		cache:  expirable.NewLRU[string, models.ReferenceData](1, nil, ttl),
	}
}

// Get returns the reference data. On failure it returns an empty data set
// together with a domain.ReferenceDataError so callers can disable the form.
func (s *ReferenceService) Get(ctx context.Context) (models.ReferenceData, error) {
	if ref, ok := s.cache.Get(referenceCacheKey); ok {
		return ref, nil
	}

	tables, err := s.Source.Load(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ref, err := models.BuildReferenceData(tables)
	if err != nil {
		return s.fail(ctx, err)
	}
	if ref.Empty() {
		return s.fail(ctx, domain.ReferenceDataError{Table: models.TablePriceList, Msg: "no vehicles configured"})
	}

	s.cache.Add(referenceCacheKey, ref)
	utils.LogEvent(utils.RequestIDFrom(ctx), "reference", "load",
		fmt.Sprintf("vehicles=%d staff=%d financiers=%d", len(ref.Vehicles), len(ref.Staff), len(ref.Financiers)))
	return ref, nil
}

func (s *ReferenceService) fail(ctx context.Context, err error) (models.ReferenceData, error) {
	if !domain.IsReferenceData(err) {
		err = domain.ReferenceDataError{Msg: "load failed", Err: err}
	}
	utils.LogWarn(utils.RequestIDFrom(ctx), "reference", "load", err.Error())
	return models.ReferenceData{}, err
}

// Refresh drops the cached data; the next Get reloads it.
func (s *ReferenceService) Refresh() {
	s.cache.Purge()
}

// AddEntry forwards a new list entry to the writer and invalidates the cache.
func (s *ReferenceService) AddEntry(ctx context.Context, kind repositories.ReferenceKind, name string) error {
	if s.Writer == nil {
		return domain.ValidationError{Field: "kind", Msg: "reference data source is read-only"}
	}
	if err := s.Writer.AddEntry(ctx, kind, name); err != nil {
		if domain.IsConflict(err) || domain.IsValidation(err) {
			return err
		}
		return fmt.Errorf("add %s entry: %w", kind, err)
	}
	s.Refresh()
	utils.LogEvent(utils.RequestIDFrom(ctx), "reference", "add_entry", "kind="+string(kind))
	return nil
}
