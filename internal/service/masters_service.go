package service

import (
	"context"
	"strings"

	"gstflow/internal/domain"
	"gstflow/internal/master"
	"gstflow/internal/port"
)

// MastersService serves autocomplete suggestions and UOM checks from
// default-credential master caches. The caches load lazily on first use and
// live for the process lifetime.
type MastersService interface {
	SuggestCustomers(ctx context.Context, partial string, limit int) ([]domain.MasterRecord, error)
	SuggestItems(ctx context.Context, partial string, limit int) ([]domain.MasterRecord, error)
	CheckUOM(ctx context.Context, uom string) (master.UOMCheck, error)
	CheckItemRate(ctx context.Context, itemCode string, rate float64) (master.RateCheck, error)
}

type mastersService struct {
	customers *master.Cache
	items     *master.Cache
	uoms      *master.UOMCache
}

// NewMastersService creates a MastersService over a default-credential client.
func NewMastersService(client port.ERPClient) MastersService {
	return &mastersService{
		customers: master.NewCache(client, master.CustomerKind()),
		items:     master.NewCache(client, master.ItemKind()),
		uoms:      master.NewUOMCache(client),
	}
}

func (s *mastersService) SuggestCustomers(ctx context.Context, partial string, limit int) ([]domain.MasterRecord, error) {
	return suggest(ctx, s.customers, partial, limit)
}

func (s *mastersService) SuggestItems(ctx context.Context, partial string, limit int) ([]domain.MasterRecord, error) {
	return suggest(ctx, s.items, partial, limit)
}

// suggest serves autocomplete from the cache, falling back to a remote
// pattern search when the cached snapshot has no hits. The fallback catches
// records created after the cache loaded.
func suggest(ctx context.Context, cache *master.Cache, partial string, limit int) ([]domain.MasterRecord, error) {
	if err := cache.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	if recs := cache.Suggest(partial, limit); len(recs) > 0 {
		return recs, nil
	}
	if strings.TrimSpace(partial) == "" {
		return nil, nil
	}
	return cache.SearchRemote(ctx, partial, limit)
}

func (s *mastersService) CheckUOM(ctx context.Context, uom string) (master.UOMCheck, error) {
	if err := s.uoms.EnsureLoaded(ctx); err != nil {
		return master.UOMCheck{}, err
	}
	return s.uoms.Check(uom), nil
}

func (s *mastersService) CheckItemRate(ctx context.Context, itemCode string, rate float64) (master.RateCheck, error) {
	if err := s.items.EnsureLoaded(ctx); err != nil {
		return master.RateCheck{}, err
	}
	return s.items.CheckRate(itemCode, rate), nil
}
