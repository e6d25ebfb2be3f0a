// Package master caches remote master data in memory and validates raw
// spreadsheet values against it: exact lookup, fuzzy suggestion, and
// substring autocomplete. One Cache instance serves one master kind.
package master

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"gstflow/internal/domain"
	"gstflow/internal/gst"
	"gstflow/internal/logger"
	"gstflow/internal/port"
)

// Cache is a load-once, case-insensitive index over one master kind.
// Records are refreshed only by constructing a new Cache; staleness is
// bounded by the instance's lifetime, not wall-clock time.
type Cache struct {
	cfg    KindConfig
	client port.ERPClient
	log    zerolog.Logger

	once    sync.Once
	loadErr error
	records []*domain.MasterRecord
	byKey   map[string]*domain.MasterRecord
	byGSTIN map[string]*domain.MasterRecord
}

// NewCache creates an unloaded cache; the bulk fetch happens on first use.
func NewCache(client port.ERPClient, cfg KindConfig) *Cache {
	return &Cache{
		cfg:     cfg,
		client:  client,
		log:     logger.WithComponent("master"),
		byKey:   make(map[string]*domain.MasterRecord),
		byGSTIN: make(map[string]*domain.MasterRecord),
	}
}

// EnsureLoaded triggers exactly one bulk fetch for this instance's lifetime.
func (c *Cache) EnsureLoaded(ctx context.Context) error {
	c.once.Do(func() {
		raws, err := c.client.BulkFetch(ctx, c.cfg.Doctype, c.cfg.Fields, c.cfg.Limit)
		if err != nil {
			c.loadErr = fmt.Errorf("loading %s cache: %w", c.cfg.Doctype, err)
			return
		}
		for _, raw := range raws {
			rec := c.cfg.Decode(raw)
			if rec.Name == "" && rec.DisplayName == "" {
				continue
			}
			r := rec
			c.records = append(c.records, &r)
			if r.Name != "" {
				c.byKey[strings.ToLower(r.Name)] = &r
			}
			if r.DisplayName != "" && r.DisplayName != r.Name {
				c.byKey[strings.ToLower(r.DisplayName)] = &r
			}
			if c.cfg.TrackGSTIN && r.GSTIN != "" {
				c.byGSTIN[r.GSTIN] = &r
			}
		}
		c.log.Info().Str("doctype", string(c.cfg.Doctype)).Int("records", len(c.records)).Msg("master cache loaded")
	})
	return c.loadErr
}

// Lookup returns the record for an exact (case-insensitive) name or display
// name hit.
func (c *Cache) Lookup(name string) (*domain.MasterRecord, bool) {
	rec, ok := c.byKey[strings.ToLower(strings.TrimSpace(name))]
	return rec, ok
}

// ValidateBatch validates each value against the cache. The one bulk load is
// unconditional even for an empty batch.
func (c *Cache) ValidateBatch(ctx context.Context, values []string) ([]domain.CheckResult, error) {
	if err := c.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	results := make([]domain.CheckResult, 0, len(values))
	for _, v := range values {
		results = append(results, c.ValidateSingle(v))
	}
	return results, nil
}

// ValidateSingle applies the pass/warning/fail ladder to one raw value.
// The caller must have loaded the cache.
func (c *Cache) ValidateSingle(value string) domain.CheckResult {
	noun := c.cfg.Noun
	lower := strings.ToLower(noun)

	clean := strings.TrimSpace(value)
	if clean == "" {
		return domain.CheckResult{
			Value:   value,
			Status:  domain.CheckFailed,
			Message: fmt.Sprintf("%s %s is empty", noun, c.cfg.ValueTerm),
		}
	}

	if rec, ok := c.Lookup(clean); ok {
		if rec.Disabled {
			return domain.CheckResult{
				Value:      value,
				Status:     domain.CheckWarning,
				Message:    fmt.Sprintf("%s is disabled in ERP", noun),
				Suggestion: fmt.Sprintf("Enable %s or use different %s %s", lower, lower, c.cfg.ValueTerm),
			}
		}
		if c.cfg.CheckVariants && rec.HasVariants {
			return domain.CheckResult{
				Value:      value,
				Status:     domain.CheckWarning,
				Message:    fmt.Sprintf("%s is a template with variants", noun),
				Suggestion: "Use specific variant instead of template",
			}
		}
		return domain.CheckResult{
			Value:   value,
			Status:  domain.CheckPassed,
			Message: fmt.Sprintf("%s found and active", noun),
		}
	}

	if suggestion := c.findSimilar(clean); suggestion != "" {
		return domain.CheckResult{
			Value:      value,
			Status:     domain.CheckWarning,
			Message:    fmt.Sprintf("%s not found exactly, similar %s available", noun, lower),
			Suggestion: suggestion,
		}
	}

	if c.cfg.TrackGSTIN {
		if check := gst.InspectGSTIN(clean); check.Found {
			msg := check.Message
			if check.Valid {
				if existing, ok := c.byGSTIN[check.GSTIN]; ok {
					// Advisory only: uniqueness is the remote system's call.
					name := existing.DisplayName
					if name == "" {
						name = existing.Name
					}
					msg = fmt.Sprintf("GSTIN already exists for customer: %s", name)
				}
			}
			return domain.CheckResult{
				Value:      value,
				Status:     domain.CheckFailed,
				Message:    fmt.Sprintf("%s not found. GSTIN format: %s", noun, msg),
				Suggestion: fmt.Sprintf("Create new %s with this GSTIN", lower),
			}
		}
	}

	return domain.CheckResult{
		Value:      value,
		Status:     domain.CheckFailed,
		Message:    fmt.Sprintf("%s not found in ERP", noun),
		Suggestion: fmt.Sprintf("Create new %s", lower),
	}
}

// findSimilar returns the best fuzzy match over names and display names.
func (c *Cache) findSimilar(value string) string {
	if len(c.records) == 0 {
		return ""
	}
	candidates := make([]string, 0, len(c.records)*2)
	for _, rec := range c.records {
		candidates = append(candidates, rec.Name, rec.DisplayName)
	}
	return bestMatch(value, candidates, c.cfg.Cutoff)
}

// Suggest returns up to limit records whose lookup key contains the partial
// string, for autocomplete.
func (c *Cache) Suggest(partial string, limit int) []domain.MasterRecord {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}
	seen := make(map[string]bool, limit)
	var out []domain.MasterRecord
	for _, rec := range c.records {
		if len(out) >= limit {
			break
		}
		key := strings.ToLower(rec.Name)
		alt := strings.ToLower(rec.DisplayName)
		if !strings.Contains(key, partial) && !strings.Contains(alt, partial) {
			continue
		}
		if seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true
		out = append(out, *rec)
	}
	return out
}

// SearchRemote queries the remote list endpoint with a like-filter, for
// values newer than the cached snapshot. Records decode through the same
// kind decoder as the bulk load.
func (c *Cache) SearchRemote(ctx context.Context, partial string, limit int) ([]domain.MasterRecord, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return nil, nil
	}
	raws, err := c.client.SearchByPattern(ctx, c.cfg.Doctype, c.cfg.SearchField, partial, c.cfg.Fields, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s by pattern: %w", c.cfg.Doctype, err)
	}
	out := make([]domain.MasterRecord, 0, len(raws))
	for _, raw := range raws {
		rec := c.cfg.Decode(raw)
		if rec.Name == "" && rec.DisplayName == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
