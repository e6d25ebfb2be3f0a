package master

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gstflow/internal/domain"
	"gstflow/internal/port"
)

// uomAliases maps common spreadsheet spellings to the canonical UOM names
// the ERP maintains.
var uomAliases = map[string]string{
	"nos":      "Nos",
	"each":     "Nos",
	"pcs":      "Nos",
	"pieces":   "Nos",
	"kg":       "Kg",
	"kilogram": "Kg",
	"gram":     "Gm",
	"gms":      "Gm",
	"liter":    "Litre",
	"litre":    "Litre",
	"meter":    "Meter",
	"metre":    "Meter",
	"box":      "Box",
	"carton":   "Carton",
	"dozen":    "Dozen",
}

// UOMCheck is the advisory verdict for a unit-of-measure value.
type UOMCheck struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// UOMCache is the load-once index of units of measure.
type UOMCache struct {
	client port.ERPClient

	once    sync.Once
	loadErr error
	enabled map[string]bool // lower-cased name → enabled flag
	names   map[string]string
}

// NewUOMCache creates an unloaded UOM cache.
func NewUOMCache(client port.ERPClient) *UOMCache {
	return &UOMCache{
		client:  client,
		enabled: make(map[string]bool),
		names:   make(map[string]string),
	}
}

// EnsureLoaded fetches the UOM list once per instance lifetime.
func (c *UOMCache) EnsureLoaded(ctx context.Context) error {
	c.once.Do(func() {
		raws, err := c.client.BulkFetch(ctx, domain.DoctypeUOM, []string{"uom_name", "enabled"}, 500)
		if err != nil {
			c.loadErr = fmt.Errorf("loading UOM cache: %w", err)
			return
		}
		for _, raw := range raws {
			name := asString(raw, "uom_name")
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			c.names[key] = name
			c.enabled[key] = asBool(raw, "enabled")
		}
	})
	return c.loadErr
}

// Check validates a UOM value, suggesting a canonical alias when the raw
// spelling is not a direct hit. Verdicts are advisory; the invoice builder
// defaults to "Nos" regardless.
func (c *UOMCache) Check(uom string) UOMCheck {
	clean := strings.TrimSpace(uom)
	if clean == "" {
		return UOMCheck{Message: "UOM is empty", Suggestion: "Nos"}
	}
	key := strings.ToLower(clean)

	if enabled, ok := c.enabled[key]; ok {
		if !enabled {
			return UOMCheck{Message: "UOM is disabled in ERP", Suggestion: "Enable UOM or use different UOM"}
		}
		return UOMCheck{Valid: true, Message: "UOM found and active"}
	}

	if canonical, ok := uomAliases[key]; ok {
		if _, exists := c.enabled[strings.ToLower(canonical)]; exists {
			return UOMCheck{Valid: true, Message: "UOM standardized", Suggestion: canonical}
		}
	}

	return UOMCheck{Message: "UOM not found in ERP", Suggestion: "Nos"}
}
