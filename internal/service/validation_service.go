package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gstflow/internal/domain"
	"gstflow/internal/logger"
	"gstflow/internal/master"
	"gstflow/internal/port"
)

// Progress tracks how far a validation run has come, counted over the
// distinct master values rather than raw rows.
type Progress struct {
	TotalRecords     int     `json:"total_records"`
	ProcessedRecords int     `json:"processed_records"`
	Percentage       float64 `json:"percentage"`
}

// StatusReport is the caller-facing snapshot of a session.
type StatusReport struct {
	SessionID uuid.UUID                `json:"session_id"`
	Status    domain.SessionState      `json:"status"`
	Progress  Progress                 `json:"progress"`
	Customers domain.PhaseResult       `json:"customer_validation"`
	Items     domain.PhaseResult       `json:"item_validation"`
	Summary   domain.ValidationSummary `json:"validation_summary"`
}

// PhaseSummary aggregates one phase for the detailed report.
type PhaseSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// DetailedReport is the full validation report for a completed session.
type DetailedReport struct {
	SessionID   uuid.UUID `json:"session_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     struct {
		TotalRecords   int          `json:"total_records"`
		Customers      PhaseSummary `json:"customer_validation"`
		Items          PhaseSummary `json:"item_validation"`
		CanProceed     bool         `json:"can_proceed"`
		CriticalErrors int          `json:"critical_errors"`
		TotalWarnings  int          `json:"total_warnings"`
	} `json:"summary"`
	DetailedErrors struct {
		Customers []domain.ValidationIssue `json:"customers"`
		Items     []domain.ValidationIssue `json:"items"`
	} `json:"detailed_errors"`
	AutoCorrections []domain.Correction `json:"auto_corrections"`
}

// ValidationService orchestrates master-data validation sessions: customer
// phase, then item phase, then summary.
type ValidationService interface {
	CreateSession(ctx context.Context, rows []domain.Row, columns []string) (*domain.ValidationSession, error)
	Run(ctx context.Context, id uuid.UUID, creds port.Credentials) (*StatusReport, error)
	Status(ctx context.Context, id uuid.UUID) (*StatusReport, error)
	Report(ctx context.Context, id uuid.UUID) (*DetailedReport, error)
	ApplyCorrections(ctx context.Context, id uuid.UUID, corrections []domain.Correction) (int, error)
	Cleanup(ctx context.Context, id uuid.UUID) error
}

type validationService struct {
	store     port.SessionStore
	clientFor port.ERPClientFactory
	log       zerolog.Logger
}

// NewValidationService creates a ValidationService over a session store and
// an ERP client factory.
func NewValidationService(store port.SessionStore, clientFor port.ERPClientFactory) ValidationService {
	return &validationService{
		store:     store,
		clientFor: clientFor,
		log:       logger.WithComponent("validation"),
	}
}

func (v *validationService) CreateSession(ctx context.Context, rows []domain.Row, columns []string) (*domain.ValidationSession, error) {
	if len(rows) == 0 {
		return nil, domain.ErrNoRows
	}
	s := domain.NewValidationSession(rows, columns)
	if err := v.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	v.log.Info().Str("session", s.ID.String()).Int("rows", len(rows)).Msg("validation session created")
	return s, nil
}

// Run executes both validation phases against fresh master caches. Fresh
// caches mean each run sees one consistent remote snapshot; re-running the
// same unmutated session yields identical counts.
func (v *validationService) Run(ctx context.Context, id uuid.UUID, creds port.Credentials) (*StatusReport, error) {
	client := v.clientFor(creds)
	customerCache := master.NewCache(client, master.CustomerKind())
	itemCache := master.NewCache(client, master.ItemKind())

	var report *StatusReport
	err := v.store.Update(ctx, id, func(s *domain.ValidationSession) error {
		s.State = domain.SessionValidating
		s.ProcessedRecords = 0

		if err := v.runPhase(ctx, &s.Customers, customerCache, distinctValues(s.Rows, domain.CustomerColumns)); err != nil {
			s.State = domain.SessionFailed
			return err
		}
		s.ProcessedRecords = phaseTotal(s.Customers)

		if err := v.runPhase(ctx, &s.Items, itemCache, distinctValues(s.Rows, domain.ItemColumns)); err != nil {
			s.State = domain.SessionFailed
			return err
		}
		s.ProcessedRecords += phaseTotal(s.Items)

		s.Summary = summarize(s.Customers, s.Items)
		s.State = domain.SessionCompleted
		report = statusOf(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	v.log.Info().
		Str("session", id.String()).
		Int("critical_errors", report.Summary.CriticalErrors).
		Int("warnings", report.Summary.Warnings).
		Bool("can_proceed", report.Summary.CanProceed).
		Msg("validation run completed")
	return report, nil
}

func (v *validationService) runPhase(ctx context.Context, phase *domain.PhaseResult, cache *master.Cache, values []string) error {
	*phase = domain.PhaseResult{State: domain.PhaseValidating, Issues: []domain.ValidationIssue{}}

	results, err := cache.ValidateBatch(ctx, values)
	if err != nil {
		return err
	}
	for _, r := range results {
		switch r.Status {
		case domain.CheckPassed:
			phase.Passed++
		case domain.CheckWarning:
			phase.Warnings++
			phase.Issues = append(phase.Issues, domain.ValidationIssue{
				Type: "warning", Value: r.Value, Message: r.Message, Suggestion: r.Suggestion,
			})
		default:
			phase.Failed++
			phase.Issues = append(phase.Issues, domain.ValidationIssue{
				Type: "error", Value: r.Value, Message: r.Message, Suggestion: r.Suggestion,
			})
		}
	}
	phase.State = domain.PhaseCompleted
	return nil
}

func (v *validationService) Status(ctx context.Context, id uuid.UUID) (*StatusReport, error) {
	s, err := v.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return statusOf(s), nil
}

func (v *validationService) Report(ctx context.Context, id uuid.UUID) (*DetailedReport, error) {
	s, err := v.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r := &DetailedReport{
		SessionID:       s.ID,
		GeneratedAt:     time.Now().UTC(),
		AutoCorrections: s.Summary.AutoCorrections,
	}
	r.Summary.TotalRecords = s.TotalRecords
	r.Summary.Customers = phaseSummary(s.Customers)
	r.Summary.Items = phaseSummary(s.Items)
	r.Summary.CanProceed = s.Summary.CanProceed
	r.Summary.CriticalErrors = s.Summary.CriticalErrors
	r.Summary.TotalWarnings = s.Summary.Warnings
	r.DetailedErrors.Customers = s.Customers.Issues
	r.DetailedErrors.Items = s.Items.Issues
	return r, nil
}

// ApplyCorrections rewrites accepted suggestions onto every row whose
// relevant column equals the original value, covering both the primary and
// alternate column name for the kind. Returns the number of rows touched.
func (v *validationService) ApplyCorrections(ctx context.Context, id uuid.UUID, corrections []domain.Correction) (int, error) {
	applied := 0
	err := v.store.Update(ctx, id, func(s *domain.ValidationSession) error {
		for _, corr := range corrections {
			columns := domain.CustomerColumns
			if corr.Kind == domain.CorrectionItem {
				columns = domain.ItemColumns
			}
			for _, row := range s.Rows {
				if row.First(columns...) != corr.Original {
					continue
				}
				for _, col := range columns {
					if row.Has(col) {
						row[col] = corr.Suggested
					}
				}
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	v.log.Info().Str("session", id.String()).Int("applied", applied).Msg("corrections applied")
	return applied, nil
}

func (v *validationService) Cleanup(ctx context.Context, id uuid.UUID) error {
	return v.store.Delete(ctx, id)
}

// distinctValues extracts the ordered set of non-empty values across the
// candidate columns. A value repeated over hundreds of rows is validated
// once; the verdict covers them all.
func distinctValues(rows []domain.Row, columns []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := r.First(columns...)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func summarize(customers, items domain.PhaseResult) domain.ValidationSummary {
	summary := domain.ValidationSummary{
		CriticalErrors:  customers.Failed + items.Failed,
		Warnings:        customers.Warnings + items.Warnings,
		AutoCorrections: []domain.Correction{},
	}
	// Warnings never block; only hard failures do.
	summary.CanProceed = summary.CriticalErrors == 0

	for _, issue := range customers.Issues {
		if issue.Type == "warning" && issue.Suggestion != "" {
			summary.AutoCorrections = append(summary.AutoCorrections, domain.Correction{
				Kind: domain.CorrectionCustomer, Original: issue.Value, Suggested: issue.Suggestion,
			})
		}
	}
	for _, issue := range items.Issues {
		if issue.Type == "warning" && issue.Suggestion != "" {
			summary.AutoCorrections = append(summary.AutoCorrections, domain.Correction{
				Kind: domain.CorrectionItem, Original: issue.Value, Suggested: issue.Suggestion,
			})
		}
	}
	return summary
}

func phaseTotal(p domain.PhaseResult) int {
	return p.Passed + p.Warnings + p.Failed
}

func phaseSummary(p domain.PhaseResult) PhaseSummary {
	return PhaseSummary{Total: phaseTotal(p), Passed: p.Passed, Warnings: p.Warnings, Failed: p.Failed}
}

func statusOf(s *domain.ValidationSession) *StatusReport {
	pct := 0.0
	if s.TotalRecords > 0 {
		pct = math.Round(float64(s.ProcessedRecords)/float64(s.TotalRecords)*100*100) / 100
	}
	return &StatusReport{
		SessionID: s.ID,
		Status:    s.State,
		Progress: Progress{
			TotalRecords:     s.TotalRecords,
			ProcessedRecords: s.ProcessedRecords,
			Percentage:       pct,
		},
		Customers: s.Customers,
		Items:     s.Items,
		Summary:   s.Summary,
	}
}
