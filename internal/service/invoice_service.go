package service

import (
	"context"

	"github.com/rs/zerolog"

	"gstflow/internal/domain"
	"gstflow/internal/invoice"
	"gstflow/internal/logger"
)

// InvoiceService builds invoice documents from raw row batches.
type InvoiceService interface {
	// Generate groups rows into invoices. The returned error map carries
	// per-group build failures; err is ErrAllInvoicesFailed only when every
	// group failed.
	Generate(ctx context.Context, rows []domain.Row, company, remarks string) (map[string]*domain.Invoice, map[string]string, error)
}

type invoiceService struct {
	builder *invoice.Builder
	log     zerolog.Logger
}

// NewInvoiceService creates an InvoiceService over a configured builder.
func NewInvoiceService(builder *invoice.Builder) InvoiceService {
	return &invoiceService{builder: builder, log: logger.WithComponent("invoice")}
}

func (s *invoiceService) Generate(_ context.Context, rows []domain.Row, company, remarks string) (map[string]*domain.Invoice, map[string]string, error) {
	invoices, buildErrs, err := s.builder.BuildAll(rows, company, remarks)
	if err != nil {
		return nil, buildErrs, err
	}
	s.log.Info().Int("invoices", len(invoices)).Int("failed_groups", len(buildErrs)).Msg("invoices generated")
	return invoices, buildErrs, nil
}
