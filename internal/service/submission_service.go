package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"gstflow/internal/domain"
	"gstflow/internal/logger"
	"gstflow/internal/port"
)

// InvoiceSubmission is the per-invoice outcome of a submission batch.
type InvoiceSubmission struct {
	Success      bool           `json:"success"`
	InvoiceNo    string         `json:"invoice_no,omitempty"`
	Response     map[string]any `json:"response,omitempty"`
	Error        string         `json:"error,omitempty"`
	StatusCode   int            `json:"status_code,omitempty"`
	ResponseText string         `json:"response_text,omitempty"`
}

// SubmissionService is the gateway to the remote invoice sink: it re-verifies
// every master an invoice references, then posts the document.
type SubmissionService interface {
	VerifyInvoiceMasters(ctx context.Context, client port.ERPClient, inv *domain.Invoice) (bool, string)
	SubmitBatch(ctx context.Context, creds port.Credentials, invoices map[string]*domain.Invoice) map[string]InvoiceSubmission
}

type submissionService struct {
	clientFor       port.ERPClientFactory
	defaultEndpoint string
	log             zerolog.Logger
}

// NewSubmissionService creates a SubmissionService. defaultEndpoint is used
// when the caller supplies no endpoint override.
func NewSubmissionService(clientFor port.ERPClientFactory, defaultEndpoint string) SubmissionService {
	return &submissionService{
		clientFor:       clientFor,
		defaultEndpoint: defaultEndpoint,
		log:             logger.WithComponent("submission"),
	}
}

// VerifyInvoiceMasters checks every master the invoice references: customer,
// company, each item (and its UOM and warehouse when present), the payment
// terms template when present, and every distinct tax account head. All
// failures are collected and joined with "; " rather than short-circuiting,
// so one round of fixes can cover everything.
func (s *submissionService) VerifyInvoiceMasters(ctx context.Context, client port.ERPClient, inv *domain.Invoice) (bool, string) {
	var remarks []string
	check := func(doctype domain.Doctype, name string) {
		if r := client.VerifyResource(ctx, doctype, name); !r.Found {
			remarks = append(remarks, r.Detail)
		}
	}

	check(domain.DoctypeCustomer, inv.Customer)
	check(domain.DoctypeCompany, inv.Company)

	seenUOMs := make(map[string]bool)
	seenWarehouses := make(map[string]bool)
	for _, item := range inv.Items {
		name := item.ItemCode
		if name == "" {
			name = item.ItemName
		}
		check(domain.DoctypeItem, name)

		if item.UOM != "" && !seenUOMs[item.UOM] {
			seenUOMs[item.UOM] = true
			check(domain.DoctypeUOM, item.UOM)
		}
		if item.Warehouse != "" && !seenWarehouses[item.Warehouse] {
			seenWarehouses[item.Warehouse] = true
			check(domain.DoctypeWarehouse, item.Warehouse)
		}
	}

	if inv.PaymentTerms != "" {
		check(domain.DoctypePaymentTerms, inv.PaymentTerms)
	}

	seenHeads := make(map[string]bool)
	for _, tax := range inv.Taxes {
		if tax.AccountHead == "" || seenHeads[tax.AccountHead] {
			continue
		}
		seenHeads[tax.AccountHead] = true
		check(domain.DoctypeAccount, tax.AccountHead)
	}

	if len(remarks) > 0 {
		return false, strings.Join(remarks, "; ")
	}
	return true, "All masters verified."
}

// SubmitBatch verifies and posts each invoice, reporting per-invoice results.
// A verification failure skips the post for that invoice only.
func (s *submissionService) SubmitBatch(ctx context.Context, creds port.Credentials, invoices map[string]*domain.Invoice) map[string]InvoiceSubmission {
	endpoint := creds.Endpoint
	if endpoint == "" {
		endpoint = s.defaultEndpoint
	}
	client := s.clientFor(creds)

	results := make(map[string]InvoiceSubmission, len(invoices))
	for key, inv := range invoices {
		ok, msg := s.VerifyInvoiceMasters(ctx, client, inv)
		if !ok {
			results[key] = InvoiceSubmission{
				Success:   false,
				InvoiceNo: key,
				Error:     fmt.Sprintf("Master verification failed: %s", msg),
			}
			continue
		}

		res := client.PostInvoice(ctx, endpoint, inv)
		switch {
		case res.OK:
			invoiceNo := res.DocumentName
			if invoiceNo == "" {
				invoiceNo = key
			}
			results[key] = InvoiceSubmission{Success: true, InvoiceNo: invoiceNo, Response: res.Response}
		case res.TransportErr != "":
			results[key] = InvoiceSubmission{Success: false, InvoiceNo: key, Error: res.TransportErr}
		default:
			results[key] = InvoiceSubmission{
				Success:      false,
				InvoiceNo:    key,
				StatusCode:   res.StatusCode,
				ResponseText: res.ResponseText,
			}
		}
	}

	s.log.Info().Int("invoices", len(invoices)).Msg("submission batch finished")
	return results
}
