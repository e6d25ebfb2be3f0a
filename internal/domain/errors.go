package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("validation session not found")
	ErrNoRows              = errors.New("no data rows found")
	ErrMissingCustomer     = errors.New("customer missing for invoice group")
	ErrAllInvoicesFailed   = errors.New("all invoice builds failed")
	ErrEmptyName           = errors.New("empty master name")
	ErrInvalidAPIToken     = errors.New("api token must be in key:secret format")
	ErrNoInvoices          = errors.New("no invoice data provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)
