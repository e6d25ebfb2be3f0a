// Package invoice turns grouped spreadsheet rows into sales invoice
// documents: GST classification, item line construction with lenient numeric
// parsing, and per-item tax line computation.
package invoice

import (
	"fmt"
	"time"

	"gstflow/internal/domain"
	"gstflow/internal/gst"
)

const defaultRemarks = "Generated from Excel Uploader"

// Builder constructs invoices under one company's GST configuration.
type Builder struct {
	homeState      string
	defaultCompany string
	companyAbbr    string
}

// NewBuilder creates a Builder. homeState decides intra- vs inter-state
// supply; companyAbbr suffixes account heads ("Output Tax CGST - <abbr>").
func NewBuilder(homeState, defaultCompany, companyAbbr string) *Builder {
	return &Builder{
		homeState:      homeState,
		defaultCompany: defaultCompany,
		companyAbbr:    companyAbbr,
	}
}

// Build constructs one invoice from the rows of one group. The first row
// decides customer, dates, and GST classification; every row contributes one
// item line. Numeric cells that fail to parse silently default (qty 1,
// rate 0) so partially-dirty sheets stay usable.
func (b *Builder) Build(rows []domain.Row) (*domain.Invoice, error) {
	if len(rows) == 0 {
		return nil, domain.ErrNoRows
	}

	first := rows[0]
	customer := first.First("Customer", "Customer Name", "customer")
	if customer == "" {
		return nil, domain.ErrMissingCustomer
	}

	cls := Classify(first)

	postingDate := first.First("Posting Date", "Invoice Date")
	if postingDate == "" {
		postingDate = time.Now().Format("2006-01-02")
	}
	dueDate := first.First("Due Date")
	if dueDate == "" {
		dueDate = postingDate
	}
	company := first.First("Company")
	if company == "" {
		company = b.defaultCompany
	}
	remarks := first.First("Remarks")
	if remarks == "" {
		remarks = defaultRemarks
	}

	inv := &domain.Invoice{
		Doctype:       "Sales Invoice",
		Customer:      customer,
		Company:       company,
		PostingDate:   postingDate,
		DueDate:       dueDate,
		CustomerPONo:  first.First("Purchase Order No"),
		GSTCategory:   cls.Category,
		GSTIN:         cls.GSTIN,
		PlaceOfSupply: cls.PlaceOfSupply,
		Remarks:       remarks,
	}

	for _, r := range rows {
		inv.Items = append(inv.Items, b.buildItem(r))
	}

	intra := gst.IntraState(inv.PlaceOfSupply, b.homeState)
	inv.Taxes = taxLines(inv.Items, intra, b.companyAbbr)

	return inv, nil
}

func (b *Builder) buildItem(r domain.Row) domain.InvoiceItem {
	code := r.First("Item Code", "Item")
	name := r.First("Item Name")
	if name == "" {
		name = code
	}
	description := r.First("Description")
	if description == "" {
		description = name
	}
	uom := r.First("UOM")
	if uom == "" {
		uom = "Nos"
	}
	income := r.First("Income Account")
	if income == "" {
		income = fmt.Sprintf("Sales - %s", b.companyAbbr)
	}

	return domain.InvoiceItem{
		ItemCode:      code,
		ItemName:      name,
		Description:   description,
		Qty:           r.FloatOr(1, "Qty", "Quantity"),
		Rate:          r.FloatOr(0, "Rate"),
		UOM:           uom,
		GSTHSNCode:    r.First("GST HSN Code", "hsn_code"),
		Warehouse:     r.First("Warehouse"),
		IncomeAccount: income,
		GSTRate:       r.FloatOr(0, "GST Rate (%)", "GST Rate"),
	}
}

// BuildAll groups rows and builds every group, collecting per-group failures
// instead of aborting siblings. Company and remarks overrides, when
// non-empty, are applied to every built invoice. The error is
// ErrAllInvoicesFailed only when literally every group failed.
func (b *Builder) BuildAll(rows []domain.Row, company, remarks string) (map[string]*domain.Invoice, map[string]string, error) {
	if len(rows) == 0 {
		return nil, nil, domain.ErrNoRows
	}

	invoices := make(map[string]*domain.Invoice)
	buildErrs := make(map[string]string)
	for _, g := range GroupRows(rows) {
		inv, err := b.Build(g.Rows)
		if err != nil {
			buildErrs[g.Key] = err.Error()
			continue
		}
		if company != "" {
			inv.Company = company
		}
		if remarks != "" {
			inv.Remarks = remarks
		}
		invoices[g.Key] = inv
	}

	if len(invoices) == 0 && len(buildErrs) > 0 {
		return nil, buildErrs, domain.ErrAllInvoicesFailed
	}
	return invoices, buildErrs, nil
}
