package domain

// GSTCategory classifies an invoice for Indian GST purposes.
type GSTCategory string

const (
	GSTRegistered   GSTCategory = "Registered"
	GSTUnregistered GSTCategory = "Unregistered"
	GSTOverseas     GSTCategory = "Overseas"
)

// Doctype names a master resource type in the remote ERP system.
type Doctype string

const (
	DoctypeCustomer     Doctype = "Customer"
	DoctypeItem         Doctype = "Item"
	DoctypeCompany      Doctype = "Company"
	DoctypeUOM          Doctype = "UOM"
	DoctypeWarehouse    Doctype = "Warehouse"
	DoctypePaymentTerms Doctype = "Payment Terms Template"
	DoctypeAccount      Doctype = "Account"
)

// SessionState is the lifecycle state of a validation session.
type SessionState string

const (
	SessionInitialized SessionState = "initialized"
	SessionValidating  SessionState = "validating"
	SessionCompleted   SessionState = "completed"
	SessionFailed      SessionState = "failed"
)

// PhaseState is the state of a single validation sub-phase (customers, items).
type PhaseState string

const (
	PhasePending    PhaseState = "pending"
	PhaseValidating PhaseState = "validating"
	PhaseCompleted  PhaseState = "completed"
)

// CheckStatus is the verdict for a single validated master value.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckWarning CheckStatus = "warning"
	CheckFailed  CheckStatus = "failed"
)

// CorrectionKind identifies which master kind a correction applies to.
type CorrectionKind string

const (
	CorrectionCustomer CorrectionKind = "customer"
	CorrectionItem     CorrectionKind = "item"
)
