package constants

// Context/session keys
const (
	ContextKeyEmployeeID = "employee_id"
	ContextKeyForm       = "form"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation
const (
	MinPasswordLength = 8
	// MinRemarkLength applies to HR remarks on form decisions and tag
	// approval batches alike.
	MinRemarkLength = 15
	// FreeTextSampleSize is how many raw answers the analytics projection
	// keeps for non-categorical fields.
	FreeTextSampleSize = 3
)
