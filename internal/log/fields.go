package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldID        = "id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldDays      = "days"
	FieldCount     = "count"
	FieldPath      = "path"
)

// Components
const (
	ComponentApp    = "app"
	ComponentStore  = "store"
	ComponentConfig = "config"
)

// Operations
const (
	OpInit    = "init"
	OpInsert  = "insert"
	OpList    = "list"
	OpDelete  = "delete"
	OpSummary = "summary"
)
