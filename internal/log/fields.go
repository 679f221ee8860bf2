package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldIndex      = "index"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldRows       = "rows"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldSheetsRef  = "sheets_ref"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Standard operation names used in the FieldOperation attribute.
const (
	OpAdd        = "add"
	OpEdit       = "edit"
	OpDelete     = "delete"
	OpUndo       = "undo"
	OpList       = "list"
	OpExport     = "export"
	OpCategories = "categories"
	OpMirror     = "mirror"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
