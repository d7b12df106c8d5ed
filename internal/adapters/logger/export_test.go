package logger

// Error chain helpers exported for white-box tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntry exposes errorEntry to tests.
type ErrorEntry = errorEntry
