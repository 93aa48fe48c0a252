package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	FetchError      = 4
	ExportError     = 5
	PartialSuccess  = 6
	ServeError      = 7
)
