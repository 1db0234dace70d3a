package handlers

const (
	// Result limits
	maxFingeringLimit   = 50 // Maximum fingerings returned per request
	maxProgressionLimit = 10 // Maximum sequences returned per request

	// Largest chord sequence the beam search will accept
	maxProgressionChords = 16

	// Maximum page size when listing library entries
	maxLibraryPageSize = 100
)
