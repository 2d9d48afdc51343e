package domain

// LegacyFile is the list of names scanned from one legacy export file.
type LegacyFile struct {
	Path  string
	Names []string
}

// TextDocument is the already extracted text of one source document.
type TextDocument struct {
	Origin string
	Text   string
}
