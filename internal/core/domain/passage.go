package domain

// Page is one page of plain text produced by a page-text source.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the page's plain text with line breaks preserved.
	Text string

	// Unreadable marks a page whose text could not be extracted.
	Unreadable bool
}

// Readable reports whether the page has usable text.
func (p Page) Readable() bool {
	return !p.Unreadable && p.Text != ""
}

// Passage is a paragraph of report text paired with its embedding.
// The corpus is an ordered collection of passages; the vector index
// addresses passages by Position.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string

	// Position is the ordinal position within the corpus.
	Position int

	// Text is the trimmed paragraph text.
	Text string

	// Period is the reporting period of the source document.
	Period string

	// Page is the 1-based page the paragraph came from.
	Page int

	// Embedding is the vector representation of Text.
	Embedding []float32
}

// CorpusStats summarises the passage corpus.
type CorpusStats struct {
	Passages   int
	Periods    []string
	Dimensions int
	Model      string
}
