package domain

// IngestResult summarises one ingested report.
type IngestResult struct {
	// Path is the ingested file.
	Path string

	// Period is the reporting period the report was filed under.
	Period string

	// Pages is the number of pages read.
	Pages int

	// Records are the metric records stored for the period.
	Records []ExtractedMetricRecord

	// Skipped lists catalog entries that could not be applied.
	Skipped []SkippedMetric

	// PassagesAdded is the number of passages appended to the corpus.
	PassagesAdded int

	// CorpusSize is the corpus size after ingestion.
	CorpusSize int
}
