package domain

// ExportRow is a single row in the tribute export.
// It flattens a Tribute for CSV consumers: the timestamp is repeated as an
// RFC 3339 string and seed records are flagged so they can be filtered out.
type ExportRow struct {
	ID              string
	Name            string
	Relationship    string
	Message         string
	Timestamp       int64
	PostedAt        string // RFC 3339, UTC
	AttachmentType  string // empty when there is no attachment
	AttachmentValue string
	Seed            bool
}
