package audit

// Column describes one field of a WasteResult for presentation layers.
// Labels are opaque display metadata; the audit never formats values itself.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ResultColumns returns the display columns of the waste report.
func ResultColumns() []Column {
	return []Column{
		{Key: "url", Label: "URL"},
		{Key: "numUnused", Label: "Unused Functions"},
		{Key: "totalKb", Label: "Size (KiB)"},
		{Key: "potentialSavings", Label: "Potential Savings"},
	}
}
