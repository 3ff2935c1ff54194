package interfaces

// TransformService converts rendered HTML reports to markdown
type TransformService interface {
	// HTMLToMarkdown converts HTML content to markdown
	// baseURL is used for resolving relative links
	HTMLToMarkdown(html string, baseURL string) (string, error)

	// ReportToMarkdown converts a full report page, dropping scripts, styles and navigation
	ReportToMarkdown(html string) (string, error)

	// ValidateHTML checks if the input looks like valid HTML
	ValidateHTML(content string) error
}
