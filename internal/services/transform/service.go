// Package transform converts rendered HTML reports to markdown.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

// Elements that carry no report content
const chromeSelector = "script, style, nav, iframe, button, .filters"

var blankLines = regexp.MustCompile(`\n{3,}`)

// Service provides HTML to markdown conversion for report exports
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new transform service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

func (s *Service) converter(baseURL string) *md.Converter {
	conv := md.NewConverter(baseURL, true, nil)
	conv.Use(plugin.Table())
	return conv
}

// HTMLToMarkdown converts HTML content to markdown
// baseURL is used for resolving relative links
// Returns markdown string or error if conversion fails
func (s *Service) HTMLToMarkdown(html string, baseURL string) (string, error) {
	if html == "" {
		return "", nil
	}

	s.logger.Debug().
		Int("html_length", len(html)).
		Str("base_url", baseURL).
		Msg("Converting HTML to markdown")

	converted, err := s.converter(baseURL).ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return plainText(html), nil
	}

	if strings.TrimSpace(converted) == "" {
		s.logger.Warn().
			Int("html_length", len(html)).
			Msg("HTML to markdown conversion produced empty output, applying fallback")
		return plainText(html), nil
	}

	return converted, nil
}

// ReportToMarkdown converts a full report page. Scripts, styles, navigation
// and embedded frames are removed before conversion.
func (s *Service) ReportToMarkdown(html string) (string, error) {
	if err := s.ValidateHTML(html); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse report html: %w", err)
	}

	doc.Find(chromeSelector).Remove()
	title := strings.TrimSpace(doc.Find("title").Text())
	doc.Find("head").Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to extract report body: %w", err)
	}

	converted, err := s.HTMLToMarkdown(body, "")
	if err != nil {
		return "", err
	}

	converted = blankLines.ReplaceAllString(strings.TrimSpace(converted), "\n\n")
	if title != "" && !strings.HasPrefix(converted, "# ") {
		converted = "# " + title + "\n\n" + converted
	}

	s.logger.Debug().
		Int("markdown_length", len(converted)).
		Str("title", title).
		Msg("Converted report to markdown")

	return converted + "\n", nil
}

// plainText is the fallback when markdown conversion fails
func plainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ValidateHTML checks if the input looks like valid HTML
func (s *Service) ValidateHTML(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("empty content")
	}

	if !strings.Contains(trimmed, "<") {
		return fmt.Errorf("content does not appear to be HTML")
	}

	return nil
}
