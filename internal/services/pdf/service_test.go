package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	service := NewService(arbor.NewNoOpLogger())

	tests := []struct {
		name     string
		markdown string
		title    string
	}{
		{
			name:     "Basic Markdown",
			markdown: "# Testcase Report\n\nSome paragraph text.\n\n- Item 1\n- Item 2",
			title:    "Testcase Report",
		},
		{
			name:     "Empty Markdown",
			markdown: "",
			title:    "Empty",
		},
		{
			name:     "Bold Italic and Code",
			markdown: "Normal **Bold** *Italic* `TC_1`\n\n```\nTESTCASE RESULT - PASS\n```",
			title:    "Styling",
		},
		{
			name:     "Non Latin Characters",
			markdown: "Model : Openconfig-System ▶ résumé",
			title:    "Unicode – title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfBytes, err := service.ConvertMarkdownToPDF(tt.markdown, tt.title)
			require.NoError(t, err)
			require.NotEmpty(t, pdfBytes)
			assert.Equal(t, "%PDF", string(pdfBytes[:4]))
		})
	}
}

func TestConvertMarkdownToPDF_Tables(t *testing.T) {
	service := NewService(arbor.NewNoOpLogger())

	markdown := `
# Testcase Report

| S.No | Test ID | Testcase | Result |
|------|---------|----------|--------|
| 1 | TC_1 | Set_and_Get <- /system/config/hostname -> ONCE | PASS(P-S) |
| 2 | TC_2 | Set_and_Get <- /system/clock/config/timezone-name -> ONCE with a long trailing description that wraps | FAIL |

End of table.
`
	pdfBytes, err := service.ConvertMarkdownToPDF(markdown, "Testcase Report")
	require.NoError(t, err)
	assert.Greater(t, len(pdfBytes), 500)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestStatusColor(t *testing.T) {
	_, _, _, ok := statusColor("PASS(D)(P-NS)")
	assert.True(t, ok)
	red, _, _, ok := statusColor("FAIL")
	assert.True(t, ok)
	assert.Equal(t, 200, red)
	_, _, _, ok = statusColor("Not Applicable")
	assert.False(t, ok)
}
