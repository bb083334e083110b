package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskpad/internal/tasklist"
)

// Export formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ErrUnknownFormat is returned for formats other than the ones above.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatCSV, FormatPDF}
}

// IsFormat reports whether format names a supported export format.
// Case and surrounding space are ignored; empty means text.
func IsFormat(format string) bool {
	format = normalizeFormat(format)
	return format == "" || slices.Contains(Formats(), format)
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

type taskJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Export writes tasks to w in the given format.
// title is used as the document heading where the format has one.
func Export(w io.Writer, format, title string, tasks []tasklist.Task) error {
	switch normalizeFormat(format) {
	case FormatText, "":
		return exportText(w, title, tasks)
	case FormatJSON:
		return exportJSON(w, tasks)
	case FormatCSV:
		return exportCSV(w, tasks)
	case FormatPDF:
		return exportPDF(w, title, tasks)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to text.
func FormatFromPath(path string) string {
	lower := strings.ToLower(path)
	for _, f := range []string{FormatJSON, FormatCSV, FormatPDF} {
		if strings.HasSuffix(lower, "."+f) {
			return f
		}
	}
	return FormatText
}

func exportText(w io.Writer, title string, tasks []tasklist.Task) error {
	FormatHeader(w, title)
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
	FormatSummary(w, tasks)
	return nil
}

func exportJSON(w io.Writer, tasks []tasklist.Task) error {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON{ID: t.ID, Description: t.Description, Completed: t.Completed})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportCSV(w io.Writer, tasks []tasklist.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "id", "description", "completed"}); err != nil {
		return err
	}
	for i, t := range tasks {
		record := []string{strconv.Itoa(i + 1), t.ID, t.Description, strconv.FormatBool(t.Completed)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportPDF(w io.Writer, title string, tasks []tasklist.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(NormalizeTitle(title), true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(NormalizeTitle(title)))
	pdf.Ln(14)

	for i, t := range tasks {
		style := ""
		if t.Completed {
			// strike through like the on-screen row
			style = "S"
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(12, 7, strconv.Itoa(i+1), "", 0, "R", false, 0, "")
		pdf.CellFormat(10, 7, Checkbox(t.Completed), "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", style, 11)
		pdf.MultiCell(0, 7, tr(NormalizeDescription(t.Description)), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	var summary strings.Builder
	FormatSummary(&summary, tasks)
	pdf.Cell(0, 6, strings.TrimSpace(summary.String()))

	return pdf.Output(w)
}
