package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/AskKenImani/school-backend/internal/grading"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

// Identity carries the student fields printed on a result sheet.
type Identity struct {
	Name      string
	ClassName string
}

// Renderer produces result-sheet PDFs with a fixed layout.
type Renderer struct {
	schoolName string
}

// NewRenderer constructs a Renderer for the given institution name.
func NewRenderer(schoolName string) *Renderer {
	if schoolName == "" {
		schoolName = "School"
	}
	return &Renderer{schoolName: schoolName}
}

// Filename builds the suggested download name for a rendered sheet. Session
// keys like "2024/2025" carry a path separator, so slashes are flattened.
func Filename(studentName, term, session string) string {
	name := fmt.Sprintf("%s_Result_%s_%s.pdf", studentName, term, session)
	return strings.ReplaceAll(name, "/", "-")
}

// Render lays out one student's term summary as a PDF: institution header,
// identity block, one table row per subject (subject name ascending, as
// produced by the aggregator), then the total and average line and optional
// conduct remarks. Validation happens before any drawing so a malformed
// input never yields partial output. The result is buffered; the expected
// data size is a few dozen rows.
func (r *Renderer) Render(summary *grading.StudentSummary, identity Identity, conductRemarks string) ([]byte, error) {
	if summary == nil {
		return nil, appErrors.Clone(appErrors.ErrRender, "summary is required")
	}
	if identity.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrRender, "student name is required")
	}
	if summary.Term == "" || summary.Session == "" {
		return nil, appErrors.Clone(appErrors.ErrRender, "term and session are required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, r.schoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Student Result Sheet", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", identity.Name), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Class: %s", identity.ClassName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Term: %s", summary.Term), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session: %s", summary.Session), "", 1, "", false, 0, "")
	pdf.Ln(4)

	widths := []float64{45, 20, 20, 40, 65}
	headers := []string{"Subject", "Score", "Grade", "Remark", "Comment"}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range summary.Subjects {
		comment := row.TeacherComment
		if comment == "" {
			comment = "-"
		}
		pdf.CellFormat(widths[0], 7, row.Subject, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", row.Score), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.Grade, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, row.GradeRemark, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 7, comment, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Score: %d / %d    Average: %.2f%%",
		summary.TotalScore, summary.MaxScore, summary.AveragePercent), "", 1, "", false, 0, "")

	if conductRemarks != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Conduct", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, conductRemarks, "", "", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, "render result sheet")
	}
	return buf.Bytes(), nil
}

// RenderEmpty renders a sheet with no subject rows: the table header is kept
// and the total shows zero. Used when a caller explicitly asks for a sheet
// for a term with no recorded results.
func (r *Renderer) RenderEmpty(studentID, term, session string, identity Identity) ([]byte, error) {
	summary := &grading.StudentSummary{StudentID: studentID, Term: term, Session: session}
	return r.Render(summary, identity, "")
}
