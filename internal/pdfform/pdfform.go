// Package pdfform renders the official application form as a PDF.
package pdfform

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/thaidate"
	"github.com/go-pdf/fpdf"
)

const defaultFamily = "THSarabunNew"

type Renderer interface {
	Render(w io.Writer, a *applicationDatamodel.ApplicationForm) error
}

// FPDFRenderer draws the form with fpdf. Without a UTF-8 font file it falls
// back to Helvetica and English labels; Thai values then print as dots.
type FPDFRenderer struct {
	fontPath string
	family   string
	now      func() time.Time
}

func NewRenderer(cfg internal.PDFConfig) (*FPDFRenderer, error) {
	r := &FPDFRenderer{fontPath: cfg.FontPath, family: cfg.FontFamily, now: time.Now}
	if r.fontPath == "" {
		return r, nil
	}
	if _, err := os.Stat(r.fontPath); err != nil {
		return nil, fmt.Errorf("pdf font: %w", err)
	}
	if r.family == "" {
		r.family = defaultFamily
	}
	return r, nil
}

func (r *FPDFRenderer) WithClock(now func() time.Time) *FPDFRenderer {
	r.now = now
	return r
}

func (r *FPDFRenderer) unicode() bool {
	return r.fontPath != ""
}

type page struct {
	pdf      *fpdf.Fpdf
	family   string
	th       bool
	tr       func(string) string
	baseSize float64
}

func (r *FPDFRenderer) Render(w io.Writer, a *applicationDatamodel.ApplicationForm) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	p := &page{pdf: pdf, th: r.unicode()}
	if p.th {
		pdf.AddUTF8Font(r.family, "", r.fontPath)
		p.family = r.family
		p.baseSize = 16
		p.tr = func(s string) string { return s }
	} else {
		p.family = "Helvetica"
		p.baseSize = 10
		p.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle(fmt.Sprintf("application-%d", a.ID), true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	p.title(p.label("ใบสมัครงาน", "Job Application Form"))
	p.row(p.label("เลขที่ใบสมัคร", "Application No."), strconv.FormatInt(a.ID, 10))
	p.row(p.label("วันที่สมัคร", "Submitted"), p.date(&a.SubmittedAt))
	p.row(p.label("สถานะ", "Status"), a.Status)
	if a.Department != nil {
		p.row(p.label("หน่วยงานที่สมัคร", "Department"), a.Department.Name)
	}
	p.row(p.label("ตำแหน่ง", "Position"), a.Position)

	p.section(p.label("ข้อมูลส่วนตัว", "Personal Information"))
	p.row(p.label("ชื่อ-นามสกุล", "Full name"), a.FullName())
	p.row(p.label("ชื่อเล่น", "Nickname"), a.Nickname)
	p.row(p.label("เพศ", "Gender"), a.Gender)
	p.row(p.label("วันเกิด", "Birth date"), p.date(a.BirthDate))
	if a.BirthDate != nil {
		p.row(p.label("อายุ", "Age"), strconv.Itoa(thaidate.Age(*a.BirthDate, r.now())))
	}
	p.row(p.label("สัญชาติ", "Nationality"), a.Nationality)
	p.row(p.label("ศาสนา", "Religion"), a.Religion)
	p.row(p.label("สถานภาพ", "Marital status"), a.MaritalStatus)
	p.row(p.label("เลขประจำตัวประชาชน", "National ID"), a.IDCardNumber)
	p.row(p.label("โทรศัพท์", "Phone"), a.Phone)
	p.row(p.label("อีเมล", "Email"), a.Email)
	p.row(p.label("ที่อยู่", "Address"), a.Address)
	p.row(p.label("เงินเดือนที่คาดหวัง", "Expected salary"), a.ExpectedSalary)
	p.row(p.label("วันที่เริ่มงานได้", "Available from"), p.date(a.AvailableDate))

	p.section(p.label("ประวัติการศึกษา", "Education"))
	for i, e := range a.Educations {
		p.line(fmt.Sprintf("%d. %s - %s %s %s", i+1, e.Level, e.Institution, e.Major, e.GraduationYear))
	}
	if len(a.Educations) == 0 {
		p.line("-")
	}

	p.section(p.label("ประวัติการทำงาน", "Work Experience"))
	for i, wx := range a.WorkExperiences {
		end := p.date(wx.EndDate)
		if wx.IsCurrent {
			end = p.label("ปัจจุบัน", "present")
		}
		p.line(fmt.Sprintf("%d. %s, %s (%s - %s)", i+1, wx.CompanyName, wx.Position, p.date(wx.StartDate), end))
	}
	if len(a.WorkExperiences) == 0 {
		p.line("-")
	}

	p.section(p.label("เอกสารแนบ", "Documents"))
	for _, d := range a.Documents {
		p.line(fmt.Sprintf("%s: %s", d.DocumentType, d.FileName))
	}
	if len(a.Documents) == 0 {
		p.line("-")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (p *page) label(th, en string) string {
	if p.th {
		return th
	}
	return en
}

func (p *page) date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	if p.th {
		return thaidate.Format(*t)
	}
	return thaidate.FormatNumeric(*t)
}

func (p *page) title(text string) {
	p.pdf.SetFont(p.family, "", p.baseSize+6)
	p.pdf.CellFormat(0, 10, p.tr(text), "", 1, "C", false, 0, "")
	p.pdf.Ln(2)
}

func (p *page) section(text string) {
	p.pdf.Ln(3)
	p.pdf.SetFont(p.family, "", p.baseSize+2)
	p.pdf.SetFillColor(230, 236, 245)
	p.pdf.CellFormat(0, 8, p.tr(text), "B", 1, "L", true, 0, "")
	p.pdf.Ln(1)
}

func (p *page) row(label, value string) {
	if value == "" {
		value = "-"
	}
	p.pdf.SetFont(p.family, "", p.baseSize)
	p.pdf.CellFormat(55, 7, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.MultiCell(0, 7, p.tr(value), "", "L", false)
}

func (p *page) line(text string) {
	p.pdf.SetFont(p.family, "", p.baseSize)
	p.pdf.MultiCell(0, 7, p.tr(text), "", "L", false)
}
