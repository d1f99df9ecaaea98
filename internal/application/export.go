package application

import (
	"context"
	"fmt"
	"io"
	"time"

	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/thaidate"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "ใบสมัคร"

var exportHeaders = []string{
	"เลขที่", "วันที่สมัคร", "ชื่อ-นามสกุล", "หน่วยงาน", "ตำแหน่ง",
	"เพศ", "อายุ", "โทรศัพท์", "อีเมล", "วุฒิการศึกษาสูงสุด", "สถานะ",
}

// Export writes every application matching filter, ignoring pagination, as
// an xlsx workbook.
func (s *Service) Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error) {
	rows, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load applications for export", "error", err)
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return 0, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return 0, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, err
	}

	for i, h := range exportHeaders {
		if err := f.SetCellValue(exportSheet, cell(i, 1), h); err != nil {
			return 0, err
		}
	}
	if err := f.SetCellStyle(exportSheet, cell(0, 1), cell(len(exportHeaders)-1, 1), headerStyle); err != nil {
		return 0, err
	}
	_ = f.SetColWidth(exportSheet, "B", "E", 24)
	_ = f.SetColWidth(exportSheet, "H", "J", 22)

	now := s.now()
	for r, a := range rows {
		for c, v := range exportRow(a, now) {
			if err := f.SetCellValue(exportSheet, cell(c, r+2), v); err != nil {
				return 0, err
			}
		}
	}

	if err := f.Write(w); err != nil {
		s.logger.Error("failed to write applications export", "error", err)
		return 0, err
	}
	s.logger.Info("applications exported", "rows", len(rows))
	return len(rows), nil
}

func exportRow(a *applicationDatamodel.ApplicationForm, now time.Time) []interface{} {
	department := ""
	if a.Department != nil {
		department = a.Department.Name
	}
	var age interface{} = ""
	if a.BirthDate != nil {
		age = thaidate.Age(*a.BirthDate, now)
	}
	education := ""
	if n := len(a.Educations); n > 0 {
		education = a.Educations[n-1].Level
	}
	return []interface{}{
		a.ID,
		thaidate.FormatNumeric(a.SubmittedAt.In(thaidate.Location)),
		a.FullName(),
		department,
		a.Position,
		a.Gender,
		age,
		a.Phone,
		a.Email,
		education,
		a.Status,
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

// ExportFileName is the suggested download name for an export made at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("applications_%s.xlsx", t.In(thaidate.Location).Format("20060102_150405"))
}
