// Package thaidate converts between Gregorian dates and the Thai Buddhist
// Era calendar used on hospital forms.
package thaidate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/hospital-careers/internal"
)

// EraOffset is the difference between Buddhist Era and Common Era years.
const EraOffset = 543

var months = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var shortMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var Location = time.FixedZone("Asia/Bangkok", 7*60*60)

func BuddhistYear(t time.Time) int {
	return t.Year() + EraOffset
}

func MonthName(m time.Month) string {
	return months[m-1]
}

func ShortMonthName(m time.Month) string {
	return shortMonths[m-1]
}

// Format renders "15 มีนาคม 2568".
func Format(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), BuddhistYear(t))
}

// FormatShort renders "15 มี.ค. 68".
func FormatShort(t time.Time) string {
	return fmt.Sprintf("%d %s %02d", t.Day(), ShortMonthName(t.Month()), BuddhistYear(t)%100)
}

// FormatNumeric renders "15/03/2568".
func FormatNumeric(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), BuddhistYear(t))
}

// FormatPtr returns "-" for a nil date.
func FormatPtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return Format(*t)
}

// ParseBE parses "dd/mm/yyyy" with a Buddhist Era year. Years below 2400 are
// taken as already being Common Era, which happens with copy-pasted input.
func ParseBE(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, invalid(s)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 {
		return time.Time{}, invalid(s)
	}
	if year >= 2400 {
		year -= EraOffset
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March; treat that as invalid input.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, invalid(s)
	}
	return t, nil
}

// Age returns completed years between birth and on.
func Age(birth, on time.Time) int {
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func invalid(s string) error {
	return errors.NewValidationFieldError("date", fmt.Sprintf("invalid Thai date %q, expected dd/mm/yyyy", s), errors.ErrCodeInvalidDate)
}
