// Package dbtime mengonversi timestamp DB (UTC) ke zona waktu sekolah.
package dbtime

import (
	"sync"
	"time"

	"sekolahku_backend/internals/configs"
)

const defaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	loc     *time.Location
)

// SchoolLocation: zona dari SCHOOL_TIMEZONE, fallback Asia/Jakarta lalu UTC.
func SchoolLocation() *time.Location {
	locOnce.Do(func() {
		name := configs.GetEnv("SCHOOL_TIMEZONE", defaultTimezone)
		l, err := time.LoadLocation(name)
		if err != nil {
			l, err = time.LoadLocation(defaultTimezone)
		}
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// ToSchoolTime mengonversi waktu ke timezone sekolah.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToSchoolTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(SchoolLocation())
}

// FormatStamp dipakai template dashboard ("02 Jan 2006 15:04").
func FormatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return ToSchoolTime(t).Format("02 Jan 2006 15:04")
}
