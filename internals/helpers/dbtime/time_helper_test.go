package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatStamp(t *testing.T) {
	assert.Equal(t, "-", FormatStamp(time.Time{}))

	utc := time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC)
	got := ToSchoolTime(utc)
	assert.True(t, got.Equal(utc))
	assert.NotEmpty(t, FormatStamp(utc))
}
