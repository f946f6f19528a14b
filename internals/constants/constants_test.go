package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickHighestRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{name: "empty", roles: nil, want: ""},
		{name: "blank entries", roles: []string{" ", ""}, want: ""},
		{name: "single", roles: []string{"staff"}, want: RoleStaff},
		{name: "admin beats lexically larger roles", roles: []string{"viewer", "admin", "staff"}, want: RoleAdmin},
		{name: "staff beats viewer", roles: []string{"viewer", "staff"}, want: RoleStaff},
		{name: "known beats unknown", roles: []string{"zookeeper", "viewer"}, want: RoleViewer},
		{name: "unknown ties reverse alphabetical", roles: []string{"alpha", "omega"}, want: "omega"},
		{name: "case and spaces", roles: []string{" ADMIN "}, want: RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickHighestRole(tt.roles))
		})
	}
}

func TestSchoolLevels(t *testing.T) {
	assert.True(t, IsValidSchoolLevel("SD"))
	assert.True(t, IsValidSchoolLevel(" sma "))
	assert.False(t, IsValidSchoolLevel("kuliah"))
	assert.Equal(t, "SMP", SchoolLevelLabel("smp"))
	assert.Equal(t, "KULIAH", SchoolLevelLabel("kuliah"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("foto.JPG"))
	assert.True(t, IsImageFile("a.webp"))
	assert.False(t, IsImageFile("dokumen.pdf"))
}
