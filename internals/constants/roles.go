package constants

import (
	"fmt"
	"sort"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)

// Template pesan error role
const (
	ErrOnlyEditorsCanAccess = "❌ Hanya admin atau staff yang boleh mengubah data %s."
)

func RoleErrorEditor(feature string) string {
	return fmt.Sprintf(ErrOnlyEditorsCanAccess, feature)
}

// rolePriority: makin besar makin tinggi. Role yang tidak dikenal = 0.
var rolePriority = map[string]int{
	RoleAdmin:  3,
	RoleStaff:  2,
	RoleViewer: 1,
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var EditorRoles = []string{
	RoleAdmin,
	RoleStaff,
}

func RolePriority(role string) int {
	return rolePriority[strings.ToLower(strings.TrimSpace(role))]
}

// PickHighestRole memilih satu role dengan prioritas tertinggi.
// Sesama prioritas (mis. role tak dikenal) diurutkan descending alfabetis.
func PickHighestRole(roles []string) string {
	clean := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			clean = append(clean, r)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	sort.SliceStable(clean, func(i, j int) bool {
		pi, pj := RolePriority(clean[i]), RolePriority(clean[j])
		if pi != pj {
			return pi > pj
		}
		return clean[i] > clean[j]
	})
	return clean[0]
}

func IsEditorRole(role string) bool {
	for _, r := range EditorRoles {
		if r == role {
			return true
		}
	}
	return false
}
