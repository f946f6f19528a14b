package constants

import "strings"

const (
	LevelTK  = "tk"
	LevelSD  = "sd"
	LevelSMP = "smp"
	LevelSMA = "sma"
)

var SchoolLevels = []string{LevelTK, LevelSD, LevelSMP, LevelSMA}

var schoolLevelLabels = map[string]string{
	LevelTK:  "TK",
	LevelSD:  "SD",
	LevelSMP: "SMP",
	LevelSMA: "SMA",
}

func NormalizeSchoolLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

func IsValidSchoolLevel(level string) bool {
	_, ok := schoolLevelLabels[NormalizeSchoolLevel(level)]
	return ok
}

// SchoolLevelLabel: label tampilan, fallback ke upper-case apa adanya.
func SchoolLevelLabel(level string) string {
	if l, ok := schoolLevelLabels[NormalizeSchoolLevel(level)]; ok {
		return l
	}
	return strings.ToUpper(level)
}
