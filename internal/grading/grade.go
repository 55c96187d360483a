package grading

import (
	"fmt"

	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

// Grade is a letter grade derived from a numeric score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps an integer score in [0,100] to its letter grade and remark.
// Thresholds are closed and non-overlapping, highest first. Any score set or
// updated on a result must pass through here; a grade is never accepted as
// caller input.
func GradeFor(score int) (Grade, string, error) {
	if score < 0 || score > 100 {
		return "", "", appErrors.Clone(appErrors.ErrInvalidScore, fmt.Sprintf("score %d is outside 0-100", score))
	}
	switch {
	case score >= 75:
		return GradeA, "Excellent", nil
	case score >= 65:
		return GradeB, "Very Good", nil
	case score >= 50:
		return GradeC, "Good", nil
	case score >= 40:
		return GradeD, "Fair", nil
	default:
		return GradeF, "Fail", nil
	}
}
