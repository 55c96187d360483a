package grading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

func TestGradeForBoundaries(t *testing.T) {
	cases := []struct {
		score  int
		grade  Grade
		remark string
	}{
		{100, GradeA, "Excellent"},
		{75, GradeA, "Excellent"},
		{74, GradeB, "Very Good"},
		{65, GradeB, "Very Good"},
		{64, GradeC, "Good"},
		{50, GradeC, "Good"},
		{49, GradeD, "Fair"},
		{40, GradeD, "Fair"},
		{39, GradeF, "Fail"},
		{0, GradeF, "Fail"},
	}
	for _, tc := range cases {
		grade, remark, err := GradeFor(tc.score)
		require.NoError(t, err, "score %d", tc.score)
		assert.Equal(t, tc.grade, grade, "score %d", tc.score)
		assert.Equal(t, tc.remark, remark, "score %d", tc.score)
	}
}

func TestGradeForMonotonic(t *testing.T) {
	rank := map[Grade]int{GradeA: 5, GradeB: 4, GradeC: 3, GradeD: 2, GradeF: 1}
	prev := 6
	for score := 100; score >= 0; score-- {
		grade, _, err := GradeFor(score)
		require.NoError(t, err)
		r, known := rank[grade]
		require.True(t, known, "unexpected grade %q for score %d", grade, score)
		assert.LessOrEqual(t, r, prev, "grade rank rose as score fell at %d", score)
		prev = r
	}
}

func TestGradeForOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, -100, 1000} {
		_, _, err := GradeFor(score)
		require.Error(t, err, "score %d", score)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrInvalidScore.Code, appErr.Code)
	}
}
