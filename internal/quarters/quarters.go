package quarters

import (
	"regexp"
	"strconv"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
)

var quarterYearRe = regexp.MustCompile(`^Q([1-4])-(\d{4})$`)

// QuarterYear is a parsed quarter label such as "Q3-2024".
type QuarterYear struct {
	Quarter int
	Year    int
}

// Parse validates and splits a Q[1-4]-YYYY label.
func Parse(label string) (QuarterYear, error) {
	m := quarterYearRe.FindStringSubmatch(label)
	if m == nil {
		return QuarterYear{}, apperrors.Validationf("quarter_year",
			"%q does not match Q[1-4]-YYYY", label)
	}
	q, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	return QuarterYear{Quarter: q, Year: y}, nil
}

// IsValid reports whether label matches Q[1-4]-YYYY.
func IsValid(label string) bool {
	return quarterYearRe.MatchString(label)
}

// Less orders labels newest first: year descending, then quarter descending
// (Q4 > Q3 > Q2 > Q1). Unparseable labels sort last.
func Less(a, b string) bool {
	qa, errA := Parse(a)
	qb, errB := Parse(b)
	if errA != nil || errB != nil {
		return errA == nil
	}
	if qa.Year != qb.Year {
		return qa.Year > qb.Year
	}
	return qa.Quarter > qb.Quarter
}
