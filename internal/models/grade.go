package models

import "strings"

// Grade is the closed letter-grade scale.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

var gradePoints = map[Grade]int{
	GradeS: 10,
	GradeA: 9,
	GradeB: 8,
	GradeC: 7,
	GradeD: 6,
	GradeE: 5,
	GradeF: 0,
}

// Points returns the numeric value of the grade, 0 for unknown letters.
func (g Grade) Points() int {
	return gradePoints[g]
}

// Valid reports whether g is one of the seven letters.
func (g Grade) Valid() bool {
	_, ok := gradePoints[g]
	return ok
}

// ParseGrade translates raw input into a Grade. Input is trimmed and
// case-insensitive; anything outside the scale reports false. Callers parse
// user input here so the ledger only ever sees valid values.
func ParseGrade(raw string) (Grade, bool) {
	g := Grade(strings.ToUpper(strings.TrimSpace(raw)))
	if !g.Valid() {
		return "", false
	}
	return g, true
}
