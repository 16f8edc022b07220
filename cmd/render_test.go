package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

func TestGradeLabel_PlainWhenColorDisabled(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, g := range []scoring.Grade{
		scoring.GradeAPlus, scoring.GradeA, scoring.GradeBPlus,
		scoring.GradeB, scoring.GradeC, scoring.GradeD, scoring.GradeF,
	} {
		assert.Equal(t, string(g), gradeLabel(g))
	}
}
