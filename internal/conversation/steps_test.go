// internal/conversation/steps_test.go
package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_OrderAndFields(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 6)

	expected := []string{
		FieldGenres,
		FieldDecade,
		FieldLanguage,
		FieldRating,
		FieldPopularity,
		FieldShowTrailer,
	}
	for i, field := range expected {
		assert.Equal(t, field, steps[i].Field, "step %d", i)
		assert.NotEmpty(t, steps[i].ID)
		assert.NotEmpty(t, steps[i].Question)
	}
}

func TestSteps_OptionsNonEmptyAndUnique(t *testing.T) {
	for _, step := range Steps() {
		assert.NotEmpty(t, step.Options, "step %s has no options", step.ID)

		seen := make(map[string]bool)
		for _, option := range step.Options {
			assert.False(t, seen[option], "step %s has duplicate option %q", step.ID, option)
			seen[option] = true
		}
	}
}

func TestSteps_ReturnsFreshSlice(t *testing.T) {
	first := Steps()
	first[0].Options[0] = "mutated"

	second := Steps()
	assert.Equal(t, "Action", second[0].Options[0])
}

func TestSteps_TrailerStepHasYesOption(t *testing.T) {
	steps := Steps()
	trailer := steps[len(steps)-1]
	require.Equal(t, FieldShowTrailer, trailer.Field)

	var hasYes bool
	for _, option := range trailer.Options {
		if strings.Contains(option, "Yes") {
			hasYes = true
		}
	}
	assert.True(t, hasYes)
}
