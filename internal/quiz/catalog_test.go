package quiz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/quizdesk/internal/quiz"
)

func newSet(t *testing.T, name string, correct ...int) *quiz.QuizSet {
	t.Helper()
	qs := make([]quiz.QuestionRecord, 0, len(correct))
	for i, c := range correct {
		qs = append(qs, mustQuestion(t, name+" question "+string(rune('A'+i)), c))
	}
	return quiz.NewQuizSet(name, qs)
}

func TestCatalogAddListGet(t *testing.T) {
	c := quiz.NewCatalog()
	c.AddOrReplace(newSet(t, "history", 1, 2, 3))
	c.AddOrReplace(newSet(t, "geography", 4))

	assert.Equal(t, []string{"history", "geography"}, c.List())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.QuestionCount("history"))
	assert.Equal(t, 1, c.QuestionCount("geography"))

	set, err := c.Get("history")
	require.NoError(t, err)
	assert.Equal(t, "history", set.Name())
	assert.Equal(t, 3, set.Len())
}

func TestCatalogReplaceKeepsPosition(t *testing.T) {
	c := quiz.NewCatalog()
	c.AddOrReplace(newSet(t, "a", 1))
	c.AddOrReplace(newSet(t, "b", 1))
	c.AddOrReplace(newSet(t, "a", 1, 2, 3, 4))

	assert.Equal(t, []string{"a", "b"}, c.List())
	assert.Equal(t, 4, c.QuestionCount("a"))
	assert.Equal(t, []quiz.SetSummary{
		{Name: "a", QuestionCount: 4},
		{Name: "b", QuestionCount: 1},
	}, c.Summaries())
}

func TestCatalogAbsentName(t *testing.T) {
	c := quiz.NewCatalog()

	assert.Zero(t, c.QuestionCount("nope"))

	_, err := c.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, quiz.ErrUnknownSet))

	var unknown *quiz.UnknownSetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
}

func TestCatalogListIsCopy(t *testing.T) {
	c := quiz.NewCatalog()
	c.AddOrReplace(newSet(t, "a", 1))

	names := c.List()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, c.List())
}
