package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Question string `json:"question" validate:"required,max=10"`
	Answer   string `json:"answer" validate:"required"`
	Avatar   string `json:"avatarUrl" validate:"omitempty,url"`
}

func TestValidate_Passes(t *testing.T) {
	errs := Validate(sampleInput{Question: "Why?", Answer: "Because."})
	assert.Nil(t, errs)
}

func TestValidate_FieldKeysUseJSONNames(t *testing.T) {
	errs := Validate(sampleInput{Question: "", Answer: "", Avatar: "not-a-url"})
	require.NotNil(t, errs)

	assert.Contains(t, errs, "question")
	assert.Contains(t, errs, "answer")
	assert.Contains(t, errs, "avatarUrl")
	assert.Equal(t, []string{"question is required"}, errs["question"])
	assert.Equal(t, []string{"avatarUrl must be a valid URL"}, errs["avatarUrl"])
}

func TestResult_Shapes(t *testing.T) {
	ok := OK("payload", "done")
	assert.True(t, ok.IsOK())
	require.NotNil(t, ok.Data)
	assert.Equal(t, "payload", *ok.Data)
	assert.Empty(t, ok.Errors)
	assert.False(t, ok.NotFound)

	redir := Redirect(42, "created", "/admin/things/42")
	assert.True(t, redir.IsOK())
	assert.Equal(t, "/admin/things/42", redir.RedirectTo)

	invalid := Invalid[string](FieldErrors{"title": {"title is required"}}, "fix fields")
	assert.False(t, invalid.IsOK())
	assert.Nil(t, invalid.Data)
	assert.Equal(t, []string{"title is required"}, invalid.Errors["title"])

	notFound := NotFound[string]("gone")
	assert.False(t, notFound.IsOK())
	assert.True(t, notFound.NotFound)

	done := Done[string]("removed")
	assert.True(t, done.IsOK())
	assert.Nil(t, done.Data)
}
