package listsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coursehub/admin-api/internal/action"
	"coursehub/admin-api/internal/domain"
)

func faq(question string, order int) domain.FAQItem {
	return domain.FAQItem{
		ID:         primitive.NewObjectID(),
		Question:   question,
		Answer:     "answer",
		OrderIndex: order,
	}
}

func questions(items []domain.FAQItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Question
	}
	return out
}

func TestApplyCreate_AppendsWithServerID(t *testing.T) {
	list := New([]domain.FAQItem{})

	created := faq("What do I need?", 0)
	notice := list.ApplyCreate(action.OK(created, "FAQ item created."))

	assert.True(t, notice.Success)
	assert.Equal(t, "FAQ item created.", notice.Message)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, created.ID, list.Items()[0].GetID())
}

func TestApplyCreate_InsertsAtOrderPosition(t *testing.T) {
	list := New([]domain.FAQItem{faq("first", 0), faq("third", 2)})

	list.ApplyCreate(action.OK(faq("second", 1), "created"))
	assert.Equal(t, []string{"first", "second", "third"}, questions(list.Items()))

	// Ties go after existing items with the same index (insertion order).
	list.ApplyCreate(action.OK(faq("second-bis", 1), "created"))
	assert.Equal(t, []string{"first", "second", "second-bis", "third"}, questions(list.Items()))
}

func TestApplyCreate_FailureLeavesListUntouched(t *testing.T) {
	initial := []domain.FAQItem{faq("keep me", 0)}
	list := New(initial)

	notice := list.ApplyCreate(action.Invalid[domain.FAQItem](
		action.FieldErrors{"question": {"question is required"}}, "Please correct the highlighted fields."))

	assert.False(t, notice.Success)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, questions(initial), questions(list.Items()))
	assert.Equal(t, []string{"question is required"}, list.FieldErrors()["question"])
}

func TestApplyUpdate_ReplacesInPlace(t *testing.T) {
	first := faq("first", 0)
	second := faq("second", 1)
	list := New([]domain.FAQItem{first, second})

	updated := first
	updated.Question = "first, revised"
	notice := list.ApplyUpdate(action.OK(updated, "FAQ item updated."))

	assert.True(t, notice.Success)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []string{"first, revised", "second"}, questions(list.Items()))
}

func TestApplyUpdate_FailureLeavesListUntouched(t *testing.T) {
	first := faq("first", 0)
	list := New([]domain.FAQItem{first})

	notice := list.ApplyUpdate(action.NotFound[domain.FAQItem]("FAQ item not found."))

	assert.False(t, notice.Success)
	assert.Equal(t, []string{"first"}, questions(list.Items()))
}

func TestApplyDelete_RemovesExactlyOne(t *testing.T) {
	first := faq("first", 0)
	second := faq("second", 1)
	list := New([]domain.FAQItem{first, second})

	notice := list.ApplyDelete(first.ID, action.Done[domain.FAQItem]("FAQ item deleted."))

	assert.True(t, notice.Success)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, []string{"second"}, questions(list.Items()))
}

func TestApplyDelete_AlreadyDeletedElsewhereIsAFailure(t *testing.T) {
	first := faq("first", 0)
	list := New([]domain.FAQItem{first})

	notice := list.ApplyDelete(first.ID, action.NotFound[domain.FAQItem]("FAQ item not found. It may already have been deleted."))

	assert.False(t, notice.Success)
	assert.Contains(t, notice.Message, "already")
	// Last-known-good state kept; a refetch is the operator's reconciliation.
	assert.Equal(t, 1, list.Len())
}

func TestRowMutualExclusion(t *testing.T) {
	first := faq("first", 0)
	list := New([]domain.FAQItem{first})

	require.NoError(t, list.Begin(first.ID))
	assert.ErrorIs(t, list.Begin(first.ID), ErrMutationInFlight)

	// The row frees up once its mutation reconciles.
	list.ApplyDelete(first.ID, action.Fail[domain.FAQItem]("network error"))
	assert.NoError(t, list.Begin(first.ID))
}

func TestCreateMutualExclusion(t *testing.T) {
	list := New([]domain.FAQItem{})

	require.NoError(t, list.BeginCreate())
	assert.ErrorIs(t, list.BeginCreate(), ErrMutationInFlight)

	list.ApplyCreate(action.OK(faq("done", 0), "created"))
	assert.NoError(t, list.BeginCreate())
}

func TestRoundTrip(t *testing.T) {
	list := New([]domain.FAQItem{})

	created := faq("How long do I have access?", 0)
	list.ApplyCreate(action.OK(created, "created"))
	require.Equal(t, 1, list.Len())

	updated := created
	updated.Answer = "Forever."
	list.ApplyUpdate(action.OK(updated, "updated"))
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Forever.", list.Items()[0].Answer)

	list.ApplyDelete(created.ID, action.Done[domain.FAQItem]("deleted"))
	assert.Equal(t, 0, list.Len())
}
