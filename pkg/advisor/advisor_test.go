package advisor

import (
	"context"
	"testing"
	"time"

	"brokemate/models"
	"brokemate/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls   int
	prompt  string
	reply   string
	failure error
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.failure != nil {
		return "", s.failure
	}
	return s.reply, nil
}

func sampleLedger() []models.Expense {
	red := models.FlagRed
	return []models.Expense{
		{ID: 1, Amount: 250, Category: "Food", Description: "Lunch", Date: models.NewDate(2025, time.January, 1)},
		{ID: 2, Amount: 1200.50, Category: "Shopping", Description: "Headphones", Date: models.NewDate(2025, time.January, 2), Flag: &red},
	}
}

func TestAnalyzeEmptyLedgerSkipsModel(t *testing.T) {
	stub := &stubClient{}
	got, err := New(stub).Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, got)
	assert.Zero(t, stub.calls, "empty ledger must not reach the model")
}

func TestAnalyzePromptCarriesLedger(t *testing.T) {
	stub := &stubClient{reply: "looks fine"}
	got, err := New(stub).Analyze(context.Background(), sampleLedger())
	require.NoError(t, err)
	assert.Equal(t, "looks fine", got)
	assert.Equal(t, 1, stub.calls)
	assert.Contains(t, stub.prompt, "Brokebot")
	assert.Contains(t, stub.prompt, `"Shopping"`)
	assert.Contains(t, stub.prompt, `"red"`)
	assert.Contains(t, stub.prompt, "2025-01-02")
}

func TestChatPromptCarriesQuestion(t *testing.T) {
	stub := &stubClient{reply: "you spent 250 on food"}
	got, err := New(stub).Chat(context.Background(), sampleLedger(), "how much on food?")
	require.NoError(t, err)
	assert.Equal(t, "you spent 250 on food", got)
	assert.Contains(t, stub.prompt, "how much on food?")
	assert.Contains(t, stub.prompt, `"Food"`)
}

func TestChatEmptyLedgerStillAsksModel(t *testing.T) {
	stub := &stubClient{reply: "add some expenses"}
	_, err := New(stub).Chat(context.Background(), nil, "am I broke?")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestFailurePropagation(t *testing.T) {
	for _, failure := range []error{llm.ErrTimeout, llm.ErrUnavailable, llm.ErrUnexpected} {
		stub := &stubClient{failure: failure}
		_, err := New(stub).Analyze(context.Background(), sampleLedger())
		assert.ErrorIs(t, err, failure)

		_, err = New(stub).Chat(context.Background(), sampleLedger(), "q")
		assert.ErrorIs(t, err, failure)
	}
}
