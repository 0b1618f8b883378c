// Package advisor turns a user's ledger snapshot into prompts for the
// completion backend. It holds no state and never touches the stores
// directly; callers pass the snapshot in, so no ledger lock is held while
// the model call blocks.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"brokemate/models"
	"brokemate/pkg/llm"
)

// NoDataMessage is returned for an empty ledger without calling the model.
const NoDataMessage = "There's no data to analyze. Add some expenses first!"

const analysisPromptTemplate = `You are 'Brokebot', a friendly financial analyst for the "Brokemate" app.
Analyze the following expenses for a user in India (currency is INR: ₹).

Expense Data: %s

Provide a concise, helpful summary in a single block of text:
1. Start with a friendly greeting.
2. Identify the highest spending category.
3. Gently point out 'avoidable' expenses (flagged 'red').
4. Praise 'good' spending (flagged 'green').
5. Offer one clear, actionable tip based on their habits.`

const chatPromptTemplate = `You are 'Brokebot', a friendly AI financial assistant.
The user's expense data is: %s
The user's question is: %q

Answer the user's question conversationally. Use their expense data to make your answer personal and relevant.`

// Advisor builds prompts and delegates to the completion client. Failures
// from the client are propagated verbatim so the transport can map the
// timeout/unavailable/unexpected classes.
type Advisor struct {
	client llm.Client
}

func New(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// Analyze produces spending commentary for the given ledger snapshot.
func (a *Advisor) Analyze(ctx context.Context, expenses []models.Expense) (string, error) {
	if len(expenses) == 0 {
		return NoDataMessage, nil
	}
	data, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: serialize expenses: %v", llm.ErrUnexpected, err)
	}
	return a.client.Complete(ctx, fmt.Sprintf(analysisPromptTemplate, data))
}

// Chat answers a free-text question with the ledger snapshot as context.
// Unlike Analyze, an empty ledger still goes to the model; the question may
// not be about the data at all.
func (a *Advisor) Chat(ctx context.Context, expenses []models.Expense, query string) (string, error) {
	data, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: serialize expenses: %v", llm.ErrUnexpected, err)
	}
	return a.client.Complete(ctx, fmt.Sprintf(chatPromptTemplate, data, query))
}
