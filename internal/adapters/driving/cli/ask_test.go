package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

func TestAskCmd_JoinsArgs(t *testing.T) {
	ts := setupTestServices(t)
	ts.query.AskFunc = func(_ context.Context, q string) (*domain.Answer, error) {
		return &domain.Answer{
			Query:  q,
			Intent: "net_profit_trend",
			Kind:   domain.AnswerStructured,
			Text:   "# Net Profit Trend\n- Q1FY24: 20.0 Cr. (Source: Page 2)",
		}, nil
	}

	out, err := execute(t, "", "ask", "net", "profit", "trend")

	require.NoError(t, err)
	assert.Equal(t, []string{"net profit trend"}, ts.query.asked)
	assert.Contains(t, out, "# Net Profit Trend")
	assert.Contains(t, out, "- Q1FY24: 20.0 Cr. (Source: Page 2)")
}

func TestAskCmd_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.query.AskFunc = func(_ context.Context, q string) (*domain.Answer, error) {
		return &domain.Answer{
			Query:     q,
			Intent:    "margin_decrease",
			Kind:      domain.AnswerStructured,
			Text:      "# Margin Changes",
			FollowUps: []string{"reasons for margin decrease"},
		}, nil
	}

	out, err := execute(t, "", "ask", "why did margins fall", "--json")
	require.NoError(t, err)

	var got answerOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "why did margins fall", got.Query)
	assert.Equal(t, "structured", got.Kind)
	assert.Equal(t, []string{"reasons for margin decrease"}, got.FollowUps)
}

func TestAskCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.query.AskFunc = func(context.Context, string) (*domain.Answer, error) {
		return nil, domain.ErrEmbeddingUnavailable
	}

	_, err := execute(t, "", "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestAskCmd_BlankQuestion(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "ask", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrintAnswer_Plain(t *testing.T) {
	buf := new(bytes.Buffer)

	printAnswer(buf, "# Title\n**Source**: p.1", false)

	assert.Equal(t, "# Title\n**Source**: p.1\n", buf.String())
}

func TestPrintAnswer_Styled(t *testing.T) {
	buf := new(bytes.Buffer)

	printAnswer(buf, "## Expense Breakdown\n**Source**: p.4\nplain", true)

	out := buf.String()
	assert.Contains(t, out, "Expense Breakdown")
	assert.NotContains(t, out, "## ")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "plain\n")
}
