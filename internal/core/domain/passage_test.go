package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Readable(t *testing.T) {
	assert.True(t, Page{Number: 1, Text: "Revenue"}.Readable())
	assert.False(t, Page{Number: 2, Text: ""}.Readable())
	assert.False(t, Page{Number: 3, Text: "garbled", Unreadable: true}.Readable())
}

func TestAnswerKind_Values(t *testing.T) {
	assert.Equal(t, AnswerKind("structured"), AnswerStructured)
	assert.Equal(t, AnswerKind("semantic"), AnswerSemantic)
	assert.Equal(t, AnswerKind("no_data"), AnswerNoData)
	assert.Equal(t, AnswerKind("no_relevant"), AnswerNoRelevant)
}
