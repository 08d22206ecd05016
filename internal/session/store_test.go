package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendTurnBoundedWindow(t *testing.T) {
	var turns []Turn
	for i := 0; i < 15; i++ {
		turns = appendTurn(turns, Turn{Role: RoleUser, Content: string(rune('a' + i))}, maxTurns)
	}
	assert.Len(t, turns, maxTurns)
	// Oldest entries were evicted first.
	assert.Equal(t, "f", turns[0].Content)
	assert.Equal(t, "o", turns[len(turns)-1].Content)
}

func TestAppendTurnUnderCap(t *testing.T) {
	turns := appendTurn(nil, Turn{Role: RoleUser, Content: "hi"}, maxTurns)
	turns = appendTurn(turns, Turn{Role: RoleAssistant, Content: "hello"}, maxTurns)
	assert.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
}
