package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	owner := uuid.New()

	card, err := NewCard(owner, "ubiquitous", "present everywhere", DifficultyHard)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, owner, card.CreatedBy)
	assert.True(t, card.IsActive)
	assert.False(t, card.IsPublic)
}

func TestNewCardValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		owner      uuid.UUID
		word       string
		meaning    string
		difficulty Difficulty
		wantErr    error
	}{
		{
			name:       "missing owner",
			owner:      uuid.Nil,
			word:       "word",
			meaning:    "meaning",
			difficulty: DifficultyEasy,
			wantErr:    ErrCardOwnerIDEmpty,
		},
		{
			name:       "missing word",
			owner:      uuid.New(),
			word:       "",
			meaning:    "meaning",
			difficulty: DifficultyEasy,
			wantErr:    ErrCardWordEmpty,
		},
		{
			name:       "missing meaning",
			owner:      uuid.New(),
			word:       "word",
			meaning:    "",
			difficulty: DifficultyEasy,
			wantErr:    ErrCardMeaningEmpty,
		},
		{
			name:       "unknown difficulty",
			owner:      uuid.New(),
			word:       "word",
			meaning:    "meaning",
			difficulty: Difficulty("impossible"),
			wantErr:    ErrCardInvalidDifficulty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCard(tc.owner, tc.word, tc.meaning, tc.difficulty)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCardDeactivate(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), "ephemeral", "lasting a very short time", DifficultyMedium)
	require.NoError(t, err)

	card.Deactivate()
	assert.False(t, card.IsActive)
}
