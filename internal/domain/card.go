package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardOwnerIDEmpty is returned when a card's owner ID is empty or nil.
	ErrCardOwnerIDEmpty = errors.New("card owner ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardMeaningEmpty is returned when a card's meaning is empty.
	ErrCardMeaningEmpty = errors.New("card meaning cannot be empty")

	// ErrCardInvalidDifficulty is returned when a card's difficulty tag is
	// not one of the defined values.
	ErrCardInvalidDifficulty = errors.New("card difficulty must be easy, medium, or hard")
)

// Difficulty is the author-assigned difficulty tag of a card. It is
// independent of any per-student mastery level.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Card represents a single flashcard: a word or phrase with its meaning and
// an optional usage example. Cards are owned by their author but are a
// shared, read-only reference from the review engine's perspective. Cards
// are soft-deleted via the IsActive flag and are never physically removed
// while review records reference them.
type Card struct {
	ID            uuid.UUID  `json:"id"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	Word          string     `json:"word"`
	Meaning       string     `json:"meaning"`
	Example       string     `json:"example,omitempty"`
	Pronunciation string     `json:"pronunciation,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	IsPublic      bool       `json:"is_public"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewCard creates a new Card owned by the given author.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. New cards start out active. Returns an error if validation
// fails.
func NewCard(createdBy uuid.UUID, word, meaning string, difficulty Difficulty) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:         uuid.New(),
		CreatedBy:  createdBy,
		Word:       word,
		Meaning:    meaning,
		Difficulty: difficulty,
		IsPublic:   false,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.CreatedBy == uuid.Nil {
		return ErrCardOwnerIDEmpty
	}

	if c.Word == "" {
		return ErrCardWordEmpty
	}

	if c.Meaning == "" {
		return ErrCardMeaningEmpty
	}

	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ErrCardInvalidDifficulty
	}

	return nil
}

// Deactivate soft-deletes the card. Review records that reference it are
// left untouched.
func (c *Card) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now().UTC()
}
