package domain

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultBracketData is the stored data blob of a freshly initialised bracket.
const DefaultBracketData = `{"rounds":[]}`

// Bracket is the singleton tournament bracket shown on the public site.
//
// Data holds the exact JSON text accepted by ParseBracketUpdate.
type Bracket struct {
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	IsVisible int             `json:"is_visible"`
	UpdatedAt time.Time       `json:"-"`
}

// DefaultBracket returns the empty, invisible bracket.
func DefaultBracket() Bracket {
	return Bracket{
		Title:     "",
		Data:      json.RawMessage(DefaultBracketData),
		IsVisible: 0,
	}
}

// BracketData is the typed view of a validated bracket tree.
type BracketData struct {
	HomepageRound *string `json:"homepage_round,omitempty"`
	Rounds        []Round `json:"rounds"`
}

// Round is one column of the bracket.
type Round struct {
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// Match pairs two teams. Nil fields are undecided.
type Match struct {
	Team1  *string `json:"team1"`
	Team2  *string `json:"team2"`
	Winner *string `json:"winner"`
}

// BracketRepository is the port for the singleton bracket row.
//
// GetBracket returns nil, nil when the row is absent. SaveBracket replaces
// the whole row in one statement.
type BracketRepository interface {
	GetBracket(ctx context.Context) (*Bracket, error)
	SaveBracket(ctx context.Context, b Bracket) error
}
