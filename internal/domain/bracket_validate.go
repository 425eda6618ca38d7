package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationError describes the first structural problem found in a bracket
// payload. Path locates the offending value, Reason is shown to the admin.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

const reasonTitleOrVisibility = "Invalid title or visibility flag"

// BracketUpdate is a validated bracket save request.
type BracketUpdate struct {
	Title     string
	IsVisible int
	// Data is the submitted data object, compacted but otherwise verbatim.
	Data   json.RawMessage
	Parsed BracketData
}

// Bracket converts the update into the record that replaces the stored one.
func (u BracketUpdate) Bracket() Bracket {
	return Bracket{Title: u.Title, Data: u.Data, IsVisible: u.IsVisible}
}

// ParseBracketUpdate validates an untrusted bracket save body.
//
// Checks run top-down and stop at the first failure: title, is_visible,
// data, homepage_round, rounds, then each round and each of its matches in
// array order. The returned error is always a *ValidationError.
func ParseBracketUpdate(body []byte) (BracketUpdate, error) {
	u, verr := parseBracketUpdate(body)
	if verr != nil {
		return BracketUpdate{}, verr
	}
	return u, nil
}

func parseBracketUpdate(body []byte) (BracketUpdate, *ValidationError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return BracketUpdate{}, invalid("", "Invalid JSON body")
	}

	title, ok := decodeAny(fields["title"]).(string)
	if !ok {
		return BracketUpdate{}, invalid("title", reasonTitleOrVisibility)
	}
	visible, ok := visibilityFlag(decodeAny(fields["is_visible"]))
	if !ok {
		return BracketUpdate{}, invalid("is_visible", reasonTitleOrVisibility)
	}

	parsed, verr := validateData(decodeAny(fields["data"]))
	if verr != nil {
		return BracketUpdate{}, verr
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, fields["data"]); err != nil {
		return BracketUpdate{}, invalid("data", "Bracket data must be an object")
	}

	return BracketUpdate{
		Title:     title,
		IsVisible: visible,
		Data:      json.RawMessage(compact.Bytes()),
		Parsed:    parsed,
	}, nil
}

// decodeAny decodes raw into a generic tree, keeping numbers as json.Number.
// A missing or undecodable value yields nil.
func decodeAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// visibilityFlag accepts only the numbers 0 and 1. Booleans are not coerced.
func visibilityFlag(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	switch f {
	case 0:
		return 0, true
	case 1:
		return 1, true
	}
	return 0, false
}

func validateData(v any) (BracketData, *ValidationError) {
	obj, ok := v.(map[string]any)
	if !ok {
		return BracketData{}, invalid("data", "Bracket data must be an object")
	}

	var out BracketData
	if hr, present := obj["homepage_round"]; present && hr != nil {
		s, ok := hr.(string)
		if !ok {
			return BracketData{}, invalid("data.homepage_round", "homepage_round must be a string or null")
		}
		out.HomepageRound = &s
	}

	rounds, ok := obj["rounds"].([]any)
	if !ok {
		return BracketData{}, invalid("data.rounds", "Bracket data is missing or invalid rounds array")
	}

	out.Rounds = make([]Round, 0, len(rounds))
	for i, r := range rounds {
		round, verr := validateRound(i, r)
		if verr != nil {
			return BracketData{}, verr
		}
		out.Rounds = append(out.Rounds, round)
	}
	return out, nil
}

func validateRound(i int, v any) (Round, *ValidationError) {
	path := fmt.Sprintf("data.rounds[%d]", i)
	obj, _ := v.(map[string]any)

	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return Round{}, invalid(path+".name", "Round %d must have a non-empty name", i)
	}
	matches, ok := obj["matches"].([]any)
	if !ok {
		return Round{}, invalid(path+".matches", "Round %d must have a matches array", i)
	}

	round := Round{Name: name, Matches: make([]Match, 0, len(matches))}
	for j, m := range matches {
		match, verr := validateMatch(i, j, m)
		if verr != nil {
			return Round{}, verr
		}
		round.Matches = append(round.Matches, match)
	}
	return round, nil
}

func validateMatch(i, j int, v any) (Match, *ValidationError) {
	path := fmt.Sprintf("data.rounds[%d].matches[%d]", i, j)
	obj, ok := v.(map[string]any)
	if !ok {
		return Match{}, invalid(path, "Round %d, match %d must be an object", i, j)
	}

	var m Match
	slots := []struct {
		field string
		dst   **string
	}{
		{"team1", &m.Team1},
		{"team2", &m.Team2},
		{"winner", &m.Winner},
	}
	for _, slot := range slots {
		raw, present := obj[slot.field]
		if !present || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return Match{}, invalid(path+"."+slot.field, "Round %d, match %d: %s must be a string or null", i, j, slot.field)
		}
		*slot.dst = &s
	}
	return m, nil
}
