package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// InterviewKind selects the interview sub-protocol
type InterviewKind string

const (
	// KindAlgorithm - coding interview seeded from a question
	KindAlgorithm InterviewKind = "algorithm"
	// KindSystemDesign - architecture discussion seeded from a scenario
	KindSystemDesign InterviewKind = "system_design"
	// KindWorkplace - role-play seeded from a persona
	KindWorkplace InterviewKind = "workplace"
)

// ParseInterviewKind accepts the canonical kind names plus the dashed URL form
func ParseInterviewKind(s string) (InterviewKind, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case string(KindAlgorithm):
		return KindAlgorithm, nil
	case string(KindSystemDesign):
		return KindSystemDesign, nil
	case string(KindWorkplace):
		return KindWorkplace, nil
	}
	return "", fmt.Errorf("%w: unknown interview kind %q", ErrInvalidRequest, s)
}

// SessionStatus is the lifecycle state of an interview session
type SessionStatus string

const (
	// StatusSeeded - opening turn written, no answer yet
	StatusSeeded SessionStatus = "seeded"
	// StatusInProgress - at least one exchange happened
	StatusInProgress SessionStatus = "in_progress"
	// StatusCompleted - evaluated; terminal
	StatusCompleted SessionStatus = "completed"
)

// Stage labels the phase of a system design discussion
type Stage string

const (
	StageRequirements Stage = "requirements"
	StageArchitecture Stage = "architecture"
	StageDeepDive     Stage = "deep_dive"
	StageDiscussion   Stage = "discussion"
)

// CompletionSentinel is the token an algorithm interviewer emits once it is satisfied
const CompletionSentinel = "INTERVIEW_COMPLETE"

// Turn is one role-tagged message of a transcript
type Turn struct {
	Role      ChatMessageRole `json:"role"`
	Text      string          `json:"content"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// Transcript is the ordered, append-only turn log of one session
type Transcript struct {
	turns []Turn
}

// NewTranscript starts a transcript with the assistant opening turn
func NewTranscript(opening string) Transcript {
	t := Transcript{}
	t.Append(ChatMessageRoleAssistant, opening)
	return t
}

// Append adds a turn stamped with the current time
func (t *Transcript) Append(role ChatMessageRole, text string) {
	now := time.Now()
	t.turns = append(t.turns, Turn{Role: role, Text: text, Timestamp: &now})
}

// Len returns the number of turns
func (t Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of all turns in order
func (t Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Last returns a copy of the last n turns (all turns when fewer exist)
func (t Transcript) Last(n int) []Turn {
	if n > len(t.turns) {
		n = len(t.turns)
	}
	out := make([]Turn, n)
	copy(out, t.turns[len(t.turns)-n:])
	return out
}

// Opening returns the seed turn text
func (t Transcript) Opening() string {
	if len(t.turns) == 0 {
		return ""
	}
	return t.turns[0].Text
}

// UserTurns counts candidate turns
func (t Transcript) UserTurns() int {
	n := 0
	for _, turn := range t.turns {
		if turn.Role == ChatMessageRoleUser {
			n++
		}
	}
	return n
}

// Render formats the transcript as role-tagged text, one turn per block
func (t Transcript) Render() string {
	var b strings.Builder
	for i, turn := range t.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
	}
	return b.String()
}

// MarshalJSON encodes the transcript as a plain array of turns
func (t Transcript) MarshalJSON() ([]byte, error) {
	if t.turns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.turns)
}

// UnmarshalJSON decodes a plain array of turns
func (t *Transcript) UnmarshalJSON(data []byte) error {
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return err
	}
	t.turns = turns
	return nil
}

// Answer is one candidate submission
type Answer struct {
	Text string
	Code string
}

// UserTurn builds the stored user turn: the text, then the code as a fenced block
func (a Answer) UserTurn() string {
	if strings.TrimSpace(a.Code) == "" {
		return a.Text
	}
	return a.Text + "\n\n```\n" + a.Code + "\n```"
}

// Signal is the kind-specific interpretation of an interviewer reply
type Signal struct {
	Completed bool  `json:"completed"`
	Stage     Stage `json:"stage,omitempty"`
}

// AdvanceResult is the outcome of one exchange
type AdvanceResult struct {
	Reply  string
	Signal Signal
}

// FragmentFunc receives streamed reply fragments as they arrive
type FragmentFunc func(fragment string)
