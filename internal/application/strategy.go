package application

import (
	"context"
	"encoding/json"
	"strings"

	"talkpro/internal/domain"
)

// strategy holds everything that differs between interview kinds
type strategy interface {
	kind() domain.InterviewKind

	// seed picks the catalog entry for selector and writes the opening turn
	seed(ctx context.Context, selector string) (seedID, opening string, err error)

	// instruction is the system text sent with every exchange
	instruction(session *domain.InterviewSession) string

	// signal interprets a reply after it was recorded
	signal(session *domain.InterviewSession, reply string) domain.Signal

	// evaluation returns the system text and the prompt of the scoring call
	evaluation(session *domain.InterviewSession) (system, prompt string)

	defaults() reportDefaults
}

// reportDefaults are the kind-specific texts used when the model answer is incomplete
type reportDefaults struct {
	feedback     string   // used when parsed JSON lacks feedback
	strengths    []string // parse fallback
	improvements []string // parse fallback
}

// exchangePrompt renders the transcript followed by the new candidate turn
func exchangePrompt(transcript domain.Transcript, userTurn string) string {
	var b strings.Builder
	b.WriteString(transcript.Render())
	b.WriteString("\n\n")
	b.WriteString(string(domain.ChatMessageRoleUser))
	b.WriteString(": ")
	b.WriteString(userTurn)
	return b.String()
}

// transcriptJSON encodes turns losslessly for evaluation prompts
func transcriptJSON(turns []domain.Turn) string {
	type turn struct {
		Role    domain.ChatMessageRole `json:"role"`
		Content string                 `json:"content"`
	}
	out := make([]turn, 0, len(turns))
	for _, t := range turns {
		out = append(out, turn{Role: t.Role, Content: t.Text})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
