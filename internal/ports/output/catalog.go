package output

import "talkpro/internal/domain"

// Catalog interface - Output port
// Read-only seed content for interviews.
type Catalog interface {
	Questions() []domain.Question
	Scenarios() []domain.Scenario
	Personas() []domain.Persona

	// QuestionsByDifficulty matches difficulty case-insensitively
	QuestionsByDifficulty(difficulty string) []domain.Question

	// Scenario and Persona match the id exactly
	Scenario(id string) (domain.Scenario, bool)
	Persona(id string) (domain.Persona, bool)
}
