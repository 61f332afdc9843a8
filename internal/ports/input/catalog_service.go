package input

import "talkpro/internal/domain"

// CatalogService interface - Input port (use case)
// Browsing of interview seed content. An empty query lists everything.
type CatalogService interface {
	ListQuestions(difficulty, query string) []domain.Question
	ListScenarios(query string) []domain.Scenario
	ListPersonas() []domain.Persona

	// GetScenario and GetPersona return domain.ErrNotFound for unknown ids
	GetScenario(id string) (*domain.Scenario, error)
	GetPersona(id string) (*domain.Persona, error)
}
