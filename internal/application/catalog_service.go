package application

import (
	"fmt"
	"sort"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"
	"talkpro/internal/ports/output"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Compile-time check to ensure CatalogService implements the input port
var _ input.CatalogService = (*CatalogService)(nil)

// CatalogService struct - Application service for browsing interview seed content
type CatalogService struct {
	catalog output.Catalog
}

// NewCatalogService func - Creates new catalog service
func NewCatalogService(catalog output.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListQuestions func - Questions of a difficulty (all when empty), ranked by title match when query is set
func (s *CatalogService) ListQuestions(difficulty, query string) []domain.Question {
	questions := s.catalog.Questions()
	if difficulty != "" {
		questions = s.catalog.QuestionsByDifficulty(difficulty)
	}
	return rankByTitle(questions, query, func(q domain.Question) string { return q.Title + " " + q.ID })
}

// ListScenarios func
func (s *CatalogService) ListScenarios(query string) []domain.Scenario {
	return rankByTitle(s.catalog.Scenarios(), query, func(sc domain.Scenario) string { return sc.Title + " " + sc.ID })
}

// ListPersonas func
func (s *CatalogService) ListPersonas() []domain.Persona {
	return s.catalog.Personas()
}

// GetScenario func
func (s *CatalogService) GetScenario(id string) (*domain.Scenario, error) {
	scenario, ok := s.catalog.Scenario(id)
	if !ok {
		return nil, fmt.Errorf("%w: scenario %q", domain.ErrNotFound, id)
	}
	return &scenario, nil
}

// GetPersona func
func (s *CatalogService) GetPersona(id string) (*domain.Persona, error) {
	persona, ok := s.catalog.Persona(id)
	if !ok {
		return nil, fmt.Errorf("%w: workplace scenario %q", domain.ErrNotFound, id)
	}
	return &persona, nil
}

// rankByTitle keeps the entries whose text fuzzily contains query, best match first
func rankByTitle[T any](entries []T, query string, text func(T) string) []T {
	if query == "" {
		return entries
	}
	targets := lo.Map(entries, func(e T, _ int) string { return text(e) })
	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)
	return lo.Map([]fuzzy.Rank(ranks), func(r fuzzy.Rank, _ int) T { return entries[r.OriginalIndex] })
}
