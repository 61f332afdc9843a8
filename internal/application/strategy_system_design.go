package application

import (
	"context"
	"fmt"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/samber/lo"
)

const systemDesignInstruction = `You are an experienced architect conducting a system design interview.

Your role:
- Guide the candidate to clarify requirements (QPS, data volume, constraints)
- Ask about their architectural design approach
- Challenge their design decisions:
  * Single points of failure
  * Disaster recovery plans
  * Data consistency guarantees
  * Scalability concerns
- Encourage them to think through trade-offs

Be collaborative but critical. Dig deep into their reasoning.

Interview stages:
1. Requirements clarification (QPS, data volume, constraints)
2. Architecture design (high-level structure, components)
3. Deep dive (scalability, availability, consistency)
4. Summary

Keep your responses focused and ask one question at a time.`

const systemDesignLeadIn = "让我们开始讨论。首先，请确认你对需求的理解，并说明你打算从哪些方面来设计这个系统。"

const systemDesignEvaluationSystem = "You are an experienced architect scoring a system design interview. Reply with JSON only."

// stageWindow is the number of most recent turns inspected for the stage
const stageWindow = 5

// stageKeywords in priority order; the first stage with a hit wins
var stageKeywords = []struct {
	stage    domain.Stage
	keywords []string
}{
	{domain.StageRequirements, []string{"需求", "QPS", "数据量", "约束"}},
	{domain.StageArchitecture, []string{"架构", "设计", "组件", "模块"}},
	{domain.StageDeepDive, []string{"扩展", "容错", "一致性", "可用"}},
}

type systemDesignScores struct {
	Requirements int      `json:"requirements" jsonschema:"required,minimum=0,maximum=10,description=Requirement understanding"`
	Architecture int      `json:"architecture" jsonschema:"required,minimum=0,maximum=10,description=Architecture design"`
	TechStack    int      `json:"tech_stack" jsonschema:"required,minimum=0,maximum=10,description=Technology choices"`
	Scalability  int      `json:"scalability" jsonschema:"required,minimum=0,maximum=10,description=Scalability considerations"`
	Availability int      `json:"availability" jsonschema:"required,minimum=0,maximum=10,description=High availability design"`
	Consistency  int      `json:"consistency" jsonschema:"required,minimum=0,maximum=10,description=Data consistency handling"`
	Feedback     string   `json:"feedback" jsonschema:"required,description=Overall feedback in Chinese"`
	Strengths    []string `json:"strengths" jsonschema:"required"`
	Improvements []string `json:"improvements" jsonschema:"required"`
}

type systemDesignStrategy struct {
	catalog output.Catalog
}

func (s *systemDesignStrategy) kind() domain.InterviewKind {
	return domain.KindSystemDesign
}

func (s *systemDesignStrategy) seed(_ context.Context, scenarioID string) (string, string, error) {
	scenario, ok := s.catalog.Scenario(scenarioID)
	if !ok {
		return "", "", fmt.Errorf("%w: scenario %q", domain.ErrNotFound, scenarioID)
	}
	opening := fmt.Sprintf("## %s\n\n### 描述\n%s\n\n### 核心需求\n%s\n\n### 约束条件\n%s\n\n%s",
		scenario.Title, scenario.Description, scenario.Requirements, scenario.Constraints, systemDesignLeadIn)
	return scenario.ID, opening, nil
}

func (s *systemDesignStrategy) instruction(_ *domain.InterviewSession) string {
	return systemDesignInstruction
}

// signal derives the discussion stage from the latest turns, reply included
func (s *systemDesignStrategy) signal(session *domain.InterviewSession, _ string) domain.Signal {
	return domain.Signal{Stage: detectStage(session.Transcript.Last(stageWindow))}
}

func detectStage(turns []domain.Turn) domain.Stage {
	text := strings.Join(lo.Map(turns, func(t domain.Turn, _ int) string { return t.Text }), " ")
	for _, candidate := range stageKeywords {
		for _, keyword := range candidate.keywords {
			if strings.Contains(text, keyword) {
				return candidate.stage
			}
		}
	}
	return domain.StageDiscussion
}

func (s *systemDesignStrategy) evaluation(session *domain.InterviewSession) (string, string) {
	var scenarioInfo string
	if scenario, ok := s.catalog.Scenario(session.SeedID); ok {
		scenarioInfo = fmt.Sprintf("Scenario: %s\nDescription: %s\nRequirements: %s\n",
			scenario.Title, scenario.Description, scenario.Requirements)
	}
	turns := session.Transcript.Turns()

	prompt := fmt.Sprintf(`Evaluate the following system design discussion and provide a JSON response:

%s
Conversation:
%s

Score each of these dimensions from 0 to 10: %s

Provide evaluation as one JSON object matching this schema:
%s

Only return the JSON, no other text.`,
		scenarioInfo,
		transcriptJSON(turns[1:]),
		strings.Join(domain.SystemDesignDimensions, ", "),
		reportSchema[systemDesignScores]())
	return systemDesignEvaluationSystem, prompt
}

func (s *systemDesignStrategy) defaults() reportDefaults {
	return reportDefaults{
		strengths:    []string{"思路清晰", "考虑较全面"},
		improvements: []string{"加强高可用设计", "考虑数据一致性"},
	}
}
