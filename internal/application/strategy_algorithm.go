package application

import (
	"context"
	"fmt"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/samber/lo"
)

const algorithmInstruction = `You are an experienced technical interviewer conducting a coding interview.

Your role:
- Present a coding problem based on the selected difficulty
- Ask follow-up questions about:
  * Time and space complexity analysis
  * Potential optimizations
  * Edge cases and error handling
- Be encouraging but rigorous
- When the candidate has demonstrated sufficient understanding, respond with exactly "INTERVIEW_COMPLETE"

Evaluation criteria:
- Algorithm correctness
- Code quality and readability
- Complexity analysis
- Edge case consideration

Keep your responses concise and focused. Ask one follow-up question at a time.`

const algorithmEvaluationSystem = "You are an experienced technical interviewer scoring a coding interview. Reply with JSON only."

type algorithmScores struct {
	Algorithm     int      `json:"algorithm" jsonschema:"required,minimum=0,maximum=10,description=Algorithm correctness"`
	CodeQuality   int      `json:"code_quality" jsonschema:"required,minimum=0,maximum=10,description=Code quality and readability"`
	Complexity    int      `json:"complexity" jsonschema:"required,minimum=0,maximum=10,description=Complexity analysis"`
	EdgeCases     int      `json:"edge_cases" jsonschema:"required,minimum=0,maximum=10,description=Edge case consideration"`
	Communication int      `json:"communication" jsonschema:"required,minimum=0,maximum=10,description=Communication clarity"`
	Feedback      string   `json:"feedback" jsonschema:"required,description=Overall feedback in Chinese"`
	Improvements  []string `json:"improvements" jsonschema:"required,description=Improvement suggestions"`
}

type algorithmStrategy struct {
	catalog output.Catalog
}

func (s *algorithmStrategy) kind() domain.InterviewKind {
	return domain.KindAlgorithm
}

func (s *algorithmStrategy) seed(_ context.Context, difficulty string) (string, string, error) {
	questions := s.catalog.QuestionsByDifficulty(difficulty)
	if len(questions) == 0 {
		return "", "", fmt.Errorf("%w: no questions for difficulty %q", domain.ErrNotFound, difficulty)
	}
	question := lo.Sample(questions)
	return question.ID, questionOpening(question), nil
}

// questionOpening renders title, body and the worked examples
func questionOpening(q domain.Question) string {
	examples := lo.Map(q.Examples, func(ex domain.Example, _ int) string {
		line := fmt.Sprintf("- 输入: %s\n  输出: %s", ex.Input, ex.Output)
		if ex.Explanation != "" {
			line += "\n  说明: " + ex.Explanation
		}
		return line
	})
	return fmt.Sprintf("## %s\n\n%s\n\n### 示例:\n%s", q.Title, q.Content, strings.Join(examples, "\n"))
}

func (s *algorithmStrategy) instruction(_ *domain.InterviewSession) string {
	return algorithmInstruction
}

func (s *algorithmStrategy) signal(_ *domain.InterviewSession, reply string) domain.Signal {
	return domain.Signal{Completed: strings.Contains(reply, domain.CompletionSentinel)}
}

func (s *algorithmStrategy) evaluation(session *domain.InterviewSession) (string, string) {
	turns := session.Transcript.Turns()
	prompt := fmt.Sprintf(`Evaluate the following interview performance and provide a JSON response:

Question: %s

Conversation:
%s

Score each of these dimensions from 0 to 10: %s

Provide evaluation as one JSON object matching this schema:
%s

Only return the JSON, no other text.`,
		session.Transcript.Opening(),
		transcriptJSON(turns[1:]),
		strings.Join(domain.AlgorithmDimensions, ", "),
		reportSchema[algorithmScores]())
	return algorithmEvaluationSystem, prompt
}

func (s *algorithmStrategy) defaults() reportDefaults {
	return reportDefaults{
		improvements: []string{"继续练习算法题", "注意边界条件", "优化代码质量"},
	}
}
