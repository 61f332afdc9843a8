package application

import (
	"context"
	"fmt"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"
)

const workplaceEvaluationSystem = "你是一位专业的面试官，擅长评估候选人的综合能力。"

const workplaceFallbackInstruction = "你是一位经验丰富的面试官，正在进行职场场景模拟。请一次只提出一个问题。"

type workplaceScores struct {
	TechnicalDepth        int      `json:"technical_depth" jsonschema:"required,minimum=0,maximum=10,description=技术深度评分"`
	BusinessUnderstanding int      `json:"business_understanding" jsonschema:"required,minimum=0,maximum=10,description=业务理解评分"`
	Communication         int      `json:"communication" jsonschema:"required,minimum=0,maximum=10,description=沟通表达评分"`
	LogicalThinking       int      `json:"logical_thinking" jsonschema:"required,minimum=0,maximum=10,description=逻辑思维评分"`
	Strengths             []string `json:"strengths" jsonschema:"required,description=具体的优点"`
	Improvements          []string `json:"improvements" jsonschema:"required,description=可操作的改进建议"`
	Feedback              string   `json:"feedback" jsonschema:"required,description=总体反馈（2-3句话）"`
}

type workplaceStrategy struct {
	catalog output.Catalog
	gateway *gateway
}

func (s *workplaceStrategy) kind() domain.InterviewKind {
	return domain.KindWorkplace
}

// seed asks the interviewer persona for the opening question
func (s *workplaceStrategy) seed(ctx context.Context, personaID string) (string, string, error) {
	persona, ok := s.catalog.Persona(personaID)
	if !ok {
		return "", "", fmt.Errorf("%w: workplace scenario %q", domain.ErrNotFound, personaID)
	}

	opening, err := s.gateway.complete(ctx, []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: persona.Persona},
		{Role: domain.ChatMessageRoleUser, Content: persona.Context},
	})
	if err != nil {
		return "", "", err
	}
	return persona.ID, opening, nil
}

func (s *workplaceStrategy) instruction(session *domain.InterviewSession) string {
	if persona, ok := s.catalog.Persona(session.SeedID); ok {
		return persona.Persona
	}
	return workplaceFallbackInstruction
}

func (s *workplaceStrategy) signal(_ *domain.InterviewSession, _ string) domain.Signal {
	return domain.Signal{}
}

func (s *workplaceStrategy) evaluation(session *domain.InterviewSession) (string, string) {
	persona, ok := s.catalog.Persona(session.SeedID)
	if !ok {
		persona = domain.Persona{ID: session.SeedID, Name: session.SeedID, Role: "面试官"}
	}
	dimensions := persona.Dimensions
	if len(dimensions) == 0 {
		dimensions = domain.WorkplaceDimensions
	}

	prompt := fmt.Sprintf(`你是%s，现在需要对候选人的表现进行评估。

场景：%s
对话记录：
%s

请从以下维度评分（0-10分）并给出反馈：
%s

请以JSON格式返回评估结果，字段为 %s，并符合以下 JSON Schema：
%s

注意：
- 评分要客观合理，不要给满分或低分
- 优点要具体，基于对话内容
- 改进建议要可操作
- 反馈要建设性
- 只返回JSON，不要其他内容`,
		persona.Role,
		persona.Name,
		transcriptJSON(session.Transcript.Turns()),
		strings.Join(dimensions, ", "),
		strings.Join(domain.WorkplaceDimensions, ", "),
		reportSchema[workplaceScores]())
	return workplaceEvaluationSystem, prompt
}

func (s *workplaceStrategy) defaults() reportDefaults {
	return reportDefaults{
		feedback:     "表现良好，继续保持",
		strengths:    []string{"回答问题有条理", "表达清晰"},
		improvements: []string{"可以更深入地分析问题", "可以提供更多实例"},
	}
}
