package domain

import (
	"encoding/json"
)

// Score bounds shared by every rubric dimension
const (
	MinScore = 0
	MaxScore = 10
)

// Rubric dimensions per interview kind. The names are part of the report JSON contract.
var (
	AlgorithmDimensions    = []string{"algorithm", "code_quality", "complexity", "edge_cases", "communication"}
	SystemDesignDimensions = []string{"requirements", "architecture", "tech_stack", "scalability", "availability", "consistency"}
	WorkplaceDimensions    = []string{"technical_depth", "business_understanding", "communication", "logical_thinking"}
)

// Dimensions returns the fixed rubric of a kind
func Dimensions(kind InterviewKind) []string {
	switch kind {
	case KindAlgorithm:
		return AlgorithmDimensions
	case KindSystemDesign:
		return SystemDesignDimensions
	case KindWorkplace:
		return WorkplaceDimensions
	}
	return nil
}

// EvaluationReport is the structured result of evaluate
type EvaluationReport struct {
	Kind         InterviewKind
	Scores       map[string]int
	Overall      int
	Feedback     string
	Improvements []string
	Strengths    []string // not part of the algorithm report
}

// NewEvaluationReport builds a report for kind, filling every dimension from scores
// (missing ones get fallback), clamping to 0..10 and computing overall.
func NewEvaluationReport(kind InterviewKind, scores map[string]int, fallback int) *EvaluationReport {
	r := &EvaluationReport{
		Kind:         kind,
		Scores:       make(map[string]int, len(Dimensions(kind))),
		Improvements: []string{},
	}
	if kind != KindAlgorithm {
		r.Strengths = []string{}
	}
	for _, dim := range Dimensions(kind) {
		v, ok := scores[dim]
		if !ok {
			v = fallback
		}
		r.Scores[dim] = ClampScore(v)
	}
	r.Recompute()
	return r
}

// UniformReport sets every dimension of kind to the same value
func UniformReport(kind InterviewKind, value int) *EvaluationReport {
	return NewEvaluationReport(kind, nil, value)
}

// Recompute sets Overall to the integer-truncating mean of the rubric dimensions
func (r *EvaluationReport) Recompute() {
	dims := Dimensions(r.Kind)
	if len(dims) == 0 {
		r.Overall = 0
		return
	}
	sum := 0
	for _, dim := range dims {
		sum += r.Scores[dim]
	}
	r.Overall = sum / len(dims)
}

// ClampScore bounds v to the score range
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Clone returns a deep copy
func (r EvaluationReport) Clone() EvaluationReport {
	cp := r
	cp.Scores = make(map[string]int, len(r.Scores))
	for k, v := range r.Scores {
		cp.Scores[k] = v
	}
	if r.Improvements != nil {
		cp.Improvements = append([]string{}, r.Improvements...)
	}
	if r.Strengths != nil {
		cp.Strengths = append([]string{}, r.Strengths...)
	}
	return cp
}

// MarshalJSON emits the flat report shape: one field per dimension plus
// overall, feedback, improvements and (except for algorithm) strengths
func (r EvaluationReport) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Scores)+4)
	for _, dim := range Dimensions(r.Kind) {
		out[dim] = r.Scores[dim]
	}
	out["overall"] = r.Overall
	out["feedback"] = r.Feedback
	improvements := r.Improvements
	if improvements == nil {
		improvements = []string{}
	}
	out["improvements"] = improvements
	if r.Kind != KindAlgorithm {
		strengths := r.Strengths
		if strengths == nil {
			strengths = []string{}
		}
		out["strengths"] = strengths
	}
	return json.Marshal(out)
}
