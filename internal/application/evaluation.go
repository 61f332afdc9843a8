package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"talkpro/internal/domain"

	"github.com/invopop/jsonschema"
)

// Scores used when the model answer cannot be used as is
const (
	missingDimensionScore = 7
	errorScore            = 5
	errorFeedback         = "评估过程中出现错误，请重新尝试。"
)

var errorImprovements = []string{"请重新参加面试"}

// reportSchema describes T as JSON Schema text for the scoring prompt
func reportSchema[T any]() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// parseEvaluation turns a model answer into a report.
// It tries the whole text as JSON first, then the first balanced {...} block that parses.
func parseEvaluation(kind domain.InterviewKind, raw string, defaults reportDefaults) (*domain.EvaluationReport, error) {
	object, ok := decodeObject(strings.TrimSpace(raw))
	if !ok {
		object, ok = findObject(raw)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in %d bytes", domain.ErrParse, len(raw))
	}
	return reportFromObject(kind, object, defaults), nil
}

func decodeObject(text string) (map[string]interface{}, bool) {
	if text == "" {
		return nil, false
	}
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var object map[string]interface{}
	if err := decoder.Decode(&object); err != nil || object == nil {
		return nil, false
	}
	if decoder.More() {
		return nil, false
	}
	return object, true
}

// findObject scans for top-level brace-balanced blocks, skipping braces inside strings
func findObject(text string) (map[string]interface{}, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		end := matchBrace(text, start)
		if end < 0 {
			next := strings.IndexByte(text[start+1:], '{')
			if next < 0 {
				return nil, false
			}
			start += next + 1
			continue
		}
		if object, ok := decodeObject(text[start : end+1]); ok {
			return object, true
		}
		next := strings.IndexByte(text[end+1:], '{')
		if next < 0 {
			return nil, false
		}
		start = end + 1 + next
	}
	return nil, false
}

// matchBrace returns the index of the brace closing the one at start, or -1
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func reportFromObject(kind domain.InterviewKind, object map[string]interface{}, defaults reportDefaults) *domain.EvaluationReport {
	scores := make(map[string]int)
	for _, dim := range domain.Dimensions(kind) {
		if v, ok := toScore(object[dim]); ok {
			scores[dim] = v
		}
	}

	report := domain.NewEvaluationReport(kind, scores, missingDimensionScore)
	report.Feedback = defaults.feedback
	if feedback, ok := object["feedback"].(string); ok && feedback != "" {
		report.Feedback = feedback
	}
	if improvements, ok := toStrings(object["improvements"]); ok {
		report.Improvements = improvements
	}
	if kind != domain.KindAlgorithm {
		if strengths, ok := toStrings(object["strengths"]); ok {
			report.Strengths = strengths
		}
	}
	return report
}

// toScore accepts JSON numbers and numeric strings; fractions are truncated
func toScore(v interface{}) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f > domain.MaxScore {
		return domain.MaxScore, true
	}
	if f < domain.MinScore {
		return domain.MinScore, true
	}
	return int(f), true
}

func toStrings(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case json.Number:
			out = append(out, s.String())
		}
	}
	return out, true
}

// parseFallbackReport keeps the raw answer as feedback when no JSON could be read
func parseFallbackReport(kind domain.InterviewKind, raw string, defaults reportDefaults) *domain.EvaluationReport {
	report := domain.UniformReport(kind, missingDimensionScore)
	report.Feedback = raw
	report.Improvements = append([]string{}, defaults.improvements...)
	if kind != domain.KindAlgorithm {
		report.Strengths = append([]string{}, defaults.strengths...)
	}
	return report
}

// errorReport is returned when the scoring call itself failed
func errorReport(kind domain.InterviewKind) *domain.EvaluationReport {
	report := domain.UniformReport(kind, errorScore)
	report.Feedback = errorFeedback
	report.Improvements = append([]string{}, errorImprovements...)
	return report
}

// compactJSON is used for logging model answers on one line
func compactJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}
