package assistant

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text fields consulted, in order, when a payload lacks its primary shape.
var (
	summaryTextFields = []string{"summary", "answer", "text", "message", "content"}
	answerTextFields  = []string{"answer", "summary", "text", "message", "content"}
)

// Normalize maps a raw assistant payload, or the error the call failed with,
// to a canonical response. It never fails.
func Normalize(kind Kind, payload []byte, callErr error) Response {
	if kind == KindAskQuestion {
		return Response{Kind: KindAskQuestion, Answer: normalizeAnswer(payload, callErr)}
	}
	return Response{Kind: KindSummarize, Summary: normalizeSummary(payload, callErr)}
}

func normalizeSummary(payload []byte, callErr error) *Summary {
	if callErr != nil {
		return &Summary{
			SummaryText:     SummaryFallback,
			Recommendations: append([]string(nil), FallbackRecommendations...),
			Degraded:        true,
		}
	}

	fields, text := decode(payload)
	summary, hasSummary := stringField(fields, "summary")
	recs := recommendations(fields["recommendations"])
	if hasSummary && len(recs) > 0 {
		return &Summary{SummaryText: summary, Recommendations: recs}
	}

	if t := firstText(fields, summaryTextFields, text); t != "" {
		return &Summary{SummaryText: t, Recommendations: recs, Degraded: true}
	}
	return &Summary{SummaryText: SummaryPlaceholder, Recommendations: recs, Degraded: true}
}

func normalizeAnswer(payload []byte, callErr error) *Answer {
	if callErr != nil {
		return &Answer{AnswerText: AnswerFallback, Confidence: 0, Degraded: true}
	}

	fields, text := decode(payload)
	answer, hasAnswer := stringField(fields, "answer")
	confidence, hasConfidence := fields["confidence"].(float64)
	if hasAnswer && hasConfidence {
		return &Answer{AnswerText: answer, Confidence: clamp(confidence)}
	}

	if t := firstText(fields, answerTextFields, text); t != "" {
		return &Answer{AnswerText: t, Degraded: true}
	}
	return &Answer{AnswerText: AnswerPlaceholder, Degraded: true}
}

// decode returns the payload as an object when it is one, otherwise as text:
// a JSON string is unquoted and anything else is taken verbatim.
func decode(payload []byte) (map[string]any, string) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ""
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, string(trimmed)
	}
	switch t := v.(type) {
	case map[string]any:
		return t, ""
	case string:
		return nil, strings.TrimSpace(t)
	case nil:
		return nil, ""
	}
	return nil, ""
}

func stringField(fields map[string]any, key string) (string, bool) {
	s, ok := fields[key].(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func firstText(fields map[string]any, keys []string, text string) string {
	for _, key := range keys {
		if s, ok := stringField(fields, key); ok {
			return s
		}
	}
	return text
}

// recommendations accepts a list of strings, kept as given, or a single
// newline-separated string whose lines may carry list markers.
func recommendations(raw any) []string {
	out := []string{}
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	case string:
		for _, line := range strings.Split(v, "\n") {
			if s := stripMarker(line); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func stripMarker(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•")
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
