package analytics

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"eeg-insight/internal/models"
)

const (
	maxAnalysisLines      = 3
	maxAnalysisChars      = 250
	defaultRecommendation = "Keep up the good work!"
	defaultAnalysis       = "No detailed analysis was returned for this session."
)

type field int

const (
	fieldNone field = iota
	fieldState
	fieldAnalysis
	fieldRecommendation
)

// fieldLabels maps label words found before a colon to a result field.
// Checked in order; multi-word labels come first.
var fieldLabels = []struct {
	field    field
	keywords []string
}{
	{fieldState, []string{"mental state", "state"}},
	{fieldAnalysis, []string{"analysis", "patterns", "pattern"}},
	{fieldRecommendation, []string{"recommendation", "recommendations", "suggestion", "suggestions", "suggest", "try", "tip"}},
}

// Loose cues may appear anywhere in a line, in any case.
var (
	analysisCues       = cuePatterns("analysis:", "mental state:", "patterns:")
	recommendationCues = cuePatterns("recommendation:", "suggest:", "try:")
)

func cuePatterns(cues ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(cues))
	for i, cue := range cues {
		patterns[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(cue))
	}
	return patterns
}

var (
	listMarker = regexp.MustCompile(`^(?:[#>*•\-]+|\d+[.)])\s*`)
	labelLine  = regexp.MustCompile(`^([A-Za-z][A-Za-z '\-]{0,40}?)\s*:\s*(.*)$`)
)

// stateRule assigns state when any keyword occurs in the lowercased text.
type stateRule struct {
	state    models.MentalState
	keywords []string
}

// stateRules are evaluated in order over the whole response; the first hit wins.
var stateRules = []stateRule{
	{models.Stressed, []string{"stressed", "stress"}},
	{models.Relaxed, []string{"relaxed", "calm"}},
	{models.Happy, []string{"happy", "joyful"}},
	{models.Sad, []string{"sad", "down"}},
	{models.Focused, []string{"focused", "concentration"}},
	{models.Tired, []string{"tired", "fatigue"}},
}

// DetectMentalState scans text for the first matching keyword family.
func DetectMentalState(text string) models.MentalState {
	lower := strings.ToLower(text)
	for _, rule := range stateRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.state
			}
		}
	}
	return models.Neutral
}

// ParseAIResponse extracts an AnalysisResult from free-form provider text.
// The stress level always comes from StressScore, never from the text.
func ParseAIResponse(text string, f models.FeatureSummary) models.AnalysisResult {
	lines := splitLines(text)

	fields, free := parseLabeled(lines)
	if len(fields) == 0 {
		fields = parseLoose(lines)
		free = lines
	}

	analysis := fields[fieldAnalysis]
	if analysis == "" {
		analysis = defaultAnalysisText(free)
	}

	recommendation := fields[fieldRecommendation]
	if recommendation == "" {
		if len(free) > 0 {
			recommendation = free[len(free)-1]
		} else {
			recommendation = defaultRecommendation
		}
	}

	state, ok := models.ParseMentalState(fields[fieldState])
	if !ok {
		state = DetectMentalState(text)
	}

	return models.AnalysisResult{
		Success:        true,
		MentalState:    state.String(),
		Analysis:       analysis,
		Recommendation: recommendation,
		StressLevel:    StressScore(f.AvgAttention, f.AvgMeditation),
		Source:         models.SourceAI,
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseLabeled handles the strict "Label: value" layout. A label with no
// inline value takes up to maxAnalysisLines following unlabeled lines.
// It returns the found fields and the lines no field consumed.
func parseLabeled(lines []string) (map[field]string, []string) {
	fields := make(map[field]string)
	var free []string

	for i := 0; i < len(lines); i++ {
		f, body := matchLabel(lines[i])
		if f == fieldNone {
			free = append(free, lines[i])
			continue
		}

		if body == "" {
			var parts []string
			for i+1 < len(lines) && len(parts) < maxAnalysisLines {
				if next, _ := matchLabel(lines[i+1]); next != fieldNone {
					break
				}
				i++
				parts = append(parts, cleanValue(lines[i]))
				if f == fieldState {
					break
				}
			}
			body = strings.Join(parts, " ")
		}

		if _, seen := fields[f]; !seen && body != "" {
			fields[f] = body
		}
	}

	return fields, free
}

func matchLabel(line string) (field, string) {
	m := labelLine.FindStringSubmatch(normalizeLine(line))
	if m == nil {
		return fieldNone, ""
	}

	head := " " + strings.ToLower(strings.TrimSpace(m[1])) + " "
	for _, label := range fieldLabels {
		for _, kw := range label.keywords {
			if strings.Contains(head, " "+kw+" ") {
				return label.field, cleanValue(m[2])
			}
		}
	}

	return fieldNone, ""
}

// parseLoose finds cue words anywhere in a line and aggregates from there:
// analysis takes up to maxAnalysisLines lines, the recommendation takes
// everything after its cue.
func parseLoose(lines []string) map[field]string {
	fields := make(map[field]string)

	for i, line := range lines {
		if rest, ok := afterCue(line, analysisCues); ok {
			end := min(i+maxAnalysisLines, len(lines))
			parts := append([]string{rest}, lines[i+1:end]...)
			fields[fieldAnalysis] = joinNonEmpty(parts)
		} else if rest, ok := afterCue(line, recommendationCues); ok {
			parts := append([]string{rest}, lines[i+1:]...)
			fields[fieldRecommendation] = joinNonEmpty(parts)
			break
		}
	}

	return fields
}

// afterCue returns the text following the first cue, in list order, found
// in line. Offsets come from the original line, never a lowercased copy.
func afterCue(line string, cues []*regexp.Regexp) (string, bool) {
	for _, cue := range cues {
		if loc := cue.FindStringIndex(line); loc != nil {
			return cleanValue(line[loc[1]:]), true
		}
	}
	return "", false
}

func defaultAnalysisText(lines []string) string {
	if len(lines) == 0 {
		return defaultAnalysis
	}
	return truncate(strings.Join(lines[:min(maxAnalysisLines, len(lines))], " "), maxAnalysisChars)
}

func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	for {
		next := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if next == line {
			break
		}
		line = next
	}
	return strings.ReplaceAll(line, "**", "")
}

func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}

func joinNonEmpty(parts []string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// truncate cuts s to at most n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}
