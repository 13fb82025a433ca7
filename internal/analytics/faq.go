package analytics

import (
	"strings"
	"unicode"
)

const defaultFAQAnswer = "I'm working in offline mode. I can help with basic questions about EEG, attention, meditation, blinks, and app usage. What would you like to know?"

// faqEntry answers a question when match holds for its lowercased text.
type faqEntry struct {
	match  func(q string, words map[string]bool) bool
	answer string
}

// faqEntries are evaluated in order; the first match wins.
var faqEntries = []faqEntry{
	{
		match: func(q string, words map[string]bool) bool {
			return words["how"] && (strings.Contains(q, "work") || strings.Contains(q, "use"))
		},
		answer: "This app reads your EEG brainwaves (attention, meditation, blink) and uses them to control devices. Focus or relax to trigger different actions!",
	},
	{
		match:  containsAny("attention"),
		answer: "Attention measures your mental focus level. Higher values (60-100%) mean you're concentrating well. Try focusing on a single task to increase it.",
	},
	{
		match:  containsAny("meditation"),
		answer: "Meditation measures your relaxation level. Higher values (60-100%) mean you're calm. Try deep breathing or closing your eyes to increase it.",
	},
	{
		match:  containsAny("blink"),
		answer: "Blink strength measures eye muscle activity. Strong blinks can be used as a control signal. Try blinking deliberately to test it.",
	},
	{
		match:  containsAny("stress"),
		answer: "Stress is detected through erratic brainwave patterns. Reduce stress with: deep breathing, regular breaks, meditation, or light exercise.",
	},
	{
		match: func(_ string, words map[string]bool) bool {
			return words["hi"] || words["hello"] || words["hey"]
		},
		answer: "Hello! I'm your EEG assistant. I can help you understand your brainwaves and how to use this app. What would you like to know?",
	},
}

// AnswerOffline answers a question from the static knowledge base.
func AnswerOffline(question string) string {
	q := strings.ToLower(question)
	words := wordSet(q)
	for _, entry := range faqEntries {
		if entry.match(q, words) {
			return entry.answer
		}
	}
	return defaultFAQAnswer
}

func containsAny(keywords ...string) func(string, map[string]bool) bool {
	return func(q string, _ map[string]bool) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

// wordSet splits on anything that is not a letter or digit, so greetings
// match whole words only ("this" is not "hi").
func wordSet(q string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return words
}
