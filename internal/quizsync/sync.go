// Package quizsync holds the pure quiz-mutation jobs behind the sync
// commands: appending the hard Session 1 questions, normalizing the
// Connection Test Quiz texts, and bumping timers on the tricky questions.
// All functions mutate the quiz in place and report whether anything
// changed; the CLI layer owns every HTTP round-trip.
package quizsync

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// AppendMissingQuestions appends every definition whose marker is absent
// from the quiz. Returns true when at least one question was added.
// A definition also counts as present when its exact question text already
// exists in the quiz; some markers are phrased more loosely than the text
// they identify, and the equality check keeps reruns from re-appending
// those questions.
func AppendMissingQuestions(quiz *domain.Quiz, defs []QuestionDef) bool {
	added := false
	for _, def := range defs {
		payload := def.Payload()
		if containsMarker(quiz.Questions, def.Marker) || containsQuestionText(quiz.Questions, payload.Question) {
			continue
		}
		quiz.Questions = append(quiz.Questions, payload)
		added = true
	}
	return added
}

// NormalizeQuestionTexts rewrites the question text at each index. An index
// beyond the quiz is an error: it means the quiz is not the one the job was
// written for.
func NormalizeQuestionTexts(quiz *domain.Quiz, desired map[int]string) (bool, error) {
	changed := false
	for index, text := range desired {
		if index >= len(quiz.Questions) {
			return changed, fmt.Errorf(
				"expected question index %d to exist, but quiz only has %d questions",
				index, len(quiz.Questions))
		}
		if quiz.Questions[index].Question != text {
			quiz.Questions[index].Question = text
			changed = true
		}
	}
	return changed, nil
}

// MarkTrickyTimers sets the time limit on the hard questions. A question
// counts as tricky when its text contains one of the markers, or when it
// sits in the tail of the quiz where the hard questions are appended; the
// positional fallback keeps the job working even if a marker string drifts.
func MarkTrickyTimers(quiz *domain.Quiz, markers []string, seconds int) bool {
	tailStart := len(quiz.Questions) - len(markers)
	if tailStart < 0 {
		tailStart = 0
	}
	desired := strconv.Itoa(seconds)

	changed := false
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		tricky := i >= tailStart || matchesAny(question.Question, markers)
		if tricky && question.Time != desired {
			question.Time = desired
			changed = true
		}
	}
	return changed
}

func containsMarker(questions []domain.QuizQuestion, marker string) bool {
	for _, question := range questions {
		if strings.Contains(question.Question, marker) {
			return true
		}
	}
	return false
}

func containsQuestionText(questions []domain.QuizQuestion, text string) bool {
	for _, question := range questions {
		if question.Question == text {
			return true
		}
	}
	return false
}

func matchesAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Markers extracts the marker strings from a definition list.
func Markers(defs []QuestionDef) []string {
	markers := make([]string, 0, len(defs))
	for _, def := range defs {
		markers = append(markers, def.Marker)
	}
	return markers
}
