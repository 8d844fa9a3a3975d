package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// Store is the narrow read-only view of the cache the exporter needs. Get
// reports ok=false when the key is absent or empty; GetAll returns an empty
// map for a missing hash.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	GetAll(ctx context.Context, key string) (map[string]string, error)
}

// Exporter reconstructs final scoreboard statistics for a live game from
// raw cache state. It only reads; nothing is written back.
type Exporter struct {
	store Store
}

func New(store Store) *Exporter {
	return &Exporter{store: store}
}

// Export runs one full export: game record, score table, per-question stats,
// rendered report. Fatal conditions are ErrGameNotFound, DecodeError on the
// game record, any TransportError, and ErrNoPlayerData when both the score
// table and the answer logs come back empty.
func (e *Exporter) Export(ctx context.Context, pin string) (string, error) {
	game, err := e.LoadGame(ctx, pin)
	if err != nil {
		return "", err
	}

	scores, err := e.LoadScores(ctx, pin)
	if err != nil {
		return "", err
	}

	stats, err := e.CollectPlayerStats(ctx, pin, game.NumQuestions)
	if err != nil {
		return "", err
	}

	if len(scores) == 0 && len(stats) == 0 {
		return "", fmt.Errorf(
			"%w for PIN %s (has the game started and at least one question been answered?)",
			domain.ErrNoPlayerData, pin)
	}

	return FormatReport(game, scores, stats), nil
}

// LoadGame fetches and decodes the game record at game:{pin}.
func (e *Exporter) LoadGame(ctx context.Context, pin string) (domain.GameRecord, error) {
	key := gameKey(pin)
	raw, ok, err := e.store.Get(ctx, key)
	if err != nil {
		return domain.GameRecord{}, err
	}
	if !ok || raw == "" {
		return domain.GameRecord{}, fmt.Errorf("%w for PIN %s", domain.ErrGameNotFound, pin)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domain.GameRecord{}, &domain.DecodeError{Key: key, Err: err}
	}
	// "null" unmarshals into a nil map without error; the record has to be
	// an object.
	if doc == nil {
		return domain.GameRecord{}, &domain.DecodeError{Key: key, Err: errors.New("expected a JSON object, got null")}
	}

	record := domain.GameRecord{PIN: pin}
	if title, ok := doc["title"].(string); ok {
		record.Title = title
	}
	if questions, ok := doc["questions"].([]any); ok {
		record.NumQuestions = len(questions)
	}
	return record, nil
}

// LoadScores fetches the final point totals hash. Values stay raw strings;
// parsing to integers happens at render time.
func (e *Exporter) LoadScores(ctx context.Context, pin string) (domain.ScoreTable, error) {
	fields, err := e.store.GetAll(ctx, scoresKey(pin))
	if err != nil {
		return nil, err
	}
	return domain.ScoreTable(fields), nil
}

// CollectPlayerStats folds every per-question answer log into per-player
// answered/right counts. Missing, unparseable, or non-array values for a
// question are skipped silently so a partially garbled session still
// exports; only transport failures abort.
func (e *Exporter) CollectPlayerStats(ctx context.Context, pin string, numQuestions int) (domain.PlayerStats, error) {
	stats := domain.PlayerStats{}
	for index := 0; index < numQuestions; index++ {
		raw, ok, err := e.store.Get(ctx, answersKey(pin, index))
		if err != nil {
			return nil, err
		}
		if !ok || raw == "" {
			continue
		}

		var entries []any
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			continue
		}

		for _, entry := range entries {
			event, skip := vetAnswerEntry(entry)
			if skip != "" {
				continue
			}
			tally := stats[event.Username]
			if tally == nil {
				tally = &domain.AnswerTally{}
				stats[event.Username] = tally
			}
			tally.Answered++
			if event.Right {
				tally.Right++
			}
		}
	}
	return stats, nil
}

// vetAnswerEntry decides whether one decoded answer-log entry contributes to
// the tally. A non-empty skip reason means the entry is dropped.
func vetAnswerEntry(raw any) (domain.AnswerEvent, string) {
	entry, ok := raw.(map[string]any)
	if !ok {
		return domain.AnswerEvent{}, "entry is not an object"
	}
	username, _ := entry["username"].(string)
	if username == "" {
		return domain.AnswerEvent{}, "entry has no username"
	}
	return domain.AnswerEvent{Username: username, Right: truthy(entry["right"])}, ""
}

// truthy mirrors JSON value truthiness: false, null, 0, "", and empty
// containers are falsy, everything else is truthy.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func gameKey(pin string) string {
	return "game:" + pin
}

func scoresKey(pin string) string {
	return "game_session:" + pin + ":player_scores"
}

func answersKey(pin string, index int) string {
	return "game_session:" + pin + ":" + strconv.Itoa(index)
}
