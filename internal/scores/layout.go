package scores

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Game identifiers used in score keys.
const (
	GameMatch = "match"
	GameSnake = "snake"
)

// matchDifficulties seeds the zeroed match record so the persisted object
// always carries every difficulty.
var matchDifficulties = []string{"easy", "medium", "hard"}

var errCorrupt = errors.New("corrupt score record")

// RecordKey returns the KV key holding a game's record.
func RecordKey(game string) string {
	switch game {
	case GameMatch:
		return "memory-game-scores"
	case GameSnake:
		return "snake-high-score"
	default:
		return game + "-scores"
	}
}

// record is the decoded form of one persisted value: best score per
// difficulty, with "" as the slot of games without a difficulty axis.
type record map[string]int

// zeroRecord returns the default record for a game.
func zeroRecord(game string) record {
	r := record{}
	if game == GameMatch {
		for _, d := range matchDifficulties {
			r[d] = 0
		}
	}
	return r
}

// hasDifficultyAxis reports whether a game persists a JSON object rather
// than a bare integer.
func hasDifficultyAxis(key Key) bool {
	return key.Game == GameMatch || key.Difficulty != ""
}

// decodeRecord parses a persisted value. Negative scores are clamped to 0.
// On error the zeroed default is returned alongside errCorrupt.
func decodeRecord(key Key, raw string) (record, error) {
	rec := zeroRecord(key.Game)
	raw = strings.TrimSpace(raw)

	if !hasDifficultyAxis(key) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return rec, errCorrupt
		}
		rec[""] = max(n, 0)
		return rec, nil
	}

	var parsed map[string]int
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		return rec, errCorrupt
	}
	for k, v := range parsed {
		rec[k] = max(v, 0)
	}
	return rec, nil
}

// encodeRecord renders a record in the persisted layout.
func encodeRecord(key Key, rec record) (string, error) {
	if !hasDifficultyAxis(key) {
		return strconv.Itoa(rec[""]), nil
	}
	data, err := json.Marshal(map[string]int(rec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
