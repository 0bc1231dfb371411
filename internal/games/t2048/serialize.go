package t2048

import (
	"encoding/json"
	"fmt"
)

// stateJSON is the persisted layout of a State. The spawner is a capability,
// not data, and is left out.
type stateJSON struct {
	Board     [][]int     `json:"board"`
	Score     int         `json:"score"`
	Status    Status      `json:"status"`
	N         int         `json:"N"`
	WinValue  int         `json:"win_value"`
	StopOnWin bool        `json:"stop_on_win"`
	History   []stateJSON `json:"history"`
	Future    []stateJSON `json:"future"`
}

// Serialize encodes the full state, stacks included, as JSON.
func Serialize(s State) ([]byte, error) {
	return json.Marshal(toJSON(s))
}

// Deserialize decodes a snapshot produced by Serialize. The returned state
// has no spawner; attach one with WithSpawner before moving.
func Deserialize(data []byte) (State, error) {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return fromJSON(raw, raw.N)
}

func toJSON(s State) stateJSON {
	out := stateJSON{
		Board:     s.board.Rows(),
		Score:     s.score,
		Status:    s.status,
		N:         s.board.Size(),
		WinValue:  s.winValue,
		StopOnWin: s.stopOnWin,
		History:   make([]stateJSON, 0, len(s.history)),
		Future:    make([]stateJSON, 0, len(s.future)),
	}
	for _, h := range s.history {
		out.History = append(out.History, toJSON(h))
	}
	for _, f := range s.future {
		out.Future = append(out.Future, toJSON(f))
	}
	return out
}

func fromJSON(raw stateJSON, n int) (State, error) {
	if raw.N != n {
		return State{}, fmt.Errorf("%w: size %d, want %d", ErrInvalidSnapshot, raw.N, n)
	}
	board, err := GridFromRows(raw.Board)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if board.Size() != n {
		return State{}, fmt.Errorf("%w: board is %dx%d, N is %d", ErrInvalidSnapshot, board.Size(), board.Size(), n)
	}
	if err := board.Validate(); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	rules := Options{Size: n, WinValue: raw.WinValue}
	if err := rules.Validate(); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if raw.Score < 0 {
		return State{}, fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, raw.Score)
	}

	s := State{
		board:     board,
		score:     raw.Score,
		status:    raw.Status,
		winValue:  raw.WinValue,
		stopOnWin: raw.StopOnWin,
	}
	for i, h := range raw.History {
		entry, err := fromJSON(h, n)
		if err != nil {
			return State{}, fmt.Errorf("history[%d]: %w", i, err)
		}
		s.history = append(s.history, entry)
	}
	for i, f := range raw.Future {
		entry, err := fromJSON(f, n)
		if err != nil {
			return State{}, fmt.Errorf("future[%d]: %w", i, err)
		}
		s.future = append(s.future, entry)
	}
	return s, nil
}
