package t2048

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRestoresStacks(t *testing.T) {
	s := playing(t, NewScriptSpawner(Placement{Row: 2, Col: 2, Value: 4}), MustGrid(
		[]int{2, 2, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	), WithStopOnWin(false), WithWinValue(4))

	s1, err := Move(s, DirLeft)
	require.NoError(t, err)
	s2, err := Move(s1, DirDown)
	require.NoError(t, err)
	s3 := Undo(s2)
	require.Equal(t, StatusWonContinue, s3.Status())

	data, err := Serialize(s3)
	require.NoError(t, err)

	back, err := Deserialize(data)
	require.NoError(t, err)

	assert.True(t, back.Equal(s3))
	assert.Nil(t, back.Spawner())
	assert.Len(t, back.History(), 1)
	assert.Len(t, back.Future(), 1)
}

func TestSerializeLayout(t *testing.T) {
	s := playing(t, NoSpawner, MustGrid([]int{2, 0}, []int{0, 4}), WithStopOnWin(false))

	data, err := Serialize(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, []any{[]any{2.0, 0.0}, []any{0.0, 4.0}}, raw["board"])
	assert.Equal(t, "Playing", raw["status"])
	assert.Equal(t, 2.0, raw["N"])
	assert.Equal(t, 2048.0, raw["win_value"])
	assert.Equal(t, false, raw["stop_on_win"])
	assert.Equal(t, []any{}, raw["history"])
	assert.Equal(t, []any{}, raw["future"])
}

func TestDeserializeStatusLabels(t *testing.T) {
	for _, st := range []Status{StatusPlaying, StatusWon, StatusLost, StatusWonContinue} {
		doc := `{"board":[[0,0],[0,0]],"score":0,"status":"` + st.String() +
			`","N":2,"win_value":2048,"stop_on_win":true,"history":[],"future":[]}`
		s, err := Deserialize([]byte(doc))
		require.NoError(t, err, st.String())
		assert.Equal(t, st, s.Status())
	}
}

func TestDeserializeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"board":`},
		{"size mismatch", `{"board":[[0,0],[0,0]],"score":0,"status":"Playing","N":3,"win_value":2048}`},
		{"ragged board", `{"board":[[0,0],[0]],"score":0,"status":"Playing","N":2,"win_value":2048}`},
		{"bad tile", `{"board":[[3,0],[0,0]],"score":0,"status":"Playing","N":2,"win_value":2048}`},
		{"bad status", `{"board":[[0,0],[0,0]],"score":0,"status":"Paused","N":2,"win_value":2048}`},
		{"bad win value", `{"board":[[0,0],[0,0]],"score":0,"status":"Playing","N":2,"win_value":100}`},
		{"negative score", `{"board":[[0,0],[0,0]],"score":-4,"status":"Playing","N":2,"win_value":2048}`},
		{"bad history entry", `{"board":[[0,0],[0,0]],"score":0,"status":"Playing","N":2,"win_value":2048,
			"history":[{"board":[[0,0,0],[0,0,0],[0,0,0]],"score":0,"status":"Playing","N":3,"win_value":2048}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestDeserializedStateMovesWithoutSpawning(t *testing.T) {
	doc := `{"board":[[0,2],[0,0]],"score":8,"status":"Playing","N":2,"win_value":2048,"stop_on_win":true,"history":[],"future":[]}`
	s, err := Deserialize([]byte(doc))
	require.NoError(t, err)

	next, err := Move(s, DirLeft)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 0}, {0, 0}}, next.Board().Rows())
	assert.Equal(t, 8, next.Score())

	withSpawner, err := Move(s.WithSpawner(FirstEmptySpawner{}), DirLeft)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 2}, {0, 0}}, withSpawner.Board().Rows())
}
