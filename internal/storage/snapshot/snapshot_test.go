package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

var sample = []todos.Todo{
	{ID: 1, Title: "Buy milk", Description: "2%", EndDate: "2024-01-01", Image: "data:image/png;base64,AAAA"},
	{ID: 2, Title: "Walk", Description: "dog", EndDate: "2024-02-29", Image: "data:image/gif;base64,BBBB", IsCompleted: true},
}

func TestEncodeDecode(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := Encode(sample, now)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Equal(t, float64(Version), doc["version"])
	require.Equal(t, "2024-01-02T03:04:05Z", doc["savedAt"])

	got, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, sample, got)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, got)

	b, err := Encode(nil, time.Now())
	require.NoError(t, err)
	got, err = Decode(b)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDecodeLegacyList(t *testing.T) {
	legacy := `[{"id":7,"title":"a","description":"b","endDate":"2024-01-01","image":"data:image/png;base64,AA==","isCompleted":false}]`
	got, err := Decode([]byte(legacy))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(7), got[0].ID)
}

func TestDecodeRejectsFutureVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version": 2, "todos": []}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeRejectsPartialRecords(t *testing.T) {
	doc := `{"version":1,"todos":[{"id":1,"title":"","description":"b","endDate":"2024-01-01","image":"data:image/png;base64,AA==","isCompleted":false}]}`
	_, err := Decode([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "/todos/0/title")

	doc = `{"version":1,"todos":[{"id":1,"title":"a","description":"b","endDate":"2024-01-01","isCompleted":false}]}`
	_, err = Decode([]byte(doc))
	require.Error(t, err)
}

func TestDecodeLegacyRejectsPartialRecords(t *testing.T) {
	legacy := `[{"id":7,"title":"a","description":"b","endDate":"2024-01-01","isCompleted":false}]`
	_, err := Decode([]byte(legacy))
	require.Error(t, err)
	require.Contains(t, err.Error(), "/0")

	legacy = `[{"id":7,"title":"","description":"b","endDate":"2024-01-01","image":"data:image/png;base64,AA==","isCompleted":false}]`
	_, err = Decode([]byte(legacy))
	require.ErrorContains(t, err, "/0/title")
}
