package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadLectures_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lectures.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"강의시간_강의실":"월 1 (H101)"},{"과목명":"x"}]`), 0o644))

	got, err := ReadLectures(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "월 1 (H101)", got[0][DefaultField])
}

func TestReadLectures_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"강의시간_강의실":"화 2 (3201)"}]`))
	}))
	defer srv.Close()

	got, err := ReadLectures(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "화 2 (3201)", got[0][DefaultField])
}

func TestReadLectures_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := ReadLectures(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestDecodeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"과목명", DefaultField, ""}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"역사학개론", "월 1 2 (H101)"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"휴강"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := DecodeWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "월 1 2 (H101)", got[0][DefaultField])
	_, has := got[1][DefaultField]
	assert.False(t, has)

	idx, stats := Normalizer{}.Normalize(got)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, []int{1, 2}, idx["역사관 101호"]["월"])
}
