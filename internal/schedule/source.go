package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
)

// ReadLectures loads raw lecture records from src, which may be an
// http(s) URL, an .xlsx workbook or a JSON file holding an array of
// objects.
func ReadLectures(ctx context.Context, src string) ([]RawLecture, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		body, err := fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return decodeLectures(src, body)
	case strings.EqualFold(filepath.Ext(src), ".xlsx"):
		body, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return DecodeWorkbook(body)
	default:
		body, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return decodeLectures(src, body)
	}
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	client := resty.New().
		SetTimeout(60 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: bad status code: %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}

func decodeLectures(src string, body []byte) ([]RawLecture, error) {
	var lectures []RawLecture
	if err := json.Unmarshal(body, &lectures); err != nil {
		return nil, fmt.Errorf("decode lectures from %s: %w", src, err)
	}
	return lectures, nil
}

// DecodeWorkbook reads the first sheet of an .xlsx export.  The first row
// is the header; every following row becomes a record keyed by header
// text.  Blank header cells are ignored.
func DecodeWorkbook(body []byte) ([]RawLecture, error) {
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return []RawLecture{}, nil
	}

	header := rows[0]
	out := make([]RawLecture, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(RawLecture, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = row[i]
		}
		out = append(out, rec)
	}
	return out, nil
}
