package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hufspace/classroom-finder/internal/model"
)

// LoadFile reads a schedule index artifact written by WriteFile.  A missing
// file is reported with an error wrapping os.ErrNotExist so the caller can
// decide to start with an empty index.
func LoadFile(path string) (model.ScheduleIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule %s: %w", path, err)
	}
	var idx model.ScheduleIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", path, err)
	}
	if idx == nil {
		idx = model.ScheduleIndex{}
	}
	Canonicalize(idx)
	return idx, nil
}

// WriteFile stores idx as indented JSON with Hangul left unescaped, the
// layout consumed by the server at startup.
func WriteFile(path string, idx model.ScheduleIndex) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write schedule %s: %w", path, err)
	}
	return nil
}
