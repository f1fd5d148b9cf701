// Package transform maps upstream records into normalized rows.
//
// Everything here is pure: no I/O, no logging. Malformed values are reported
// as Issues next to the output and the affected field is left nil.
package transform

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// Issue describes a field that could not be transformed.
type Issue struct {
	RecordID string
	Field    string
	Err      error
}

// AsError returns the issue as a transformation-kind error.
func (i Issue) AsError() error {
	return apperrors.Transformation(i.Field, i.Err)
}

type issues []Issue

func (is *issues) add(recordID, field string, err error) {
	*is = append(*is, Issue{RecordID: recordID, Field: field, Err: err})
}

// jsonText returns nested JSON as compact text, or nil for absent/null values.
func jsonText(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	s := buf.String()
	return &s, nil
}

// flag coerces an optional upstream boolean; absent means false.
func flag(b *bool) bool {
	return b != nil && *b
}

func text(f *model.FlexString) *string {
	return f.Ptr()
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
