package transform

import (
	"strconv"
	"strings"

	"github.com/roach88/rotate/internal/matrix"
)

// Header is emitted once, in place of the first input line.
const Header = "id,json,is_valid"

// Record is the result of transforming one data line.
type Record struct {
	ID    string `json:"id"`
	JSON  string `json:"json"`
	Valid bool   `json:"is_valid"`
}

// String formats the record as an output line: id,"json",valid.
func (r Record) String() string {
	var b strings.Builder
	b.Grow(len(r.ID) + len(r.JSON) + 10)
	b.WriteString(r.ID)
	b.WriteString(`,"`)
	b.WriteString(r.JSON)
	b.WriteString(`",`)
	b.WriteString(strconv.FormatBool(r.Valid))
	return b.String()
}

// SplitLine splits line at its first comma. Without a comma the whole line is
// the id and the payload is empty.
func SplitLine(line string) (id, payload string) {
	id, payload, _ = strings.Cut(line, ",")
	return id, payload
}

// StripQuotes removes at most one leading and one trailing double quote.
func StripQuotes(payload string) string {
	payload = strings.TrimPrefix(payload, `"`)
	return strings.TrimSuffix(payload, `"`)
}

// TransformLine converts a data line into its Record. The returned error is
// the reason a record is invalid and wraps matrix.ErrMalformedField; it is
// informational only, the Record is always complete.
func TransformLine(line string) (Record, error) {
	rec, out := transformLine(line)
	return rec, out.Err()
}

func transformLine(line string) (Record, matrix.Outcome) {
	id, payload := SplitLine(line)
	out := matrix.Parse(StripQuotes(payload)).Map(matrix.Rotate)
	json, valid := out.Unwrap()
	return Record{ID: id, JSON: json, Valid: valid}, out
}
