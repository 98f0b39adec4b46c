package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrNoJSON reports that the response contains no {...} span at all.
var ErrNoJSON = errors.New("extract: no JSON object found in response")

// UnrecoverableJSONError reports JSON that stayed invalid after every
// repair rule ran. Detail carries the parser's error.
type UnrecoverableJSONError struct {
	Detail error
}

func (e *UnrecoverableJSONError) Error() string {
	return fmt.Sprintf("extract: JSON unparseable after repair: %v", e.Detail)
}

func (e *UnrecoverableJSONError) Unwrap() error { return e.Detail }

// objectSpan greedily captures the first {...} region, newlines included.
var objectSpan = regexp.MustCompile(`(?s)\{.*\}`)

// The repair rules, in the order they must run. Each rule assumes the
// previous ones already ran; do not reorder.
var (
	singleQuotedKey   = regexp.MustCompile(`'([^']*)':`)
	singleQuotedValue = regexp.MustCompile(`:\s*'([^']*)'`)
	trailingCommaObj  = regexp.MustCompile(`,\s*}`)
	trailingCommaArr  = regexp.MustCompile(`,\s*\]`)
	bareScalar        = regexp.MustCompile(`:\s*([^"\s{\[][^,}\]]*?)\s*([,}\]])`)
)

// ExtractJSON locates the first JSON object in text and returns it as
// parseable JSON, repairing common model mistakes when necessary.
// It fails with ErrNoJSON when no object span exists and with
// *UnrecoverableJSONError when the span stays invalid after repair.
func ExtractJSON(text string) (string, error) {
	span := objectSpan.FindString(text)
	if span == "" {
		return "", ErrNoJSON
	}

	if json.Valid([]byte(span)) {
		return span, nil
	}

	repaired := repairJSON(span)
	if err := parseCheck(repaired); err != nil {
		return "", &UnrecoverableJSONError{Detail: err}
	}
	return repaired, nil
}

// repairJSON applies the fixed repair sequence: requote single-quoted
// keys, requote single-quoted values, drop trailing commas, then quote
// bare scalar values. Valid literals (numbers, true, false, null) are
// left alone by the last rule.
func repairJSON(s string) string {
	s = singleQuotedKey.ReplaceAllString(s, `"$1":`)
	s = singleQuotedValue.ReplaceAllString(s, `: "$1"`)
	s = trailingCommaObj.ReplaceAllString(s, "}")
	s = trailingCommaArr.ReplaceAllString(s, "]")
	s = bareScalar.ReplaceAllStringFunc(s, quoteBareScalar)
	return s
}

func quoteBareScalar(match string) string {
	parts := bareScalar.FindStringSubmatch(match)
	token, closer := parts[1], parts[2]
	if json.Valid([]byte(token)) {
		return ": " + token + closer
	}
	return `: "` + token + `"` + closer
}

func parseCheck(s string) error {
	var v any
	return json.Unmarshal([]byte(s), &v)
}
