package cli

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/quartzdb/dtype/internal/dtype"
)

// ParseLiteral converts a command-line token into a value the engine
// understands. Resolution order: null markers, booleans, integers,
// floats, complex numbers, RFC 3339 timestamps, Go durations, then
// plain strings.
func ParseLiteral(tok string) any {
	switch strings.ToLower(tok) {
	case "null", "none", "na":
		return nil
	case "nan":
		return math.NaN()
	case "nat":
		return dtype.NullTime{}
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseUint(tok, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseComplex(tok, 128); err == nil {
		return v
	}
	if ts, err := time.Parse(time.RFC3339Nano, tok); err == nil {
		return ts
	}
	if d, err := time.ParseDuration(tok); err == nil {
		return d
	}
	return tok
}

// ParseLiterals applies ParseLiteral to each token.
func ParseLiterals(toks []string) []any {
	out := make([]any, len(toks))
	for i, tok := range toks {
		out[i] = ParseLiteral(tok)
	}
	return out
}

// errorCode picks the code shown in CLI error output. Engine errors
// carry their own code; anything else is a command error.
func errorCode(err error) string {
	var castErr *dtype.CastError
	if errors.As(err, &castErr) {
		return string(castErr.Code)
	}
	return "COMMAND"
}
