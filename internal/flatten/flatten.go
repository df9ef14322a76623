// Package flatten converts nested JSON values into single-level key/value
// pairs for structured logging.
//
// Keys are the dot-joined path of object keys from the root, with array
// indices appended as numeric path segments. For example:
//
//	{"a":{"b":1},"c":[2,3]}  →  a.b=1  c.0=2  c.1=3
//
// Flattening is a pure function of its input: the same document always
// produces the same pairs, in document order.
//
// This package is internal to restmon. Consumers receive flattened pairs
// through the restmon.PollResult type.
package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrNotStructured is returned when the input is valid JSON but not an
// object or array. Scalar bodies (a bare string or number) are logged as
// raw text by the caller rather than flattened.
var ErrNotStructured = errors.New("flatten: value is not a JSON object or array")

// KV is one flattened key/value pair.
//
// Pairs are held in a slice rather than a map so that document order is
// preserved through to the log record.
type KV struct {
	// Key is the dot/index-joined path from the document root.
	Key string

	// Value is the scalar rendered as a string. Numbers keep their exact
	// source representation, booleans render as "true"/"false", and JSON
	// null renders as "null".
	Value string
}

// Flatten parses raw as JSON and returns the value flattened into
// path→scalar pairs in first-encounter document order.
//
// Returns an error if raw is not valid JSON, carries trailing data, or is
// a bare scalar ([ErrNotStructured]). Empty objects and arrays produce no
// pairs: only scalar leaves are emitted.
func Flatten(raw []byte) ([]KV, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("flatten: invalid JSON: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, ErrNotStructured
	}

	var pairs []KV
	if err := walkContainer(dec, "", delim, &pairs); err != nil {
		return nil, err
	}

	// anything after the top-level value means the body was not a single
	// JSON document
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("flatten: trailing data after JSON value")
	}

	return pairs, nil
}

// walkContainer consumes the contents of an object or array whose opening
// delimiter has already been read, appending scalar leaves to out.
func walkContainer(dec *json.Decoder, prefix string, open json.Delim, out *[]KV) error {
	switch open {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("flatten: invalid JSON: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("flatten: unexpected object key %v", keyTok)
			}
			if err := walkValue(dec, joinPath(prefix, key), out); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; dec.More(); i++ {
			if err := walkValue(dec, joinPath(prefix, strconv.Itoa(i)), out); err != nil {
				return err
			}
		}
	}

	// consume the closing delimiter
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("flatten: invalid JSON: %w", err)
	}
	return nil
}

// walkValue reads the next value from the decoder and either recurses into
// a nested container or emits a scalar leaf at path.
func walkValue(dec *json.Decoder, path string, out *[]KV) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("flatten: invalid JSON: %w", err)
	}

	if delim, ok := tok.(json.Delim); ok {
		return walkContainer(dec, path, delim, out)
	}

	*out = append(*out, KV{Key: path, Value: scalarString(tok)})
	return nil
}

// joinPath appends a path segment, omitting the separator at the root.
func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// scalarString renders a JSON scalar token as its log representation.
func scalarString(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		// json.Decoder only produces the cases above for scalars
		return fmt.Sprintf("%v", v)
	}
}
