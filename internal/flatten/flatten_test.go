package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []KV
	}{
		{
			name:  "nested object and array",
			input: `{"a":{"b":1},"c":[2,3]}`,
			want: []KV{
				{Key: "a.b", Value: "1"},
				{Key: "c.0", Value: "2"},
				{Key: "c.1", Value: "3"},
			},
		},
		{
			name:  "flat object",
			input: `{"status":"ok","count":42}`,
			want: []KV{
				{Key: "status", Value: "ok"},
				{Key: "count", Value: "42"},
			},
		},
		{
			name:  "scalar types",
			input: `{"s":"text","n":1.5,"b":true,"z":null}`,
			want: []KV{
				{Key: "s", Value: "text"},
				{Key: "n", Value: "1.5"},
				{Key: "b", Value: "true"},
				{Key: "z", Value: "null"},
			},
		},
		{
			name:  "deep nesting",
			input: `{"a":{"b":{"c":{"d":"leaf"}}}}`,
			want:  []KV{{Key: "a.b.c.d", Value: "leaf"}},
		},
		{
			name:  "array of objects",
			input: `{"items":[{"id":1},{"id":2}]}`,
			want: []KV{
				{Key: "items.0.id", Value: "1"},
				{Key: "items.1.id", Value: "2"},
			},
		},
		{
			name:  "top-level array",
			input: `[{"a":1},"b"]`,
			want: []KV{
				{Key: "0.a", Value: "1"},
				{Key: "1", Value: "b"},
			},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  nil,
		},
		{
			name:  "empty containers produce no pairs",
			input: `{"a":{},"b":[],"c":1}`,
			want:  []KV{{Key: "c", Value: "1"}},
		},
		{
			name:  "large numbers keep source representation",
			input: `{"id":9007199254740993}`,
			want:  []KV{{Key: "id", Value: "9007199254740993"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Flatten([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	input := []byte(`{"a":{"b":1},"c":[2,3],"d":"x"}`)

	first, err := Flatten(input)
	require.NoError(t, err)

	// same input must produce identical pairs in identical order
	for i := 0; i < 10; i++ {
		got, err := Flatten(input)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestFlatten_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "plain text", input: "OK"},
		{name: "empty input", input: ""},
		{name: "truncated object", input: `{"a":`},
		{name: "trailing data", input: `{"a":1} extra`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pairs, err := Flatten([]byte(tc.input))
			assert.Error(t, err)
			assert.Nil(t, pairs)
		})
	}
}

func TestFlatten_ScalarBodyIsNotStructured(t *testing.T) {
	// bare scalars are valid JSON but carry nothing to flatten; callers
	// log these bodies as raw text instead
	for _, input := range []string{`"OK"`, `42`, `true`, `null`} {
		pairs, err := Flatten([]byte(input))
		assert.ErrorIs(t, err, ErrNotStructured, "input %q", input)
		assert.Nil(t, pairs)
	}
}
