package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	line, sub := Substitute(`deploy "a b" --x 1`)

	fields := strings.Fields(line)
	require.Len(t, fields, 4)
	assert.Equal(t, "deploy", fields[0])
	assert.Equal(t, []string{"--x", "1"}, fields[2:])
	assert.NotContains(t, line, `"`)
	assert.Equal(t, 1, sub.Len())

	assert.Equal(t, "a b", sub.Resolve(fields[1]), "the positional capture resolves to the quoted text")
	assert.Equal(t, "deploy", sub.Resolve("deploy"), "unknown text is returned unchanged")
}

func TestSubstitute_FreshKeys(t *testing.T) {
	first, s1 := Substitute(`run "x y"`)
	second, s2 := Substitute(`run "x y"`)

	assert.NotEqual(t, first, second, "every call creates fresh keys")

	key := strings.Fields(first)[1]
	assert.Equal(t, "x y", s1.Resolve(key))
	assert.Equal(t, key, s2.Resolve(key), "handles are not shared between calls")
}

func TestSubstitute_Forms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		token    int
		want     string
		keyCount int
	}{
		{name: "single quotes", input: `run 'it is' now`, token: 1, want: "it is", keyCount: 1},
		{name: "escaped double quote", input: `run "say \"hi\""`, token: 1, want: `say "hi"`, keyCount: 1},
		{name: "single quotes keep backslashes", input: `run 'a\b'`, token: 1, want: `a\b`, keyCount: 1},
		{name: "embedded in option value", input: `run --name="a b"`, token: 1, want: "--name=a b", keyCount: 1},
		{name: "empty quotes", input: `run "" x`, token: 1, want: "", keyCount: 1},
		{name: "unterminated quote untouched", input: `run "abc`, token: 1, want: `"abc`, keyCount: 0},
		{name: "no quotes", input: "run a b", token: 2, want: "b", keyCount: 0},
		{name: "plain word unquoted", input: `"deploy" pgup.json`, token: 0, want: "deploy", keyCount: 0},
		{name: "plain path unquoted", input: `run 'conf/app.json'`, token: 1, want: "conf/app.json", keyCount: 0},
		{name: "plain word in option value", input: `run --name="db"`, token: 1, want: "--name=db", keyCount: 0},
		{name: "dash-led word stays opaque", input: `run "-1"`, token: 1, want: "-1", keyCount: 1},
		{name: "key-like word stays opaque", input: `run "qxabc"`, token: 1, want: "qxabc", keyCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, sub := Substitute(tt.input)
			fields := strings.Fields(line)
			require.Greater(t, len(fields), tt.token)
			assert.Equal(t, tt.want, sub.Resolve(fields[tt.token]))
			assert.Equal(t, tt.keyCount, sub.Len())
		})
	}
}

func TestSubstitution_NilSafe(t *testing.T) {
	var sub *Substitution
	assert.Equal(t, "x", sub.Resolve("x"))
	assert.Equal(t, 0, sub.Len())
}
