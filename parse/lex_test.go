package parse

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "simple command",
			input: "deploy pgup.json",
			want:  []string{"deploy", "pgup.json"},
		},
		{
			name:  "quoted arguments",
			input: `deploy "my project.json" --host localhost`,
			want:  []string{"deploy", "my project.json", "--host", "localhost"},
		},
		{
			name:  "multiple quotes",
			input: `run "first quote" 'second quote'`,
			want:  []string{"run", "first quote", "second quote"},
		},
		{
			name:  "escaped quotes",
			input: `echo \"hello\"`,
			want:  []string{"echo", `"hello"`},
		},
		{
			name:  "multiple spaces",
			input: "cmd   arg1    arg2",
			want:  []string{"cmd", "arg1", "arg2"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "only spaces",
			input: "   ",
			want:  []string{},
		},
		{
			name:    "unterminated quote",
			input:   `deploy "oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Split() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	args := []string{"deploy", "my project.json", `say "hi"`, "--host", "localhost"}

	line := Join(args)
	assert.Equal(t, `deploy "my project.json" "say \"hi\"" --host localhost`, line)

	back, err := Split(line)
	require.NoError(t, err)
	assert.Equal(t, args, back)
}

func TestJoin_OptionValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "long marker", args: []string{"--host=my host"}, want: `--host="my host"`},
		{name: "short marker", args: []string{"-t=a'b"}, want: `-t="a'b"`},
		{name: "empty value", args: []string{"--tag="}, want: `--tag=`},
		{name: "map key", args: []string{"--parameter.greeting=hello world"}, want: `--parameter.greeting="hello world"`},
		{name: "spaced marker quoted whole", args: []string{"--a b=c"}, want: `"--a b=c"`},
		{name: "positional with equals", args: []string{"a=b c"}, want: `"a=b c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Join(tt.args)
			assert.Equal(t, tt.want, line)

			back, err := Split(line)
			require.NoError(t, err)
			assert.Equal(t, tt.args, back)
		})
	}
}
