package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split splits a command line into arguments using POSIX shell quoting rules.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// Join re-assembles an argument vector into a single line. Arguments
// containing whitespace or quotes are double-quoted so Substitute restores
// them as single tokens. For an option written as --name=value only the
// value is quoted, keeping the marker visible to the grammar.
func Join(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if arg != "" && !needsQuotes(arg) {
			sb.WriteString(arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if eq := strings.IndexByte(arg, '='); eq > 0 && !needsQuotes(arg[:eq]) {
				sb.WriteString(arg[:eq+1])
				writeQuoted(&sb, arg[eq+1:])
				continue
			}
		}
		writeQuoted(&sb, arg)
	}

	return sb.String()
}

func needsQuotes(s string) bool {
	return strings.ContainsAny(s, " \t\r\n\"'")
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
}
