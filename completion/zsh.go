package completion

import (
	"fmt"
	"strings"
)

type ZshGenerator struct{}

func (g *ZshGenerator) Generate(programName string, data Data) string {
	var script strings.Builder
	fn := functionName(programName)

	script.WriteString(fmt.Sprintf(`#compdef %[2]s

_%[1]s() {
    local -a candidates
    local key="" next w i

    case "${words[CURRENT-1]}" in`, fn, programName))

	if names := valueFlags(data); len(names) > 0 {
		script.WriteString(fmt.Sprintf(`
        %s)
            _files
            return
            ;;`, strings.Join(names, "|")))
	}

	script.WriteString(`
    esac

    for ((i=2; i < CURRENT; i++)); do
        w="${words[i]}"
        [[ "$w" == -* ]] && continue
        next="${key:+${key}__}${w}"
        case "$next" in`)

	if keys := routeKeys(data); len(keys) > 0 {
		script.WriteString(fmt.Sprintf(`
            %s) key="$next" ;;`, strings.Join(keys, "|")))
	}

	script.WriteString(`
        esac
    done

    case "${key:-__root}" in`)

	for _, prefix := range data.Prefixes() {
		entries := entriesAt(data, prefix)
		if len(entries) == 0 {
			continue
		}
		script.WriteString(fmt.Sprintf(`
        %s)
            candidates=(`, caseKey(prefix)))
		for _, e := range entries {
			item := e.word
			if e.description != "" {
				item += ":" + e.description
			}
			script.WriteString(fmt.Sprintf(`
                '%s'`, escapeZsh(item)))
		}
		script.WriteString(`
            )
            ;;`)
	}

	script.WriteString(fmt.Sprintf(`
    esac

    _describe 'command' candidates
}

compdef _%[1]s %[2]s
`, fn, programName))

	return script.String()
}
