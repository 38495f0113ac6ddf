package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

func (g *BashGenerator) Generate(programName string, data Data) string {
	var script strings.Builder
	fn := functionName(programName)

	script.WriteString(fmt.Sprintf(`#!/bin/bash

__%[1]s_is_route() {
    case "$1" in`, fn))

	if keys := routeKeys(data); len(keys) > 0 {
		script.WriteString(fmt.Sprintf(`
        %s) return 0 ;;`, strings.Join(keys, "|")))
	}

	script.WriteString(fmt.Sprintf(`
    esac
    return 1
}

__%[1]s_completion() {
    local cur prev key next w i words
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    key=""

    case "${prev}" in`, fn))

	if names := valueFlags(data); len(names) > 0 {
		script.WriteString(fmt.Sprintf(`
        %s)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return
            ;;`, strings.Join(names, "|")))
	}

	script.WriteString(fmt.Sprintf(`
    esac

    for ((i=1; i < COMP_CWORD; i++)); do
        w="${COMP_WORDS[i]}"
        [[ "$w" == -* ]] && continue
        next="${key:+${key}__}${w}"
        __%[1]s_is_route "$next" && key="$next"
    done

    words=""
    case "${key:-__root}" in`, fn))

	for _, prefix := range data.Prefixes() {
		entries := entriesAt(data, prefix)
		if len(entries) == 0 {
			continue
		}
		words := make([]string, len(entries))
		for i, e := range entries {
			words[i] = e.word
		}
		script.WriteString(fmt.Sprintf(`
        %s) words="%s" ;;`, caseKey(prefix), escapeBash(strings.Join(words, " "))))
	}

	script.WriteString(fmt.Sprintf(`
    esac

    COMPREPLY=( $(compgen -W "$words" -- "$cur") )
}

complete -F __%[1]s_completion %[2]s
`, fn, programName))

	return script.String()
}
