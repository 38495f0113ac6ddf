package completion

import (
	"fmt"
	"strings"
)

type PowerShellGenerator struct{}

func (g *PowerShellGenerator) Generate(programName string, data Data) string {
	var script strings.Builder

	keys := routeKeys(data)
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}

	script.WriteString(fmt.Sprintf(`Register-ArgumentCompleter -Native -CommandName '%s' -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $routes = @(%s)
    $key = ''
    foreach ($element in $commandAst.CommandElements | Select-Object -Skip 1) {
        if ($element.Extent.EndOffset -ge $cursorPosition) { break }
        $w = $element.ToString()
        if ($w.StartsWith('-')) { continue }
        $next = if ($key) { "${key}__$w" } else { $w }
        if ($routes -contains $next) { $key = $next }
    }
    if (-not $key) { $key = '__root' }

    $candidates = switch ($key) {`, escapePowerShell(programName), strings.Join(quoted, ", ")))

	for _, prefix := range data.Prefixes() {
		entries := entriesAt(data, prefix)
		if len(entries) == 0 {
			continue
		}
		script.WriteString(fmt.Sprintf(`
        '%s' {`, caseKey(prefix)))
		for _, e := range entries {
			kind := "ParameterValue"
			if e.flag {
				kind = "ParameterName"
			}
			tip := e.description
			if tip == "" {
				tip = e.word
			}
			script.WriteString(fmt.Sprintf(`
            [pscustomobject]@{ Text = '%s'; Tip = '%s'; Kind = '%s' }`,
				escapePowerShell(e.word), escapePowerShell(tip), kind))
		}
		script.WriteString(`
        }`)
	}

	script.WriteString(`
    }

    $candidates | Where-Object { $_.Text -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Text, $_.Text, $_.Kind, $_.Tip)
    }
}
`)

	return script.String()
}
