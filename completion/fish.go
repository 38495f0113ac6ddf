package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

func (g *FishGenerator) Generate(programName string, data Data) string {
	var script strings.Builder
	fn := functionName(programName)

	script.WriteString(fmt.Sprintf(`function __%[1]s_route
    set -l tokens (commandline -opc)
    set -e tokens[1]
    set -l key ""
    for w in $tokens
        string match -q -- '-*' $w; and continue
        set -l next $w
        test -n "$key"; and set next "$key"__"$w"`, fn))

	if keys := routeKeys(data); len(keys) > 0 {
		script.WriteString(fmt.Sprintf(`
        switch $next
            case %s
                set key $next
        end`, strings.Join(keys, " ")))
	}

	script.WriteString(fmt.Sprintf(`
    end
    test -z "$key"; and set key __root
    echo $key
end

complete -c %s -f
`, programName))

	for _, prefix := range data.Prefixes() {
		cond := fmt.Sprintf("test (__%s_route) = %s", fn, caseKey(prefix))
		for _, child := range data.Children(prefix) {
			line := fmt.Sprintf("complete -c %s -n '%s' -a '%s'", programName, cond, child)
			if c, ok := data.lookup(append(append([]string(nil), prefix...), child)); ok && c.Description != "" {
				line += fmt.Sprintf(" -d '%s'", escapeFish(c.Description))
			}
			script.WriteString(line + "\n")
		}

		c, ok := data.lookup(prefix)
		if !ok {
			continue
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n '%s'", programName, cond)
			if f.Long != "" {
				line += " -l " + f.Long
			}
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if f.Description != "" {
				line += fmt.Sprintf(" -d '%s'", escapeFish(f.Description))
			}
			if f.TakesValue {
				line += " -r -F"
			}
			script.WriteString(line + "\n")
		}
	}

	return script.String()
}
