package completion

import (
	"strings"
)

func escapeBash(desc string) string {
	desc = strings.ReplaceAll(desc, `"`, `\"`)
	desc = strings.ReplaceAll(desc, `'`, `\'`)
	desc = strings.ReplaceAll(desc, `$`, `\$`)
	return desc
}

func escapeFish(desc string) string {
	return strings.ReplaceAll(desc, "'", "\\'")
}

func escapePowerShell(desc string) string {
	return strings.ReplaceAll(desc, "'", "''")
}

func escapeZsh(s string) string {
	return strings.ReplaceAll(s, "'", "'\\''")
}

// caseKey is the value a shell case statement matches for a route prefix.
func caseKey(prefix []string) string {
	if len(prefix) == 0 {
		return "__root"
	}

	return strings.Join(prefix, "__")
}

type entry struct {
	word        string
	description string
	flag        bool
}

// entriesAt lists the route words that may follow prefix, then the flags of
// the command declared at exactly prefix.
func entriesAt(data Data, prefix []string) []entry {
	var entries []entry
	for _, child := range data.Children(prefix) {
		var desc string
		if c, ok := data.lookup(append(append([]string(nil), prefix...), child)); ok {
			desc = c.Description
		}
		entries = append(entries, entry{word: child, description: desc})
	}

	if c, ok := data.lookup(prefix); ok {
		for _, f := range c.Flags {
			for _, name := range f.Names() {
				entries = append(entries, entry{word: name, description: f.Description, flag: true})
			}
		}
	}

	return entries
}

// routeKeys returns the case keys of every non-root route prefix.
func routeKeys(data Data) []string {
	var keys []string
	for _, p := range data.Prefixes() {
		if len(p) > 0 {
			keys = append(keys, caseKey(p))
		}
	}

	return keys
}

// valueFlags returns the dashed markers of every flag expecting a value.
func valueFlags(data Data) []string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range data.Commands {
		for _, f := range c.Flags {
			if !f.TakesValue {
				continue
			}
			for _, name := range f.Names() {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}

	return names
}

// functionName turns a program name into a shell function identifier.
func functionName(programName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, programName)
}
