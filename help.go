package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgup/dispatch/parse"
	"github.com/pgup/dispatch/segment"
)

var helpTokens = []string{"--help", "help", "-h", "-?"}

func isHelpToken(token string) bool {
	for _, h := range helpTokens {
		if strings.EqualFold(token, h) {
			return true
		}
	}

	return false
}

// IsHelpRequest reports whether line asks for help: an empty line, a line
// starting with help, or a line holding --help, -h or -? as an option token.
// A quoted option token is never taken for a help token.
func IsHelpRequest(line string) bool {
	rewritten, _ := parse.Substitute(line)
	fields := strings.Fields(rewritten)
	if len(fields) == 0 {
		return true
	}
	if strings.EqualFold(fields[0], "help") || (len(fields) == 1 && isHelpToken(fields[0])) {
		return true
	}
	for _, f := range fields {
		if strings.HasPrefix(f, "-") && isHelpToken(f) {
			return true
		}
	}

	return false
}

func (r *Registry) showHelp(ctx context.Context, line string) Result {
	targets := r.helpTargets(line)
	if len(targets) == 0 {
		r.renderHelp(r.stdout)
		return Result{Outcome: HelpShown, ExitCode: ExitSuccess}
	}

	for i, c := range targets {
		if i > 0 {
			fmt.Fprintln(r.stdout)
		}
		r.renderCommandHelp(r.stdout, c)
	}

	return Result{Outcome: HelpShown, ExitCode: ExitSuccess, Candidates: commandIDs(targets)}
}

// helpTargets returns the commands whose leading routes match the non-help
// tokens of line. No tokens, or no match, asks for general help.
func (r *Registry) helpTargets(line string) []*Command {
	words, err := parse.Split(line)
	if err != nil {
		words = strings.Fields(line)
	}

	var tokens []string
	for _, t := range words {
		if isHelpToken(t) || strings.HasPrefix(t, "-") {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return nil
	}

	var out []*Command
	for _, c := range r.commands {
		if routesMatch(c.RoutePrefix(), tokens) {
			out = append(out, c)
		}
	}

	return out
}

// routesMatch reports whether tokens address the routes, allowing tokens to
// stop early or run past the last route into arguments.
func routesMatch(routes []*segment.Route, tokens []string) bool {
	if len(routes) == 0 {
		return false
	}
	for i, t := range tokens {
		if i >= len(routes) {
			return true
		}
		if !routes[i].Matches(t) {
			return false
		}
	}

	return true
}
