package segment

import (
	"errors"
	"testing"

	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/pattern"
	"github.com/pgup/dispatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    AliasSet
		wantErr error
	}{
		{name: "single", spec: "deploy", want: AliasSet{"deploy"}},
		{name: "whitespace ignored", spec: " dep | deploy ", want: AliasSet{"deploy", "dep"}},
		{name: "ordered by length then lexically", spec: "b|aa|a|ab", want: AliasSet{"aa", "ab", "a", "b"}},
		{name: "dash and underscore", spec: "db-migrate|db_migrate", want: AliasSet{"db-migrate", "db_migrate"}},
		{name: "empty", spec: "  ", wantErr: errs.ErrInvalidRouteSpec},
		{name: "empty alternative", spec: "a||b", wantErr: errs.ErrInvalidRouteSpec},
		{name: "leading dash", spec: "-deploy", wantErr: errs.ErrInvalidRouteSpec},
		{name: "regex metacharacters", spec: "de.*", wantErr: errs.ErrInvalidRouteSpec},
		{name: "case-fold duplicate", spec: "Deploy|deploy", wantErr: errs.ErrDuplicateAlias},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRoute(tt.spec)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Aliases())
			assert.Equal(t, tt.want[0], r.Name())
			assert.Equal(t, KindRoute, r.Kind())
		})
	}
}

func TestRouteOrderingIsDeterministic(t *testing.T) {
	a, err := NewRoute("mig|migrate|m")
	require.NoError(t, err)
	b, err := NewRoute("m|migrate|mig")
	require.NoError(t, err)

	assert.Equal(t, a.Pattern(), b.Pattern())
	assert.Equal(t, `(?:migrate|mig|m)(?=\s|$)`, a.Pattern())
}

func TestRoutePatternMatchesWholeToken(t *testing.T) {
	r, err := NewRoute("deploy|dep")
	require.NoError(t, err)

	re, err := pattern.Compile(`^`+r.Pattern(), 0)
	require.NoError(t, err)

	for input, want := range map[string]bool{
		"deploy":      true,
		"DEP x":       true,
		"deployment":  false,
		"dep-loy":     false,
		"deploy.json": false,
	} {
		ok, err := re.MatchString(input)
		require.NoError(t, err)
		assert.Equal(t, want, ok, input)
	}
}

func TestAliasSet(t *testing.T) {
	a := AliasSet{"deploy", "dep"}

	assert.True(t, a.Contains("DEPLOY"))
	assert.False(t, a.Contains("de"))
	assert.True(t, a.Equal(AliasSet{"Dep", "Deploy"}))
	assert.False(t, a.Equal(AliasSet{"deploy"}))

	overlap, ok := a.Overlap(AliasSet{"x", "DEP"})
	assert.True(t, ok)
	assert.Equal(t, "dep", overlap)

	assert.Equal(t, AliasSet{"deploy", "dep", "x"}, Merge(a, AliasSet{"x", "Dep"}))
	assert.Equal(t, "deploy|dep", a.String())
}

func TestNewArgument(t *testing.T) {
	a, err := NewArgument("projectFile", "project file", 1, false)
	require.NoError(t, err)
	assert.Equal(t, KindArgument, a.Kind())
	assert.Equal(t, 1, a.Position())

	_, err = NewArgument("1abc", "", 0, false)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgumentName))
	_, err = NewArgument("a b", "", 0, false)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgumentName))
}

func TestArgumentPatternExcludesSiblingsAndOptions(t *testing.T) {
	a, err := NewArgument("name", "", 1, false)
	require.NoError(t, err)

	re, err := pattern.Compile(`^x\s+`+a.Pattern("a1", AliasSet{"list", "ls"})+`$`, 0)
	require.NoError(t, err)

	tests := map[string]string{
		"x pgup.json": "pgup.json",
		"x listing":   "listing",
		"x list":      "",
		"x LS":        "",
		"x --host":    "",
	}
	for input, want := range tests {
		m, err := re.FindStringMatch(input)
		require.NoError(t, err)
		if want == "" {
			assert.Nil(t, m, input)
			continue
		}
		require.NotNil(t, m, input)
		assert.Equal(t, want, m.GroupByName("a1").String())
	}
}

func TestNewOption(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantAliases AliasSet
		wantMarkers []string
		wantErr     error
	}{
		{name: "long and short", spec: "host|H", wantAliases: AliasSet{"host", "H"}, wantMarkers: []string{"--host", "-H"}},
		{name: "explicit dashes", spec: "--connection-string | -c", wantAliases: AliasSet{"connection-string", "c"}, wantMarkers: []string{"--connection-string", "-c"}},
		{name: "single dash long", spec: "-host", wantAliases: AliasSet{"host"}, wantMarkers: []string{"-host"}},
		{name: "reserved help", spec: "help", wantErr: errs.ErrReservedAlias},
		{name: "reserved h", spec: "verbose|h", wantErr: errs.ErrReservedAlias},
		{name: "reserved question mark", spec: "-?", wantErr: errs.ErrReservedAlias},
		{name: "duplicate", spec: "host|--HOST", wantErr: errs.ErrDuplicateAlias},
		{name: "too many dashes", spec: "---host", wantErr: errs.ErrInvalidOptionSpec},
		{name: "empty", spec: "", wantErr: errs.ErrInvalidOptionSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOption(tt.spec, OptionConfig{})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, errors.Is(err, errs.ErrInvalidOptionSpec), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAliases, o.Aliases())
			assert.Equal(t, tt.wantMarkers, o.Markers())
		})
	}
}

func optionRegexp(t *testing.T, o *Option) func(string) map[string][]string {
	t.Helper()
	re, err := pattern.Compile(`^cmd(?:\s+`+o.Pattern(0)+`)*$`, 0)
	require.NoError(t, err)

	return func(line string) map[string][]string {
		m, err := re.FindStringMatch(line)
		require.NoError(t, err)
		if m == nil {
			return nil
		}
		out := map[string][]string{}
		for _, name := range []string{PresenceGroup(0), ValueGroup(0), KeyGroup(0)} {
			g := m.GroupByName(name)
			if g == nil {
				continue
			}
			for _, c := range g.Captures {
				out[name] = append(out[name], c.String())
			}
		}
		return out
	}
}

func TestOptionPatternScalar(t *testing.T) {
	o, err := NewOption("host|s", OptionConfig{Cardinality: types.Scalar})
	require.NoError(t, err)
	match := optionRegexp(t, o)

	got := match("cmd --host localhost")
	require.NotNil(t, got)
	assert.Equal(t, []string{"localhost"}, mapValues(got["v0"]))

	got = match("cmd -s=db.local")
	require.NotNil(t, got)
	assert.Equal(t, []string{"db.local"}, mapValues(got["v0"]))

	got = match("cmd --HOST")
	require.NotNil(t, got)
	assert.Equal(t, []string{""}, mapValues(got["v0"]))

	assert.Nil(t, match("cmd --hostname x"))
}

func TestOptionPatternCollectionAccumulates(t *testing.T) {
	o, err := NewOption("tag", OptionConfig{Cardinality: types.Collection})
	require.NoError(t, err)
	match := optionRegexp(t, o)

	got := match("cmd --tag a --tag=b --tag c")
	require.NotNil(t, got)
	assert.Equal(t, []string{"a", "b", "c"}, mapValues(got["v0"]))
	assert.Len(t, got["o0"], 3)
}

func TestOptionPatternFlag(t *testing.T) {
	o, err := NewOption("verbose|v", OptionConfig{Cardinality: types.Flag})
	require.NoError(t, err)
	match := optionRegexp(t, o)

	got := match("cmd -v")
	require.NotNil(t, got)
	assert.Len(t, got["o0"], 1)
	assert.Equal(t, []string{""}, mapValues(got["v0"]))

	got = match("cmd --verbose=false -v")
	require.NotNil(t, got)
	assert.Equal(t, []string{"false", ""}, mapValues(got["v0"]))

	assert.Nil(t, match("cmd --verbose yes"))
}

func TestOptionPatternMap(t *testing.T) {
	o, err := NewOption("parameter|p", OptionConfig{Cardinality: types.Map})
	require.NoError(t, err)
	match := optionRegexp(t, o)

	got := match("cmd --parameter[dbName] pgup -p.schema=public")
	require.NotNil(t, got)
	keys := make([]string, 0, len(got["k0"]))
	for _, k := range got["k0"] {
		keys = append(keys, Key(k))
	}
	assert.Equal(t, []string{"dbName", "schema"}, keys)
	assert.Equal(t, []string{"pgup", "public"}, mapValues(got["v0"]))

	assert.Nil(t, match("cmd --parameter x"))
}

func TestRequirePattern(t *testing.T) {
	o, err := NewOption("host", OptionConfig{Required: true})
	require.NoError(t, err)

	re, err := pattern.Compile(`^`+o.RequirePattern(), 0)
	require.NoError(t, err)

	for input, want := range map[string]bool{
		"deploy --host x":   true,
		"--host=x deploy":   true,
		"deploy --hostname": false,
		"deploy x--host":    false,
		"deploy":            false,
	} {
		ok, err := re.MatchString(input)
		require.NoError(t, err)
		assert.Equal(t, want, ok, input)
	}
}

func TestValueAndKey(t *testing.T) {
	assert.Equal(t, "x", Value("=x"))
	assert.Equal(t, "=x", Value("==x"))
	assert.Equal(t, "x", Value("  x"))
	assert.Equal(t, "", Value(""))
	assert.Equal(t, "db", Key(".db"))
	assert.Equal(t, "db.name", Key("[db.name]"))
}

func mapValues(captures []string) []string {
	out := make([]string, len(captures))
	for i, c := range captures {
		out[i] = Value(c)
	}
	return out
}
