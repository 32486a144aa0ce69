package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGroup(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantKey GroupKey
		wantNil bool
	}{
		{name: "exact match", code: "EU", wantKey: GroupEU},
		{name: "lowercase match", code: "eu", wantKey: GroupEU},
		{name: "mixed case match", code: "LaTaM", wantKey: GroupSA},
		{name: "alias code", code: "USA", wantKey: GroupNA},
		{name: "surrounding whitespace", code: " jp ", wantKey: GroupAS},
		{name: "unknown code", code: "MOON", wantNil: true},
		{name: "empty code", code: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := ResolveGroup(tt.code)
			if tt.wantNil {
				assert.Nil(t, group)
				return
			}
			require.NotNil(t, group)
			assert.Equal(t, tt.wantKey, group.Key)
		})
	}
}

func TestResolveGroup_CaseInsensitive(t *testing.T) {
	// resolveGroup(c) must agree with resolveGroup(upper(c)) for every
	// configured code.
	for _, group := range Groups() {
		for _, code := range group.CoverageCodes {
			lower := ResolveGroup(strings.ToLower(code))
			upper := ResolveGroup(code)
			require.NotNil(t, lower, "code %s", code)
			require.NotNil(t, upper, "code %s", code)
			assert.Equal(t, upper.Key, lower.Key, "code %s", code)
		}
	}
}

func TestResolveGroup_DeclarationOrderTieBreak(t *testing.T) {
	// APAC is listed for both Asia and Oceania; Asia is declared first and
	// must win.
	group := ResolveGroup("APAC")
	require.NotNil(t, group)
	assert.Equal(t, GroupAS, group.Key)
}

func TestPrimaryContinent(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{name: "direct continent code", codes: []string{"EU"}, want: "EU"},
		{name: "alias code", codes: []string{"MEX"}, want: "NA"},
		{name: "first match wins", codes: []string{"SA", "EU"}, want: "EU"},
		{name: "no match falls back to global", codes: []string{"XX", "YY"}, want: ContinentGlobal},
		{name: "empty input", codes: nil, want: ContinentGlobal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryContinent(tt.codes))
		})
	}
}

func TestCodesIntersect(t *testing.T) {
	assert.True(t, CodesIntersect([]string{"na"}, []string{"NA", "US"}))
	assert.True(t, CodesIntersect([]string{"EU", "NA"}, []string{"na"}))
	assert.False(t, CodesIntersect([]string{"EU"}, []string{"NA"}))
	assert.False(t, CodesIntersect(nil, []string{"NA"}))
}
