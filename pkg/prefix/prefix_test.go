package prefix

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \t", want: ""},
		{name: "lowercase", in: "abc", want: "abc"},
		{name: "mixed case", in: "DeF", want: "def"},
		{name: "trimmed", in: "  00Ab \n", want: "00ab"},
		{name: "exactly 20", in: strings.Repeat("aB", 10), want: strings.Repeat("ab", 10)},
		{name: "21 characters", in: strings.Repeat("0", 21), wantErr: ErrPrefixTooLong},
		{name: "long with 0x", in: "0x" + strings.Repeat("0", 41), wantErr: ErrPrefixTooLong},
		{name: "long and not hex", in: strings.Repeat("z", 30), wantErr: ErrPrefixTooLong},
		{name: "g", in: "g", wantErr: ErrPrefixNotHexEncoded},
		{name: "hey", in: "hey", wantErr: ErrPrefixNotHexEncoded},
		{name: "abcg", in: "abcg", wantErr: ErrPrefixNotHexEncoded},
		{name: "0x prefix", in: "0x123", wantErr: ErrPrefixNotHexEncoded},
		{name: "bracket", in: "Ab45[", wantErr: ErrPrefixNotHexEncoded},
		{name: "phrase with space", in: "lightning mcqueen", wantErr: ErrPrefixNotHexEncoded},
		{name: "inner space", in: "ab cd", wantErr: ErrPrefixNotHexEncoded},
		{name: "non ascii", in: "abé", wantErr: ErrPrefixNotHexEncoded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMatcherMatches(t *testing.T) {
	addr := common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")
	tests := []struct {
		prefix string
		want   bool
	}{
		{"", true},
		{"1", true},
		{"12", true},
		{"123", true},
		{"1234567890ABCDEF1234", true},
		{"2", false},
		{"13", false},
		{"1235", false},
		{"1234567890abcdef1235", false},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			m, err := NewMatcher(tt.prefix)
			require.NoError(t, err)
			require.Equal(t, tt.want, m.Matches(&addr))

			encoded := hex.EncodeToString(addr[:])
			require.Equal(t, strings.HasPrefix(encoded, strings.ToLower(tt.prefix)), m.Matches(&addr))
		})
	}
}

func TestNewMatcherRejectsInvalid(t *testing.T) {
	_, err := NewMatcher("0x12")
	require.ErrorIs(t, err, ErrPrefixNotHexEncoded)

	_, err = NewMatcher(strings.Repeat("f", MaxLength+1))
	require.ErrorIs(t, err, ErrPrefixTooLong)
}

func TestMatcherDifficulty(t *testing.T) {
	m, err := NewMatcher("")
	require.NoError(t, err)
	require.Equal(t, 1.0, m.Difficulty())

	m, err = NewMatcher("abc")
	require.NoError(t, err)
	require.Equal(t, 4096.0, m.Difficulty())
	require.Equal(t, "abc", m.Prefix())
}
