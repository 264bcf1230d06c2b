package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"simple sentence", "Hello world.", []string{"Hello", "world."}},
		{"abbreviation", "Dr. Smith arrived.", []string{"Dr.", "Smith", "arrived."}},
		{"question", "Really? Yes!", []string{"Really", "?", "Yes", "!"}},
		{"ellipsis", "Wait... what", []string{"Wait", "...", "what"}},
		{"spaced ellipsis", "Wait . . . what", []string{"Wait", ". . .", "what"}},
		{"dashes", "so--called", []string{"so", "--", "called"}},
		{"decimal", "costs $3.88 now.", []string{"costs", "$3.88", "now."}},
		{"internal apostrophe", "don't stop", []string{"don't", "stop"}},
		{"quoted", `He said "Hi."`, []string{"He", "said", `"`, "Hi.", `"`}},
		{"comma at word end", "red, green,blue", []string{"red", ",", "green,blue"}},
		{"parens", "(see above)", []string{"(", "see", "above", ")"}},
		{"initials", "J. K. Rowling", []string{"J.", "K.", "Rowling"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Tokens(tt.input))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokens_Kinds(t *testing.T) {
	toks := Tokens(`Mr. J. Smith paid 12. "Great..." he said!`)
	want := []Kind{
		KindPeriodFinal, // Mr.
		KindInitial,     // J.
		KindWord,        // Smith
		KindWord,        // paid
		KindNumber,      // 12.
		KindQuote,       // "
		KindWord,        // Great
		KindEllipsis,    // ...
		KindQuote,       // "
		KindWord,        // he
		KindWord,        // said
		KindPunct,       // !
	}
	require.Len(t, toks, len(want), "tokens: %v", texts(toks))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d %q", i, toks[i].Text)
	}
}

func TestTokens_Offsets(t *testing.T) {
	text := "Hello,  wörld.\nNew line here!"
	for _, tok := range Tokens(text) {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}
}

func TestTokens_LineAndParagraph(t *testing.T) {
	toks := Tokens("First line.\nSecond line.\n\nNew para.")
	require.Len(t, toks, 6)

	assert.True(t, toks[0].LineStart)
	assert.False(t, toks[0].ParaStart)
	assert.False(t, toks[1].LineStart)

	assert.True(t, toks[2].LineStart, "Second")
	assert.False(t, toks[2].ParaStart, "Second")

	assert.True(t, toks[4].LineStart, "New")
	assert.True(t, toks[4].ParaStart, "New")
}

func TestTokens_Types(t *testing.T) {
	toks := Tokens("The U.S. spent 3,000.50 dollars in 1999.")
	got := make([]string, len(toks))
	for i, tok := range toks {
		got[i] = tok.Type
	}
	assert.Equal(t, []string{"the", "u.s.", "spent", NumberType, "dollars", "in", NumberType}, got)
}

func TestScan_Deterministic(t *testing.T) {
	text := "One. Two? Three... four!"
	seq := Scan(text)

	var first, second []Token
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}
	assert.Equal(t, first, second)
}

func TestScan_EarlyStop(t *testing.T) {
	n := 0
	for range Scan("a b c d e f") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestToken_Derived(t *testing.T) {
	tok := Tokens("Etc.")[0]
	assert.True(t, tok.PeriodFinal())
	assert.Equal(t, "etc.", tok.Type)
	assert.Equal(t, "etc", tok.TypeNoPeriod())
	assert.Equal(t, "etc", tok.TypeNoSentPeriod(true))
	assert.Equal(t, "etc.", tok.TypeNoSentPeriod(false))
	assert.True(t, tok.FirstUpper())
	assert.False(t, tok.FirstLower())
	assert.False(t, tok.IsAlpha())
	assert.True(t, tok.IsNonPunct())

	num := Tokens("42")[0]
	assert.Equal(t, NumberType, num.Type)
	assert.True(t, num.IsNonPunct())
}

func TestIsInitialType(t *testing.T) {
	assert.True(t, IsInitialType("j."))
	assert.True(t, IsInitialType("j"))
	assert.False(t, IsInitialType("jr"))
	assert.False(t, IsInitialType("1"))
}
