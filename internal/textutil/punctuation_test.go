package textutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestPadPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no marks", "the cat sat", "the cat sat"},
		{"sentence end", "the cat sat.", "the cat sat . "},
		{"comma", "red,green", "red , green"},
		{"already padded", "a , b", "a , b"},
		{"adjacent marks", "(hi).", " ( hi ) . "},
		{"question and exclamation", "why?!", "why ? ! "},
		{"colon semicolon", "a:b;c", "a : b ; c"},
		{"tabs count as padding", "a\t.\tb", "a\t.\tb"},
		{"non-ascii", "été,hiver", "été , hiver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadPunctuation(tt.in); got != tt.want {
				t.Errorf("PadPunctuation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPadPunctuationTokensMatchBlindReplacement(t *testing.T) {
	inputs := []string{"(hi).", "a..b", "Mr. Smith, (the elder); left!", "x?:y", ""}
	for _, in := range inputs {
		blind := in
		for _, mark := range punctuationMarks {
			blind = strings.ReplaceAll(blind, string(mark), " "+string(mark)+" ")
		}
		if got, want := Tokens(in), strings.Fields(blind); !reflect.DeepEqual(got, want) {
			t.Errorf("Tokens(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLineNFC(t *testing.T) {
	decomposed := "cafe\u0301."
	if got := NormalizeLine(decomposed, NormalizeOptions{NFC: true}); got != "caf\u00e9 . " {
		t.Errorf("NormalizeLine with NFC = %q", got)
	}
	if got := NormalizeLine(decomposed, NormalizeOptions{}); got != "cafe\u0301 . " {
		t.Errorf("NormalizeLine without NFC = %q", got)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Hello, world (again).")
	want := []string{"Hello", ",", "world", "(", "again", ")", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %q, want %q", got, want)
	}
}

func FuzzPadPunctuationIdempotent(f *testing.F) {
	for _, seed := range []string{"", "(hi).", "a , b", "..", "x\t;y", "«ça va?»"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := PadPunctuation(in)
		if twice := PadPunctuation(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	})
}
