package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Encoding is the only corpus encoding the toolkit reads and writes.
const Encoding = "utf8"

// Separators used in serialized analysis results.
const (
	// SepSig separates affixes in a signature, e.g. NULL/s/ed/ing.
	SepSig = "/"
	// SepSigTransform separates a signature from an affix, e.g. NULL/s/ed/ing.ed.
	SepSigTransform = "."
	// SepNgram separates words in an n-gram: "the\tunited\tstates".
	SepNgram = "\t"
	// Null is the empty affix.
	Null = "NULL"
)

// Direction says on which side of the stem a language attaches affixes.
type Direction int

const (
	Suffixing Direction = iota
	Prefixing
)

func (d Direction) String() string {
	if d == Prefixing {
		return "prefixing"
	}
	return "suffixing"
}

// corpusLanguage is a language the analysis stages have settings for.
type corpusLanguage struct {
	name      string
	code2     string // ISO 639-1
	code3     string // ISO 639-2/T
	alt3      string // ISO 639-2/B when it differs
	direction Direction
}

var corpusLanguages = []corpusLanguage{
	{"english", "en", "eng", "", Suffixing},
	{"french", "fr", "fra", "fre", Suffixing},
	{"hungarian", "hu", "hun", "", Suffixing},
	{"turkish", "tr", "tur", "", Suffixing},
	{"russian", "ru", "rus", "", Suffixing},
	{"german", "de", "deu", "ger", Suffixing},
	{"spanish", "es", "spa", "", Suffixing},
	{"swahili", "sw", "swa", "", Prefixing},
	{"test", "", "", "", Suffixing},
}

var (
	languagesByName map[string]*corpusLanguage
	languagesByCode map[string]*corpusLanguage
)

func init() {
	languagesByName = make(map[string]*corpusLanguage, len(corpusLanguages))
	languagesByCode = make(map[string]*corpusLanguage, len(corpusLanguages)*3)
	for i := range corpusLanguages {
		l := &corpusLanguages[i]
		languagesByName[l.name] = l
		for _, code := range []string{l.code2, l.code3, l.alt3} {
			if code != "" {
				languagesByCode[code] = l
			}
		}
	}
}

// FoldLanguage returns the canonical lower-case form of a language name.
func FoldLanguage(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

func lookupLanguage(folded string) *corpusLanguage {
	if folded == "" {
		return nil
	}
	if l, ok := languagesByName[folded]; ok {
		return l
	}
	if l, ok := languagesByCode[folded]; ok {
		return l
	}
	tag, err := language.Parse(folded)
	if err != nil {
		return nil
	}
	base, _ := tag.Base()
	if l, ok := languagesByCode[base.String()]; ok {
		return l
	}
	if l, ok := languagesByCode[base.ISO3()]; ok {
		return l
	}
	return nil
}

// CanonicalLanguage returns the corpus language name for a name, an ISO 639
// code or a BCP 47 tag, so "en", "eng" and "en-GB" all become "english".
// Input that names no known language is returned folded.
func CanonicalLanguage(value string) string {
	folded := FoldLanguage(value)
	if l := lookupLanguage(folded); l != nil {
		return l.name
	}
	return folded
}

// Affixation reports the affix direction of a language. Languages the toolkit
// does not know are reported as suffixing with ok set to false.
func Affixation(name string) (dir Direction, ok bool) {
	if l := lookupLanguage(FoldLanguage(name)); l != nil {
		return l.direction, true
	}
	return Suffixing, false
}
