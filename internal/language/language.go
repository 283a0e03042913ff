package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2/T
	alt3    string // ISO 639-2/B where it differs ("fre" vs "fra")
	display string
}

// Common stream languages resolve without touching the x/text tables.
var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
}

var byCode = func() map[string]*entry {
	index := make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		index[e.code2] = e
		index[e.code3] = e
		if e.alt3 != "" {
			index[e.alt3] = e
		}
	}
	return index
}()

var englishNames = display.English.Languages()

func clean(code string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(code, "\x00", "")))
}

// parse resolves codes the static table does not know, including BCP 47
// tags such as "pt-BR". Undetermined languages report false.
func parse(code string) (language.Tag, bool) {
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

// DisplayName returns the English name of a language code as found in stream
// tags ("eng", "en", "fre", "pt-BR"). Empty, undetermined ("und") and
// unparseable codes yield "".
func DisplayName(code string) string {
	code = clean(code)
	if code == "" {
		return ""
	}
	if e, ok := byCode[code]; ok {
		return e.display
	}
	tag, ok := parse(code)
	if !ok {
		return ""
	}
	return englishNames.Name(tag)
}

// ToISO2 converts a recognized language code to ISO 639-1. Returns "" when
// the language has no two-letter code or is not recognized.
func ToISO2(code string) string {
	code = clean(code)
	if e, ok := byCode[code]; ok {
		return e.code2
	}
	tag, ok := parse(code)
	if !ok {
		return ""
	}
	base, _ := tag.Base()
	if s := base.String(); len(s) == 2 {
		return s
	}
	return ""
}

// ToISO3 converts a recognized language code to ISO 639-2. Returns "und" for
// empty or unrecognized input.
func ToISO3(code string) string {
	code = clean(code)
	if e, ok := byCode[code]; ok {
		return e.code3
	}
	tag, ok := parse(code)
	if !ok {
		return "und"
	}
	base, _ := tag.Base()
	return base.ISO3()
}
