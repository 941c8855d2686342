package literal

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

var (
	runeNamesOnce sync.Once
	runesByName   map[string]rune
)

// lookupRuneName resolves the character name of a \N{...} escape, ignoring
// case. Names come from the Unicode Character Database; aliases and the
// algorithmic Hangul syllable names are not known.
func lookupRuneName(name string) (rune, bool) {
	name = strings.ToUpper(name)
	if hex, ok := strings.CutPrefix(name, "CJK UNIFIED IDEOGRAPH-"); ok {
		return cjkIdeograph(hex)
	}
	runeNamesOnce.Do(buildRuneNames)
	r, ok := runesByName[name]
	return r, ok
}

// cjkIdeograph handles the names of the unified ideographs, which the
// database lists as ranges rather than one name per character.
func cjkIdeograph(hex string) (rune, bool) {
	if len(hex) != 4 && len(hex) != 5 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	return r, strings.HasPrefix(runenames.Name(r), "<CJK Ideograph")
}

func buildRuneNames() {
	runesByName = make(map[string]rune, 1<<15)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		name := runenames.Name(r)
		if name == "" || name[0] == '<' {
			continue
		}
		if _, seen := runesByName[name]; !seen {
			runesByName[name] = r
		}
	}
}
