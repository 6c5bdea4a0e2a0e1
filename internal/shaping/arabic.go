package shaping

import (
	"fmt"

	"github.com/go-text/typesetting/di"

	"github.com/jeffwilliams/sortbuf/internal/cache"
	"github.com/jeffwilliams/sortbuf/internal/glyphs"
)

// JoiningForm is the position of an Arabic letter within a joined word.
type JoiningForm int

const (
	Isolated JoiningForm = iota
	Initial
	Medial
	Final
)

func (f JoiningForm) Suffix() string {
	switch f {
	case Initial:
		return ".init"
	case Medial:
		return ".medi"
	case Final:
		return ".fina"
	}
	return ""
}

func (f JoiningForm) String() string {
	switch f {
	case Isolated:
		return "isol"
	case Initial:
		return "init"
	case Medial:
		return "medi"
	case Final:
		return "fina"
	}
	return fmt.Sprintf("JoiningForm(%d)", int(f))
}

const notdef = ".notdef"

func isArabicLetter(r rune) bool {
	return r >= 0x621 && r <= 0x64A
}

// nonLeftJoining are the letters that never join to the letter that follows them.
var nonLeftJoining = map[rune]bool{
	0x621: true, 0x622: true, 0x623: true, 0x624: true, 0x625: true,
	0x627: true, 0x629: true,
	0x62F: true, 0x630: true, 0x631: true, 0x632: true,
	0x648: true, 0x649: true,
}

func joinsToNext(r rune) bool {
	return isArabicLetter(r) && !nonLeftJoining[r]
}

// Form computes the joining form of runes[i].
func Form(runes []rune, i int) JoiningForm {
	joinsPrev := i > 0 && isArabicLetter(runes[i-1]) && joinsToNext(runes[i-1])
	joinsNext := i+1 < len(runes) && isArabicLetter(runes[i+1]) && joinsToNext(runes[i])

	switch {
	case joinsPrev && joinsNext:
		return Medial
	case joinsPrev:
		return Final
	case joinsNext:
		return Initial
	}
	return Isolated
}

var baseNames = map[rune]string{
	0x621: "hamza-ar",
	0x622: "alefMadda-ar",
	0x623: "alefHamzaabove-ar",
	0x624: "wawHamza-ar",
	0x625: "alefHamzabelow-ar",
	0x626: "yehHamza-ar",
	0x627: "alef-ar",
	0x628: "beh-ar",
	0x629: "tehMarbuta-ar",
	0x62A: "teh-ar",
	0x62B: "theh-ar",
	0x62C: "jeem-ar",
	0x62D: "hah-ar",
	0x62E: "khah-ar",
	0x62F: "dal-ar",
	0x630: "thal-ar",
	0x631: "reh-ar",
	0x632: "zain-ar",
	0x633: "seen-ar",
	0x634: "sheen-ar",
	0x635: "sad-ar",
	0x636: "dad-ar",
	0x637: "tah-ar",
	0x638: "zah-ar",
	0x639: "ain-ar",
	0x63A: "ghain-ar",
	0x641: "feh-ar",
	0x642: "qaf-ar",
	0x643: "kaf-ar",
	0x644: "lam-ar",
	0x645: "meem-ar",
	0x646: "noon-ar",
	0x647: "heh-ar",
	0x648: "waw-ar",
	0x649: "alefMaksura-ar",
	0x64A: "yeh-ar",
}

// BaseName is the name of the isolated form of r. Letters without a conventional
// name get their uniXXXX name.
func BaseName(r rune) string {
	if n, ok := baseNames[r]; ok {
		return n
	}
	return glyphs.UniName(r)
}

type formsKey struct {
	dir   di.Direction
	runes string
}

// Arabic picks contextual forms for Arabic letters by looking at their neighbours.
// Names come from the provider: the contextual form when the font has it, then the
// base form, then uniXXXX, then .notdef. With a nil provider the contextual form
// name is used as is.
type Arabic struct {
	provider glyphs.Provider
	// forms maps a run to the chosen name of each Arabic letter in it. Entries for
	// other characters are empty.
	forms cache.Cache[formsKey, []string]
}

func NewArabic(p glyphs.Provider) *Arabic {
	return &Arabic{
		provider: p,
		forms:    cache.New[formsKey, []string](256),
	}
}

// Reset forgets memoised results. Call it when the provider's glyph set changes.
func (a *Arabic) Reset() {
	a.forms.Clear()
}

func (a *Arabic) Shape(r Run) Output {
	if !hasArabic(r.Codepoints) {
		return unchanged(r)
	}

	names := a.namesFor(r)
	o := unchanged(r)
	for i, n := range names {
		if n == "" {
			continue
		}
		o.Names[i] = n
		if a.provider != nil && a.provider.GlyphExists(n) {
			o.Advances[i] = a.provider.AdvanceWidth(n)
		}
	}
	return o
}

func (a *Arabic) namesFor(r Run) []string {
	k := formsKey{dir: r.Direction, runes: string(r.Codepoints)}
	if e := a.forms.Get(k); e != nil {
		return e.Val
	}

	names := make([]string, r.Len())
	for i, c := range r.Codepoints {
		if !isArabicLetter(c) {
			continue
		}
		names[i] = a.pick(c, Form(r.Codepoints, i))
	}

	debug("Arabic: shaped %q as %v\n", k.runes, names)
	a.forms.Set(k, names)
	return names
}

func (a *Arabic) pick(c rune, f JoiningForm) string {
	base := BaseName(c)
	candidates := []string{base + f.Suffix(), base, glyphs.UniName(c)}
	if a.provider == nil {
		return candidates[0]
	}

	for _, n := range candidates {
		if a.provider.GlyphExists(n) {
			return n
		}
	}
	return notdef
}
