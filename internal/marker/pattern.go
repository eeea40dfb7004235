package marker

// Pattern builders over a marker Set.
//
// A canonical marker occurrence is the ordinal prefix 第, an optional run of
// whitespace, a numeral, optional whitespace again, then the marker rune.
// Numerals mix positional digits with the Chinese numeral characters used in
// ordinals, so both classes are accepted. A bare marker rune in prose does
// not form an occurrence.
//
// The hierarchy ordering check uses a deliberately looser shape (第, then
// anything, then the marker) because only the relative position of the first
// upper and first chapter occurrence matters there; tightening it would hide
// exactly the malformed titles the check exists to catch.

// OrdinalPrefix is the rune introducing every canonical marker occurrence.
const OrdinalPrefix = "第"

// NumeralClass is the regexp character class of accepted ordinal numerals.
const NumeralClass = `[\d〇零一二三四五六七八九十百千]`

// CanonicalChapterExpr returns the regexp source matching one canonical
// chapter-marker occurrence: 第 <ws?> <numeral+> <ws?> <chapter marker>.
func (s Set) CanonicalChapterExpr() string {
	return OrdinalPrefix + `\s*` + NumeralClass + `+\s*` + class(s.Chapter)
}

// CanonicalUpperExpr returns the regexp source matching one canonical
// upper-marker occurrence, capturing the marker rune.
func (s Set) CanonicalUpperExpr() string {
	return OrdinalPrefix + `\s*\S+?\s*(` + class(s.Upper) + `)`
}

// LooseUpperExpr returns the position-only upper occurrence pattern,
// capturing the marker rune.
func (s Set) LooseUpperExpr() string {
	return OrdinalPrefix + `.*?(` + class(s.Upper) + `)`
}

// LooseChapterExpr returns the position-only chapter occurrence pattern,
// capturing the marker rune.
func (s Set) LooseChapterExpr() string {
	return OrdinalPrefix + `.*?(` + class(s.Chapter) + `)`
}

// UpperPrefixExprs returns one strip pattern per upper marker, matching
// "第...<marker><whitespace>" so a leading volume prefix can be removed
// before narrative-pattern matching.
func (s Set) UpperPrefixExprs() []string {
	exprs := make([]string, 0, len(s.Upper))
	for _, r := range s.Upper {
		exprs = append(exprs, OrdinalPrefix+`.*?`+string(r)+`\s+`)
	}
	return exprs
}

// class builds a regexp character class from marker runes. Marker runes are
// CJK ideographs, never regexp metacharacters, so no escaping is needed.
func class(runes []rune) string {
	return "[" + string(runes) + "]"
}
