package jsparse

// StringLiterals returns every single/double/backtick-quoted string
// literal found in already comment-stripped source, used by the asset
// usage solver to index every bare string a file could reference an
// asset by.
func StringLiterals(source string) []string {
	matches := stringLiteralRe.FindAllStringSubmatch(source, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if lit, ok := FirstStringGroup(m); ok {
			out = append(out, lit)
		}
	}
	return out
}

// ImportMetaGlobLiterals returns the glob pattern argument of every
// import.meta.glob(...) call found in already comment-stripped source.
func ImportMetaGlobLiterals(source string) []string {
	matches := importMetaGlobRe.FindAllStringSubmatch(source, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if lit, ok := FirstStringGroup(m); ok {
			out = append(out, lit)
		}
	}
	return out
}

// IdentifierTokens returns the set of identifier-shaped tokens in raw
// (not comment-stripped) source text, used for conservative
// export-usage suppression rather than precise scope analysis.
func IdentifierTokens(source string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range identTokenRe.FindAllString(source, -1) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
