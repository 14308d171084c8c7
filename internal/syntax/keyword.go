package syntax

// IsKeywordList reports whether l is non-empty and every element is a Pair.
func IsKeywordList(l List) bool {
	if len(l) == 0 {
		return false
	}
	for _, e := range l {
		if _, ok := e.(Pair); !ok {
			return false
		}
	}
	return true
}

// KeywordGet returns the value for the first occurrence of key.
func KeywordGet(l List, key Atom) (Term, bool) {
	for _, e := range l {
		if p, ok := e.(Pair); ok && p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// KeywordKeys returns the keys of a keyword list in order, skipping
// non-Pair elements.
func KeywordKeys(l List) []Atom {
	keys := make([]Atom, 0, len(l))
	for _, e := range l {
		if p, ok := e.(Pair); ok {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// TrailingKeywords splits args into the positional arguments and a trailing
// keyword list, the shape do-blocks arrive in. The second result is nil
// when the last argument is not a keyword list.
func TrailingKeywords(args []Term) ([]Term, List) {
	if len(args) == 0 {
		return args, nil
	}
	last, ok := args[len(args)-1].(List)
	if !ok || !IsKeywordList(last) {
		return args, nil
	}
	return args[:len(args)-1], last
}
