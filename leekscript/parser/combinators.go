package parser

// On failure every parse function returns the cursor it was given, so callers
// backtrack by simply discarding the result.

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return s != ""
}

// literal matches s exactly.
func literal(c Cursor, s string) (Cursor, error) {
	if d, ok := c.consume(s); ok {
		return d, nil
	}
	return c, c.fail(quote(s))
}

// keyword matches word only when no identifier character follows it.
func keyword(c Cursor, word string) (Cursor, error) {
	if atKeyword(c, word) {
		return c.Advance(len(word)), nil
	}
	return c, c.fail(quote(word))
}

func atKeyword(c Cursor, word string) bool {
	return c.hasPrefix(word) && !isWordChar(c.peekN(len(word)))
}

// token matches a word with keyword boundaries and anything else literally.
func token(c Cursor, s string) (Cursor, error) {
	if isWord(s) {
		return keyword(c, s)
	}
	return literal(c, s)
}

func quote(s string) string {
	return "'" + s + "'"
}

// punct returns a parser for the first of words that matches.
func punct(words ...string) func(Cursor) (Cursor, Punct, error) {
	return func(c Cursor) (Cursor, Punct, error) {
		var failure error
		for _, w := range words {
			d, err := token(c, w)
			if err == nil {
				return d, Punct(w), nil
			}
			failure = furthest(failure, err)
		}
		return c, "", failure
	}
}

// alt tries each parser in order and returns the first success. When all
// fail, the failure that reached furthest is returned.
func alt[T any](c Cursor, parsers ...func(Cursor) (Cursor, T, error)) (Cursor, T, error) {
	var zero T
	var failure error
	for _, p := range parsers {
		d, v, err := p(c)
		if err == nil {
			return d, v, nil
		}
		if fatal(err) {
			return c, zero, err
		}
		failure = furthest(failure, err)
	}
	return c, zero, failure
}

// sepBy1 parses one or more p separated by the literal sep. A trailing
// separator is left unconsumed.
func sepBy1[T any](c Cursor, sep string, p func(Cursor) (Cursor, T, error)) (Cursor, []T, error) {
	c, first, err := p(c)
	if err != nil {
		return c, nil, err
	}
	return sepAfter(c, []T{first}, sep, p)
}

// sepAfter continues a separated list whose leading items were already
// parsed.
func sepAfter[T any](c Cursor, items []T, sep string, p func(Cursor) (Cursor, T, error)) (Cursor, []T, error) {
	for {
		d, ok := c.consume(sep)
		if !ok {
			return c, items, nil
		}
		d, item, err := p(d)
		if err != nil {
			if fatal(err) {
				return c, nil, err
			}
			return c, items, nil
		}
		items = append(items, item)
		c = d
	}
}

// many parses p until it fails or stops consuming input.
func many[T any](c Cursor, p func(Cursor) (Cursor, T, error)) (Cursor, []T, error) {
	var items []T
	for {
		d, item, err := p(c)
		if err != nil {
			if fatal(err) {
				return c, nil, err
			}
			return c, items, nil
		}
		if d.offset == c.offset {
			return c, items, nil
		}
		items = append(items, item)
		c = d
	}
}

// optional parses a wrapped p, returning nil when it does not match.
func optional[T Renderer](c Cursor, p func(Cursor) (Cursor, T, error)) (Cursor, *Node[T], error) {
	d, n, err := wrap(c, p)
	if err != nil {
		if fatal(err) {
			return c, nil, err
		}
		return c, nil, nil
	}
	return d, &n, nil
}

// peek reports whether a wrapped p would match at c without consuming it.
func peek[T Renderer](c Cursor, p func(Cursor) (Cursor, T, error)) bool {
	_, _, err := wrap(c, p)
	return err == nil
}
