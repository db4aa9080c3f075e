package parser

// parseMember parses a primary followed by any number of accessors.
func parseMember(c Cursor) (Cursor, Expr, error) {
	c, target, err := parsePrimary(c)
	if err != nil {
		return c, nil, err
	}
	c, chain, err := many(c, wrappedAccessor)
	if err != nil {
		return c, nil, err
	}
	if len(chain) == 0 {
		return c, target, nil
	}
	return c, &MemberExpr{Target: target, Chain: chain}, nil
}

func wrappedAccessor(c Cursor) (Cursor, Node[Accessor], error) {
	return wrap(c, parseAccessor)
}

func parseAccessor(c Cursor) (Cursor, Accessor, error) {
	switch c.peek() {
	case '.':
		d, name, err := wrap(c.Advance(1), parseMemberName)
		if err != nil {
			return c, nil, err
		}
		return d, &DotAccess{Name: name}, nil
	case '[':
		d, index, err := wrap(c.Advance(1), parseExpression)
		if err != nil {
			return c, nil, err
		}
		d, err = literal(d, "]")
		if err != nil {
			return c, nil, err
		}
		return d, &IndexAccess{Index: index}, nil
	case '(':
		d, call := c.Advance(1), &CallAccess{}
		d, args, err := sepBy1(d, ",", wrappedExpression)
		switch {
		case fatal(err):
			return c, nil, err
		case err == nil:
			call.Args = args
		default:
			d, call.Blank, _ = wrap(d, parseEmpty)
		}
		d, err = literal(d, ")")
		if err != nil {
			return c, nil, err
		}
		return d, call, nil
	case '!':
		// `!=` is a comparison, not an assertion followed by `=`.
		if c.peekN(1) != '=' {
			return c.Advance(1), &NotNullAccess{}, nil
		}
	}
	return c, nil, c.fail("'.'", "'['", "'('", "'!'")
}

func wrappedExpression(c Cursor) (Cursor, Node[Expr], error) {
	return wrap(c, parseExpression)
}

func parsePrimary(c Cursor) (Cursor, Expr, error) {
	return alt(c,
		parseParen,
		parseBracket,
		parseObject,
		parseSet,
		parseName,
		parseLiteralExpr,
	)
}

func parseLiteralExpr(c Cursor) (Cursor, Expr, error) {
	d, lit, err := parseLiteral(c)
	if err != nil {
		return c, nil, err
	}
	return d, lit, nil
}

func parseName(c Cursor) (Cursor, Expr, error) {
	d, name, err := wrap(c, parseMemberName)
	if err != nil {
		return c, nil, err
	}
	return d, &NameExpr{Name: name}, nil
}

func parseParenExpr(c Cursor) (Cursor, *ParenExpr, error) {
	d, err := literal(c, "(")
	if err != nil {
		return c, nil, err
	}
	d, inner, err := wrap(d, parseExpression)
	if err != nil {
		return c, nil, err
	}
	d, err = literal(d, ")")
	if err != nil {
		return c, nil, err
	}
	return d, &ParenExpr{Inner: inner}, nil
}

func parseParen(c Cursor) (Cursor, Expr, error) {
	d, p, err := parseParenExpr(c)
	if err != nil {
		return c, nil, err
	}
	return d, p, nil
}

// collection parses open items (',' items)* ','? close, or open blank close.
// It returns the items, the trailing comma and the blank node.
func collection[T any](c Cursor, opening, closing string, item func(Cursor) (Cursor, T, error)) (Cursor, []T, *Node[Punct], Node[Empty], error) {
	var blank Node[Empty]
	d, err := literal(c, opening)
	if err != nil {
		return c, nil, nil, blank, err
	}
	d, items, err := sepBy1(d, ",", item)
	if fatal(err) {
		return c, nil, nil, blank, err
	}
	var trailing *Node[Punct]
	if err == nil {
		d, trailing, err = optional(d, punct(","))
	} else {
		d, blank, err = wrap(d, parseEmpty)
	}
	if err != nil {
		return c, nil, nil, blank, err
	}
	d, err = literal(d, closing)
	if err != nil {
		return c, nil, nil, blank, err
	}
	return d, items, trailing, blank, nil
}

func parseSet(c Cursor) (Cursor, Expr, error) {
	d, items, trailing, blank, err := collection(c, "<", ">", wrappedExpression)
	if err != nil {
		return c, nil, err
	}
	return d, &SetLiteral{Elements: items, TrailingComma: trailing, Blank: blank}, nil
}

func parseEntry(c Cursor) (Cursor, Entry, error) {
	d, key, err := wrap(c, parseExpression)
	if err != nil {
		return c, Entry{}, err
	}
	d, err = literal(d, ":")
	if err != nil {
		return c, Entry{}, err
	}
	d, value, err := wrap(d, parseExpression)
	if err != nil {
		return c, Entry{}, err
	}
	return d, Entry{Key: key, Value: value}, nil
}

func parseObject(c Cursor) (Cursor, Expr, error) {
	d, entries, trailing, blank, err := collection(c, "{", "}", parseEntry)
	if err != nil {
		return c, nil, err
	}
	return d, &ObjectLiteral{Entries: entries, TrailingComma: trailing, Blank: blank}, nil
}

// parseBracket parses an array [a, b] or a map [k: v]. Both open with '['
// and an expression, so the first element is parsed once and the token after
// it decides which literal follows. Empty forms are [] and [:].
func parseBracket(c Cursor) (Cursor, Expr, error) {
	d, err := literal(c, "[")
	if err != nil {
		return c, nil, err
	}
	e, first, err := wrappedExpression(d)
	if fatal(err) {
		return c, nil, err
	}
	if err != nil {
		return parseEmptyBracket(c, d, err)
	}
	if e, ok := e.consume(":"); ok {
		return parseMapAfter(c, e, first)
	}
	d, x, err := parseArrayAfter(c, e, first)
	if err != nil && !fatal(err) {
		_, colon := literal(e, ":")
		return c, nil, furthest(err, colon)
	}
	return d, x, err
}

func parseEmptyBracket(start, d Cursor, failure error) (Cursor, Expr, error) {
	e, blank, _ := wrap(d, parseEmpty)
	e, err := literal(e, "]")
	if err == nil {
		return e, &ArrayLiteral{Blank: blank}, nil
	}
	failure = furthest(failure, err)
	e, colon, err := wrap(d, punct(":"))
	if err != nil {
		return start, nil, furthest(failure, err)
	}
	if e, err = literal(e, "]"); err != nil {
		return start, nil, furthest(failure, err)
	}
	return e, &MapLiteral{EmptyColon: colon}, nil
}

func parseArrayAfter(start, d Cursor, first Node[Expr]) (Cursor, Expr, error) {
	d, items, err := sepAfter(d, []Node[Expr]{first}, ",", wrappedExpression)
	if err != nil {
		return start, nil, err
	}
	a := &ArrayLiteral{Elements: items}
	if d, a.TrailingComma, err = optional(d, punct(",")); err != nil {
		return start, nil, err
	}
	if d, err = literal(d, "]"); err != nil {
		return start, nil, err
	}
	return d, a, nil
}

// parseMapAfter continues a map after its first key and colon.
func parseMapAfter(start, d Cursor, key Node[Expr]) (Cursor, Expr, error) {
	d, value, err := wrap(d, parseExpression)
	if err != nil {
		return start, nil, err
	}
	entries := []Entry{{Key: key, Value: value}}
	if d, entries, err = sepAfter(d, entries, ",", parseEntry); err != nil {
		return start, nil, err
	}
	m := &MapLiteral{Entries: entries}
	if d, m.TrailingComma, err = optional(d, punct(",")); err != nil {
		return start, nil, err
	}
	if d, err = literal(d, "]"); err != nil {
		return start, nil, err
	}
	return d, m, nil
}
