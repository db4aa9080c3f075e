package parser

type exprParser = func(Cursor) (Cursor, Expr, error)

type operatorParser = func(Cursor) (Cursor, Operator, error)

// operators returns a parser for the first of ops that matches. Word
// operators need a keyword boundary, so "order" never starts with "or".
func operators(ops ...string) operatorParser {
	return func(c Cursor) (Cursor, Operator, error) {
		var failure error
		for _, op := range ops {
			d, err := token(c, op)
			if err == nil {
				return d, Operator(op), nil
			}
			failure = furthest(failure, err)
		}
		return c, "", failure
	}
}

var (
	assignOps = operators("=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", ">>>=", "&=", "^=", "|=")
	orOps     = operators("or", "||")
	xorOps    = operators("xor")
	andOps    = operators("and", "&&")
	relOps    = operators("<=", ">=", "<", ">", "==", "!=")
	instOps   = operators("instanceof")
	shiftOps  = operators("<<", ">>>", ">>")
	bitOrOps  = operators("|")
	bitXorOps = operators("^")
	bitAndOps = operators("&")
	addOps    = operators("+", "-")
	mulOps    = operators("*", "/", "%")
	updateOps = operators("++", "--")
	unaryOps  = operators("!", "not", "+", "-", "~", "typeof", "new")
	asOp      = operators("as")
)

// The ladder refers back to parseExpression through parentheses, so the
// levels are assigned in init rather than in their declarations.
var (
	parseLogicalOr      exprParser
	parseLogicalXor     exprParser
	parseLogicalAnd     exprParser
	parseRelational     exprParser
	parseInstanceOf     exprParser
	parseShift          exprParser
	parseBitwiseOr      exprParser
	parseBitwiseXor     exprParser
	parseBitwiseAnd     exprParser
	parseAdditive       exprParser
	parseMultiplicative exprParser
	parsePrefixUpdate   exprParser
	parsePostfixUpdate  exprParser
	parseUnary          exprParser
	parseAssignChain    exprParser
)

func init() {
	parseUnary = prefix(LevelUnary, unaryOps, parseMember)
	parsePostfixUpdate = postfix(updateOps, parseUnary)
	parsePrefixUpdate = prefix(LevelPrefixUpdate, updateOps, parsePostfixUpdate)
	parseMultiplicative = binary(LevelMultiplicative, mulOps, parseCast)
	parseAdditive = binary(LevelAdditive, addOps, parseMultiplicative)
	parseBitwiseAnd = binary(LevelBitwiseAnd, bitAndOps, parseAdditive)
	parseBitwiseXor = binary(LevelBitwiseXor, bitXorOps, parseBitwiseAnd)
	parseBitwiseOr = binary(LevelBitwiseOr, bitOrOps, parseBitwiseXor)
	parseShift = binary(LevelShift, shiftOps, parseBitwiseOr)
	parseInstanceOf = binary(LevelInstanceOf, instOps, parseShift)
	parseRelational = binary(LevelRelational, relOps, parseInstanceOf)
	parseLogicalAnd = binary(LevelLogicalAnd, andOps, parseRelational)
	parseLogicalXor = binary(LevelLogicalXor, xorOps, parseLogicalAnd)
	parseLogicalOr = binary(LevelLogicalOr, orOps, parseLogicalXor)
	parseAssignChain = chain(LevelAssignment, assignOps, parseAssignmentTarget, parseExpression)
}

// binary parses operand (op operand)*. Both sides of each pair are wrapped,
// the left operand is not. With no pairs the operand is returned unchanged.
func binary(level Level, op operatorParser, operand exprParser) exprParser {
	return chain(level, op, operand, operand)
}

func chain(level Level, op operatorParser, first, next exprParser) exprParser {
	return func(c Cursor) (Cursor, Expr, error) {
		c, left, err := first(c)
		if err != nil {
			return c, nil, err
		}
		var operands []Operand
		for {
			d, o, err := wrap(c, op)
			if err != nil {
				if fatal(err) {
					return c, nil, err
				}
				break
			}
			d, right, err := wrap(d, next)
			if err != nil {
				if fatal(err) {
					return c, nil, err
				}
				break
			}
			operands = append(operands, Operand{Op: o, Right: right})
			c = d
		}
		if len(operands) == 0 {
			return c, left, nil
		}
		return c, &BinaryExpr{Level: level, Left: left, Operands: operands}, nil
	}
}

// prefix parses an optional operator before operand. Once the operator has
// matched the operand is required.
func prefix(level Level, op operatorParser, operand exprParser) exprParser {
	return func(c Cursor) (Cursor, Expr, error) {
		d, o, err := wrap(c, op)
		if err != nil {
			if fatal(err) {
				return c, nil, err
			}
			return operand(c)
		}
		d, x, err := operand(d)
		if err != nil {
			return c, nil, err
		}
		return d, &UnaryExpr{Level: level, Op: o, Operand: x}, nil
	}
}

func postfix(op operatorParser, operand exprParser) exprParser {
	return func(c Cursor) (Cursor, Expr, error) {
		c, x, err := operand(c)
		if err != nil {
			return c, nil, err
		}
		d, o, err := wrap(c, op)
		if err != nil {
			if fatal(err) {
				return c, nil, err
			}
			return c, x, nil
		}
		return d, &PostfixExpr{Operand: x, Op: o}, nil
	}
}

// parseCast parses a prefix update expression optionally followed by
// `as Type`.
func parseCast(c Cursor) (Cursor, Expr, error) {
	c, x, err := parsePrefixUpdate(c)
	if err != nil {
		return c, nil, err
	}
	d, as, err := wrap(c, asOp)
	if err != nil {
		if fatal(err) {
			return c, nil, err
		}
		return c, x, nil
	}
	d, t, err := wrap(d, parseType)
	if err != nil {
		if fatal(err) {
			return c, nil, err
		}
		return c, x, nil
	}
	return d, &CastExpr{Value: x, As: as, Type: t}, nil
}

// parseTernary parses a logical-or expression once and, when a `?` follows,
// extends it into a conditional. The condition is never parsed twice.
func parseTernary(c Cursor) (Cursor, Expr, error) {
	start := c
	c, cond, err := parseLogicalOr(c)
	if err != nil {
		return c, nil, err
	}
	d, condNode := attachTrailing(start, c, cond)
	d, ok := d.consume("?")
	if !ok {
		return c, cond, nil
	}
	d, then, err := wrap(d, parseExpression)
	if err != nil {
		if fatal(err) {
			return start, nil, err
		}
		return c, cond, nil
	}
	d, ok = d.consume(":")
	if !ok {
		return c, cond, nil
	}
	d, els, err := wrap(d, parseExpression)
	if err != nil {
		if fatal(err) {
			return start, nil, err
		}
		return c, cond, nil
	}
	return d, &TernaryExpr{Cond: condNode, Then: then, Else: els}, nil
}

// parseAssignment parses an anonymous function or conditional, followed by
// any number of assignment operators each taking a full expression.
func parseAssignment(c Cursor) (Cursor, Expr, error) {
	return parseAssignChain(c)
}

func parseAssignmentTarget(c Cursor) (Cursor, Expr, error) {
	return alt(c, parseAnonymousFunction, parseTernary)
}

// parseExpression is the entry point of the expression grammar.
func parseExpression(c Cursor) (Cursor, Expr, error) {
	return alt(c, parseAnonymousFunction, parseAssignment)
}
