// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql

import "strings"

// An Expression is a boolean combination of criteria.  Beyond the
// plain "~" criteria list a filter can spell out "and" and "or"
// junctions, grouped with parentheses:
//
//	name:starts-with:"J" and (age:less-than:18 or age:greater-than:65)
//
// A bare Criterion is a leaf expression; "~" binds tighter than
// "and", which binds tighter than "or".
type Expression interface {
	isExpression()
	String() string
}

func (Criterion) isExpression() {}

// An AndExpression matches entities that every term matches.
type AndExpression []Expression

func (AndExpression) isExpression() {}

// String renders the conjunction in canonical CQL form.
func (e AndExpression) String() string {
	return joinTerms([]Expression(e), " and ")
}

// An OrExpression matches entities that any term matches.
type OrExpression []Expression

func (OrExpression) isExpression() {}

// String renders the disjunction in canonical CQL form.
func (e OrExpression) String() string {
	return joinTerms([]Expression(e), " or ")
}

// joinTerms renders junction terms, parenthesizing nested junctions
// so the result re-parses with the same shape.
func joinTerms(terms []Expression, sep string) string {
	parts := make([]string, len(terms))
	for i, term := range terms {
		s := term.String()
		switch term.(type) {
		case AndExpression, OrExpression:
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, sep)
}

// ParseExpression parses a CQL filter string into an Expression.
// This accepts the "and"/"or" junction form alongside the plain "~"
// criteria form Parse() handles; the two may be mixed, with "~"
// reading as the tightest conjunction.  The junction keywords are
// case insensitive.  The empty string parses to an empty conjunction,
// which selects everything.
func ParseExpression(query string) (Expression, error) {
	tokens, err := tokenizeExpression(query)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return AndExpression{}, nil
	}
	p := &exprParser{tokens: tokens}
	e, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, ParseError{Input: p.tokens[p.pos],
			Reason: "unexpected input after expression"}
	}
	return e, nil
}

// tokenizeExpression splits a filter string into parentheses and
// criterion or keyword fragments.  Whitespace separates fragments;
// quoted sections pass through verbatim, escapes included.
func tokenizeExpression(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	inQuotes := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\' && inQuotes:
			cur.WriteByte(c)
			escaped = true
		case c == '"':
			cur.WriteByte(c)
			inQuotes = !inQuotes
		case inQuotes:
			cur.WriteByte(c)
		case c == '(' || c == ')':
			flush()
			tokens = append(tokens, string(c))
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, ParseError{Input: s,
			Reason: "unterminated string"}
	}
	flush()
	return tokens, nil
}

type exprParser struct {
	tokens []string
	pos    int
}

func (p *exprParser) atKeyword(keyword string) bool {
	return p.pos < len(p.tokens) &&
		strings.EqualFold(p.tokens[p.pos], keyword)
}

func (p *exprParser) disjunction() (Expression, error) {
	term, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	terms := []Expression{term}
	for p.atKeyword("or") {
		p.pos++
		term, err = p.conjunction()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return OrExpression(terms), nil
}

func (p *exprParser) conjunction() (Expression, error) {
	term, err := p.primary()
	if err != nil {
		return nil, err
	}
	terms := []Expression{term}
	for p.atKeyword("and") {
		p.pos++
		term, err = p.primary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return AndExpression(terms), nil
}

func (p *exprParser) primary() (Expression, error) {
	if p.pos >= len(p.tokens) {
		return nil, ParseError{Input: p.tokens[len(p.tokens)-1],
			Reason: "missing criterion at end of expression"}
	}
	tok := p.tokens[p.pos]
	if tok == "(" {
		p.pos++
		e, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos] != ")" {
			return nil, ParseError{Input: tok,
				Reason: "missing closing parenthesis"}
		}
		p.pos++
		return e, nil
	}
	if tok == ")" || p.atKeyword("and") || p.atKeyword("or") {
		return nil, ParseError{Input: tok,
			Reason: "expected criterion"}
	}
	return p.criteria()
}

// criteria reads one criterion fragment, healing the splits the
// tokenizer makes at spaces inside a value list ("a, b") or around a
// "~", and parses it as a tilde-joined criteria list.
func (p *exprParser) criteria() (Expression, error) {
	frag := p.tokens[p.pos]
	p.pos++
	for p.pos < len(p.tokens) {
		next := p.tokens[p.pos]
		if next == "(" || next == ")" ||
			p.atKeyword("and") || p.atKeyword("or") {
			break
		}
		if !strings.HasSuffix(frag, ",") &&
			!strings.HasSuffix(frag, "~") &&
			!strings.HasSuffix(frag, ":") &&
			!strings.HasPrefix(next, ",") &&
			!strings.HasPrefix(next, "~") {
			break
		}
		frag += next
		p.pos++
	}

	var terms []Expression
	for _, raw := range splitOutsideQuotes(frag, '~') {
		criterion, err := parseCriterion(raw)
		if err != nil {
			return nil, err
		}
		terms = append(terms, criterion)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return AndExpression(terms), nil
}
