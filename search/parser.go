package search

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/pydepdocs/index"
)

// Field boosts for bare terms.
const (
	boostContent = 1.0
	boostTitle   = 2.0
	boostPackage = 1.5
)

// minFuzzyRunes is the shortest term matched with typo tolerance. Shorter
// terms ("uv", "pip") would match half the vocabulary at distance 1.
const minFuzzyRunes = 4

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldKeyword
)

type fieldSpec struct {
	name  string
	kind  fieldKind
	boost float64
}

var defaultFields = []fieldSpec{
	{name: index.FieldContent, kind: fieldText, boost: boostContent},
	{name: index.FieldTitle, kind: fieldText, boost: boostTitle},
	{name: index.FieldPackage, kind: fieldKeyword, boost: boostPackage},
}

var knownFields = map[string]fieldKind{
	index.FieldContent: fieldText,
	index.FieldTitle:   fieldText,
	index.FieldPackage: fieldKeyword,
	index.FieldPath:    fieldKeyword,
}

// ParseQuery parses a query string produced by BuildQuery (or typed by
// hand in the same language) into a bleve query.
func ParseQuery(qs string) (query.Query, error) {
	tokens, err := lex(qs)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty query", ErrQuerySyntax)
	}

	p := &parser{tokens: tokens}
	q, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("%w: unexpected %s at offset %d", ErrQuerySyntax, tok, tok.pos)
	}
	return q, nil
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokPhrase
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	field string // set for field:value words and phrases
	text  string
	pos   int
}

func (t token) String() string {
	switch t.kind {
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokPhrase:
		return fmt.Sprintf("phrase %q", t.text)
	default:
		return fmt.Sprintf("term %q", t.text)
	}
}

func lex(s string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, pos: i})
			i += size
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, pos: i})
			i += size
		case r == '"':
			text, next, err := readPhrase(s, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokPhrase, text: text, pos: i})
			i = next
		default:
			tok, next, err := readWord(s, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		}
	}
	return tokens, nil
}

// readPhrase reads a quoted phrase starting at the quote at s[start].
func readPhrase(s string, start int) (string, int, error) {
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return "", 0, fmt.Errorf("%w: unterminated quote at offset %d", ErrQuerySyntax, start)
	}
	text := s[start+1 : start+1+end]
	return text, start + 1 + end + 1, nil
}

func readWord(s string, start int) (token, int, error) {
	i := start
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			break
		}
		i += size
	}
	word := s[start:i]

	switch word {
	case "AND":
		return token{kind: tokAnd, pos: start}, i, nil
	case "OR":
		return token{kind: tokOr, pos: start}, i, nil
	}

	name, value, found := strings.Cut(word, ":")
	if !found {
		return token{kind: tokWord, text: word, pos: start}, i, nil
	}
	if _, known := knownFields[name]; !known {
		// "error: foo" is text, not a field reference
		return token{kind: tokWord, text: word, pos: start}, i, nil
	}
	if value == "" && i < len(s) && s[i] == '"' {
		text, next, err := readPhrase(s, i)
		if err != nil {
			return token{}, 0, err
		}
		return token{kind: tokPhrase, field: name, text: text, pos: start}, next, nil
	}
	if value == "" {
		return token{}, 0, fmt.Errorf("%w: missing value for field %q at offset %d", ErrQuerySyntax, name, start)
	}
	return token{kind: tokWord, field: name, text: value, pos: start}, i, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// parseOr handles explicit OR and juxtaposition.
func (p *parser) parseOr() (query.Query, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	clauses := []query.Query{first}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind == tokRParen {
			break
		}
		if tok.kind == tokOr {
			p.pos++
		}
		clause, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return bleve.NewDisjunctionQuery(clauses...), nil
}

func (p *parser) parseAnd() (query.Query, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	clauses := []query.Query{first}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokAnd {
			break
		}
		p.pos++
		clause, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return bleve.NewConjunctionQuery(clauses...), nil
}

func (p *parser) parsePrimary() (query.Query, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of query", ErrQuerySyntax)
	}

	switch tok.kind {
	case tokWord:
		if tok.field != "" {
			return fieldTermQuery(tok.field, tok.text), nil
		}
		return defaultTermQuery(tok.text), nil
	case tokPhrase:
		if tok.field != "" {
			return fieldPhraseQuery(tok.field, tok.text), nil
		}
		return defaultPhraseQuery(tok.text), nil
	case tokLParen:
		if next, ok := p.peek(); ok && next.kind == tokRParen {
			return nil, fmt.Errorf("%w: empty group at offset %d", ErrQuerySyntax, tok.pos)
		}
		q, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok || closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' for group at offset %d", ErrQuerySyntax, tok.pos)
		}
		return q, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s at offset %d", ErrQuerySyntax, tok, tok.pos)
	}
}

func fuzzinessFor(term string) int {
	if utf8.RuneCountInString(term) >= minFuzzyRunes {
		return 1
	}
	return 0
}

func defaultTermQuery(term string) query.Query {
	disjunct := bleve.NewDisjunctionQuery()
	for _, f := range defaultFields {
		var q query.Query
		switch f.kind {
		case fieldKeyword:
			tq := bleve.NewTermQuery(term)
			tq.SetField(f.name)
			tq.SetBoost(f.boost)
			q = tq
		default:
			mq := bleve.NewMatchQuery(term)
			mq.SetField(f.name)
			mq.SetBoost(f.boost)
			mq.SetFuzziness(fuzzinessFor(term))
			q = mq
		}
		disjunct.AddQuery(q)
	}
	return disjunct
}

func defaultPhraseQuery(text string) query.Query {
	disjunct := bleve.NewDisjunctionQuery()
	for _, f := range defaultFields {
		if f.kind != fieldText {
			continue
		}
		pq := bleve.NewMatchPhraseQuery(text)
		pq.SetField(f.name)
		pq.SetBoost(f.boost)
		disjunct.AddQuery(pq)
	}
	return disjunct
}

func fieldTermQuery(field, term string) query.Query {
	if knownFields[field] == fieldKeyword {
		tq := bleve.NewTermQuery(term)
		tq.SetField(field)
		return tq
	}
	mq := bleve.NewMatchQuery(term)
	mq.SetField(field)
	mq.SetFuzziness(fuzzinessFor(term))
	return mq
}

func fieldPhraseQuery(field, text string) query.Query {
	if knownFields[field] == fieldKeyword {
		tq := bleve.NewTermQuery(text)
		tq.SetField(field)
		return tq
	}
	pq := bleve.NewMatchPhraseQuery(text)
	pq.SetField(field)
	return pq
}
