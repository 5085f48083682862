package search

import (
	"errors"
	"testing"

	"github.com/blevesearch/bleve/v2/search/query"
)

func TestParseQuery_SingleTermSearchesDefaultFields(t *testing.T) {
	q, err := ParseQuery("environments")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}

	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected disjunction over default fields, got %T", q)
	}
	if len(dq.Disjuncts) != len(defaultFields) {
		t.Fatalf("expected %d field clauses, got %d", len(defaultFields), len(dq.Disjuncts))
	}

	fields := map[string]bool{}
	for _, d := range dq.Disjuncts {
		switch c := d.(type) {
		case *query.MatchQuery:
			fields[c.FieldVal] = true
			if c.Fuzziness != 1 {
				t.Errorf("expected fuzziness 1 on %s, got %d", c.FieldVal, c.Fuzziness)
			}
		case *query.TermQuery:
			fields[c.FieldVal] = true
			if c.Term != "environments" {
				t.Errorf("expected term %q, got %q", "environments", c.Term)
			}
		default:
			t.Errorf("unexpected clause type %T", d)
		}
	}
	for _, f := range []string{"content", "title", "package"} {
		if !fields[f] {
			t.Errorf("expected a clause on field %q", f)
		}
	}
}

func TestParseQuery_ShortTermsAreExact(t *testing.T) {
	q, err := ParseQuery("uv")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	for _, d := range q.(*query.DisjunctionQuery).Disjuncts {
		if mq, ok := d.(*query.MatchQuery); ok && mq.Fuzziness != 0 {
			t.Errorf("expected no fuzziness for a short term, got %d", mq.Fuzziness)
		}
	}
}

func TestParseQuery_JuxtapositionIsDisjunction(t *testing.T) {
	q, err := ParseQuery("workflow tutorial guide")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected disjunction, got %T", q)
	}
	if len(dq.Disjuncts) != 3 {
		t.Errorf("expected 3 alternatives, got %d", len(dq.Disjuncts))
	}
}

func TestParseQuery_PackageFilterClause(t *testing.T) {
	q, err := ParseQuery("package:uv AND (lock file)")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}

	cq, ok := q.(*query.ConjunctionQuery)
	if !ok {
		t.Fatalf("expected conjunction, got %T", q)
	}
	if len(cq.Conjuncts) != 2 {
		t.Fatalf("expected 2 conjuncts, got %d", len(cq.Conjuncts))
	}

	tq, ok := cq.Conjuncts[0].(*query.TermQuery)
	if !ok {
		t.Fatalf("expected term query for the filter, got %T", cq.Conjuncts[0])
	}
	if tq.FieldVal != "package" || tq.Term != "uv" {
		t.Errorf("expected package:uv, got %s:%s", tq.FieldVal, tq.Term)
	}

	group, ok := cq.Conjuncts[1].(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected grouped disjunction, got %T", cq.Conjuncts[1])
	}
	if len(group.Disjuncts) != 2 {
		t.Errorf("expected 2 grouped terms, got %d", len(group.Disjuncts))
	}
}

func TestParseQuery_AndBindsTighterThanOr(t *testing.T) {
	q, err := ParseQuery("a1aa AND b2bb OR c3cc")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected top-level disjunction, got %T", q)
	}
	if len(dq.Disjuncts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(dq.Disjuncts))
	}
	if _, ok := dq.Disjuncts[0].(*query.ConjunctionQuery); !ok {
		t.Errorf("expected first alternative to be a conjunction, got %T", dq.Disjuncts[0])
	}
}

func TestParseQuery_Phrases(t *testing.T) {
	q, err := ParseQuery(`"lock file"`)
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected disjunction of phrase queries, got %T", q)
	}
	for _, d := range dq.Disjuncts {
		pq, ok := d.(*query.MatchPhraseQuery)
		if !ok {
			t.Fatalf("expected phrase query, got %T", d)
		}
		if pq.MatchPhrase != "lock file" {
			t.Errorf("expected phrase %q, got %q", "lock file", pq.MatchPhrase)
		}
	}

	q, err = ParseQuery(`title:"getting started"`)
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	pq, ok := q.(*query.MatchPhraseQuery)
	if !ok {
		t.Fatalf("expected phrase query, got %T", q)
	}
	if pq.FieldVal != "title" {
		t.Errorf("expected field title, got %q", pq.FieldVal)
	}
}

func TestParseQuery_FieldTerms(t *testing.T) {
	q, err := ParseQuery("path:uv/guides/projects.md")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	tq, ok := q.(*query.TermQuery)
	if !ok {
		t.Fatalf("expected exact term query on keyword field, got %T", q)
	}
	if tq.Term != "uv/guides/projects.md" {
		t.Errorf("unexpected term %q", tq.Term)
	}

	q, err = ParseQuery("title:install")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	if mq, ok := q.(*query.MatchQuery); !ok || mq.FieldVal != "title" {
		t.Errorf("expected match query on title, got %#v", q)
	}
}

func TestParseQuery_UnknownFieldIsText(t *testing.T) {
	q, err := ParseQuery("error:resolution")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	if _, ok := q.(*query.DisjunctionQuery); !ok {
		t.Errorf("expected default-field text query, got %T", q)
	}
}

func TestParseQuery_LowercaseOperatorsAreTerms(t *testing.T) {
	q, err := ParseQuery("pip and conda")
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected disjunction, got %T", q)
	}
	if len(dq.Disjuncts) != 3 {
		t.Errorf("expected 3 terms, got %d", len(dq.Disjuncts))
	}
}

func TestParseQuery_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		qs   string
	}{
		{name: "empty", qs: ""},
		{name: "whitespace", qs: "   "},
		{name: "unterminated quote", qs: `"lock file`},
		{name: "missing close paren", qs: "package:uv AND (lock"},
		{name: "stray close paren", qs: "lock)"},
		{name: "empty group", qs: "()"},
		{name: "leading AND", qs: "AND lock"},
		{name: "trailing AND", qs: "lock AND"},
		{name: "trailing OR", qs: "lock OR"},
		{name: "double operator", qs: "lock AND OR file"},
		{name: "field without value", qs: "package: uv"},
		{name: "field unterminated phrase", qs: `title:"lock`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.qs)
			if err == nil {
				t.Fatalf("ParseQuery(%q) expected error", tt.qs)
			}
			if !errors.Is(err, ErrQuerySyntax) {
				t.Errorf("expected ErrQuerySyntax, got %v", err)
			}
		})
	}
}
