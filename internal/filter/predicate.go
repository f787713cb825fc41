// Package filter composes event search criteria into predicates.
//
// A Predicate has two faces: Match evaluates it against an event already
// in memory, and ToSql renders it as a squirrel fragment over the "e"
// alias of the events table. Both faces must agree for every predicate.
package filter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// Predicate is a condition over events.
type Predicate interface {
	sq.Sqlizer
	Match(e *model.Event) bool
}

type truePredicate struct{}

func (truePredicate) Match(*model.Event) bool { return true }

func (truePredicate) ToSql() (string, []any, error) { return "1=1", nil, nil }

// True returns the predicate that matches every event. It is the identity
// element of And.
func True() Predicate { return truePredicate{} }

// IsTrue reports whether p is the identity predicate.
func IsTrue(p Predicate) bool {
	_, ok := p.(truePredicate)
	return ok
}

// leaf pairs an in-memory test with its SQL rendering.
type leaf struct {
	name  string
	match func(e *model.Event) bool
	sql   sq.Sqlizer
}

func (l leaf) Match(e *model.Event) bool { return l.match(e) }

func (l leaf) ToSql() (string, []any, error) { return l.sql.ToSql() }

func (l leaf) String() string { return l.name }

type andPredicate []Predicate

func (a andPredicate) Match(e *model.Event) bool {
	for _, p := range a {
		if !p.Match(e) {
			return false
		}
	}
	return true
}

func (a andPredicate) ToSql() (string, []any, error) {
	conj := make(sq.And, len(a))
	for i, p := range a {
		conj[i] = p
	}
	return conj.ToSql()
}

func (a andPredicate) String() string { return join("AND", a) }

type orPredicate []Predicate

func (o orPredicate) Match(e *model.Event) bool {
	for _, p := range o {
		if p.Match(e) {
			return true
		}
	}
	return false
}

func (o orPredicate) ToSql() (string, []any, error) {
	disj := make(sq.Or, len(o))
	for i, p := range o {
		disj[i] = p
	}
	return disj.ToSql()
}

func (o orPredicate) String() string { return join("OR", o) }

type notPredicate struct{ inner Predicate }

func (n notPredicate) Match(e *model.Event) bool { return !n.inner.Match(e) }

func (n notPredicate) ToSql() (string, []any, error) {
	sql, args, err := n.inner.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + sql + ")", args, nil
}

func (n notPredicate) String() string { return "NOT " + join("AND", []Predicate{n.inner}) }

// And returns the conjunction of preds. Identity predicates are dropped
// and nested conjunctions flattened, so And() and And(True()) are True().
func And(preds ...Predicate) Predicate {
	out := make(andPredicate, 0, len(preds))
	for _, p := range preds {
		switch v := p.(type) {
		case nil, truePredicate:
		case andPredicate:
			out = append(out, v...)
		default:
			out = append(out, p)
		}
	}
	switch len(out) {
	case 0:
		return True()
	case 1:
		return out[0]
	}
	return out
}

// or returns the disjunction of preds. A disjunction containing True is True.
func or(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	for _, p := range preds {
		if IsTrue(p) {
			return True()
		}
	}
	return orPredicate(preds)
}

// Not negates p.
func Not(p Predicate) Predicate {
	return notPredicate{inner: p}
}

// Terms lists the leaf names of p in evaluation order. It is meant for
// logging and tests.
func Terms(p Predicate) []string {
	switch v := p.(type) {
	case truePredicate:
		return nil
	case andPredicate:
		var out []string
		for _, c := range v {
			out = append(out, Terms(c)...)
		}
		return out
	case leaf:
		return []string{v.name}
	case interface{ String() string }:
		return []string{v.String()}
	}
	return []string{"?"}
}

func join(op string, preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = strings.Join(Terms(p), " AND ")
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}
