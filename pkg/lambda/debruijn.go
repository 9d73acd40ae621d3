package lambda

import "github.com/pkg/errors"

// DBTerm is a de Bruijn-indexed term: the builder's only input. Named
// variables exist solely to make DBVar's index attachable to a source
// name for diagnostics; the index itself is what the builder follows.
type DBTerm interface {
	isDBTerm()
}

// DBVar is a bound-variable occurrence, Index counting outward binders
// starting at 0 for the nearest enclosing Abs.
type DBVar struct {
	Name  string
	Index int
}

// DBAbs is a de Bruijn abstraction; the bound name is kept only so
// diagnostics can print it back.
type DBAbs struct {
	Param string
	Body  DBTerm
}

// DBApp is a de Bruijn application.
type DBApp struct{ Fun, Arg DBTerm }

func (DBVar) isDBTerm() {}
func (DBAbs) isDBTerm() {}
func (DBApp) isDBTerm() {}

// ToDeBruijn converts a named-variable Term into a DBTerm, reporting an
// error naming the first variable that is never bound by an enclosing
// abstraction.
func ToDeBruijn(t Term) (DBTerm, error) {
	return convert(t, nil)
}

func convert(t Term, scope []string) (DBTerm, error) {
	switch t := t.(type) {
	case Var:
		for i := len(scope) - 1; i >= 0; i-- {
			if scope[i] == t.Name {
				return DBVar{Name: t.Name, Index: len(scope) - 1 - i}, nil
			}
		}
		return nil, errors.Errorf("unbound variable %q", t.Name)
	case Abs:
		body, err := convert(t.Body, append(scope, t.Param))
		if err != nil {
			return nil, err
		}
		return DBAbs{Param: t.Param, Body: body}, nil
	case App:
		fun, err := convert(t.Fun, scope)
		if err != nil {
			return nil, err
		}
		arg, err := convert(t.Arg, scope)
		if err != nil {
			return nil, err
		}
		return DBApp{Fun: fun, Arg: arg}, nil
	default:
		return nil, errors.Errorf("lambda: unknown term kind %T", t)
	}
}
