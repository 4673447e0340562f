// Package query builds region-scoped listing queries over a collection whose
// rows reference users.
//
// Two strategies sit behind one entry point. Without a search term the
// equality filters run directly against the collection and referenced users
// are preloaded. With a term the collection is inner-joined to users on every
// reference and matched case-insensitively on name or email inside the
// database. Both strategies load the same model type, so callers map rows to
// one view shape regardless of which strategy ran.
package query

import (
	"fmt"
	"strings"

	"kycdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Strategy names, also used as metric labels.
const (
	StrategyFilter = "filter"
	StrategySearch = "search"
)

// SafeUserColumns are the user columns loaded for list views.
var SafeUserColumns = []string{"id", "name", "email"}

// searchColumns are matched against the search term on each joined user.
var searchColumns = []string{"name", "email"}

// Collection describes a listing target.
type Collection struct {
	Name string
	// Refs are the belongs-to associations that point at users.
	Refs []string
	// OrderColumn gives insertion order when no explicit order is requested.
	OrderColumn string
}

// Query is one listing request after scoping.
type Query struct {
	Filters models.Filters
	Term    string
	// OrderDesc sorts by the collection's order column, newest first.
	OrderDesc bool
	Limit     int
}

// Strategy shapes a statement for a query.
type Strategy interface {
	Name() string
	Apply(db *gorm.DB, c Collection, q Query) *gorm.DB
}

var (
	filterStrategy Strategy = filterOnly{}
	searchStrategy Strategy = joinAndMatch{}
)

// For picks the strategy for q.
func For(q Query) Strategy {
	if strings.TrimSpace(q.Term) == "" {
		return filterStrategy
	}
	return searchStrategy
}

// Build returns db shaped for q and the name of the strategy used.
func Build(db *gorm.DB, c Collection, q Query) (*gorm.DB, string) {
	s := For(q)
	tx := Where(db, q.Filters)
	tx = s.Apply(tx, c, q)
	tx = order(tx, c, q)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, s.Name()
}

// Where adds the equality predicate of f. Columns are qualified with the
// collection table so joined user columns never shadow them.
func Where(db *gorm.DB, f models.Filters) *gorm.DB {
	eq := f.Equality()
	// fixed column order keeps generated SQL stable
	for _, col := range []string{"region", "status"} {
		v, ok := eq[col]
		if !ok {
			continue
		}
		db = db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: col},
			Value:  v,
		})
	}
	return db
}

func order(db *gorm.DB, c Collection, q Query) *gorm.DB {
	if c.OrderColumn == "" {
		return db
	}
	return db.Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: c.OrderColumn},
		Desc:   q.OrderDesc,
	})
}

type filterOnly struct{}

func (filterOnly) Name() string { return StrategyFilter }

func (filterOnly) Apply(db *gorm.DB, c Collection, _ Query) *gorm.DB {
	for _, ref := range c.Refs {
		db = db.Preload(ref, func(tx *gorm.DB) *gorm.DB {
			return tx.Select(SafeUserColumns)
		})
	}
	return db
}

type joinAndMatch struct{}

func (joinAndMatch) Name() string { return StrategySearch }

func (joinAndMatch) Apply(db *gorm.DB, c Collection, q Query) *gorm.DB {
	pattern := ContainsPattern(q.Term)

	var (
		parts []string
		args  []any
	)
	for _, ref := range c.Refs {
		db = db.InnerJoins(ref, db.Session(&gorm.Session{NewDB: true}).Select(SafeUserColumns))
		for _, col := range searchColumns {
			parts = append(parts, fmt.Sprintf(`"%s"."%s" ILIKE ?`, ref, col))
			args = append(args, pattern)
		}
	}
	if len(parts) == 0 {
		return db
	}
	return db.Where("("+strings.Join(parts, " OR ")+")", args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a raw term into an ILIKE substring pattern. LIKE
// metacharacters in the term are matched literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}
