package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Page window of a list query, Limit <= 0 means unbounded.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}

const likeEscape = "!"

// containsPattern builds a LIKE pattern matching q anywhere, lower-cased.
func containsPattern(q string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}

// containsAny ORs a case-insensitive containment test over columns.
func containsAny(db *gorm.DB, q string, columns ...string) *gorm.DB {
	pattern := containsPattern(q)
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
