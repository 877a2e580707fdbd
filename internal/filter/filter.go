// Package filter derives the visible subset of a collection from the search
// term and selected category. Everything here is pure.
package filter

import (
	"strings"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

type Query struct {
	Term     string
	Category model.Category
}

func (q Query) Match(e model.Entity) bool {
	return matchesCategory(e, q.Category) && matchesTerm(e, normalizeTerm(q.Term))
}

// Visible returns the items that match both the search term and the
// category, in input order. The result is always a fresh non-nil slice.
func Visible[T model.Entity](items []T, term string, category model.Category) []T {
	q := Query{Term: normalizeTerm(term), Category: category}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func matchesTerm(e model.Entity, needle string) bool {
	if needle == "" {
		return true
	}
	title, body := e.SearchFields()
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(body), needle)
}

func matchesCategory(e model.Entity, category model.Category) bool {
	if category == "" || category == model.CategoryAll {
		return true
	}
	return e.EntityCategory() == category
}

type TaskStats struct {
	Pending   int
	Completed int
	Total     int
}

// SplitTasks partitions an already filtered list into pending and completed
// sections, preserving order within each.
func SplitTasks(visible []model.Task) (pending, completed []model.Task) {
	pending = make([]model.Task, 0, len(visible))
	completed = make([]model.Task, 0)
	for _, t := range visible {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

func Stats(visible []model.Task) TaskStats {
	stats := TaskStats{Total: len(visible)}
	for _, t := range visible {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}
