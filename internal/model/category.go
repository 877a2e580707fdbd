package model

import "strings"

type Kind string

const (
	KindTask Kind = "task"
	KindNote Kind = "note"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindTask, KindNote:
		return true
	default:
		return false
	}
}

// Category is stored as free text; values outside the fixed set are kept as
// read and only degrade at display time.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryIdeas    Category = "ideas"

	// CategoryAll is a filter selector, never an entity value.
	CategoryAll Category = "all"
)

const UnknownCategoryLabel = "Uncategorized"

var categories = []Category{CategoryPersonal, CategoryWork, CategoryStudy, CategoryIdeas}

// Categories returns the fixed categories in sidebar order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryIdeas:
		return true
	default:
		return false
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryPersonal:
		return "Personal"
	case CategoryWork:
		return "Work"
	case CategoryStudy:
		return "Study"
	case CategoryIdeas:
		return "Ideas"
	case CategoryAll:
		return "All"
	default:
		return UnknownCategoryLabel
	}
}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.IsValid() || c == CategoryAll {
		return c, true
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const UnknownPriorityLabel = "Unset"

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return UnknownPriorityLabel
	}
}

// Next cycles low -> medium -> high -> low. Unknown values restart at low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func ParsePriority(raw string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p.IsValid() {
		return p, true
	}
	return "", false
}

// NextCategory cycles through the fixed categories; when withAll is set the
// filter selector "all" is part of the cycle.
func NextCategory(c Category, withAll bool) Category {
	cycle := categories
	if withAll {
		cycle = append([]Category{CategoryAll}, categories...)
	}
	for i, candidate := range cycle {
		if candidate == c {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
