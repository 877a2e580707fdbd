package update

import (
	"strings"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

// previousCategory walks the filter cycle backwards, "all" included.
func previousCategory(c model.Category) model.Category {
	cycle := append([]model.Category{model.CategoryAll}, model.Categories()...)
	for i, candidate := range cycle {
		if candidate == c {
			return cycle[(i+len(cycle)-1)%len(cycle)]
		}
	}
	return model.CategoryAll
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
