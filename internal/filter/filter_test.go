package filter

import (
	"testing"

	"github.com/matryer/is"
	"github.com/sandeepkv93/taskkeeper/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Buy milk", Category: model.CategoryPersonal},
		{ID: "2", Title: "Write report", Description: "quarterly numbers", Category: model.CategoryWork, Completed: true},
		{ID: "3", Title: "Read chapter", Description: "MILK production history", Category: model.CategoryStudy},
		{ID: "4", Title: "Legacy", Category: "errands"},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestVisibleScenario(t *testing.T) {
	is := is.New(t)
	tasks := []model.Task{
		{ID: "a", Title: "Buy milk", Category: model.CategoryPersonal},
		{ID: "b", Title: "Write report", Category: model.CategoryWork},
	}

	is.Equal(ids(Visible(tasks, "milk", model.CategoryAll)), []string{"a"})
	is.Equal(ids(Visible(tasks, "", model.CategoryWork)), []string{"b"})
	is.Equal(len(Visible(tasks, "milk", model.CategoryWork)), 0)
}

func TestVisibleSearchIsCaseInsensitiveOverTitleAndBody(t *testing.T) {
	is := is.New(t)
	got := Visible(sampleTasks(), "  Milk ", model.CategoryAll)
	is.Equal(ids(got), []string{"1", "3"})
}

func TestVisibleEmptyTermAndAllMatchEverything(t *testing.T) {
	is := is.New(t)
	tasks := sampleTasks()
	got := Visible(tasks, "", model.CategoryAll)
	is.Equal(ids(got), ids(tasks))
	is.Equal(ids(Visible(tasks, "   ", "")), ids(tasks))
}

func TestVisibleCategoryIsExact(t *testing.T) {
	is := is.New(t)
	tasks := sampleTasks()
	for _, c := range model.Categories() {
		for _, task := range Visible(tasks, "", c) {
			is.Equal(task.Category, c)
		}
	}
	is.Equal(ids(Visible(tasks, "", "errands")), []string{"4"})
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	is := is.New(t)
	tasks := sampleTasks()
	before := ids(tasks)
	got := Visible(tasks, "report", model.CategoryAll)
	got = append(got, model.Task{ID: "x"})
	is.Equal(ids(tasks), before)
	is.Equal(len(got), 2)
}

func TestVisibleOnEmptyInputIsEmptyNotNil(t *testing.T) {
	is := is.New(t)
	got := Visible([]model.Note(nil), "anything", model.CategoryAll)
	is.True(got != nil)
	is.Equal(len(got), 0)
}

func TestVisibleIsIdempotent(t *testing.T) {
	is := is.New(t)
	once := Visible(sampleTasks(), "r", model.CategoryWork)
	twice := Visible(once, "r", model.CategoryWork)
	is.Equal(ids(once), ids(twice))
}

func TestQueryMatchNotes(t *testing.T) {
	is := is.New(t)
	note := model.Note{ID: "n", Title: "Groceries", Content: "eggs and flour", Category: model.CategoryIdeas}
	is.True(Query{Term: "FLOUR", Category: model.CategoryAll}.Match(note))
	is.True(!Query{Term: "flour", Category: model.CategoryWork}.Match(note))
	is.True(Query{Category: model.CategoryIdeas}.Match(note))
}

func TestSplitAndStats(t *testing.T) {
	is := is.New(t)
	visible := Visible(sampleTasks(), "", model.CategoryAll)
	pending, completed := SplitTasks(visible)
	is.Equal(ids(pending), []string{"1", "3", "4"})
	is.Equal(ids(completed), []string{"2"})
	is.Equal(Stats(visible), TaskStats{Pending: 3, Completed: 1, Total: 4})
	is.Equal(Stats(nil), TaskStats{})
}
