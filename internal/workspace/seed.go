package workspace

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/taskkeeper/internal/model"
	"go.uber.org/zap"
)

var sampleTasks = []model.TaskFields{
	{Title: "Buy milk", Priority: model.PriorityLow, Category: model.CategoryPersonal},
	{Title: "Write report", Description: "Quarterly numbers for the team sync", Priority: model.PriorityHigh, Category: model.CategoryWork},
	{Title: "Read chapter 4", Priority: model.PriorityMedium, Category: model.CategoryStudy},
}

var sampleNotes = []model.NoteFields{
	{Title: "Reading list", Content: "- *Deep Work*\n- *The Pragmatic Programmer*", Category: model.CategoryStudy, Color: model.NoteColorBlue},
	{Title: "App idea", Content: "A tiny **terminal** dashboard for plants.", Category: model.CategoryIdeas, Color: model.NoteColorGreen},
}

// Seed writes a few sample entities when the owner has none yet. It goes
// straight to the adapters, so no toasts are raised.
func (w *Workspace) Seed(ctx context.Context) (int, error) {
	owner, err := w.Session.OwnerID()
	if err != nil {
		return 0, err
	}
	tasks, err := w.Registry.Tasks()
	if err != nil {
		return 0, err
	}
	notes, err := w.Registry.Notes()
	if err != nil {
		return 0, err
	}

	existingTasks, err := tasks.FetchAll(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	existingNotes, err := notes.FetchAll(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if len(existingTasks) > 0 || len(existingNotes) > 0 {
		return 0, nil
	}

	created := 0
	for _, f := range sampleTasks {
		if _, err := tasks.Create(ctx, f); err != nil {
			return created, fmt.Errorf("seed task %q: %w", f.Title, err)
		}
		created++
	}
	for _, f := range sampleNotes {
		if _, err := notes.Create(ctx, f); err != nil {
			return created, fmt.Errorf("seed note %q: %w", f.Title, err)
		}
		created++
	}
	w.logger.Info("seeded sample data", zap.Int("count", created))
	return created, nil
}
