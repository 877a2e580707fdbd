package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/workspace"
)

// Backend calls run as commands so the UI loop never waits on storage.

func loadCmd(ctx context.Context, ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Err: ws.Load(ctx)}
	}
}

func submitCmd(ctx context.Context, ws *workspace.Workspace, kind model.Kind) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == model.KindNote {
			_, err = ws.Notes.Submit(ctx)
		} else {
			_, err = ws.Tasks.Submit(ctx)
		}
		return SubmittedMsg{Kind: kind, Err: err}
	}
}

func toggleCmd(ctx context.Context, ws *workspace.Workspace, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := ws.Tasks.Toggle(ctx, id)
		return MutationMsg{Kind: model.KindTask, Action: "toggle", Err: err}
	}
}

func deleteCmd(ctx context.Context, ws *workspace.Workspace, kind model.Kind, id string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == model.KindNote {
			err = ws.Notes.Delete(ctx, id)
		} else {
			err = ws.Tasks.Delete(ctx, id)
		}
		return MutationMsg{Kind: kind, Action: "delete", Err: err}
	}
}

func cyclePriorityCmd(ctx context.Context, ws *workspace.Workspace, task model.Task) tea.Cmd {
	next := task.Priority.Next()
	return func() tea.Msg {
		_, err := ws.Tasks.Update(ctx, task.ID, model.TaskPatch{Priority: &next})
		return MutationMsg{Kind: model.KindTask, Action: "priority", Err: err}
	}
}

func cycleColorCmd(ctx context.Context, ws *workspace.Workspace, note model.Note) tea.Cmd {
	next := note.Color.Next()
	return func() tea.Msg {
		_, err := ws.Notes.Update(ctx, note.ID, model.NotePatch{Color: &next})
		return MutationMsg{Kind: model.KindNote, Action: "color", Err: err}
	}
}

func waitForToastCmd(ch <-chan notify.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ToastMsg{Event: ev}
	}
}
