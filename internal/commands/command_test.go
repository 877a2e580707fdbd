package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add task pay rent", TypeAdd},
		{"add note shopping list", TypeAdd},
		{"search milk", TypeSearch},
		{"search", TypeSearch},
		{"category work", TypeCategory},
		{"tab notes", TypeTab},
		{"/refresh", TypeRefresh},
		{"signout", TypeSignOut},
		{"logout", TypeSignOut},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add Note  Weekend   plans ")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Add.Kind != model.KindNote || cmd.Add.Title != "Weekend plans" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("category ALL")
	if err != nil {
		t.Fatalf("parse category: %v", err)
	}
	if cmd.Category.Category != model.CategoryAll {
		t.Fatalf("unexpected category: %q", cmd.Category.Category)
	}

	cmd, err = Parse("search  buy milk")
	if err != nil {
		t.Fatalf("parse search: %v", err)
	}
	if cmd.Search.Term != "buy milk" {
		t.Fatalf("unexpected term: %q", cmd.Search.Term)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"   ", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add task", ErrCodeInvalidArgument},
		{"add chore sweep", ErrCodeInvalidArgument},
		{"category errands", ErrCodeInvalidArgument},
		{"category", ErrCodeInvalidArgument},
		{"tab calendar", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add task write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" || a.Kind != model.KindTask {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("refresh")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
