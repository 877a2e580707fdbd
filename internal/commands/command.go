package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSearch   Type = "search"
	TypeCategory Type = "category"
	TypeTab      Type = "tab"
	TypeRefresh  Type = "refresh"
	TypeSignOut  Type = "signout"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Kind  model.Kind
	Title string
}

type SearchArgs struct {
	Term string
}

type CategoryArgs struct {
	Category model.Category
}

type TabArgs struct {
	Kind model.Kind
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Search   *SearchArgs
	Category *CategoryArgs
	Tab      *TabArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		// An empty term clears the search.
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: strings.Join(args, " ")}}, nil
	case TypeCategory:
		return parseCategory(input, args)
	case TypeTab:
		return parseTab(input, args)
	case TypeRefresh:
		return Command{Type: TypeRefresh, Raw: input}, nil
	case TypeSignOut, "logout":
		return Command{Type: TypeSignOut, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseKind(raw string) (model.Kind, bool) {
	switch strings.ToLower(raw) {
	case "task", "tasks":
		return model.KindTask, true
	case "note", "notes":
		return model.KindNote, true
	default:
		return "", false
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task or note and a title"}
	}
	kind, ok := parseKind(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("add: unknown kind %q", args[0])}
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Kind: kind, Title: title}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires one of all, personal, work, study, ideas"}
	}
	c, ok := model.ParseCategory(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", args[0])}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Category: c}}, nil
}

func parseTab(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "tab requires tasks or notes"}
	}
	kind, ok := parseKind(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown tab: %s", args[0])}
	}
	return Command{Type: TypeTab, Raw: raw, Tab: &TabArgs{Kind: kind}}, nil
}
