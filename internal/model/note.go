package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type NoteColor string

const (
	NoteColorYellow NoteColor = "#fef3c7"
	NoteColorBlue   NoteColor = "#dbeafe"
	NoteColorGreen  NoteColor = "#dcfce7"
	NoteColorPink   NoteColor = "#fce7f3"
	NoteColorPurple NoteColor = "#f3e8ff"
	NoteColorRed    NoteColor = "#fed7d7"

	DefaultNoteColor = NoteColorYellow
)

var palette = []NoteColor{
	NoteColorYellow, NoteColorBlue, NoteColorGreen,
	NoteColorPink, NoteColorPurple, NoteColorRed,
}

func Palette() []NoteColor {
	out := make([]NoteColor, len(palette))
	copy(out, palette)
	return out
}

func (c NoteColor) IsValid() bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

func (c NoteColor) Label() string {
	switch c {
	case NoteColorBlue:
		return "Blue"
	case NoteColorGreen:
		return "Green"
	case NoteColorPink:
		return "Pink"
	case NoteColorPurple:
		return "Purple"
	case NoteColorRed:
		return "Red"
	default:
		return "Yellow"
	}
}

func (c NoteColor) Next() NoteColor {
	for i, p := range palette {
		if p == c {
			return palette[(i+1)%len(palette)]
		}
	}
	return DefaultNoteColor
}

// ParseNoteColor accepts a palette hex value or its label.
func ParseNoteColor(raw string) (NoteColor, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range palette {
		if string(p) == v || strings.ToLower(p.Label()) == v {
			return p, true
		}
	}
	return "", false
}

type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Category  Category
	Color     NoteColor
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n Note) EntityID() string                   { return n.ID }
func (n Note) EntityKind() Kind                   { return KindNote }
func (n Note) EntityCategory() Category           { return n.Category }
func (n Note) SearchFields() (title, body string) { return n.Title, n.Content }

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.OwnerID) == "" {
		return errors.New("model: note owner is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if !n.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, n.Category)
	}
	if !n.Color.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, n.Color)
	}
	return nil
}

type NoteFields struct {
	Title    string
	Content  string
	Category Category
	Color    NoteColor
}

func DefaultNoteFields() NoteFields {
	return NoteFields{
		Category: CategoryPersonal,
		Color:    DefaultNoteColor,
	}
}

func (f NoteFields) Normalize() NoteFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	if f.Category == "" {
		f.Category = CategoryPersonal
	}
	if f.Color == "" {
		f.Color = DefaultNoteColor
	}
	return f
}

func (f NoteFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, f.Category)
	}
	if !f.Color.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, f.Color)
	}
	return nil
}

type NotePatch struct {
	Title    *string
	Content  *string
	Category *Category
	Color    *NoteColor
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.Color == nil
}

func (p NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Category != nil && !p.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *p.Category)
	}
	if p.Color != nil && !p.Color.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, *p.Color)
	}
	return nil
}

func (p NotePatch) ApplyTo(n Note, now time.Time) Note {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = strings.TrimSpace(*p.Content)
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	n.UpdatedAt = now
	return n
}
