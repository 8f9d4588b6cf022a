// ABOUTME: Generic selection engine for enumerated, described choices
// ABOUTME: Renders a numbered menu and resolves typed input by ordinal, name or description prefix

package interactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// SelectionInfo is the text shown for one option and matched against user input
type SelectionInfo struct {
	Name        string
	Description string
}

// Choice pairs display text with the value returned when it is chosen
type Choice[T any] struct {
	Info  SelectionInfo
	Value T
}

// Selections describes one menu. Option order defines the 1-based ordinals.
type Selections[T any] struct {
	Description string
	Options     []Choice[T]
	Default     *int // index into Options, nil when empty input is not accepted
}

// Selectable is implemented by choice types that can describe their own menu.
// Selections is called on the zero value, so implementations must use a value receiver
// and must not depend on receiver state; the context carries anything they need.
type Selectable[T any, C any] interface {
	Selections(ctx C) Selections[T]
}

// DefaultAt returns a default index for Selections.Default
func DefaultAt(index int) *int {
	return &index
}

// Validate checks the menu is answerable
func (s Selections[T]) Validate() error {
	if len(s.Options) == 0 {
		return errors.Newf("selection %q has no options", s.Description)
	}

	if s.Default != nil && (*s.Default < 0 || *s.Default >= len(s.Options)) {
		return errors.Newf("selection %q: default index %d out of range [0, %d)", s.Description, *s.Default, len(s.Options))
	}

	return nil
}

// Match returns the index of the first option matching the normalized input.
// An option matches when its ordinal equals the input or its lower-cased name or
// description starts with it. Earlier options win regardless of which rule matched.
func (s Selections[T]) Match(input string) (int, bool) {
	for i, opt := range s.Options {
		if strconv.Itoa(i+1) == input ||
			strings.HasPrefix(strings.ToLower(opt.Info.Name), input) ||
			strings.HasPrefix(strings.ToLower(opt.Info.Description), input) {
			return i, true
		}
	}

	return 0, false
}

// Select prints the menu built by T for ctx and asks until one option is chosen.
// The only errors are invalid menus and ErrInput.
func Select[T Selectable[T, C], C any](p *Prompter, ctx C) (T, error) {
	var zero T

	selections := zero.Selections(ctx)
	if err := selections.Validate(); err != nil {
		return zero, err
	}

	p.printMenu(selectionsMenu(selections))

	for {
		line, err := p.readLine()
		if err != nil {
			return zero, err
		}

		input := strings.ToLower(strings.TrimSpace(line))

		if input == "" {
			if selections.Default != nil {
				chosen := selections.Options[*selections.Default]
				p.log.Debug("default selected", zap.String("menu", selections.Description), zap.String("option", chosen.Info.Name))

				return chosen.Value, nil
			}

			p.reject("Input cannot be empty, please try again.", line)

			continue
		}

		if idx, ok := selections.Match(input); ok {
			chosen := selections.Options[idx]
			p.log.Debug("option selected", zap.String("menu", selections.Description), zap.String("option", chosen.Info.Name))

			return chosen.Value, nil
		}

		p.reject("Invalid selection, please try again.", line)
	}
}

// menu is the untyped view of Selections used for printing
type menu struct {
	description string
	items       []SelectionInfo
	defaultName string
	hasDefault  bool
}

func selectionsMenu[T any](s Selections[T]) menu {
	m := menu{description: s.Description, items: make([]SelectionInfo, len(s.Options))}
	for i, opt := range s.Options {
		m.items[i] = opt.Info
	}

	if s.Default != nil {
		m.defaultName = s.Options[*s.Default].Info.Name
		m.hasDefault = true
	}

	return m
}

func (p *Prompter) printMenu(m menu) {
	p.Println(p.paint(p.headerStyle, m.description+":"))

	for i, item := range m.items {
		p.Printf("    %s %s %s\n",
			p.paint(p.ordinalStyle, fmt.Sprintf("%d.", i+1)),
			p.paint(p.nameStyle, item.Name),
			p.paint(p.mutedStyle, "("+item.Description+")"))
	}

	if m.hasDefault {
		p.Println("Default: " + p.paint(p.nameStyle, m.defaultName))
	}
}
