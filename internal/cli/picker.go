package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/JonnieCache/cargo-open/pkg/cargo"
	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// pickerModel - Interactive crate selection
// =============================================================================

// pickerModel is the bubbletea model behind `cargo open` with no argument:
// a filterable list of every crate in the resolved graph. Typing narrows
// the list with fuzzy matching; enter opens the crate under the cursor.
type pickerModel struct {
	packages []*cargo.Package
	labels   []string // name@version, parallel to packages
	query    string
	filtered []int // indexes into packages, in display order
	cursor   int
	offset   int
	height   int
	selected *cargo.Package
}

func newPickerModel(packages []*cargo.Package) pickerModel {
	labels := make([]string, len(packages))
	for i, p := range packages {
		labels[i] = p.Label()
	}
	m := pickerModel{
		packages: packages,
		labels:   labels,
		height:   15,
	}
	m.refilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.selected = m.packages[m.filtered[m.cursor]]
				return m, tea.Quit
			}
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "backspace":
			if m.query != "" {
				m.query = m.query[:len(m.query)-1]
				m.refilter()
			}
		default:
			// Plain characters extend the filter, so navigation sticks to
			// arrows and control keys.
			if msg.Type == tea.KeyRunes {
				m.query += string(msg.Runes)
				m.refilter()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// refilter recomputes the visible crates for the current query and resets
// the cursor to the best match.
func (m *pickerModel) refilter() {
	m.cursor = 0
	m.offset = 0

	if m.query == "" {
		m.filtered = make([]int, len(m.packages))
		for i := range m.packages {
			m.filtered[i] = i
		}
		return
	}

	matches := fuzzy.Find(m.query, m.labels)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select a crate to open"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ open  esc cancel"))
	b.WriteString("\n\n")

	filter := "❯ " + m.query
	b.WriteString(StyleHighlight.Render(filter))
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(listDimStyle.Render("  no crates match"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		p := m.packages[m.filtered[i]]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-40s  %s", cursor, p.Label(), listDimStyle.Render(sourceLabel(p)))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.filtered))))

	return b.String()
}

// pickCrate runs the interactive picker over every crate in the graph. A
// nil package with a nil error means the user cancelled.
func pickCrate(meta *cargo.Metadata) (*cargo.Package, error) {
	packages := make([]*cargo.Package, len(meta.Packages))
	for i := range meta.Packages {
		packages[i] = &meta.Packages[i]
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Label() < packages[j].Label()
	})

	final, err := tea.NewProgram(newPickerModel(packages)).Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "run crate picker")
	}

	m, ok := final.(pickerModel)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected picker model type")
	}
	return m.selected, nil
}
