package modals

import (
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// helpKeyColumnWidth is the width of the key column in the help list.
const helpKeyColumnWidth = 14

// shortcutItem is one key binding row in the help list.
type shortcutItem struct {
	section  string
	shortcut HelpShortcut
}

// FilterValue lets "/" filtering match on key, description or section.
func (i shortcutItem) FilterValue() string {
	return strings.Join([]string{i.shortcut.Key, i.shortcut.Desc, i.section}, " ")
}

// sectionItem is a header row. It never matches a filter.
type sectionItem struct {
	title string
}

func (i sectionItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (d helpDelegate) Height() int                             { return 1 }
func (d helpDelegate) Spacing() int                            { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case sectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(pal.Heading).Render(i.title))

	case shortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(pal.Accent).Bold(true).Width(helpKeyColumnWidth)
		descStyle := lipgloss.NewStyle().Foreground(pal.Text)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(pal.Inverse).Background(pal.Accent)
			descStyle = descStyle.Foreground(pal.Inverse).Background(pal.Accent)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// HelpState lists every key binding, grouped by where it applies.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	title := pal.Title.Render(s.Title())
	help := pal.Help.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize fits the list between the title and the help line.
func (s *HelpState) SetSize(width, height int) {
	const titleAndHelpOverhead = 4
	s.list.SetSize(width, max(min(height-titleAndHelpOverhead, HelpMaxVisible), 1))
}

// SelectedShortcut returns the shortcut under the cursor. It returns false
// when the cursor is on a section header or nothing matches the filter.
func (s *HelpState) SelectedShortcut() (HelpShortcut, bool) {
	if si, ok := s.list.SelectedItem().(shortcutItem); ok {
		return si.shortcut, true
	}
	return HelpShortcut{}, false
}

// IsFiltering reports whether the filter input has focus.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpState creates a HelpState with the cursor on the first shortcut.
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	for _, section := range sections {
		items = append(items, sectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			items = append(items, shortcutItem{section: section.Title, shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, DefaultWidth, HelpMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)

	for i, item := range items {
		if _, ok := item.(shortcutItem); ok {
			l.Select(i)
			break
		}
	}

	return &HelpState{list: l}
}
