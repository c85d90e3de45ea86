package modals

import (
	"strings"
	"testing"
)

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Shortcuts: []HelpShortcut{
				{Key: "tab", Desc: "switch pane"},
				{Key: "f1", Desc: "chat"},
			},
		},
		{
			Title: "Quiz",
			Shortcuts: []HelpShortcut{
				{Key: "g", Desc: "start quiz"},
				{Key: "1-4", Desc: "answer"},
			},
		},
	}
}

func TestNewHelpState_StartsOnFirstShortcut(t *testing.T) {
	state := NewHelpState(testSections())

	sc, ok := state.SelectedShortcut()
	if !ok {
		t.Fatal("Expected a shortcut to be selected")
	}
	if sc.Key != "tab" {
		t.Errorf("Expected first shortcut 'tab', got %q", sc.Key)
	}
}

func TestHelpState_Navigate(t *testing.T) {
	state := NewHelpState(testSections())

	state.Update(keyPress("down"))
	sc, ok := state.SelectedShortcut()
	if !ok || sc.Key != "f1" {
		t.Errorf("Expected 'f1' after one step, got %+v (ok=%v)", sc, ok)
	}

	// Next row is the Quiz section header
	state.Update(keyPress("down"))
	if _, ok := state.SelectedShortcut(); ok {
		t.Error("Section header should not be a shortcut")
	}
}

func TestHelpState_RenderListsEverything(t *testing.T) {
	state := NewHelpState(testSections())
	state.SetSize(60, 30)

	rendered := state.Render()
	for _, want := range []string{"Keyboard Shortcuts", "Navigation", "Quiz", "switch pane", "start quiz"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected %q in help modal, got:\n%s", want, rendered)
		}
	}
}

func TestHelpState_Filter(t *testing.T) {
	state := NewHelpState(testSections())

	state.Update(keyPress("/"))
	if !state.IsFiltering() {
		t.Fatal("Expected filter mode after '/'")
	}
	if !strings.Contains(state.Help(), "Type to filter") {
		t.Errorf("Help text should change while filtering, got %q", state.Help())
	}
}

func TestHelpState_SetSizeClampsHeight(t *testing.T) {
	state := NewHelpState(testSections())
	state.SetSize(60, 2)
	if state.list.Height() < 1 {
		t.Errorf("List height should never drop below 1, got %d", state.list.Height())
	}
}

func TestShortcutItem_FilterValue(t *testing.T) {
	item := shortcutItem{section: "Quiz", shortcut: HelpShortcut{Key: "g", Desc: "start quiz"}}
	if !strings.Contains(item.FilterValue(), "start quiz") || !strings.Contains(item.FilterValue(), "Quiz") {
		t.Errorf("FilterValue should include description and section, got %q", item.FilterValue())
	}
	if (sectionItem{title: "Quiz"}).FilterValue() != "" {
		t.Error("Section headers should never match a filter")
	}
}
