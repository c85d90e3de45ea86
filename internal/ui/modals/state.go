// Package modals holds the dialogs drawn over the main screen: help,
// settings and the delete confirmation. Each dialog is its own state type;
// the ui package owns the frame they are drawn in.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is implemented only by the dialog types in this package.
type ModalState interface {
	modalState()
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Widener is a dialog that wants more room than DefaultWidth.
type Widener interface {
	ModalState
	PreferredWidth() int
}

// Resizer is a dialog that lays itself out for the space it is given.
type Resizer interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut is one row of the help dialog.
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading such as "Quiz".
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}
