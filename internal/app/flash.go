package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tutor/internal/errors"
	"github.com/zhubert/tutor/internal/ui"
)

// ShowFlash puts text in the footer and starts the timer that clears it.
func (m *Model) ShowFlash(text string, kind ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, kind)
	return flashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd   { return m.ShowFlash(text, ui.FlashError) }
func (m *Model) ShowFlashWarning(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashWarning) }
func (m *Model) ShowFlashInfo(text string) tea.Cmd    { return m.ShowFlash(text, ui.FlashInfo) }
func (m *Model) ShowFlashSuccess(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashSuccess) }

// flashForError reports a failed backend call. A backend that is slow or
// unreachable is a warning since retrying may help; anything else is an error.
func (m *Model) flashForError(err error) tea.Cmd {
	switch errors.GetKind(err) {
	case errors.KindNetwork, errors.KindTimeout:
		return m.ShowFlashWarning(errors.Summary(err))
	}
	return m.ShowFlashError(errors.Summary(err))
}
