package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tutor/internal/keys"
)

// newForm builds a stacked huh form in the modal palette and initializes it
// so the first render is already laid out.
func newForm(width int, groups ...*huh.Group) *huh.Form {
	f := huh.NewForm(groups...).
		WithTheme(formTheme()).
		WithShowHelp(false).
		WithWidth(width).
		WithLayout(huh.LayoutStack)
	f.Init()
	return f
}

// updateForm forwards msg to form. Enter and Escape belong to the app,
// which saves or discards the whole modal.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && (k.String() == keys.Enter || k.String() == keys.Escape) {
		return form, nil
	}
	next, cmd := form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

func formTheme() huh.Theme {
	p := pal
	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		focused := &t.Focused
		focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Accent)
		focused.Card = focused.Base
		focused.Title = fg(p.Text).Bold(true)
		focused.Description = fg(p.Muted).Italic(true)
		focused.ErrorIndicator = fg(p.Warning).SetString(" *")
		focused.ErrorMessage = fg(p.Warning)
		focused.SelectSelector = fg(p.Accent).SetString("> ")
		focused.NextIndicator = fg(p.Accent).MarginLeft(1).SetString("→")
		focused.PrevIndicator = fg(p.Accent).MarginRight(1).SetString("←")
		focused.Option = fg(p.Text)
		focused.FocusedButton = fg(p.Inverse).Background(p.Accent).Padding(0, 2).MarginRight(1)
		focused.BlurredButton = fg(p.Muted).Padding(0, 2).MarginRight(1)
		focused.TextInput.Cursor = fg(p.Accent)
		focused.TextInput.Prompt = fg(p.Accent)
		focused.TextInput.Placeholder = fg(p.Muted)
		focused.TextInput.Text = fg(p.Text)

		// Unfocused fields keep the colors but lose the border and arrows
		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = fg(p.Heading).Bold(true)
		t.Group.Description = fg(p.Muted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}
