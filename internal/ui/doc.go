// Package ui provides the user interface components for the tutor TUI.
//
// # Overview
//
// The ui package implements the visual components of tutor using the Bubble Tea
// framework and Lipgloss styling library. Components never talk to the backend;
// the app package feeds them the current state.State and they render it.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, mode tabs, session title    │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │   Main panel: Chat, Quiz or       │
//	│   (1/3 width)   │   Review, chosen by state.Mode    │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line): key bindings or a flash message    │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// Layout: Splits the terminal into panels. NewLayout is called on every
// resize and the result is pushed down to each component's SetSize.
//
// Header: Displays the application title, the three mode tabs and the title
// of the active chat session. Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts, or a flash message that
// expires after a few seconds.
//
// Sidebar: Lists chat sessions newest first with the active one marked.
//
// Chat: Transcript viewport plus a textarea for input. Fenced code blocks are
// highlighted with chroma.
//
// Quiz: Start screen, two-stage loading indicator, and the question container
// with feedback and the final score.
//
// Review: Quiz history summary cards and a per-question details page.
//
// LogViewer: The debug log, shown in place of the main panel (ctrl+l).
//
// Modal: Popup dialogs for confirming deletion, editing settings and
// listing keyboard shortcuts.
//
// # Focus System
//
// The application has two focus states:
//   - FocusSidebar: Session list is focused, keyboard controls navigation
//   - FocusMain: The main panel is focused, keyboard input goes to it
//
// Tab key toggles between focus states. The 'q' key only quits when
// the sidebar is focused (to allow typing 'q' in chat).
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss and regenerated from the
// active Theme in theme.go whenever the theme changes.
package ui
