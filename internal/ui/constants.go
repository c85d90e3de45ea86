package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// MaxSidebarWidth caps the sidebar on wide terminals
	MaxSidebarWidth = 40

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth is the smallest width the layout is computed for
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height the layout is computed for
	MinTerminalHeight = 10
)

// Chat input limits
const (
	// MaxMessageLength is the character limit of the chat textarea
	MaxMessageLength = 4000

	// SessionTitleMaxWidth is the widest a session title is drawn in the header
	SessionTitleMaxWidth = 40
)
