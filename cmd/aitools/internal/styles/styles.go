package styles

import "github.com/charmbracelet/lipgloss"

// GitHub terminal light theme palette.
var (
	ColorFg      = lipgloss.Color("#24292f") // primary foreground
	ColorMuted   = lipgloss.Color("#656d76") // muted/dim text
	ColorAccent  = lipgloss.Color("#0969da") // accent blue
	ColorError   = lipgloss.Color("#cf222e") // error red
	ColorSuccess = lipgloss.Color("#1a7f37") // success green
	ColorWarning = lipgloss.Color("#9a6700") // warning amber
	ColorMagenta = lipgloss.Color("#8250df") // purple/magenta
)

// Centralized style definitions for the TUI.
var (
	// Transcript entry headers.
	UserPrefixStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	AssistantPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFg)
	SummaryPrefixStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorMagenta)
	ErrorPrefixStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// Entry bodies. The selected variant draws a thick accent bar.
	EntryStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted)
	SelectedEntryStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorAccent)

	// Cursor marker next to the focused entry.
	CursorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	// Spinner / animation styles.
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorMagenta)

	// General utility styles.
	DimStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	NoticeStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	OKStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)

	// Error block style.
	ErrorBlockStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ColorError)

	// Input styles.
	FocusedBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent)
	DisabledBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted)

	// Picker styles.
	PickerBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent)
	PickerCurStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	PickerDimStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
