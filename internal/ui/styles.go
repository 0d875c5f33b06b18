package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#A78BFA") // Light purple for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for warnings
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan for info
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Flash styles per severity (updated by regenerateStyles)
	FlashInfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Padding(0, 1)

	FlashSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Padding(0, 1)

	FlashErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)
)

// Composer styles
var (
	ComposerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ComposerFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	// ComposerDropTargetStyle replaces the border while a drop is hovering
	ComposerDropTargetStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorSecondary).
				Padding(0, 1)

	ComposerHintStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	AttachmentChipStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Padding(0, 1)
)

// Code block styles
var (
	CodeBlockHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg)).
				Padding(0, 1)

	CodeBlockLangStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	CodeBlockCopiedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	CodeBlockFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Diagram styles
var (
	DiagramBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	DiagramErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	DiagramSourceStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Avatar styles
var (
	AvatarInitialStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextInverse).
				Background(ColorPrimary)

	AvatarSilhouetteStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Markdown rendering styles (updated by regenerateStyles)
var (
	// Headers
	MarkdownH1Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH1)).
			MarginTop(1)

	MarkdownH2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH2)).
			MarginTop(1)

	MarkdownH3Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH3))

	MarkdownH4Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextMuted)

	// Inline styles
	MarkdownBoldStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCode)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	// Code block
	MarkdownCodeBlockStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	// List
	MarkdownListBulletStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	// Blockquote
	MarkdownBlockquoteStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorMuted).
				PaddingLeft(1)

	// Horizontal rule
	MarkdownHRStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Link
	MarkdownLinkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownLink)).
				Underline(true)
)
