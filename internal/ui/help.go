package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	// Styles for help overlay
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("📖 listik - Raccourcis clavier"))
	b.WriteString("\n\n")

	// Global
	b.WriteString(sectionStyle.Render("Général"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Basculer jour / planning") + "\n")
	b.WriteString(keyStyle.Render("?") + descStyle.Render("Afficher l'aide") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+C") + descStyle.Render("Quitter") + "\n")

	// Tasks
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tâches"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a / i") + descStyle.Render("Ajouter une tâche") + "\n")
	b.WriteString(keyStyle.Render("d / Espace") + descStyle.Render("Basculer fait / à faire") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Naviguer") + "\n")
	b.WriteString(keyStyle.Render("g / G") + descStyle.Render("Aller en haut / en bas") + "\n")

	// Capture
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Saisie"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Entrée") + descStyle.Render("Ajouter la tâche") + "\n")
	b.WriteString(keyStyle.Render("Esc") + descStyle.Render("Annuler") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+T") + descStyle.Render("Date: aujourd'hui") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+N") + descStyle.Render("Date: demain") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+← / →") + descStyle.Render("Décaler la date d'un jour") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+D") + descStyle.Render("Effacer la date") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+P") + descStyle.Render("Cycler la priorité") + "\n")

	// Planner
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Planning"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("h / l") + descStyle.Render("Semaine précédente / suivante") + "\n")
	b.WriteString(keyStyle.Render("t") + descStyle.Render("Revenir à cette semaine") + "\n")
	b.WriteString(keyStyle.Render("v") + descStyle.Render("Semaine / toutes les tâches") + "\n")

	// Footer
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Appuyez sur ? ou Esc pour fermer"))

	content := overlayStyle.Render(b.String())

	// Center the overlay
	return RenderCentered(content, h.width, h.height)
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
