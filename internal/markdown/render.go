package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dieledev/showcase/internal/model"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	wipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	liveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	archivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StatusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusWIP:
		return wipStyle
	case model.StatusLive:
		return liveStyle
	case model.StatusArchived:
		return archivedStyle
	default:
		return unknownStyle
	}
}

func RenderStatus(status model.Status) string {
	return StatusStyle(status).Render(string(status))
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// RenderProject is the `project show` view: header fields, then the
// description rendered as markdown.
func RenderProject(p model.Project) (string, error) {
	fields := []string{
		RenderField("Slug", p.Slug),
		RenderField("Status", RenderStatus(p.Status)),
		RenderField("Image", p.ImageURL),
		RenderField("Link", p.LinkURL),
	}
	if len(p.Tags) > 0 {
		fields = append(fields, RenderField("Tags", strings.Join(p.Tags, ", ")))
	}
	if !p.CreatedAt.IsZero() {
		fields = append(fields, RenderField("Created", p.CreatedAt.Format(dateTime)))
	}
	if !p.UpdatedAt.IsZero() {
		fields = append(fields, RenderField("Updated", p.UpdatedAt.Format(dateTime)))
	}
	out := RenderEntityHeader(p.Title, fields)
	if strings.TrimSpace(p.Description) == "" {
		return out, nil
	}
	body, err := RenderMarkdown(p.Description)
	if err != nil {
		return "", err
	}
	return out + body, nil
}
