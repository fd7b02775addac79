package markdown

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dieledev/showcase/internal/media"
	"github.com/dieledev/showcase/internal/model"
	"github.com/dieledev/showcase/internal/store"
)

const dateTime = "2006-01-02 15:04"

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderProjectTable(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.Slug, p.Title, RenderStatus(p.Status), strings.Join(p.Tags, ", "), p.UpdatedAt.Format("2006-01-02")}
	}
	return renderTable([]string{"Slug", "Title", "Status", "Tags", "Updated"}, rows)
}

func RenderNavTable(items []model.NavItem) string {
	if len(items) == 0 {
		return "No navigation items."
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{strconv.Itoa(it.Order), it.ID, it.Label, it.Href}
	}
	return renderTable([]string{"#", "ID", "Label", "Href"}, rows)
}

func RenderMediaTable(images []media.Image) string {
	if len(images) == 0 {
		return "No media found."
	}
	rows := make([][]string, len(images))
	for i, img := range images {
		rows[i] = []string{img.Filename, img.URL}
	}
	return renderTable([]string{"Filename", "URL"}, rows)
}

// RenderDiagnostics formats the /debug/storage report.
func RenderDiagnostics(d store.Diagnostics) string {
	rows := make([][]string, len(d.Documents))
	for i, doc := range d.Documents {
		rows[i] = []string{doc.Name, strings.Join(doc.Sources, " > "), doc.Sink, string(doc.Cache), doc.LastServed}
	}
	var sb strings.Builder
	sb.WriteString(RenderField("Mode", d.Mode) + "\n")
	sb.WriteString(renderTable([]string{"Document", "Sources", "Sink", "Cache", "Last served"}, rows))
	sb.WriteString("\n")
	if b := d.Bucket; b != nil {
		sb.WriteString(RenderEntityHeader("Bucket "+b.Name, []string{
			RenderField("List", check(b.ListOK)+" ("+strconv.Itoa(b.ObjectCount)+" objects)"),
			RenderField("Write", check(b.WriteOK)),
			RenderField("Read", check(b.ReadOK)),
			RenderField("Delete", check(b.DeleteOK)),
		}))
		ops := make([]string, 0, len(b.Errors))
		for op := range b.Errors {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		for _, op := range ops {
			sb.WriteString("  " + unknownStyle.Render(op+": "+b.Errors[op]) + "\n")
		}
	}
	return sb.String()
}

func check(ok bool) string {
	if ok {
		return liveStyle.Render("ok")
	}
	return unknownStyle.Render("failed")
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
