package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

func (m Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(m.renderTabs() + "\n")
	b.WriteString(m.renderBreadcrumbs() + "\n")

	label := "Search: "
	if m.searching {
		b.WriteString(label + m.searchInput.View())
	} else if m.query.Search != "" {
		b.WriteString(label + m.query.Search)
	} else {
		b.WriteString(subtleStyle.Render(label))
	}
	b.WriteString(fmt.Sprintf("  |  Sort: %s", m.query.Sort))
	if t := typeOptions[m.typeIndex]; t != "" {
		b.WriteString("  |  Type: " + t)
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading…\n")
		return b.String()
	}

	if m.rowCount() == 0 {
		if m.query.SearchingOrFiltering() {
			b.WriteString(warnStyle.Render("Nothing matches the current search or filter.") + "\n")
		} else {
			b.WriteString(warnStyle.Render("This folder is empty.") + "\n")
		}
	}

	for i, f := range m.folders {
		b.WriteString(m.renderFolderRow(i, f) + "\n")
	}
	for j, a := range m.assets {
		b.WriteString(m.renderAssetRow(len(m.folders)+j, a) + "\n")
	}

	b.WriteString("\n" + m.renderPagination() + "\n")
	b.WriteString(helpStyle.Render("j/k move  |  Enter open/select  |  space select  |  a page  |  / search  |  s sort  |  t type  |  n/p page"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("u upload  |  e edit  |  E/F folder  |  d delete  |  y copy url  |  Tab selected  |  c confirm  |  q cancel"))
	return b.String()
}

func (m Model) renderTabs() string {
	browse := "Browse"
	selected := fmt.Sprintf("Selected (%d)", m.selection.Len())
	if m.tab == tabBrowse {
		browse = tabActiveStyle.Render(browse)
		selected = subtleStyle.Render(selected)
	} else {
		browse = subtleStyle.Render(browse)
		selected = tabActiveStyle.Render(selected)
	}
	return browse + "   " + selected
}

func (m Model) renderBreadcrumbs() string {
	crumbs := picker.Breadcrumbs("Media Library", m.current)
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		parts[i] = c.Label
	}
	return subtleStyle.Render(strings.Join(parts, " / "))
}

func (m Model) renderFolderRow(i int, f strapi.Folder) string {
	detail := ""
	if f.Children != nil || f.Files != nil {
		nc, nf := 0, 0
		if f.Children != nil {
			nc = f.Children.Count
		}
		if f.Files != nil {
			nf = f.Files.Count
		}
		detail = helpStyle.Render(fmt.Sprintf("  (%d folders, %d assets)", nc, nf))
	}
	content := symbolFolder + " " + f.Name + detail
	return m.renderRow(i, " ", content)
}

func (m Model) renderAssetRow(i int, a strapi.Asset) string {
	mark := " "
	if m.selection.Contains(a) {
		mark = markBarStyle.Render(" ")
	}
	name := a.Name
	if !picker.TypeAllowed(m.opts.AllowedTypes, a.Mime) {
		name = subtleStyle.Render(name)
	}
	content := fmt.Sprintf("%s %s %s", assetSymbol(a), name, helpStyle.Render(fmt.Sprintf("(%s, %.0f KB)", a.Mime, a.Size)))
	return m.renderRow(i, mark, content)
}

func (m Model) renderRow(i int, mark, content string) string {
	cursorCell := " "
	if i == m.cursor {
		cursorCell = cursorBarStyle.Render(" ")
		content = cursorLineStyle.Width(max(20, m.width-4)).Render(content)
	} else {
		content = lipgloss.NewStyle().Width(max(20, m.width-4)).Render(content)
	}
	return cursorCell + mark + content
}

func (m Model) renderPagination() string {
	total := m.pagination.Total
	pages := m.pagination.PageCount
	if pages == 0 {
		pages = 1
	}
	return subtleStyle.Render(fmt.Sprintf("Page %d/%d  |  %d assets  |  %d per page", m.query.Page, pages, total, m.query.PageSize))
}

func (m Model) renderSelected() string {
	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")

	items := m.selection.Items()
	if len(items) == 0 {
		b.WriteString(warnStyle.Render("Nothing selected yet.") + "\n")
	}
	for i, a := range items {
		cursor := "  "
		if i == m.selCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, assetSymbol(a), a.Name, helpStyle.Render(a.Mime))
		if i == m.selCursor {
			line = focusStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("j/k move  |  J/K reorder  |  space remove  |  Tab browse  |  c confirm  |  q cancel"))
	return b.String()
}
