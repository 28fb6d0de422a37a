package ui

import (
	"fmt"
	"strings"
)

func (m Model) renderUpload() string {
	var b strings.Builder
	b.WriteString("Upload assets")
	if m.current != nil {
		b.WriteString(" to " + m.current.Name)
	}
	b.WriteString("\n\n")
	b.WriteString(m.upload.input.View() + "\n\n")

	for _, pf := range m.upload.pending {
		var status string
		switch pf.Status {
		case uploadQueued:
			status = subtleStyle.Render("queued")
		case uploadRunning:
			status = m.spinner.View() + " uploading"
		case uploadDone:
			status = doneStyle.Render("done")
		case uploadFailed:
			status = errStyle.Render("failed: " + pf.Err)
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", pf.Name, helpStyle.Render(pf.Mime), status))
	}
	if len(m.upload.pending) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Enter add file  |  Enter (empty) start  |  ctrl+r retry failed  |  Esc back"))
	return b.String()
}

func (m Model) renderAssetEdit() string {
	if m.edit.picker.open {
		return m.edit.picker.render(m.tree)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Edit %s\n\n", m.edit.asset.Name))

	fields := []struct {
		label string
		view  string
	}{
		{"Name", m.edit.name.View()},
		{"Alt text", m.edit.alt.View()},
		{"Caption", m.edit.caption.View()},
		{"Replace with", m.edit.replacement.View()},
	}
	for i, f := range fields {
		label := f.label
		if i == m.edit.focus {
			label = focusStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%-14s %s\n", label+":", f.view))
	}

	dest := m.edit.destLabel
	if dest == "" {
		dest = "Media Library"
	}
	b.WriteString(fmt.Sprintf("%-14s %s\n", "Folder:", dest))

	if m.edit.saving {
		b.WriteString("\n" + m.spinner.View() + " Saving…\n")
	}
	if m.edit.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(m.edit.errMsg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Tab next field  |  ctrl+f move to folder  |  ctrl+y copy url  |  Enter save  |  ctrl+d delete  |  Esc back"))
	return b.String()
}

func (m Model) renderFolderForm() string {
	if m.folder.picker.open {
		return m.folder.picker.render(m.tree)
	}

	var b strings.Builder
	if m.folder.id == 0 {
		b.WriteString("New folder\n\n")
	} else {
		b.WriteString("Edit folder\n\n")
	}
	b.WriteString("Name:   " + m.folder.name.View() + "\n")

	parent := m.folder.destLabel
	if parent == "" {
		parent = "Media Library"
	}
	b.WriteString("Parent: " + parent + "\n")

	if m.folder.saving {
		b.WriteString("\n" + m.spinner.View() + " Saving…\n")
	}
	if m.folder.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(m.folder.errMsg) + "\n")
	}

	help := "ctrl+f choose parent  |  Enter save  |  Esc back"
	if m.folder.id != 0 {
		help = "ctrl+f choose parent  |  Enter save  |  ctrl+d delete  |  Esc back"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}
