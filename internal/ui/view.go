package ui

import (
	"strings"
)

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Media Library"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	b.WriteString("\n\n")

	if m.confirm.kind != confirmNone {
		b.WriteString(m.renderConfirm())
		return b.String()
	}

	switch m.state {
	case stateBrowse:
		if m.tab == tabSelected {
			b.WriteString(m.renderSelected())
		} else {
			b.WriteString(m.renderBrowse())
		}
	case stateUpload:
		b.WriteString(m.renderUpload())
	case stateAssetEdit:
		b.WriteString(m.renderAssetEdit())
	case stateFolderForm:
		b.WriteString(m.renderFolderForm())
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n" + subtleStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m Model) renderConfirm() string {
	var q string
	switch m.confirm.kind {
	case confirmDiscardUploads:
		q = "Discard the pending uploads?"
	case confirmDeleteAsset:
		q = "Delete this asset? This cannot be undone."
	case confirmDeleteFolder:
		q = "Delete this folder and all assets inside it?"
	}
	return warnStyle.Render(q) + "\n\n" + helpStyle.Render("y confirm  |  n cancel")
}
