package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"mediabrowse/internal/core/picker"
	"mediabrowse/internal/strapi"
)

var errEmptyUploadResponse = errors.New("server returned no asset for upload")

// handleUploadKey drives the upload dialog: stage local files by path, then
// start them all at once. Enter on a non-empty input stages the file, enter
// on an empty input starts the transfer.
func (m Model) handleUploadKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.cancelDialog()

	case "esc":
		if m.uploadsPending() {
			m.confirm = confirmState{kind: confirmDiscardUploads}
			return m, nil
		}
		m.state = stateBrowse
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.upload.input.Value())
		if path != "" {
			m = m.stageFile(path)
			m.upload.input.SetValue("")
			return m, nil
		}
		return m.startUploads()

	case "ctrl+r":
		return m.retryFailedUploads()

	default:
		var cmd tea.Cmd
		m.upload.input, cmd = m.upload.input.Update(msg)
		return m, cmd
	}
}

// stageFile validates the path and allowed type and appends a pending card.
// A rejected file still gets a card so the user sees why it was skipped.
func (m Model) stageFile(path string) Model {
	pf := pendingFile{
		TempID: uuid.NewString(),
		Path:   path,
		Name:   filepath.Base(path),
		Mime:   detectMime(path),
	}
	if _, err := os.Stat(path); err != nil {
		pf.Status = uploadFailed
		pf.Err = err.Error()
	} else if !picker.TypeAllowed(m.opts.AllowedTypes, pf.Mime) {
		pf.Status = uploadFailed
		pf.Err = fmt.Sprintf("type %s is not allowed here", pf.Mime)
	}
	m.upload.pending = append(m.upload.pending, pf)
	return m
}

// startUploads launches one command per queued file under a shared
// cancellable context, so aborting the dialog stops all transfers.
func (m Model) startUploads() (Model, tea.Cmd) {
	var queued []int
	for i, pf := range m.upload.pending {
		if pf.Status == uploadQueued {
			queued = append(queued, i)
		}
	}
	if len(queued) == 0 {
		return m, nil
	}
	if m.upload.cancel == nil {
		m.upload.ctx, m.upload.cancel = context.WithCancel(context.Background())
	}
	cmds := make([]tea.Cmd, 0, len(queued))
	for _, i := range queued {
		m.upload.pending[i].Status = uploadRunning
		m.upload.active++
		cmds = append(cmds, m.uploadFileCmd(m.upload.ctx, m.upload.pending[i]))
	}
	cmds = append(cmds, m.spinner.Tick)
	return m, tea.Batch(cmds...)
}

func (m Model) retryFailedUploads() (Model, tea.Cmd) {
	changed := false
	for i, pf := range m.upload.pending {
		if pf.Status == uploadFailed && pf.Err != "" && fileExists(pf.Path) {
			m.upload.pending[i].Status = uploadQueued
			m.upload.pending[i].Err = ""
			changed = true
		}
	}
	if !changed {
		return m, nil
	}
	return m.startUploads()
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (Model, tea.Cmd) {
	for i, pf := range m.upload.pending {
		if pf.TempID != msg.tempID {
			continue
		}
		if msg.err != nil {
			m.upload.pending[i].Status = uploadFailed
			m.upload.pending[i].Err = msg.err.Error()
		} else {
			m.upload.pending[i].Status = uploadDone
			// Fresh uploads join the selection right away, like assets
			// picked by hand.
			if m.opts.Multiple {
				m.selection.Append([]strapi.Asset{msg.asset})
			} else {
				m.selection.SelectOnly(msg.asset)
			}
		}
		break
	}
	if m.upload.active > 0 {
		m.upload.active--
	}
	if m.upload.active > 0 {
		return m, nil
	}

	// Batch finished. Leave failed cards on screen for a retry; when
	// everything made it, return to browsing and refetch the folder.
	m.upload.cancel = nil
	m.upload.ctx = nil
	failed := 0
	done := 0
	for _, pf := range m.upload.pending {
		switch pf.Status {
		case uploadFailed:
			failed++
		case uploadDone:
			done++
		}
	}
	if failed > 0 {
		m.statusMsg = fmt.Sprintf("%d uploaded, %d failed", done, failed)
		if done > 0 {
			// The successes are already on the server, so the page has to
			// refetch even while the failed cards wait for a retry.
			return m.withRefresh()
		}
		return m, nil
	}
	m.state = stateBrowse
	m.upload.pending = nil
	m.statusMsg = fmt.Sprintf("%d files uploaded", done)
	return m.withRefresh()
}

// discardUploads cancels all in-flight transfers and drops the staged list.
func (m Model) discardUploads() (Model, tea.Cmd) {
	if m.upload.cancel != nil {
		m.upload.cancel()
		m.upload.cancel = nil
		m.upload.ctx = nil
	}
	m.upload.pending = nil
	m.upload.active = 0
	m.state = stateBrowse
	m.statusMsg = "Upload cancelled"
	return m, nil
}

func (m Model) uploadsPending() bool {
	if m.upload.active > 0 {
		return true
	}
	for _, pf := range m.upload.pending {
		if pf.Status == uploadQueued || pf.Status == uploadRunning {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
