package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bucket-sync/models"
)

const refreshInterval = 500 * time.Millisecond

type monitorModel struct {
	ctx       context.Context
	source    StatusSource
	buildInfo models.AppBuildInfo

	status   models.PeerStatus
	lastErr  error
	loaded   bool
	spinner  spinner.Model
	buckets  table.Model
	overlay  *errorOverlayModel
	showInfo bool
	closed   bool
}

func newMonitorModel(ctx context.Context, source StatusSource, buildInfo models.AppBuildInfo) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Bucket", Width: 8},
			{Title: "Flags", Width: 14},
			{Title: "Size", Width: 8},
		}),
		table.WithHeight(models.MaxActiveBuckets+1),
		table.WithFocused(true),
		table.WithStyles(bucketTableStyles()),
	)

	return monitorModel{
		ctx:       ctx,
		source:    source,
		buildInfo: buildInfo,
		spinner:   s,
		buckets:   t,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchStatus())
}

func (m monitorModel) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.source.Status(m.ctx)
		return statusMsg{status: status, err: err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeAllMsg:
		m.closed = true
		return m, tea.Quit

	case showErrorMsg:
		if m.overlay == nil {
			m.overlay = &errorOverlayModel{}
		}
		m.overlay.push(msg.message)
		return m, nil

	case statusMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.status = msg.status
			m.loaded = true
			m.buckets.SetRows(bucketRows(msg.status.Buckets))
		}
		return m, scheduleRefresh()

	case refreshMsg:
		return m, m.fetchStatus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m monitorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.overlay != nil {
		if key.Matches(msg, keys.dismiss) && !m.overlay.dismiss() {
			m.overlay = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.buildInfo):
		m.showInfo = !m.showInfo
		return m, nil
	case m.showInfo && key.Matches(msg, keys.dismiss):
		m.showInfo = false
		return m, nil
	case key.Matches(msg, keys.up), key.Matches(msg, keys.down):
		var cmd tea.Cmd
		m.buckets, cmd = m.buckets.Update(msg)
		return m, cmd
	}
	return m, nil
}

func bucketRows(buckets []models.BucketStatus) []table.Row {
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, table.Row{
			strconv.Itoa(int(b.ID)),
			formatFlags(b.Flags),
			strconv.Itoa(b.Size),
		})
	}
	return rows
}

func (m monitorModel) View() string {
	if m.closed {
		return ""
	}
	if m.overlay != nil {
		return appStyle.Render(m.overlay.View())
	}
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var b strings.Builder
	switch {
	case !m.loaded:
		b.WriteString(m.spinner.View() + " loading...\n")
	case m.status.Syncing:
		b.WriteString(m.spinner.View() + syncingStyle.Render(" syncing to version "+strconv.Itoa(int(m.status.PendingVersion))) + "\n")
	default:
		b.WriteString(okStyle.Render("idle") + "\n")
	}

	fmt.Fprintf(&b, "synced version: %d\n", m.status.SyncedVersion)
	fmt.Fprintf(&b, "connected: %s  sending: %s  send error: %s\n\n",
		yesNo(m.status.Connected), yesNo(m.status.Sending), yesNo(m.status.SendError))

	if len(m.status.Buckets) == 0 {
		b.WriteString("no active buckets\n")
	} else {
		b.WriteString(m.buckets.View())
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render("status unavailable: "+m.lastErr.Error()) + "\n")
	}

	return appStyle.Render(renderPage("BUCKET SYNC", b.String(), "↑/↓: scroll", "v: about"))
}
