package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/auditdeck/internal/audit"
	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/log"
	"github.com/waabox/auditdeck/internal/progress"
)

// AuditsLoadedMsg is sent when the audit list has been fetched from the repository.
// It is exported so that tests can inject it directly into AppModel.Update.
type AuditsLoadedMsg struct {
	Audits []domain.Audit
	Err    error
}

// AuditLoadedMsg is sent when a single audit report has been fetched.
type AuditLoadedMsg struct {
	Audit domain.Audit
	Err   error
}

// ProgressTickMsg is the scheduled callback of a simulated audit run.
// Ticks whose RunID does not match the active run are dropped.
type ProgressTickMsg struct {
	RunID int
}

// viewState indicates the current screen.
type viewState int

const (
	viewDashboard viewState = iota
	viewWizard
	viewProgress
	viewReport
)

// AppModel is the root Bubbletea model for auditdeck.
type AppModel struct {
	repo      domain.AuditRepository
	simulator progress.Simulator
	logger    log.Logger
	now       func() time.Time
	// Navigation
	view viewState
	// Dashboard
	audits    []domain.Audit
	submitted []domain.Audit
	filters   audit.FilterOptions
	list      AuditListModel
	// Submission
	wizard   WizardModel
	progress ProgressModel
	runID    int
	// Report
	report   domain.Audit
	findings FindingsModel
	// General state
	loading bool
	notice  string
	err     error
	width   int
	height  int
}

// NewAppModel creates the root application model. sim is the idle simulator
// every audit run starts from.
func NewAppModel(repo domain.AuditRepository, sim progress.Simulator, logger log.Logger) AppModel {
	if logger == nil {
		logger = log.Noop
	}
	return AppModel{
		repo:      repo,
		simulator: sim,
		logger:    logger,
		now:       time.Now,
		filters:   audit.DefaultFilterOptions(),
		list:      NewAuditListModel(nil),
		wizard:    NewWizardModel(),
		progress:  NewProgressModel(sim),
		loading:   true,
	}
}

// WithClock returns a copy of the model using now as its time source.
func (m AppModel) WithClock(now func() time.Time) AppModel {
	m.now = now
	return m
}

// Init triggers the initial audit load.
func (m AppModel) Init() tea.Cmd {
	return m.loadAudits()
}

func (m AppModel) loadAudits() tea.Cmd {
	return func() tea.Msg {
		audits, err := m.repo.ListAudits()
		return AuditsLoadedMsg{Audits: audits, Err: err}
	}
}

func (m AppModel) loadAudit(id string) tea.Cmd {
	submitted := m.submitted
	return func() tea.Msg {
		for _, a := range submitted {
			if a.ID == id {
				return AuditLoadedMsg{Audit: a}
			}
		}
		a, err := m.repo.GetAudit(id)
		return AuditLoadedMsg{Audit: a, Err: err}
	}
}

func tickProgress(d time.Duration, runID int) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ProgressTickMsg{RunID: runID}
	})
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case AuditsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.audits = msg.Audits
		m = m.refreshList()

	case AuditLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m = m.openReport(msg.Audit)

	case ProgressTickMsg:
		return m.updateTick(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewDashboard:
			return m.updateDashboard(msg)
		case viewWizard:
			return m.updateWizard(msg)
		case viewProgress:
			return m.updateProgress(msg)
		case viewReport:
			return m.updateReport(msg)
		}
	}
	return m, nil
}

func (m AppModel) updateTick(msg ProgressTickMsg) (tea.Model, tea.Cmd) {
	if msg.RunID != m.runID || m.view != viewProgress || !m.progress.Snapshot().Running() {
		return m, nil
	}
	before := m.progress.Snapshot()
	m.progress = m.progress.Tick()
	snap := m.progress.Snapshot()
	if snap.StageIndex != before.StageIndex {
		m.logger.Debugf("stage %d/%d: %s", snap.StageIndex+1, snap.StageCount, snap.Stage.Label)
	}
	if snap.Running() {
		return m, tickProgress(m.simulator.Config().TickInterval, m.runID)
	}
	return m.completeRun()
}

func (m AppModel) completeRun() (tea.Model, tea.Cmd) {
	a, err := audit.NewFromSubmission(m.wizard.Submission(), m.now())
	if err != nil {
		m.err = err
		m.view = viewDashboard
		return m, nil
	}
	m.logger.WithValues(log.Kv{"audit": a.ID}).Infof("audit run completed")
	m.submitted = append([]domain.Audit{a}, m.submitted...)
	m.wizard = NewWizardModel()
	m = m.refreshList()
	m = m.openReport(a)
	return m, nil
}

func (m AppModel) refreshList() AppModel {
	all := make([]domain.Audit, 0, len(m.submitted)+len(m.audits))
	all = append(all, m.submitted...)
	all = append(all, m.audits...)
	m.list = m.list.UpdateAudits(m.filters.Apply(all, m.now()))
	return m
}

func (m AppModel) openReport(a domain.Audit) AppModel {
	m.report = a
	m.findings = NewFindingsModel(a.Vulnerabilities)
	m.view = viewReport
	return m
}

func (m AppModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "down":
		m.list = m.list.MoveDown()
	case "up":
		m.list = m.list.MoveUp()
	case "enter":
		if len(m.list.Audits()) > 0 {
			return m, m.loadAudit(m.list.SelectedAudit().ID)
		}
	case "n":
		m.wizard = NewWizardModel()
		m.notice = ""
		m.view = viewWizard
	case "s":
		m.filters.Status = audit.NextStatus(m.filters.Status)
		m = m.refreshList()
	case "f":
		m.filters.ScoreRange = audit.NextScoreRange(m.filters.ScoreRange)
		m = m.refreshList()
	case "o":
		if m.filters.SortOrder == audit.SortDesc {
			m.filters.SortOrder = audit.SortAsc
		} else {
			m.filters.SortOrder = audit.SortDesc
		}
		m = m.refreshList()
	case "ctrl+r":
		m.loading = true
		return m, m.loadAudits()
	}
	return m, nil
}

func (m AppModel) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		m.wizard = m.wizard.Type(string(msg.Runes))
		return m, nil
	case tea.KeyEnter:
		m.wizard = m.wizard.Newline()
		return m, nil
	case tea.KeyBackspace:
		m.wizard = m.wizard.Backspace()
		return m, nil
	case tea.KeyTab:
		m.wizard = m.wizard.NextField()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+n":
		if m.wizard.Step() == domain.StepReview {
			return m.startRun()
		}
		m.wizard, _ = m.wizard.Next()
	case "esc":
		var ok bool
		if m.wizard, ok = m.wizard.Back(); !ok {
			m.view = viewDashboard
		}
	}
	return m, nil
}

func (m AppModel) startRun() (tea.Model, tea.Cmd) {
	if err := m.wizard.Submission().Validate(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.runID++
	m.notice = ""
	m.progress = NewProgressModel(m.simulator).Start()
	m.view = viewProgress
	m.logger.WithValues(log.Kv{"run": m.runID, "project": m.wizard.Submission().ProjectName}).Infof("audit run started")
	return m, tickProgress(m.simulator.Config().TickInterval, m.runID)
}

func (m AppModel) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.progress = m.progress.Cancel()
		snap := m.progress.Snapshot()
		m.logger.WithValues(log.Kv{"run": m.runID}).Infof("audit run cancelled at %d%%", snap.Percent)
		m.notice = fmt.Sprintf("Audit cancelled at %d%%.", snap.Percent)
		m.view = viewWizard
	}
	return m, nil
}

func (m AppModel) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "down":
		m.findings = m.findings.MoveDown()
	case "up":
		m.findings = m.findings.MoveUp()
	case "esc":
		m.view = viewDashboard
	}
	return m, nil
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.loading {
		return "Loading audits...\n"
	}
	if m.err != nil && m.view == viewDashboard {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nPress 'ctrl+r' to retry or 'q' to quit.\n"
	}

	switch m.view {
	case viewWizard:
		return m.renderWizardView()
	case viewProgress:
		return m.renderProgressView()
	case viewReport:
		return m.renderReportView()
	default:
		return m.renderDashboardView()
	}
}

func (m AppModel) header(title string) string {
	return fmt.Sprintf(" auditdeck | %s\n", title)
}

func (m AppModel) renderDashboardView() string {
	all := append(append([]domain.Audit{}, m.submitted...), m.audits...)
	stats := audit.Summarize(all)
	summary := fmt.Sprintf(" Total %d   Completed %d   Processing %d   Avg score %d   Findings %d\n",
		stats.Total, stats.Completed, stats.Processing, stats.AverageScore, stats.Vulnerabilities) +
		fmt.Sprintf(" Gas saved %d   NFTs earned %d\n", stats.GasSaved, stats.Certificates)
	filters := fmt.Sprintf(" status: %s   score: %s   sort: %s %s   (%d active)\n",
		m.filters.Status, m.filters.ScoreRange, m.filters.SortBy, m.filters.SortOrder, m.filters.ActiveCount())

	selected := m.list.SelectedAudit()
	statusBar := " \n"
	if selected.ID != "" {
		statusBar = fmt.Sprintf(" %s  %s\n", selected.ID, statusText(selected.Status))
	}
	footer := " ↑/↓: navigate   enter: report   n: new audit   s: status   f: score   o: order   q: quit\n"
	return m.header("Dashboard") + separator + summary + filters + separator +
		m.list.View() + "\n" + separator + statusBar + separator + footer
}

func (m AppModel) renderWizardView() string {
	body := m.wizard.View()
	notice := ""
	if m.notice != "" {
		notice = noticeStyle.Render(" "+m.notice) + "\n"
	}
	next := "ctrl+n: next"
	if m.wizard.Step() == domain.StepReview {
		next = "ctrl+n: start audit"
	}
	footer := fmt.Sprintf(" tab: next field   %s   esc: back\n", next)
	return m.header("New audit") + separator + body + "\n" + notice + separator + footer
}

func (m AppModel) renderProgressView() string {
	footer := " esc: cancel\n"
	return m.header("Auditing "+m.wizard.Submission().ProjectName) + separator + m.progress.View() + separator + footer
}

func (m AppModel) renderReportView() string {
	a := m.report
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(" "+a.ProjectName) + "\n")
	if a.Description != "" {
		sb.WriteString(mutedStyle.Render(" "+firstLine(a.Description)) + "\n")
	}
	sb.WriteString(fmt.Sprintf(" %s  %s\n\n", a.ID, formatDate(a)))

	if !a.HasScore() {
		sb.WriteString(fmt.Sprintf(" Status: %s\n The audit is still in progress.\n", statusText(a.Status)))
	} else {
		sb.WriteString(fmt.Sprintf(" Trust score: %s / 100   Code-to-intent match: %d%%\n\n",
			scoreStyle(a.Score).Render(fmt.Sprintf("%d", a.Score)), a.CodeToIntentMatch))
		sb.WriteString(fmt.Sprintf(" Vulnerabilities (%d)\n", len(a.Vulnerabilities)))
		sb.WriteString(m.findings.View())
		if len(a.GasOptimizations) > 0 {
			sb.WriteString("\n Gas optimizations\n")
			for _, g := range a.GasOptimizations {
				sb.WriteString(fmt.Sprintf("  %-30s %7d → %7d  (-%.1f%%)\n",
					truncate(g.Title, 30), g.CurrentGas, g.OptimizedGas, g.SavingsPercent()))
			}
		}
		if c := a.Certificate; c != nil {
			sb.WriteString("\n Proof of Integrity NFT\n")
			sb.WriteString(fmt.Sprintf("  Token ID: %s   Minted: %s\n",
				titleStyle.Render(c.TokenID), c.MintedAt.Format("2006-01-02")))
		}
	}

	footer := " ↑/↓: findings   esc: back   q: quit\n"
	return m.header("Report") + separator + sb.String() + "\n" + separator + footer
}

// Run starts the Bubbletea program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, repo domain.AuditRepository, sim progress.Simulator, logger log.Logger) error {
	p := tea.NewProgram(NewAppModel(repo, sim, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
