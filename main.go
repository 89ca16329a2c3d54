// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// main.go - Entry point and root application model for pdfchat.
//
// The process starts in one of two modes: the full-screen TUI (default)
// or a one-shot CLI command. The TUI owns a small state machine:
//
//	stateLoading -> stateAuth -> stateChat
//	       \________________________^
//
// The saved session is resolved asynchronously at startup; neither the
// auth form nor the chat view is drawn until that check settles, so a
// stale token never flashes a protected frame.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/cli"
	"github.com/jeranaias/pdfchat-tui/internal/config"
	"github.com/jeranaias/pdfchat-tui/internal/controller"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
	authview "github.com/jeranaias/pdfchat-tui/internal/ui/auth"
	"github.com/jeranaias/pdfchat-tui/internal/ui/chat"
	"github.com/jeranaias/pdfchat-tui/internal/ui/components"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for config reload notifications
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdLogin:
		cli.Run(func() error { return cli.HandleLogin(args) })
	case cli.CmdLogout:
		cli.Run(func() error { return cli.HandleLogout(args) })
	case cli.CmdUpload:
		cli.Run(func() error { return cli.HandleUpload(args) })
	case cli.CmdAsk:
		cli.Run(func() error { return cli.HandleAsk(args) })
	case cli.CmdRepl:
		cli.Run(func() error { return cli.HandleRepl(args) })
	case cli.CmdLimits:
		cli.Run(func() error { return cli.HandleLimits(args) })
	case cli.CmdHistory:
		cli.Run(func() error { return cli.HandleHistory(args) })
	case cli.CmdReset:
		cli.Run(func() error { return cli.HandleReset(args) })
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI()
	}
}

// runTUI wires the clients and starts the Bubble Tea program.
func runTUI() {
	cfg := config.Global()

	app, err := cli.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// History is optional; without it the chat view loses /history.
	history, err := app.OpenHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: question history unavailable: %v\n", err)
		history = nil
	}
	if history != nil {
		defer history.Close()
	}

	ctrlCfg := controller.Config{
		Backend:     app.Backend,
		AskInterval: cfg.Backend.AskInterval(),
	}
	// A nil *storage.History must not become a non-nil Recorder.
	if history != nil {
		ctrlCfg.History = history
	}
	ctrl := controller.New(ctrlCfg)

	theme := styles.NewTheme()
	m := newAppModel(theme, app.Auth, app.Store, ctrl, history, cfg)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Live config reload: edits to ~/.pdfchat/config.toml apply without
	// a restart.
	stopWatch, err := config.Watch(func(cfg *config.Config) {
		programMu.Lock()
		ref := programRef
		programMu.Unlock()
		if ref != nil {
			ref.Send(configReloadedMsg{})
		}
	})
	if err == nil {
		defer stopWatch()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running pdfchat: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appState represents the current top-level view.
type appState int

const (
	stateLoading appState = iota // Session restore in flight
	stateAuth                    // Sign-in / sign-up form
	stateChat                    // Document chat
)

// sessionResolvedMsg delivers the startup session check.
type sessionResolvedMsg struct {
	session *auth.Session
	err     error
}

// configReloadedMsg reports that the config file was reloaded from disk.
type configReloadedMsg struct{}

// appModel is the root Bubble Tea model. It owns the view state machine
// and routes messages to the active child view.
type appModel struct {
	state appState
	theme *styles.Theme

	provider *auth.Client
	store    *session.Store
	ctrl     *controller.Controller
	history  *storage.History
	cfg      *config.Config

	authModel authview.Model
	chatModel chat.Model
	spinner   components.Spinner

	// loadNotice is shown above the auth form when the startup session
	// check failed (network down, auth server unreachable).
	loadNotice string

	width  int
	height int
}

func newAppModel(theme *styles.Theme, provider *auth.Client, store *session.Store, ctrl *controller.Controller, history *storage.History, cfg *config.Config) *appModel {
	return &appModel{
		state:     stateLoading,
		theme:     theme,
		provider:  provider,
		store:     store,
		ctrl:      ctrl,
		history:   history,
		cfg:       cfg,
		authModel: authview.New(theme, provider, store, cfg.Auth.OAuthPort),
		chatModel: chat.New(theme, ctrl, history, cfg.History.Limit),
		spinner:   components.NewSpinner(theme),
	}
}

// Init kicks off the session restore. No protected view is drawn until
// it settles.
func (m *appModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Start("Restoring session"),
		resolveSessionCmd(m.store),
	)
}

// resolveSessionCmd restores the saved session, refreshing it when
// expired. A nil session means signed out.
func resolveSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.Resolve(context.Background())
		return sessionResolvedMsg{session: sess, err: err}
	}
}

// clearSessionCmd signs out and reports back as a resolved nil session.
func clearSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		_ = store.Clear(context.Background())
		return sessionResolvedMsg{}
	}
}

// Update handles messages and routes to the active view.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.authModel.SetSize(msg.Width, msg.Height)
		m.chatModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case sessionResolvedMsg:
		return m.handleSessionResolved(msg)

	case authview.SignedInMsg:
		return m.enterChat()

	case chat.SignedOutMsg:
		m.state = stateLoading
		return m, tea.Batch(m.spinner.Start("Signing out"), clearSessionCmd(m.store))

	case configReloadedMsg:
		m.cfg = config.Global()
		return m, nil
	}

	return m.updateActiveView(msg)
}

// handleSessionResolved leaves the loading state.
func (m *appModel) handleSessionResolved(msg sessionResolvedMsg) (tea.Model, tea.Cmd) {
	m.spinner.Stop()

	if msg.err != nil {
		// Transient failure: the stored record survives for the next
		// start, but this run requires a fresh sign-in.
		m.loadNotice = "Could not restore the saved session. Sign in to continue."
		m.state = stateAuth
		return m, m.authModel.Init()
	}

	if msg.session == nil {
		m.state = stateAuth
		return m, m.authModel.Init()
	}

	return m.enterChat()
}

// enterChat switches to the chat view and mounts it.
func (m *appModel) enterChat() (tea.Model, tea.Cmd) {
	m.spinner.Stop()
	m.state = stateChat
	m.loadNotice = ""
	m.chatModel.SetSize(m.width, m.height)
	return m, m.chatModel.Init()
}

// updateActiveView forwards a message to whichever view is active.
func (m *appModel) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateAuth:
		var cmd tea.Cmd
		m.authModel, cmd = m.authModel.Update(msg)
		return m, cmd

	case stateChat:
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// View renders the active view.
func (m *appModel) View() string {
	switch m.state {
	case stateAuth:
		view := m.authModel.View()
		if m.loadNotice != "" {
			notice := m.theme.WarningStyle.Render(m.loadNotice)
			view = lipgloss.JoinVertical(lipgloss.Center, notice, view)
		}
		return view

	case stateChat:
		return m.chatModel.View()

	default:
		line := m.spinner.View()
		if line == "" {
			line = "Restoring session…"
		}
		if m.width == 0 || m.height == 0 {
			return line
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.LoadingBox.Render(line))
	}
}
