package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haoyun/fundwatch/internal/api"
	"github.com/haoyun/fundwatch/internal/config"
	"github.com/haoyun/fundwatch/internal/logger"
	"github.com/haoyun/fundwatch/internal/ui"
	"github.com/haoyun/fundwatch/internal/ui/router"
	"github.com/haoyun/fundwatch/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	ctx    *ui.Context
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a new application model
func NewAppModel(ctx *ui.Context) *AppModel {
	dashboard := screen.NewDashboardScreen(ctx)

	return &AppModel{
		ctx:    ctx,
		router: router.New(dashboard),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		m.ctx.ScheduleRefresh(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.router.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		updatedRouter, cmd := m.router.Update(msg)
		m.router = updatedRouter.(*router.Router)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.RefreshTickMsg:
		// One fetch per tick, then arm the next tick. A failed fetch retries
		// on the same fixed interval.
		cmds = append(cmds, m.ctx.RefreshCmd(), m.ctx.ScheduleRefresh())

	case ui.RefreshRequestMsg:
		cmds = append(cmds, m.ctx.RefreshCmd())

	case ui.RouterMsg:
		if cmd := m.handleNavigation(msg.To); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.EditResolvedMsg:
		m.ctx.Edit.Enter(msg.Position)
		cmds = append(cmds, m.router.Push(screen.NewPositionFormScreen(m.ctx)))

	default:
		updatedRouter, cmd := m.router.Update(msg)
		m.router = updatedRouter.(*router.Router)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleNavigation handles navigation to different screens
func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteDashboard:
		return m.router.Replace(screen.NewDashboardScreen(m.ctx))

	case ui.RoutePositionForm:
		// Plain navigation always opens a create form
		m.ctx.Edit.Reset()
		return m.router.Push(screen.NewPositionFormScreen(m.ctx))

	case ui.RouteImportForm:
		return m.router.Push(screen.NewImportFormScreen(m.ctx))

	case ui.RouteLogs:
		return m.router.Push(screen.NewLogsScreen(m.ctx))

	default:
		return nil
	}
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	checkOnly := flag.Bool("check", false, "Validate config, fetch one snapshot and exit")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *checkOnly {
		runCheck(rootCtx, cfg)
		return
	}

	// Logs go to an in-memory buffer; writing to stdout would corrupt the TUI
	logBuffer := logger.NewLogBuffer(512)
	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logBuffer)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("starting fundwatch dashboard",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("refresh_interval", cfg.RefreshInterval()))

	client := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout())
	appCtx := ui.NewContext(cfg, client, appLogger, logBuffer)

	program := tea.NewProgram(
		NewAppModel(appCtx),
		tea.WithAltScreen(),
	)

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		_, err := program.Run()
		stop()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		appLogger.Error("dashboard exited with error", zap.Error(err))
	}
}

// runCheck fetches one snapshot outside the TUI, for smoke-testing a config
// against a running backend.
func runCheck(ctx context.Context, cfg *config.Config) {
	consoleLogger, err := logger.CreateConsoleLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = consoleLogger.Sync()
	}()

	client := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout())

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout())
	defer cancel()

	snap, err := client.GetSnapshot(fetchCtx)
	if err != nil {
		consoleLogger.Fatal("snapshot fetch failed", zap.String("base_url", cfg.BaseURL), zap.Error(err))
	}

	consoleLogger.Info("backend reachable",
		zap.String("base_url", cfg.BaseURL),
		zap.String("updated_at", snap.Meta.UpdatedAt),
		zap.String("base_currency", snap.Meta.BaseCurrency),
		zap.Int("positions", len(snap.Positions)))
}
