package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shhan95/firecode-watch/internal/checker"
	"github.com/shhan95/firecode-watch/internal/config"
	"github.com/shhan95/firecode-watch/internal/dashboard"
	"github.com/shhan95/firecode-watch/internal/feed"
	"github.com/shhan95/firecode-watch/internal/lawgo"
	"github.com/shhan95/firecode-watch/internal/notify"
	"github.com/shhan95/firecode-watch/internal/observer"
	"github.com/shhan95/firecode-watch/internal/render"
	"github.com/shhan95/firecode-watch/internal/schedule"
	"github.com/shhan95/firecode-watch/tui"
	"github.com/shhan95/firecode-watch/web/api"
)

var (
	servePort int
	serveCron string
)

func init() {
	// check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run one check over all registered standards",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(checkCmd)

	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server and scheduled checks",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveCron, "cron", "", "check schedule (overrides config)")
	rootCmd.AddCommand(serveCmd)

	// status command
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest check run",
		RunE:  runStatus,
	}
	rootCmd.AddCommand(statusCmd)

	// watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Launch the terminal dashboard",
		RunE:  runWatch,
	}
	rootCmd.AddCommand(watchCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

func newChecker(cfg *config.Config) *checker.Checker {
	api := lawgo.New(cfg.Lawgo.OC, cfg.Lawgo.Mock)
	if cfg.Lawgo.MaxRetries > 0 {
		api.MaxRetries = cfg.Lawgo.MaxRetries
	}
	api.SetTimeout(time.Duration(cfg.Lawgo.TimeoutSeconds) * time.Second)

	chk := checker.New(api, checker.Paths{
		RunLog:   cfg.RunLogPath(),
		Snapshot: cfg.SnapshotPath(),
		NFPC:     cfg.NFPCPath(),
		NFTC:     cfg.NFTCPath(),
	})
	if cfg.Check.Concurrency > 0 {
		chk.Concurrency = cfg.Check.Concurrency
	}
	if cfg.Notifications.SlackWebhook != "" {
		chk.Notifier = notify.NewSlackNotifier(cfg.Notifications.SlackWebhook)
	}
	return chk
}

// feedBase resolves where the dashboard fetches its resources from: an
// explicit base URL from config, or the serve process's own /data/ mount.
func feedBase(cfg *config.Config, port int) string {
	if cfg.Web.BaseURL != "" {
		return cfg.Web.BaseURL
	}
	host := cfg.Web.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/data/", host, port)
}

func newController(cfg *config.Config) (*dashboard.Controller, error) {
	fc, err := feed.NewClient(feedBase(cfg, cfg.Web.Port))
	if err != nil {
		return nil, err
	}
	return dashboard.NewController(fc, dashboard.DefaultPaths()), nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	chk := newChecker(cfg)
	rec, err := chk.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", rec.Date, rec.Result)
	if rec.Summary != "" {
		fmt.Println(rec.Summary)
	}
	for _, c := range rec.Changes {
		fmt.Printf("  changed: %s %s (%s)\n", c.Code, c.Title, c.NoticeNo)
	}
	for _, e := range rec.Errors {
		fmt.Printf("  error: %s %s/%s status=%s\n", e.Code, e.Where, e.Kind, e.Status)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Web.Port
	}

	fc, err := feed.NewClient(feedBase(cfg, port))
	if err != nil {
		return err
	}
	controller := dashboard.NewController(fc, dashboard.DefaultPaths())

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, port)
	server := api.NewServer(controller, cfg.Data.Dir, addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := observer.NewFeedWatcher(cfg.Data.Dir, server.BroadcastRefresh)
	if err != nil {
		log.Printf("feed watcher disabled: %v", err)
	} else {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	cronExpr := serveCron
	if cronExpr == "" {
		cronExpr = cfg.Check.Cron
	}
	if cronExpr != "" {
		chk := newChecker(cfg)
		job, err := schedule.New(cronExpr, func(ctx context.Context) {
			if _, err := chk.Run(ctx); err != nil {
				log.Printf("scheduled check: %v", err)
			}
		})
		if err != nil {
			return err
		}
		job.Start(ctx)
		fmt.Printf("Scheduled check %q, next run %s\n", job.Expr(), job.Next().Format(time.RFC3339))
	}

	fmt.Printf("Starting dashboard at http://%s\n", addr)
	return server.Start()
}

var (
	statusDateStyle = lipgloss.NewStyle().Bold(true)

	statusNeutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginRight(1)
	statusAttentionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).MarginRight(1)
	statusCriticalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).MarginRight(1)
)

func statusPillStyle(s render.State) lipgloss.Style {
	switch s {
	case render.StateAttention:
		return statusAttentionStyle
	case render.StateCritical:
		return statusCriticalStyle
	default:
		return statusNeutralStyle
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	controller, err := newController(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), feed.DefaultTimeout)
	defer cancel()
	view := controller.Load(ctx)

	switch {
	case view.Run.Failed():
		fmt.Printf("Load failed: %s\n", view.Run.Message)
		return nil
	case view.Run.NoData():
		fmt.Println(view.Run.Message)
		return nil
	}

	rec := view.Run.Record
	fmt.Printf("%s  %s\n", statusDateStyle.Render(rec.Date), rec.Result)
	var pills []string
	for _, p := range render.Pills(rec) {
		pills = append(pills, statusPillStyle(p.State).Render("["+p.Label+"]"))
	}
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, pills...))
	if rec.Summary != "" {
		fmt.Println(rec.Summary)
	}

	if len(rec.Changes) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tTITLE\tNOTICE\tANNOUNCED\tEFFECTIVE")
		for _, c := range rec.Changes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				c.Code, c.Title, c.NoticeNo, c.AnnounceDate, c.EffectiveDate)
		}
		w.Flush()
	}

	if len(rec.Errors) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tWHERE\tKIND\tSTATUS\tMESSAGE")
		for _, e := range rec.Errors {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Code, e.Where, e.Kind, e.Status, e.Message)
		}
		w.Flush()
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	controller, err := newController(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(controller), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
