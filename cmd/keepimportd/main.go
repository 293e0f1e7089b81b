// Command keepimportd runs the Keep Takeout import HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	kgin "github.com/fwojciec/keepimport/gin"
	"github.com/fwojciec/keepimport/goquery"
	kslog "github.com/fwojciec/keepimport/slog"
	"github.com/fwojciec/keepimport/sqlite"
	"github.com/fwojciec/keepimport/takeout"
)

// CLI defines the command-line flags for Kong.
type CLI struct {
	Addr     string  `default:":8080" help:"Listen address"`
	DB       string  `help:"SQLite database path (defaults to $KEEPIMPORT_DB, then ~/.keepimport/keepimport.db)"`
	MaxNotes int     `default:"5000" help:"Maximum notes accepted per archive"`
	Rate     float64 `default:"1" help:"Import requests per second allowed per user (0 disables limiting)"`
	Debug    bool    `help:"Enable debug logging"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("keepimportd"),
		kong.Description("Imports Google Keep Takeout archives into a per-user notes database."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	db := sqlite.NewDB(dbPath)
	if err := db.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set KEEPIMPORT_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer db.Close()

	importer := &takeout.Importer{
		Scanner:   takeout.NewScanner(logger),
		Extractor: goquery.NewExtractor(),
		Notes:     sqlite.NewNoteService(db),
		Users:     sqlite.NewUserService(db),
		Logger:    logger,
		MaxNotes:  cli.MaxNotes,
	}

	var limiter *kgin.UserLimiter
	if cli.Rate > 0 {
		limiter = kgin.NewUserLimiter(cli.Rate, 1)
	}
	server := kgin.NewServer(kslog.NewLoggingImportService(importer, logger), limiter)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cli.Addr, Handler: server.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cli.Addr, "db", dbPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func defaultDBPath() string {
	if path := os.Getenv("KEEPIMPORT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "keepimport.db"
	}
	dir := filepath.Join(home, ".keepimport")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "keepimport.db")
}
