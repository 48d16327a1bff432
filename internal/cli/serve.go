package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/transport/ws"
)

var (
	serveAddr   string
	serveRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the puzzle headless and stream ticks over websocket",
	Long: `Run the tick loop at tick_rate_hz and stream every active tick to websocket
clients connected at /ws. Clients send JSON commands:

  {"type":"move","axis":"y","layer":1,"rotation":"Clockwise90"}
  {"type":"notation","notation":"R U R' U'"}
  {"type":"scramble"}
  {"type":"reset"}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve.addr from config)")
	serveCmd.Flags().BoolVar(&serveRecord, "record", false, "Record completed moves to the database")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	p, err := cubesim.New(puzzleOptions()...)
	if err != nil {
		return err
	}

	if serveRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		rec := recorder.New(db, logger)
		rec.Attach(p)
		if _, err := rec.Start(cubesim.PlayPractice, "remote"); err != nil {
			return err
		}
		defer rec.Stop()
	}

	srv, err := ws.NewServer(p, cfg.TickRateHz, cfg.Serve.MaxQueue, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	httpSrv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 2)
	go func() { errc <- srv.Run(ctx) }()
	go func() { errc <- httpSrv.ListenAndServe() }()
	logger.Info("serving", "addr", "ws://"+addr+"/ws", "tick_rate_hz", cfg.TickRateHz)

	err = <-errc
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
