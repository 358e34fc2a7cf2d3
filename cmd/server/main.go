package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/fionnbanksg/MC-clone-webgl/internal/config"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/render"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/sim"
	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
	"github.com/fionnbanksg/MC-clone-webgl/internal/journal"
	"github.com/fionnbanksg/MC-clone-webgl/internal/transport/ws"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to server.yaml (empty: built-in defaults)")
		addr       = flag.String("addr", "", "http listen address (overrides config)")
		seed       = flag.Int64("seed", 0, "world seed (overrides config when non-zero)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.ListenAddr = *addr
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	color.Blue("voxel world server")
	logger.Printf("seed=%d render_distance=%d mesh_workers=%d", cfg.Seed, cfg.RenderDistance, cfg.MeshWorkers)

	// Edit journal (JSONL + optional sqlite index).
	var sink *journal.Sink
	if cfg.JournalEnabled {
		journalDir := filepath.Join(cfg.DataDir, "journal")
		idx, err := journal.OpenSQLite(filepath.Join(cfg.DataDir, "journal.db"))
		if err != nil {
			logger.Fatalf("open journal index: %v", err)
		}
		sink = journal.NewSink(journal.NewWriter(journalDir, "edits"), idx, logger)
		defer sink.Close()
	}

	broadcast := render.NewBroadcast(logger)

	var builder *world.BuilderPool
	if cfg.MeshWorkers > 0 {
		builder = world.NewBuilderPool(cfg.MeshWorkers, cfg.MeshQueue)
		defer builder.Shutdown()
	}

	opts := world.Options{
		Seed:           cfg.Seed,
		RenderDistance: cfg.RenderDistance,
		MeshBudget:     cfg.MeshBudget,
		Renderer:       broadcast,
		Builder:        builder,
		Log:            logger,
	}
	if sink != nil {
		opts.Edits = sink
	}
	w := world.New(opts)

	loop := sim.NewLoop(sim.Options{
		World:      w,
		TickRateHz: cfg.TickRateHz,
		Log:        logger,
	})

	ctx, cancel := signalContext()
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/stats", func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(map[string]any{
			"viewers":        broadcast.SubscriberCount(),
			"dropped_frames": broadcast.Dropped(),
		})
	})
	if envBool("VW_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		logger.Printf("pprof endpoints disabled (VW_ENABLE_PPROF_HTTP=false)")
	}

	info := ws.WorldInfo{Seed: cfg.Seed, RenderDistance: cfg.RenderDistance}
	mux.HandleFunc("/v1/ws", ws.NewServer(loop, broadcast, info, cfg.ViewerQueue, logger).Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	color.Green("listening on %s", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
	<-loopDone
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
