// dungeon-server serves the dungeon preview over SSH. Every connection gets
// its own dungeon; logging in as a number (ssh 42@host) pins the seed.
//
//	go build -o dungeon-server ./cmd/server
//	./dungeon-server [--port 2222] [--key server_host_key] [--width 60 ...]
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"dungeon-map/internal/generate"
	"dungeon-map/internal/preview"
	"dungeon-map/internal/render"
	internalssh "dungeon-map/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type options struct {
	port  int
	key   string
	level generate.Config
}

func parseFlags(args []string) (options, error) {
	opts := options{level: generate.DefaultConfig()}
	opts.level.Seed = time.Now().UnixNano()

	fs := flag.NewFlagSet("dungeon-server", flag.ContinueOnError)
	fs.IntVar(&opts.port, "port", 2222, "SSH server port")
	fs.StringVar(&opts.key, "key", "server_host_key", "path to the PEM host key (generated if absent)")
	opts.level.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, opts.level.Validate()
}

func run(args []string, logger *slog.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(opts.key, logger)
	if err != nil {
		return err
	}

	h := &handler{
		level:  opts.level,
		theme:  render.DefaultTheme(),
		seeds:  newSeedSource(opts.level.Seed),
		logger: logger,
	}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", opts.port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: the server only shows generated maps.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "connect", fmt.Sprintf("ssh -t -p %d localhost", opts.port))
		if err := srv.ListenAndServe(); !errors.Is(err, gossh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handler runs one preview per SSH session.
type handler struct {
	level  generate.Config
	theme  render.Theme
	seeds  *seedSource
	logger *slog.Logger
}

// handleSession blocks for the lifetime of the connection.
func (h *handler) handleSession(s gossh.Session) {
	log := h.logger.With("user", s.User(), "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "The dungeon preview needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.Warn("screen setup failed", "err", err)
		return
	}

	cfg := h.level
	cfg.Seed = h.seeds.forUser(s.User())
	log.Info("session started", "seed", cfg.Seed)

	p, err := preview.New(screen, cfg, h.theme, log)
	if err != nil {
		screen.Fini()
		log.Error("generate failed", "err", err)
		return
	}
	if err := p.Run(); err != nil {
		log.Error("preview stopped", "err", err)
		return
	}
	log.Info("session ended")
}

// seedSource hands out dungeon seeds to sessions.
type seedSource struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

func newSeedSource(seed int64) *seedSource {
	return &seedSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

// forUser returns the user name as a seed when it is a number, and a fresh
// seed otherwise.
func (s *seedSource) forUser(user string) int64 {
	if n, err := strconv.ParseInt(user, 10, 64); err == nil {
		return n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; the server still runs with an ephemeral key.
	if block, err := xssh.MarshalPrivateKey(key, "dungeon-server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
			logger.Warn("host key not saved", "path", path, "err", err)
		}
	}
	return signer, nil
}
