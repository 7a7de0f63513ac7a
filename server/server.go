// Package server serves games over SSH.
//
// Every connection plays its own copy of the world, as the player named by
// the SSH user. A player can only be connected once at a time. When a
// connection drops, or the player leaves, with the game still running, the
// game is kept in memory for a while and offered back on the next login.
package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/pkg/errors"
	"github.com/zond/grue"
	"github.com/zond/grue/content"
	"github.com/zond/grue/pemfile"
	"github.com/zond/grue/session"
	"github.com/zond/grue/storage"
	"github.com/zond/grue/structs"
	"golang.org/x/term"

	cache "github.com/go-pkgz/expirable-cache/v3"
	gossh "golang.org/x/crypto/ssh"
)

type Config struct {
	SSHAddr string
	// MetricsAddr is where Prometheus metrics are served. Empty disables them.
	MetricsAddr string
	// Dir holds the save database, the host key and the transcripts.
	Dir string
	// World is a content file to play instead of the embedded one.
	World string
	// Resume is how long the game of a disconnected player is kept. Zero disables resuming.
	Resume       time.Duration
	MaxSuspended int
	// KeyBits is the size of a generated host key.
	KeyBits int
}

func DefaultConfig() Config {
	return Config{
		SSHAddr:      "127.0.0.1:15000",
		Dir:          filepath.Join(os.Getenv("HOME"), ".grue"),
		Resume:       30 * time.Minute,
		MaxSuspended: 1000,
		KeyBits:      pemfile.DefaultBits,
	}
}

type Server struct {
	config    Config
	content   []byte
	store     *storage.Storage
	playing   *grue.SyncMap[string, bool]
	suspended cache.Cache[string, *structs.Snapshot]
	metrics   *metrics
}

func New(ctx context.Context, config Config) (*Server, error) {
	if err := os.MkdirAll(config.Dir, 0700); err != nil {
		return nil, grue.WithStack(err)
	}
	source := content.Source()
	if config.World != "" {
		var err error
		if source, err = os.ReadFile(config.World); err != nil {
			return nil, grue.WithStack(err)
		}
	}
	if _, err := structs.LoadWorld(bytes.NewReader(source)); err != nil {
		return nil, errors.Wrapf(err, "loading world")
	}
	store, err := storage.New(ctx, filepath.Join(config.Dir, "saves.sqlite"))
	if err != nil {
		return nil, grue.WithStack(err)
	}
	s := &Server{
		config:    config,
		content:   source,
		store:     store,
		playing:   grue.NewSyncMap[string, bool](),
		suspended: cache.NewCache[string, *structs.Snapshot]().WithTTL(config.Resume).WithMaxKeys(config.MaxSuspended),
	}
	s.metrics = newMetrics(func() float64 {
		return float64(s.suspended.Len())
	})
	return s, nil
}

func (s *Server) Close() error {
	return s.store.Close()
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.SSHAddr)
	if err != nil {
		return grue.WithStack(err)
	}
	if s.config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.handler())
		metricsServer := &http.Server{Addr: s.config.MetricsAddr, Handler: mux}
		go func() {
			<-ctx.Done()
			metricsServer.Close()
		}()
		go func() {
			log.Printf("Serving metrics on %q", s.config.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server: %v", err)
			}
		}()
	}
	return s.Serve(ctx, l)
}

// Serve serves SSH on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	pemBytes, created, err := pemfile.KeyParams{
		KeyPath:       filepath.Join(s.config.Dir, "private.pem"),
		SSHPubKeyPath: filepath.Join(s.config.Dir, "public.pem"),
		Bits:          s.config.KeyBits,
	}.Ensure()
	if err != nil {
		return grue.WithStack(err)
	}
	if created {
		log.Printf("Generated server key pair in %q", s.config.Dir)
	}
	signer, err := pemfile.Signer(pemBytes)
	if err != nil {
		return grue.WithStack(err)
	}
	sshServer := &ssh.Server{
		Handler: s.HandleSession,
	}
	if err := sshServer.SetOption(ssh.HostKeyPEM(pemBytes)); err != nil {
		return grue.WithStack(err)
	}
	go func() {
		<-ctx.Done()
		sshServer.Close()
	}()
	log.Printf("Listening on %q with public key %q", l.Addr(), gossh.FingerprintSHA256(signer.PublicKey()))
	if err := sshServer.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return grue.WithStack(err)
	}
	return nil
}

func (s *Server) HandleSession(sess ssh.Session) {
	t := term.NewTerminal(sess, "> ")
	if err := s.play(sess.Context(), sess.User(), t); err != nil {
		if !errors.Is(err, io.EOF) {
			fmt.Fprintf(t, "InternalServerError: %v\n", err)
			log.Println(err)
			log.Println(grue.StackTrace(err))
		}
	}
}

// play runs a game for owner on t.
func (s *Server) play(ctx context.Context, owner string, t session.Terminal) error {
	if !s.playing.SetIfAbsent(owner, true) {
		fmt.Fprintln(t, "You are already playing from somewhere else.")
		return nil
	}
	defer s.playing.Del(owner)
	s.metrics.sessions.Inc()
	s.metrics.playing.Inc()
	defer s.metrics.playing.Dec()

	world, err := structs.LoadWorld(bytes.NewReader(s.content))
	if err != nil {
		return grue.WithStack(err)
	}
	config := session.Config{
		Owner:     owner,
		Store:     s.store,
		ScriptDir: filepath.Join(s.config.Dir, "transcripts"),
		OnCommand: s.metrics.command,
	}
	if snap, found := s.suspended.Get(owner); found {
		answer, err := session.Select(t, "You have a game in progress. Resume it?", []string{"yes", "no"})
		if err != nil {
			return grue.WithStack(err)
		}
		s.suspended.Invalidate(owner)
		if answer == "yes" {
			config.Resume = snap
			s.metrics.resumed.Inc()
		}
	}
	game, err := session.New(ctx, t, world, config)
	if err != nil {
		return grue.WithStack(err)
	}
	runErr := game.Run()
	if !game.Running() {
		s.metrics.finished.Inc()
	} else if s.config.Resume > 0 {
		snap, err := game.Snapshot()
		if err != nil {
			return grue.WithStack(err)
		}
		s.suspended.Set(owner, snap, s.config.Resume)
	}
	return runErr
}
