package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/bucket-sync/internal/adapter"
	"github.com/MKhiriev/bucket-sync/internal/companion"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

type options struct {
	peerAddress string
	file        string
	bufferSize  int
	timeout     time.Duration
	listen      string
	autoClose   bool
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("bucket-sync-companion", pflag.ContinueOnError)
	fs.StringVarP(&opts.peerAddress, "peer", "p", "http://localhost:8080", "Peer HTTP API address")
	fs.StringVarP(&opts.file, "file", "f", "", "JSON bucket update file")
	fs.IntVarP(&opts.bufferSize, "buffer-size", "b", 4096, "Largest packet to send")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Second, "Request timeout")
	fs.StringVarP(&opts.listen, "listen", "l", "", "Answer peer hellos on this address instead of pushing once")
	fs.BoolVar(&opts.autoClose, "auto-close", false, "Ask the peer to close its UI after the push")

	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("error parsing flags: %w", err)
	}
	if opts.file == "" {
		return options{}, errors.New("--file is required")
	}
	return opts, nil
}

func main() {
	log := logger.NewLogger("bucket-sync-companion")

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	update, err := companion.LoadUpdate(ctx, opts.file)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading bucket update")
	}

	peer, err := adapter.NewPeerClient(opts.peerAddress, opts.timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating peer client")
	}

	pusher, err := companion.NewPusher(peer, opts.bufferSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating pusher")
	}

	if opts.listen != "" {
		err = listen(ctx, opts.listen, companion.NewListener(pusher, update, log))
	} else {
		err = pushOnce(ctx, pusher, peer, opts, update)
	}
	if err != nil {
		log.Err(err).Msg("companion stopped with error")
		stop()
		os.Exit(1)
	}
}

func pushOnce(ctx context.Context, pusher *companion.Pusher, peer adapter.PeerAPI, opts options, update models.BucketUpdate) error {
	if _, err := pusher.Push(ctx, update); err != nil {
		return err
	}
	if opts.autoClose {
		return peer.RequestAutoClose(ctx)
	}
	return nil
}

func listen(ctx context.Context, address string, l *companion.Listener) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           l.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.Run(ctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
