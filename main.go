package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"MyDrawingPad/internal/config"
	"MyDrawingPad/internal/export"
	lnet "MyDrawingPad/internal/net"
	"MyDrawingPad/internal/session"
	"MyDrawingPad/internal/state"
	"MyDrawingPad/internal/store"
	"MyDrawingPad/internal/ui"

	"github.com/google/uuid"
)

const browseTimeout = 3 * time.Second

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch {
	case cfg.View != "" || cfg.Browse:
		runViewer(cfg)
	case cfg.List:
		withStore(cfg, func(s *store.Store) error { return listDrawings(os.Stdout, s) })
	case cfg.Export != "":
		withStore(cfg, func(s *store.Store) error { return exportDrawing(s, cfg.Export, cfg.Output) })
	default:
		runAuthor(cfg)
	}
}

func openStore(cfg config.Config) *store.Store {
	records, err := cfg.OpenRecords()
	if err != nil {
		log.Fatalf("Failed to open drawings (%s): %v", cfg.Backend, err)
	}
	return store.New(records, log.Default())
}

func withStore(cfg config.Config, fn func(*store.Store) error) {
	s := openStore(cfg)
	defer s.Close()
	if err := fn(s); err != nil {
		log.Fatal(err)
	}
}

func listDrawings(w io.Writer, s *store.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tSTROKES")
	for _, d := range s.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Date.Local().Format(time.RFC3339), len(d.Paths))
	}
	return tw.Flush()
}

// findDrawing matches an ID first, then the newest drawing with that name.
func findDrawing(s *store.Store, ref string) (state.SavedDrawing, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(id)
	}
	for _, d := range s.List() {
		if strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return state.SavedDrawing{}, fmt.Errorf("%q: %w", ref, store.ErrNotFound)
}

func exportDrawing(s *store.Store, ref, out string) error {
	d, err := findDrawing(s, ref)
	if err != nil {
		return err
	}
	if err := export.File(out, s.Load(d), state.Size{}); err != nil {
		return err
	}
	log.Printf("Exported %q to %s", d.Name, out)
	return nil
}

func runAuthor(cfg config.Config) {
	s := openStore(cfg)
	defer s.Close()

	history := state.NewHistory(cfg.UndoLimit)
	sess := session.New(history, s)
	tools := state.NewTools()

	shareLink := ""
	if cfg.Mirror != "" {
		hub := lnet.NewHub(log.Default())
		defer hub.Close()
		srv, port, err := lnet.Listen(cfg.Mirror, hub)
		if err != nil {
			log.Fatalf("Failed to start mirror on %s: %v", cfg.Mirror, err)
		}
		defer srv.Close()

		history.Subscribe(hub.Publish)
		hub.Publish(history.Snapshot())

		if cfg.Advertise {
			if m, err := lnet.Advertise(port); err != nil {
				log.Printf("[MIRROR] mDNS advertising disabled: %v", err)
			} else {
				defer m.Shutdown()
			}
		}

		host, err := lnet.ShareHost()
		if err != nil {
			log.Printf("[MIRROR] Could not determine local IP: %v", err)
			host = "localhost"
		}
		shareLink = config.ShareLink(host, port)
		log.Printf("[MIRROR] Share link: %s", shareLink)
	}

	ui.RunApp(sess, tools, shareLink)
}

func runViewer(cfg config.Config) {
	addr := cfg.ViewAddress()
	if cfg.View == "" {
		log.Println("Browsing for a mirror...")
		found, err := lnet.Browse(browseTimeout)
		if err != nil {
			log.Fatal(err)
		}
		addr = found
	}
	link := config.URLScheme + addr
	log.Printf("Following %s", link)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.RunViewer(link, func(show func(state.Snapshot), status func(string)) {
		f := lnet.NewFollower(addr, show)
		f.OnStatus = status
		go func() {
			if err := f.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[VIEW] Stopped following %s: %v", link, err)
			}
		}()
	})
}
