// Package loader ingests the startup data directory into the store.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Data files are named <entity>_<n>.json; anything else in the directory is
// ignored.
var (
	userFileRE     = regexp.MustCompile(`^users_\d+\.json$`)
	locationFileRE = regexp.MustCompile(`^locations_\d+\.json$`)
	visitFileRE    = regexp.MustCompile(`^visits_\d+\.json$`)
)

// Loader populates the store from a directory of JSON dumps.
//
// Ingest is trusted: no duplicate or reference checks. Index rows are still
// built exactly like the API write path builds them, so the derived
// invariants hold from the first served request.
//
// Two phases with a barrier between them: users and locations first (their
// empty index lists included), then visits, which need both sides present to
// derive their rows. Files within a phase load concurrently. A visit whose
// user or location never appeared is dropped from the indexes; its entity row
// still lands, mirroring the trust put in the dumps.
type Loader struct {
	log   *zap.Logger
	store *store.Store
}

// New constructs a Loader over st.
func New(log *zap.Logger, st *store.Store) *Loader {
	return &Loader{log: log.Named("loader"), store: st}
}

// Run ingests dir. Serving may already be underway; early requests observe a
// partially populated store. Errors stay per-file: one bad dump never stops
// the rest of the load.
func (l *Loader) Run(ctx context.Context, dir string) {
	start := time.Now()
	l.log.Info("loading data", zap.String("dir", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.log.Error("read data dir", zap.Error(err))
		return
	}

	// Phase 1: primary entities owning an index list.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case userFileRE.MatchString(e.Name()):
			g.Go(func() error { return l.loadUserFile(path) })
		case locationFileRE.MatchString(e.Name()):
			g.Go(func() error { return l.loadLocationFile(path) })
		}
	}
	if err := g.Wait(); err != nil {
		l.log.Warn("users/locations phase finished with errors", zap.Error(err))
	}

	// Phase 2: visits fan out into both indexes.
	g, _ = errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		if !visitFileRE.MatchString(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		g.Go(func() error { return l.loadVisitFile(path) })
	}
	if err := g.Wait(); err != nil {
		l.log.Warn("visits phase finished with errors", zap.Error(err))
	}

	l.log.Info("data loaded",
		zap.Duration("took", time.Since(start)),
		zap.Int("users", l.store.Users.Len()),
		zap.Int("locations", l.store.Locations.Len()),
		zap.Int("visits", l.store.Visits.Len()),
	)
	l.logMemStats()
}

func (l *Loader) loadUserFile(path string) error {
	var payload struct {
		Users []travel.User `json:"users"`
	}
	if err := decodeFile(path, &payload); err != nil {
		return err
	}
	for _, u := range payload.Users {
		l.store.UserVisits.Save(u.ID, []travel.UserVisit{})
		l.store.Users.Save(u.ID, u)
	}
	l.log.Debug("file loaded", zap.String("file", path), zap.Int("users", len(payload.Users)))
	return nil
}

func (l *Loader) loadLocationFile(path string) error {
	var payload struct {
		Locations []travel.Location `json:"locations"`
	}
	if err := decodeFile(path, &payload); err != nil {
		return err
	}
	for _, loc := range payload.Locations {
		l.store.LocationMarks.Save(loc.ID, []travel.LocationMark{})
		l.store.Locations.Save(loc.ID, loc)
	}
	l.log.Debug("file loaded", zap.String("file", path), zap.Int("locations", len(payload.Locations)))
	return nil
}

func (l *Loader) loadVisitFile(path string) error {
	var payload struct {
		Visits []travel.Visit `json:"visits"`
	}
	if err := decodeFile(path, &payload); err != nil {
		return err
	}
	for _, v := range payload.Visits {
		if loc, ok := l.store.Locations.Load(v.Location); ok {
			if visits, ok := l.store.UserVisits.Load(v.User); ok {
				visits = travel.InsertUserVisit(visits, travel.NewUserVisit(v, loc))
				l.store.UserVisits.Save(v.User, visits)
			}
		}
		if u, ok := l.store.Users.Load(v.User); ok {
			if marks, ok := l.store.LocationMarks.Load(v.Location); ok {
				marks = append(marks, travel.NewLocationMark(v, u))
				l.store.LocationMarks.Save(v.Location, marks)
			}
		}
		l.store.Visits.Save(v.ID, v)
	}
	l.log.Debug("file loaded", zap.String("file", path), zap.Int("visits", len(payload.Visits)))
	return nil
}

func decodeFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// logMemStats reports the post-load heap shape; with the whole dataset in
// memory this is the number to watch against the container limit.
func (l *Loader) logMemStats() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	l.log.Info("memory",
		zap.Uint64("heap_inuse_mb", ms.HeapInuse>>20),
		zap.Uint64("total_alloc_mb", ms.TotalAlloc>>20),
		zap.Uint64("sys_mb", ms.Sys>>20),
	)
}
