package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hlcup17/travels/internal/domain/travel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// travels-datagen writes a directory of <entity>_<n>.json dumps in the shape
// the server's loader ingests, for local runs and load experiments.

var (
	firstNames = []string{"Alex", "Boris", "Clara", "Daria", "Egor", "Fiona", "Gleb", "Hanna", "Igor", "Julia"}
	lastNames  = []string{"Smirnov", "Ivanova", "Petrov", "Sokolova", "Lebedev", "Kozlova", "Novikov", "Morozova"}
	countries  = []string{"Russia", "Italy", "Spain", "France", "Egypt", "Greece", "Turkey", "Thailand"}
	cities     = []string{"Moscow", "Rome", "Madrid", "Paris", "Cairo", "Athens", "Antalya", "Bangkok"}
	places     = []string{"Museum", "Cathedral", "Old Town", "Beach", "Fortress", "Observation Deck", "Gallery", "Park"}
)

const (
	birthDateMin = -1262304000 // 1930-01-01
	birthDateMax = 915148800   // 1999-01-01
	visitedAtMin = 946684800   // 2000-01-01
	visitedAtMax = 1420070400  // 2015-01-01
)

func main() {
	// CLI flags
	out := flag.String("out", "", "output directory for the JSON dumps")
	users := flag.Int("users", 1000, "number of users to generate")
	locations := flag.Int("locations", 200, "number of locations to generate")
	visits := flag.Int("visits", 10000, "number of visits to generate")
	chunk := flag.Int("chunk", 5000, "max entities per file")
	seed := flag.Int64("seed", 1, "PRNG seed; same seed, same dataset")
	flag.Parse()

	if *out == "" || *users < 1 || *locations < 1 || *visits < 1 || *chunk < 1 {
		fmt.Println("Usage: ./travels-datagen -out=<dir> [-users=N] [-locations=N] [-visits=N] [-chunk=N] [-seed=N]")
		os.Exit(1)
	}

	log := buildLogger()
	log = log.Named("main")

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal("output directory creation failed", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(*seed))
	start := time.Now()

	gen := &generator{rng: rng, out: *out, log: log}
	gen.writeUsers(*users, *chunk)
	gen.writeLocations(*locations, *chunk)
	gen.writeVisits(*visits, *users, *locations, *chunk)

	log.Info("dataset generated",
		zap.Int("users", *users),
		zap.Int("locations", *locations),
		zap.Int("visits", *visits),
		zap.String("dir", *out),
		zap.Duration("took", time.Since(start)),
	)
}

type generator struct {
	rng *rand.Rand
	out string
	log *zap.Logger
}

func (g *generator) writeUsers(n, chunk int) {
	for fileNo, off := 1, 0; off < n; fileNo, off = fileNo+1, off+chunk {
		count := min(chunk, n-off)
		items := make([]travel.User, count)
		for i := range items {
			id := int32(off + i + 1)
			gender := "f"
			if g.rng.Intn(2) == 0 {
				gender = "m"
			}
			items[i] = travel.User{
				ID:        id,
				Email:     fmt.Sprintf("traveler%d@example.com", id),
				FirstName: firstNames[g.rng.Intn(len(firstNames))],
				LastName:  lastNames[g.rng.Intn(len(lastNames))],
				Gender:    gender,
				BirthDate: g.between(birthDateMin, birthDateMax),
			}
		}
		g.writeFile(fmt.Sprintf("users_%d.json", fileNo), map[string]any{"users": items})
	}
}

func (g *generator) writeLocations(n, chunk int) {
	for fileNo, off := 1, 0; off < n; fileNo, off = fileNo+1, off+chunk {
		count := min(chunk, n-off)
		items := make([]travel.Location, count)
		for i := range items {
			items[i] = travel.Location{
				ID:       int32(off + i + 1),
				Place:    places[g.rng.Intn(len(places))],
				Country:  countries[g.rng.Intn(len(countries))],
				City:     cities[g.rng.Intn(len(cities))],
				Distance: int32(g.rng.Intn(101)),
			}
		}
		g.writeFile(fmt.Sprintf("locations_%d.json", fileNo), map[string]any{"locations": items})
	}
}

func (g *generator) writeVisits(n, users, locations, chunk int) {
	for fileNo, off := 1, 0; off < n; fileNo, off = fileNo+1, off+chunk {
		count := min(chunk, n-off)
		items := make([]travel.Visit, count)
		for i := range items {
			items[i] = travel.Visit{
				ID:        int32(off + i + 1),
				Location:  int32(g.rng.Intn(locations) + 1),
				User:      int32(g.rng.Intn(users) + 1),
				VisitedAt: g.between(visitedAtMin, visitedAtMax),
				Mark:      int8(g.rng.Intn(6)),
			}
		}
		g.writeFile(fmt.Sprintf("visits_%d.json", fileNo), map[string]any{"visits": items})
	}
}

func (g *generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int63n(hi-lo)
}

func (g *generator) writeFile(name string, payload any) {
	path := filepath.Join(g.out, name)
	data, err := json.Marshal(payload)
	if err != nil {
		g.log.Fatal("payload encoding failed", zap.String("file", name), zap.Error(err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		g.log.Fatal("file write failed", zap.String("file", name), zap.Error(err))
	}
	g.log.Info("file written", zap.String("file", path))
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.DebugLevel)
	return zap.Must(logConfig.Build())
}
