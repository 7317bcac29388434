// Command epicore-sim runs a small demonstration epidemic: it seeds a few
// infections in a synthetic population, advances the progression engine day
// by day, and archives each day's report lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"epicore/internal/blob"
	"epicore/internal/core"
	"epicore/internal/eventlog"
	"epicore/pkg/epidemic"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("epicore-sim", flag.ContinueOnError)
	days := fs.Int("days", 30, "number of simulation days")
	population := fs.Int("population", 200, "number of hosts")
	seeds := fs.Int("seeds", 3, "number of seeded infections")
	seed := fs.Int64("seed", 42, "random seed")
	verbose := fs.Bool("verbose", false, "emit verbose report lines")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	zl, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer func() { _ = zl.Sync() }()
	logger := core.NewZapLogger(zl)

	events, err := eventlog.Open()
	if err != nil {
		zl.Sugar().Errorw("open event log", "error", err)
		return 1
	}
	defer func() { _ = events.Close() }()

	archive, err := blob.Open(context.Background())
	if err != nil {
		zl.Sugar().Errorw("open report archive", "error", err)
		return 1
	}

	metrics, err := core.NewPrometheusMetricsRecorder(nil)
	if err != nil {
		zl.Sugar().Errorw("register metrics", "error", err)
		return 1
	}

	svc := core.NewService(
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
		core.WithEventLog(events),
		core.WithArchive(archive),
		core.WithVerboseReports(*verbose),
	)

	rng := rand.New(rand.NewSource(*seed))
	flu := fluProfile(rng)

	hosts := make([]*simHost, *population)
	for i := range hosts {
		hosts[i] = &simHost{
			id:  i,
			age: rng.Float64() * 90,
			lat: 41.8 + rng.Float64()*0.2,
			lon: -87.7 + rng.Float64()*0.2,
		}
	}
	home := &simPlace{id: 1, kind: 'H', subkind: 'X', size: 4, lat: 41.85, lon: -87.65}

	ctx := context.Background()
	for i := 0; i < *seeds && i < len(hosts); i++ {
		if _, err := svc.Seed(ctx, flu, hosts[i], 0, rng.Intn(3)); err != nil {
			zl.Sugar().Errorw("seed infection", "host", i, "error", err)
			return 1
		}
	}

	for day := 1; day <= *days; day++ {
		// Crude homogeneous mixing: each infectious host exposes one random
		// susceptible contact.
		for _, inf := range svc.Infections() {
			if !inf.IsInfectiousToday() {
				continue
			}
			contact := hosts[rng.Intn(len(hosts))]
			if contact.infected {
				continue
			}
			contact.infected = true
			if _, err := svc.Expose(ctx, flu, inf.Host(), contact, home, day); err != nil {
				zl.Sugar().Errorw("expose contact", "host", contact.id, "error", err)
				continue
			}
			inf.AddInfectee()
		}
		if err := svc.RunDay(ctx, day); err != nil {
			zl.Sugar().Errorw("run day", "day", day, "error", err)
			return 1
		}
		if _, err := svc.ArchiveDay(ctx, day); err != nil {
			zl.Sugar().Errorw("archive day", "day", day, "error", err)
			return 1
		}
	}
	zl.Sugar().Infow("simulation complete", "days", *days, "active_infections", len(svc.Infections()))
	return 0
}

// fluProfile builds an influenza-like disease: two latent days, up to two
// asymptomatic-infectious days, then a symptomatic course in two thirds of
// trajectories.
func fluProfile(rng *rand.Rand) *epidemic.Profile {
	return &epidemic.Profile{
		DiseaseID:   0,
		DiseaseName: "influenza",
		Cutoffs:     epidemic.Thresholds{Infectivity: 0.0, Symptomaticity: 0.0},
		Model:       epidemic.ProgressionTrajectory,
		Recovered:   366,
		Symptomatic: 4,
		TrajectoryFn: func(int) *epidemic.Trajectory {
			var points []epidemic.TrajectoryPoint
			for i := 0; i < 2; i++ {
				points = append(points, epidemic.TrajectoryPoint{})
			}
			for i := 0; i < 1+rng.Intn(2); i++ {
				points = append(points, epidemic.TrajectoryPoint{Infectivity: 0.5})
			}
			if rng.Float64() < 0.67 {
				for i := 0; i < 3+rng.Intn(3); i++ {
					points = append(points, epidemic.TrajectoryPoint{Infectivity: 1.0, Symptomaticity: 1.0})
				}
			}
			return epidemic.NewTrajectory(points)
		},
	}
}

// simHost is a minimal in-memory agent for the demo loop.
type simHost struct {
	id  int
	age float64
	lat float64
	lon float64

	infected    bool
	infectious  bool
	symptomatic bool
	recovered   bool
	immune      bool
	exposureDay int
}

func (h *simHost) ID() int                       { return h.id }
func (h *simHost) Age() int                      { return int(h.age) }
func (h *simHost) RealAge() float64              { return h.age }
func (h *simHost) FatalityAge() float64          { return h.age }
func (h *simHost) IsInfectious(int) bool         { return h.infectious }
func (h *simHost) Symptomatic() bool             { return h.symptomatic }
func (h *simHost) SickLeaveAvailable() bool      { return false }
func (h *simHost) ExposureDay(int) int           { return h.exposureDay }
func (h *simHost) PastInfections(int) int        { return 0 }
func (h *simHost) HomeLocation() (lat, lon float64) { return h.lat, h.lon }
func (h *simHost) Position() (x, y float64)      { return h.lat, h.lon }
func (h *simHost) AdminRegion() int64            { return 17031 }

func (h *simHost) BecomeInfectious(epidemic.Disease)   { h.infectious = true }
func (h *simHost) BecomeSymptomatic(epidemic.Disease)  { h.symptomatic = true }
func (h *simHost) BecomeAsymptomatic(epidemic.Disease) { h.symptomatic = false }
func (h *simHost) Recover(d epidemic.Disease) {
	h.infectious = false
	h.symptomatic = false
	h.recovered = true
}
func (h *simHost) BecomeUnsusceptible(epidemic.Disease) { h.immune = true }

type simPlace struct {
	id      int
	kind    byte
	subkind byte
	size    int
	lat     float64
	lon     float64
}

func (p *simPlace) ID() int                        { return p.id }
func (p *simPlace) Kind() byte                     { return p.kind }
func (p *simPlace) Subkind() byte                  { return p.subkind }
func (p *simPlace) Size() int                      { return p.size }
func (p *simPlace) Location() (lat, lon float64)   { return p.lat, p.lon }
