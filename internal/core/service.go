package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"epicore/internal/blob"
	"epicore/internal/eventlog"
	"epicore/pkg/epidemic"
)

// Service exposes the higher-level infection lifecycle operations: exposing
// hosts, advancing a simulation day, and archiving rendered reports. It owns
// the active infection set and dispatches transition events to hosts.
type Service struct {
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	events  eventlog.Log
	archive blob.Store

	verbose        bool
	epidemicOffset int

	infections []*Infection
}

// Option configures a Service.
type Option func(*Service)

// WithLogger installs a structured logger; the default is a no-op.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder installs a metrics recorder for operation outcomes.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer installs a tracer opening a span per operation.
func WithTracer(t Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithEventLog installs an append-only sink for transition records.
func WithEventLog(l eventlog.Log) Option {
	return func(s *Service) { s.events = l }
}

// WithArchive installs a blob store for day report archives.
func WithArchive(st blob.Store) Option {
	return func(s *Service) { s.archive = st }
}

// WithVerboseReports enables the extended report fields.
func WithVerboseReports(v bool) Option {
	return func(s *Service) { s.verbose = v }
}

// WithEpidemicOffset sets the absolute day treated as "now" when seeds are
// backdated and replayed.
func WithEpidemicOffset(day int) Option {
	return func(s *Service) { s.epidemicOffset = day }
}

// NewService constructs a service with the supplied options.
func NewService(opts ...Option) *Service {
	s := &Service{logger: noopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// instrument wraps an operation with tracing, metrics, and logging.
func (s *Service) instrument(ctx context.Context, op string, fn func(context.Context) error) error {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, op)
	}
	start := time.Now()
	err := fn(ctx)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	}
	if err != nil {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op + " completed")
	}
	return err
}

// Expose creates an infection of host with disease d at the given place and
// day, registers it with the service, and logs its exposure record. A nil
// infector marks a seeded case.
func (s *Service) Expose(ctx context.Context, d Disease, infector, host Host, place Place, day int) (*Infection, error) {
	var inf *Infection
	err := s.instrument(ctx, "expose", func(ctx context.Context) error {
		var err error
		inf, err = NewInfection(d, infector, host, place, day)
		if err != nil {
			return err
		}
		s.infections = append(s.infections, inf)
		return s.appendRecord(ctx, inf, day, "exposure")
	})
	if err != nil {
		return nil, err
	}
	return inf, nil
}

// Seed creates a seeded infection (no infector, no place) backdated by
// daysAgo and replays the transitions that have already fired by the
// configured epidemic offset, dispatching them to the host.
func (s *Service) Seed(ctx context.Context, d Disease, host Host, day, daysAgo int) (*Infection, error) {
	var inf *Infection
	err := s.instrument(ctx, "seed", func(ctx context.Context) error {
		var err error
		inf, err = NewInfection(d, nil, host, nil, day)
		if err != nil {
			return err
		}
		events, err := inf.AdvanceSeedInfection(daysAgo, s.epidemicOffset)
		if err != nil {
			return err
		}
		s.infections = append(s.infections, inf)
		for _, ev := range events {
			s.dispatch(inf, ev)
		}
		return s.appendRecord(ctx, inf, day, "seed")
	})
	if err != nil {
		return nil, err
	}
	return inf, nil
}

// RunDay advances every registered infection to the given day, dispatches
// the transition events that fire, and appends one event log record per
// transition. Fatal cases are logged and their hosts excluded from further
// updates, and infections whose last dated transition has fired are pruned.
// The active set is replaced only after the whole sweep succeeds.
func (s *Service) RunDay(ctx context.Context, day int) error {
	return s.instrument(ctx, "run_day", func(ctx context.Context) error {
		remaining := make([]*Infection, 0, len(s.infections))
		for _, inf := range s.infections {
			events := inf.Update(day)
			for _, ev := range events {
				s.dispatch(inf, ev)
				if s.events != nil {
					rec := eventlog.Record{
						Day:       day,
						DiseaseID: inf.Disease().ID(),
						HostID:    inf.Host().ID(),
						Kind:      string(ev),
					}
					if err := s.events.Append(ctx, rec); err != nil {
						return err
					}
				}
			}
			if inf.FatalToday() {
				s.logger.Info("case fatality",
					"day", day, "disease", inf.Disease().ID(), "host", inf.Host().ID())
				if s.events != nil {
					rec := eventlog.Record{
						Day:       day,
						DiseaseID: inf.Disease().ID(),
						HostID:    inf.Host().ID(),
						Kind:      "fatal",
					}
					if err := s.events.Append(ctx, rec); err != nil {
						return err
					}
				}
				continue
			}
			if inf.CourseComplete(day) {
				continue
			}
			remaining = append(remaining, inf)
		}
		s.infections = remaining
		return nil
	})
}

// dispatch forwards a transition event to the infection's host.
func (s *Service) dispatch(inf *Infection, ev TransitionEvent) {
	d := inf.Disease()
	switch ev {
	case epidemic.EventBecameInfectious:
		inf.Host().BecomeInfectious(d)
	case epidemic.EventBecameSymptomatic:
		inf.Host().BecomeSymptomatic(d)
	case epidemic.EventBecameAsymptomatic:
		inf.Host().BecomeAsymptomatic(d)
	case epidemic.EventRecovered:
		inf.Host().Recover(d)
	case epidemic.EventBecameImmune:
		inf.Host().BecomeUnsusceptible(d)
	}
}

// BuildRecord assembles the report record for an infection as of day.
// Unknown infector fields render as -1 and a missing place as type 'X'.
func (s *Service) BuildRecord(inf *Infection, day int) InfectionRecord {
	host := inf.Host()
	rec := InfectionRecord{
		Day:       day,
		DiseaseID: inf.Disease().ID(),
		HostID:    host.ID(),
		HostAge:   host.RealAge(),
		SickLeave: host.SickLeaveAvailable(),

		InfectorID:          -1,
		InfectorAge:         -1,
		InfectorExposureDay: -1,

		PlaceID:      -1,
		PlaceType:    'X',
		PlaceSubtype: 'X',

		ExposureDay: inf.ExposureDay(),
		Dates:       inf.Dates(),
	}
	rec.HomeLat, rec.HomeLon = host.HomeLocation()

	if infector := inf.Infector(); infector != nil {
		rec.InfectorID = infector.ID()
		rec.InfectorAge = infector.RealAge()
		rec.InfectorSymptomatic = infector.Symptomatic()
		rec.InfectorSickLeave = infector.SickLeaveAvailable()
		rec.InfectorExposureDay = infector.ExposureDay(inf.Disease().ID())
		if s.verbose {
			ix, iy := infector.Position()
			hx, hy := host.Position()
			rec.Distance = math.Hypot(ix-hx, iy-hy)
		}
	}
	if place := inf.ExposurePlace(); place != nil {
		rec.PlaceID = place.ID()
		rec.PlaceType = place.Kind()
		rec.PlaceSubtype = place.Subkind()
		rec.PlaceSize = place.Size()
		rec.Lat, rec.Lon = place.Location()
	}
	if s.verbose {
		rec.AdminRegion = host.AdminRegion()
		rec.WillBeSymptomatic = inf.WillBeSymptomatic()
		rec.Infectivity = inf.Infectivity(day)
		rec.InfectivityMultiplier = inf.InfectivityMultiplier()
		rec.Symptoms = inf.Symptoms(day)
	}
	return rec
}

func (s *Service) appendRecord(ctx context.Context, inf *Infection, day int, kind string) error {
	if s.events == nil {
		return nil
	}
	rec := s.BuildRecord(inf, day)
	return s.events.Append(ctx, eventlog.Record{
		Day:       day,
		DiseaseID: rec.DiseaseID,
		HostID:    rec.HostID,
		Kind:      kind,
		Line:      rec.Render(s.verbose),
	})
}

// ArchiveDay renders the day's logged records into a single report object
// and stores it in the configured archive.
func (s *Service) ArchiveDay(ctx context.Context, day int) (blob.Info, error) {
	var info blob.Info
	err := s.instrument(ctx, "archive_day", func(ctx context.Context) error {
		if s.archive == nil {
			return fmt.Errorf("no archive configured")
		}
		if s.events == nil {
			return fmt.Errorf("no event log configured")
		}
		records, err := s.events.Day(ctx, day)
		if err != nil {
			return err
		}
		var b strings.Builder
		for _, rec := range records {
			if rec.Line != "" {
				b.WriteString(rec.Line)
			} else {
				fmt.Fprintf(&b, "day %d dis %d host %d event %s", rec.Day, rec.DiseaseID, rec.HostID, rec.Kind)
			}
			b.WriteByte('\n')
		}
		key := fmt.Sprintf("reports/day-%06d.txt", day)
		info, err = s.archive.Put(ctx, key, strings.NewReader(b.String()), blob.PutOptions{
			ContentType: "text/plain; charset=utf-8",
			Metadata:    map[string]string{"day": fmt.Sprintf("%d", day)},
		})
		return err
	})
	return info, err
}

// Infections returns the active infection set.
func (s *Service) Infections() []*Infection { return s.infections }
