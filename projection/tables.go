package projection

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-bessel2/special/bessel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Tables holds the Bessel table and the projection-function table of one
// configuration. After Init returns it is read-only and safe for
// concurrent use until Free.
type Tables struct {
	cfg   Config
	grid  *Grid
	l1    *L1List
	ls    []int
	kinds []Kind
	// kindIndex maps a Kind to its block in j, -1 when not tabulated.
	kindIndex [numKinds]int

	bessel []Slot
	j      []Slot

	allocated atomic.Int64
	xSizeMax  int

	logger  *zap.Logger
	metrics *metrics
	tracer  trace.Tracer
}

// Init validates cfg, builds the grid and the l1-list, then fills the
// Bessel table and the projection-function table in parallel. On any
// failure no tables are returned.
func Init(ctx context.Context, cfg Config, opts ...Option) (*Tables, error) {
	o := applyOptions(opts)
	tracer := o.tracer.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "projection.Init")
	defer span.End()

	t, err := initTables(ctx, cfg, o, tracer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error("tabulation failed", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("xx_size", t.grid.Size()),
		attribute.Int("l1_size", t.l1.Len()),
		attribute.Int64("doubles", t.CountAllocated()),
	)
	span.SetStatus(codes.Ok, "")
	return t, nil
}

func initTables(ctx context.Context, cfg Config, o options, tracer trace.Tracer) (*Tables, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.XXMax, cfg.XXStep)
	if err != nil {
		return nil, err
	}
	l1, err := NewL1List(cfg.Multipoles, cfg.LMax, cfg.M, cfg.ExtendL1UsingM)
	if err != nil {
		return nil, err
	}

	cfg.L = cfg.Ls()
	cfg.Multipoles = slices.Clone(cfg.Multipoles)
	cfg.M = slices.Clone(cfg.M)
	cfg.XXMax = grid.Max()

	t := &Tables{
		cfg:     cfg,
		grid:    grid,
		l1:      l1,
		ls:      cfg.L,
		kinds:   cfg.Kinds(),
		logger:  o.logger,
		metrics: m,
		tracer:  tracer,
	}
	for k := range t.kindIndex {
		t.kindIndex[k] = -1
	}
	for i, k := range t.kinds {
		t.kindIndex[k] = i
	}

	t.summary("grid",
		zap.Int("xx_size", grid.Size()),
		zap.Float64("xx_max", grid.Max()),
		zap.Float64("xx_step", grid.Step()))
	t.summary("l1-list",
		zap.Int("l1_size", l1.Len()),
		zap.Int("l1_max", l1.Max()))

	if err := t.fillBessel(ctx); err != nil {
		return nil, err
	}
	if err := t.fillJ(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) summary(msg string, fields ...zap.Field) {
	if t.cfg.Verbose {
		t.logger.Info(msg, fields...)
		return
	}
	t.logger.Debug(msg, fields...)
}

func (t *Tables) workers() int {
	if t.cfg.Workers > 0 {
		return t.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// account adds the doubles of s to the running total and enforces the
// memory budget.
func (t *Tables) account(s *Slot) error {
	total := t.allocated.Add(s.doubles())
	if limit := t.cfg.MaxTableDoubles; limit > 0 && total > limit {
		return allocationError("Init", "tables need more than %d doubles", limit)
	}
	return nil
}

// fill runs job for every slot index in [0, n) on a bounded errgroup.
// The first error cancels the remaining jobs.
func (t *Tables) fill(ctx context.Context, phase string, n int, job func(i int, buf []float64) error) error {
	ctx, span := t.tracer.Start(ctx, "projection."+phase, trace.WithAttributes(attribute.Int("slots", n)))
	defer span.End()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers())
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return job(i, make([]float64, t.grid.Size()))
		})
	}
	err := g.Wait()
	t.metrics.observePhase(phase, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var perr *Error
		if !errors.As(err, &perr) {
			err = fmt.Errorf("projection: %s aborted: %w", phase, err)
		}
		return err
	}
	return nil
}

func (t *Tables) fillBessel(ctx context.Context) error {
	t.bessel = make([]Slot, t.l1.Len())
	err := t.fill(ctx, "bessel", len(t.bessel), func(i int, buf []float64) error {
		s, err := t.tabulateBessel(t.l1.Value(i), buf)
		if err != nil {
			return err
		}
		t.bessel[i] = s
		return t.account(&t.bessel[i])
	})
	if err != nil {
		t.bessel = nil
		return err
	}

	var doubles int64
	empty := 0
	for i := range t.bessel {
		s := &t.bessel[i]
		doubles += s.doubles()
		if s.Empty() {
			empty++
		}
		t.metrics.observeSlot(tableBessel, s)
	}
	t.metrics.setDoubles(tableBessel, doubles)
	t.summary("bessel table",
		zap.Int("slots", len(t.bessel)),
		zap.Int("empty", empty),
		zap.Int64("doubles", doubles))
	return nil
}

// tabulateBessel samples j_l1 on the grid. j_l1 grows monotonically for
// x < l1, which is where the scan may stop.
func (t *Tables) tabulateBessel(l1 int, buf []float64) (Slot, error) {
	floor := int(math.Ceil(float64(l1) / t.grid.step))
	return compact(t.grid, t.cfg.JL1Cut, floor, func(i int) (float64, float64) {
		v := bessel.Jl(l1, t.grid.X(i))
		return v, math.Abs(v)
	}, buf)
}

func (t *Tables) fillJ(ctx context.Context) error {
	n := len(t.kinds) * len(t.ls) * len(t.cfg.Multipoles) * len(t.cfg.M)
	t.j = make([]Slot, n)
	err := t.fill(ctx, "J", n, func(i int, buf []float64) error {
		kind, L, l, m := t.unpack(i)
		s, err := t.tabulateJ(kind, L, l, m, buf)
		if err != nil {
			return err
		}
		t.j[i] = s
		return t.account(&t.j[i])
	})
	if err != nil {
		t.j = nil
		t.bessel = nil
		return err
	}

	var doubles int64
	empty := 0
	for i := range t.j {
		s := &t.j[i]
		doubles += s.doubles()
		if s.Empty() {
			empty++
		}
		t.xSizeMax = max(t.xSizeMax, s.XSize())
		t.metrics.observeSlot(tableJ, s)
	}
	t.metrics.setDoubles(tableJ, doubles)
	t.summary("J table",
		zap.Int("slots", n),
		zap.Int("empty", empty),
		zap.Int64("doubles", doubles),
		zap.Int("x_size_max", t.xSizeMax))
	return nil
}

// tabulateJ samples one projection function on the grid. Below the
// smallest admissible l1 every term grows monotonically, so the bound
// sum |c||j_l1| may stop the scan there.
func (t *Tables) tabulateJ(kind Kind, L, l, m int, buf []float64) (Slot, error) {
	var ws Workspace
	if err := t.Prepare(&ws, kind, L, l, m); err != nil {
		if errors.Is(err, ErrNoAdmissibleL1) {
			return emptySlot(t.grid), nil
		}
		return Slot{}, err
	}
	floor := int(math.Ceil(float64(ws.L1Min) / t.grid.step))
	return compact(t.grid, t.cfg.JLlmCut, floor, func(i int) (float64, float64) {
		v := ws.Sum(i)
		if i >= floor {
			return v, math.Inf(1)
		}
		return v, ws.bound(i)
	}, buf)
}

// unpack maps a slot position to its (kind, L, l, m).
func (t *Tables) unpack(i int) (kind Kind, L, l, m int) {
	nm, nl, nL := len(t.cfg.M), len(t.cfg.Multipoles), len(t.ls)
	im := i % nm
	i /= nm
	il := i % nl
	i /= nl
	iL := i % nL
	return t.kinds[i/nL], t.ls[iL], t.cfg.Multipoles[il], t.cfg.M[im]
}

// slotIndex is the inverse of unpack.
func (t *Tables) slotIndex(k, iL, il, im int) int {
	return ((k*len(t.ls)+iL)*len(t.cfg.Multipoles)+il)*len(t.cfg.M) + im
}

// Free releases both tables. Every later evaluation fails with a domain
// error.
func (t *Tables) Free() {
	if t.j == nil && t.bessel == nil {
		return
	}
	t.j = nil
	t.bessel = nil
	t.allocated.Store(0)
	t.metrics.setDoubles(tableBessel, 0)
	t.metrics.setDoubles(tableJ, 0)
	t.summary("tables released")
}

func (t *Tables) live(op string) error {
	if t.bessel == nil {
		return domainError(op, "tables released")
	}
	return nil
}

// Grid returns the sampling grid.
func (t *Tables) Grid() *Grid { return t.grid }

// L1 returns the l1-list.
func (t *Tables) L1() *L1List { return t.l1 }

// Config returns the configuration with L filled in and XXMax rounded to
// the grid.
func (t *Tables) Config() Config {
	c := t.cfg
	c.L = slices.Clone(c.L)
	c.Multipoles = slices.Clone(c.Multipoles)
	c.M = slices.Clone(c.M)
	return c
}

// Kinds returns the tabulated projection functions.
func (t *Tables) Kinds() []Kind { return slices.Clone(t.kinds) }

// CountAllocated returns the number of float64 held by both tables.
func (t *Tables) CountAllocated() int64 { return t.allocated.Load() }

// XSizeMax returns the largest number of samples stored in one
// projection-function slot.
func (t *Tables) XSizeMax() int { return t.xSizeMax }
