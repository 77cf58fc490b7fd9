package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/gencol/ecs"
	"github.com/plus3/gencol/ecs/genid"
	"go.uber.org/zap"
)

// Particles is the arena of every simulated particle.
type Particles struct{}

type particleId = genid.Valid[genid.Id[Particles]]

// World is one independent particle simulation. A world is driven by a single
// goroutine; several worlds run in parallel without sharing state.
type World struct {
	id     int
	config Config
	rng    *rand.Rand
	logger *zap.Logger

	alloc     *genid.Allocator[Particles]
	scheduler *ecs.Scheduler

	ids      ecs.Component[Particles, genid.Id[Particles]]
	posX     ecs.Component[Particles, float64]
	posY     ecs.Component[Particles, float64]
	velX     ecs.Component[Particles, float64]
	velY     ecs.Component[Particles, float64]
	lifetime ecs.Component[Particles, ecs.Option[float64]]

	spawned  int
	culled   int
	released int
	samples  []time.Duration
}

// NewWorld creates a world populated with config.Particles particles and
// registers one system per Phase.
func NewWorld(id int, config Config, logger *zap.Logger) *World {
	w := &World{
		id:        id,
		config:    config,
		rng:       rand.New(rand.NewPCG(config.Seed, uint64(id))),
		logger:    logger.With(zap.Int("world", id)),
		alloc:     genid.NewAllocator[Particles](config.Particles),
		scheduler: ecs.NewScheduler(),
	}

	for range config.Particles {
		w.spawn(nil)
	}

	systems := map[Phase]ecs.SystemFunc{
		PhaseSpawn:     w.spawnSystem,
		PhaseIntegrate: w.integrate,
		PhaseDecay:     w.decay,
		PhaseCull:      w.cull,
	}
	for phase := PhaseSpawn; phase <= PhaseCull; phase++ {
		w.scheduler.RegisterNamed(phase.String(), systems[phase])
	}

	return w
}

// put inserts right away when cmds is nil, otherwise at the end of the frame.
func put[T any](cmds *ecs.Commands, c *ecs.Component[Particles, T], id particleId, value T) {
	if cmds == nil {
		c.Insert(id, value)
		return
	}
	ecs.InsertLater(cmds, c, id, value)
}

func (w *World) spawn(cmds *ecs.Commands) {
	raw := w.alloc.Create()
	id := genid.Assert(raw)

	angle := w.rng.Float64() * 2 * math.Pi
	speed := 1 + w.rng.Float64()*4
	life := w.config.Lifetime * (0.5 + 0.5*w.rng.Float64())

	put(cmds, &w.ids, id, raw)
	put(cmds, &w.posX, id, 0)
	put(cmds, &w.posY, id, 0)
	put(cmds, &w.velX, id, speed*math.Cos(angle))
	put(cmds, &w.velY, id, speed*math.Sin(angle))
	put(cmds, &w.lifetime, id, ecs.Some(life))

	w.spawned++
}

func (w *World) spawnSystem(frame *ecs.UpdateFrame) {
	for range w.config.SpawnPerFrame {
		w.spawn(frame.Commands)
	}
}

func (w *World) integrate(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime

	w.velY.Assign(ecs.Offset(w.velY.Iter(), w.config.Gravity*dt))
	ecs.AddAssign(&w.posX, ecs.Scale(w.velX.Iter(), dt))
	ecs.AddAssign(&w.posY, ecs.Scale(w.velY.Iter(), dt))
}

func (w *World) decay(frame *ecs.UpdateFrame) {
	for life := range w.lifetime.IterMut().Seq() {
		if remaining, ok := life.Get(); ok {
			*life = ecs.Some(remaining - frame.DeltaTime)
		}
	}
}

func (w *World) cull(frame *ecs.UpdateFrame) {
	expired := 0
	for pair := range ecs.Zip(w.lifetime.Iter(), w.ids.Iter()).Seq() {
		remaining, ok := pair.Left.Get()
		if !ok || remaining > 0 {
			continue
		}

		id, alive := w.alloc.Validate(pair.Right)
		if !alive {
			continue
		}

		ecs.RemoveLater(frame.Commands, &w.lifetime, id)
		ecs.KillLater(frame.Commands, w.alloc, pair.Right)
		expired++
	}

	if expired == 0 {
		return
	}

	w.culled += expired
	frame.Commands.Defer(func() {
		w.released += w.alloc.ReleaseKilled()
	})
}

// Run advances the world one fixed time step at a time until the configured
// number of frames ran or ctx is done. Panics raised by the store are
// returned as errors.
func (w *World) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("world %d: %w", w.id, cause)
		}
	}()

	w.logger.Debug("world started",
		zap.Int("particles", w.alloc.Live()),
		zap.Int("frames", w.config.Frames))

	for frame := 0; w.config.Frames == 0 || frame < w.config.Frames; frame++ {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		w.scheduler.Once(w.config.TimeStep)
		w.samples = append(w.samples, time.Since(start))
	}

	w.logger.Info("world finished",
		zap.Int("frames", len(w.samples)),
		zap.Int("live", w.alloc.Live()),
		zap.Int("spawned", w.spawned),
		zap.Int("culled", w.culled))

	return nil
}

// KineticEnergy sums the kinetic energy of all live particles, each of unit
// mass.
func (w *World) KineticEnergy() float64 {
	speeds := ecs.ZipWith(w.velX.Iter(), w.velY.Iter(), func(x, y float64) float64 {
		return x*x + y*y
	})

	var energy float64
	for pair := range ecs.Zip(speeds, w.lifetime.Iter()).Seq() {
		if pair.Right.IsSome() {
			energy += 0.5 * pair.Left
		}
	}
	return energy
}

// WorldResult summarizes a finished world.
type WorldResult struct {
	ID         int
	Frames     int
	Live       int
	Slots      int
	Spawned    int
	Culled     int
	Released   int
	Energy     float64
	UpdateTime Stats
	Systems    []ecs.SystemStats
}

func (w *World) Result() WorldResult {
	result := WorldResult{
		ID:         w.id,
		Frames:     len(w.samples),
		Live:       w.alloc.Live(),
		Slots:      w.alloc.Len(),
		Spawned:    w.spawned,
		Culled:     w.culled,
		Released:   w.released,
		Energy:     w.KineticEnergy(),
		UpdateTime: Stats{Samples: w.samples},
		Systems:    w.scheduler.GetStats().Systems,
	}
	result.UpdateTime.Finalize()
	return result
}
