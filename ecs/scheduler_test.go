package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/gencol/ecs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type Velocity struct {
	DX, DY float32
}

type MovementSystem struct {
	Positions    *ecs.Component[Units, Position]
	Velocities   *ecs.Component[Units, Velocity]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	ecs.UpdateWith(s.Positions, s.Velocities.Iter(), func(p *Position, v Velocity) {
		p.X += v.DX * float32(frame.DeltaTime)
		p.Y += v.DY * float32(frame.DeltaTime)
	})
}

type HealthSystem struct {
	Health       *ecs.Component[Units, Health]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for hp := range s.Health.Iter().Seq() {
		s.TotalHealth += float64(hp.Current)
	}
}

func TestScheduler(t *testing.T) {
	t.Run("systems execute in registration order", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		var order []string
		scheduler.RegisterNamed("first", ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
		scheduler.RegisterNamed("second", ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("execution counts", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		movement := &MovementSystem{
			Positions:  ecs.ComponentFrom[Units]([]Position{{}}),
			Velocities: ecs.ComponentFrom[Units]([]Velocity{{DX: 1, DY: 2}}),
		}
		health := &HealthSystem{Health: ecs.ComponentFrom[Units]([]Health{{Current: 100, Max: 100}})}

		scheduler.Register(movement)
		scheduler.Register(health)

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}

		scheduler.Once(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 2 {
			t.Errorf("expected HealthSystem to execute twice, got %d", health.ExecuteCount)
		}
	})

	t.Run("custom state persistence", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		hp := ecs.ComponentFrom[Units]([]Health{{Current: 50, Max: 100}, {Current: 75, Max: 100}})
		health := &HealthSystem{Health: hp}
		scheduler.Register(health)

		scheduler.Once(1.0)

		if health.TotalHealth != 125.0 {
			t.Errorf("expected TotalHealth=125.0, got %f", health.TotalHealth)
		}

		hp.Insert(unit(2), Health{Current: 25, Max: 100})

		scheduler.Once(1.0)

		if health.TotalHealth != 150.0 {
			t.Errorf("expected TotalHealth=150.0, got %f", health.TotalHealth)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		health := &HealthSystem{Health: ecs.ComponentFrom[Units]([]Health{{Current: 1}})}
		scheduler.Register(health)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if health.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		movement := &MovementSystem{
			Positions:  ecs.ComponentFrom[Units]([]Position{{}, {X: 1, Y: 1}}),
			Velocities: ecs.ComponentFrom[Units]([]Velocity{{DX: 10, DY: 20}, {DX: -2, DY: 0}}),
		}
		scheduler.Register(movement)

		scheduler.Once(0.5)

		assert.Equal(t, []Position{{X: 5, Y: 10}, {X: 0, Y: 1}}, movement.Positions.Values())
	})

	t.Run("frame counter", func(t *testing.T) {
		scheduler := ecs.NewScheduler()

		var frames []uint64
		scheduler.RegisterNamed("frames", ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
			frames = append(frames, frame.Frame)
		}))

		for range 3 {
			scheduler.Once(0.016)
		}

		assert.Equal(t, []uint64{0, 1, 2}, frames)
		assert.Equal(t, uint64(3), scheduler.GetStats().Frames)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler()

	health := &HealthSystem{Health: ecs.ComponentFrom[Units]([]Health{{Current: 1}})}
	scheduler.Register(health)
	scheduler.RegisterNamed("sleep", ecs.SystemFunc(func(*ecs.UpdateFrame) {
		time.Sleep(time.Millisecond)
	}))

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Equal(t, time.Duration(0), stats.Systems[0].AvgDuration)

	for range 5 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(10), stats.TotalExecutions)
	assert.Equal(t, "HealthSystem", stats.Systems[0].Name)
	assert.Equal(t, "sleep", stats.Systems[1].Name)

	sleep := stats.Systems[1]
	assert.Equal(t, int64(5), sleep.ExecutionCount)
	assert.GreaterOrEqual(t, sleep.MinDuration, time.Millisecond)
	assert.GreaterOrEqual(t, sleep.MaxDuration, sleep.MinDuration)
	assert.GreaterOrEqual(t, sleep.TotalDuration, 5*time.Millisecond)
	assert.Equal(t, sleep.TotalDuration/5, sleep.AvgDuration)
}

func TestSchedulerLogsRegistration(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ecs.SetLogger(zap.New(core))
	defer ecs.SetLogger(nil)

	scheduler := ecs.NewScheduler()
	scheduler.Register(&HealthSystem{Health: &ecs.Component[Units, Health]{}})
	scheduler.RegisterNamed("cleanup", ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {})
	}))
	scheduler.Once(1.0)

	registered := logs.FilterMessage("registered system").All()
	if assert.Len(t, registered, 2) {
		assert.Equal(t, "HealthSystem", registered[0].ContextMap()["name"])
		assert.Equal(t, "cleanup", registered[1].ContextMap()["name"])
	}

	flushed := logs.FilterMessage("flushing commands").All()
	if assert.Len(t, flushed, 1) {
		assert.Equal(t, int64(1), flushed[0].ContextMap()["defers"])
	}
}
