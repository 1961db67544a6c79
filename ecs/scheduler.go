package ecs

import (
	"reflect"
	"time"
)

// System represents a behavior that operates on entities with specific components.
// Systems may declare Query and Singleton fields, which the Scheduler binds on Register,
// as well as their own state that persists between passes.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system of one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(storage *Storage)
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Name            string
	SystemCount     int
	Passes          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	s.minDuration = min(s.minDuration, d)
	s.maxDuration = max(s.maxDuration, d)
}

// Scheduler executes its registered systems sequentially, in registration order.
type Scheduler struct {
	name        string
	storage     *Storage
	frame       *UpdateFrame
	systems     []System
	systemStats []*systemStatsInternal
	passes      int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return NewNamedScheduler("", storage)
}

// NewNamedScheduler creates a scheduler whose stats carry name, useful when a program
// drives several passes over the same storage.
func NewNamedScheduler(name string, storage *Storage) *Scheduler {
	return &Scheduler{
		name:    name,
		storage: storage,
		frame: &UpdateFrame{
			Commands: NewCommands(),
			Storage:  storage,
		},
	}
}

// Register adds a system to the scheduler and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr || systemValue.Elem().Kind() != reflect.Struct {
		return
	}
	systemValue = systemValue.Elem()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Once executes all registered systems once with the given delta time.
// Commands queued by a system are flushed before the next system runs. If a system
// panics, the commands it queued are discarded and the panic continues.
func (s *Scheduler) Once(dt float64) {
	s.frame.DeltaTime = dt
	s.passes++

	for i, system := range s.systems {
		s.execute(i, system)
	}
}

func (s *Scheduler) execute(i int, system System) {
	start := time.Now()
	defer func() {
		s.systemStats[i].record(time.Since(start))
		if r := recover(); r != nil {
			s.frame.Commands.Reset()
			panic(r)
		}
	}()

	system.Execute(s.frame)
	s.frame.Commands.Flush(s.storage)
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Name:        s.name,
		SystemCount: len(s.systems),
		Passes:      s.passes,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		var avgDuration time.Duration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
