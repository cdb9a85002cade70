package stage

import (
	"reflect"
	"time"
)

// Stats describes frame loop activity.
type Stats struct {
	Frames         int64
	SkippedRenders int64
	Elapsed        time.Duration
	Actors         []ActorStats
}

// ActorStats provides update statistics for a single actor.
type ActorStats struct {
	Name          string
	UpdateCount   int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type actorStatsInternal struct {
	name          string
	updateCount   int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func newActorStats(actor Actor) *actorStatsInternal {
	actorType := reflect.TypeOf(actor)
	if actorType.Kind() == reflect.Ptr {
		actorType = actorType.Elem()
	}
	return &actorStatsInternal{
		name:        actorType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *actorStatsInternal) record(duration time.Duration) {
	s.updateCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *actorStatsInternal) snapshot() ActorStats {
	avgDuration := time.Duration(0)
	minDuration := time.Duration(0)
	if s.updateCount > 0 {
		avgDuration = s.totalDuration / time.Duration(s.updateCount)
		minDuration = s.minDuration
	}
	return ActorStats{
		Name:          s.name,
		UpdateCount:   s.updateCount,
		MinDuration:   minDuration,
		MaxDuration:   s.maxDuration,
		AvgDuration:   avgDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
	}
}
