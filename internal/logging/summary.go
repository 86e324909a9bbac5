package logging

import (
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RunSummary collects build identity, configuration and results of one
// run, then emits them as a single structured zerolog event. One line is
// enough to see how a sheet was produced when comparing runs.
type RunSummary struct {
	name       string
	commitHash string
	buildTime  string
	runID      string
	elapsed    time.Duration

	config  map[string]string
	results map[string]int64
	failed  error
}

// NewRunSummary creates a RunSummary for the named tool.
func NewRunSummary(name string) *RunSummary {
	return &RunSummary{
		name:    name,
		config:  make(map[string]string),
		results: make(map[string]int64),
	}
}

// CommitHash sets the git commit hash baked into the binary at build time.
func (s *RunSummary) CommitHash(hash string) *RunSummary {
	s.commitHash = hash
	return s
}

// BuildTime sets the UTC build timestamp baked into the binary at build time.
func (s *RunSummary) BuildTime(t string) *RunSummary {
	s.buildTime = t
	return s
}

// RunID sets the identifier shared with the run's metrics.
func (s *RunSummary) RunID(id string) *RunSummary {
	s.runID = id
	return s
}

// Config registers a configuration key-value pair.
func (s *RunSummary) Config(key, value string) *RunSummary {
	s.config[key] = value
	return s
}

// Result registers a numeric outcome (frames, bytes, dimensions).
func (s *RunSummary) Result(key string, value int64) *RunSummary {
	s.results[key] = value
	return s
}

// Elapsed records the wall time of the run.
func (s *RunSummary) Elapsed(d time.Duration) *RunSummary {
	s.elapsed = d
	return s
}

// Failed marks the run as failed with err.
func (s *RunSummary) Failed(err error) *RunSummary {
	s.failed = err
	return s
}

// Log emits a single structured event with all collected information:
// INFO for a successful run, ERROR for a failed one.
func (s *RunSummary) Log() {
	evt := log.Info()
	if s.failed != nil {
		evt = log.Error().Err(s.failed)
	}

	tool := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv(LevelEnv))
	if s.commitHash != "" {
		tool = tool.Str("commitHash", s.commitHash)
	}
	if s.buildTime != "" {
		tool = tool.Str("buildTime", s.buildTime)
	}
	evt = evt.Dict("tool", tool)

	if s.runID != "" {
		evt = evt.Str("runId", s.runID)
	}

	if len(s.config) > 0 {
		d := zerolog.Dict()
		for _, k := range sortedKeys(s.config) {
			d = d.Str(k, s.config[k])
		}
		evt = evt.Dict("config", d)
	}

	if len(s.results) > 0 {
		d := zerolog.Dict()
		for _, k := range sortedKeys(s.results) {
			d = d.Int64(k, s.results[k])
		}
		evt = evt.Dict("results", d)
	}

	if s.elapsed > 0 {
		evt = evt.Dur("elapsed", s.elapsed)
	}

	if s.failed != nil {
		evt.Msg("Framesheet run failed")
		return
	}
	evt.Msg("Framesheet run complete")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
