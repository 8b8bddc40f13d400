package log

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/lifecycle/types"
)

// Loggable is the subset of a world that the structured log helpers read.
type Loggable interface {
	Namespace() string
	GetRegisteredComponents() []types.ComponentMetadata
	EntityCount() int
	QueryCount() int
}

// AllocatorState is the subset of an entity id allocator that the structured
// log helpers read.
type AllocatorState interface {
	Capacity() int
	Cursor() int
	DefaultSize() int
	Recyclable() int
}

func loadComponentIntoArrayLogger(
	component types.ComponentMetadata,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID()))
	dictLogger = dictLogger.Str("component_name", component.Name())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	zeroLoggerEvent.Int("total_components", len(target.GetRegisteredComponents()))
	arrayLogger := zerolog.Arr()
	registeredComponents := target.GetRegisteredComponents()
	sort.Slice(registeredComponents, func(i, j int) bool {
		return registeredComponents[i].ID() < registeredComponents[j].ID()
	})
	for _, _component := range registeredComponents {
		arrayLogger = loadComponentIntoArrayLogger(_component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadEntityIntoEvent(
	zeroLoggerEvent *zerolog.Event,
	entityID types.EntityID,
	components []types.ComponentMetadata,
) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	for _, _component := range components {
		arrayLogger = loadComponentIntoArrayLogger(_component, arrayLogger)
	}
	zeroLoggerEvent.Array("components", arrayLogger)
	return zeroLoggerEvent.Int64("entity_id", int64(entityID))
}

// Components logs all component info related to the target.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs the given entity and the components attached to it.
func Entity(
	logger *zerolog.Logger, level zerolog.Level, entityID types.EntityID,
	components []types.ComponentMetadata,
) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadEntityIntoEvent(zeroLoggerEvent, entityID, components)
	zeroLoggerEvent.Send()
}

// World logs the currently registered components of the target world along
// with its entity and query counts.
func World(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Str("namespace", target.Namespace())
	zeroLoggerEvent.Int("entity_count", target.EntityCount())
	zeroLoggerEvent.Int("query_count", target.QueryCount())
	zeroLoggerEvent.Send()
}

// Allocator logs the current shape of the entity id space: how many ids have
// been handed out, how many are waiting to be recycled, and how large the
// id space currently is.
func Allocator(logger *zerolog.Logger, target AllocatorState, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent.Int("capacity", target.Capacity())
	zeroLoggerEvent.Int("cursor", target.Cursor())
	zeroLoggerEvent.Int("default_size", target.DefaultSize())
	zeroLoggerEvent.Int("recyclable", target.Recyclable())
	zeroLoggerEvent.Send()
}

// CreateTraceLogger creates a trace logger for logging requests/responses.
func CreateTraceLogger(logger zerolog.Logger, traceID string) zerolog.Logger {
	return logger.With().
		Str("trace_id", traceID).
		Logger()
}

// SetGlobalLevel parses the given level string ("trace", "debug", "info",
// "warn", "error", "fatal", "panic" or "disabled") and applies it as the
// global zerolog level.
func SetGlobalLevel(level string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return eris.Errorf("invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
