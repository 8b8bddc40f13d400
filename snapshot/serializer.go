package snapshot

import (
	"context"
	"sort"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	ddotel "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/opentelemetry"
	ddtracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"pkg.world.dev/world-engine/lifecycle"
	"pkg.world.dev/world-engine/lifecycle/codec"
	ecslog "pkg.world.dev/world-engine/lifecycle/log"
	"pkg.world.dev/world-engine/lifecycle/types"
	"pkg.world.dev/world-engine/lifecycle/world"
)

var _ lifecycle.Resizer = &Serializer{}

// componentState is the registry entry for one component type in a saved
// state: the component's name and the JSON schema it was registered with.
type componentState struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

// entityState is one live entity in a saved state: its ID in the source
// world's ID space and the names of the components attached to it, in
// attachment order.
type entityState struct {
	ID         types.EntityID `json:"id"`
	Components []string       `json:"components,omitempty"`
}

// state is the serialized form of a world's entity lifecycle state.
type state struct {
	Namespace  string           `json:"namespace"`
	Capacity   int              `json:"capacity"`
	Components []componentState `json:"components,omitempty"`
	Entities   []entityState    `json:"entities,omitempty"`
}

// Serializer captures and restores the entity lifecycle state of a single
// world: which entity IDs are live and which components each of them carries.
// Component values are not part of lifecycle state and are not serialized.
type Serializer struct {
	w       *world.World
	tracer  trace.Tracer
	resized bool
	scratch []entityState
}

// NewSerializer creates a serializer bound to the given world. The serializer
// registers itself with the world's allocator so its reusable buffers are
// invalidated whenever the entity capacity changes.
func NewSerializer(w *world.World) (*Serializer, error) {
	if w == nil {
		return nil, eris.New("a world is required")
	}
	s := &Serializer{
		w:      w,
		tracer: otel.Tracer("snapshot"),
	}
	if err := w.Allocator().RegisterResizer(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize implements lifecycle.Resizer. The serializer holds no per-entity
// state of its own, so a capacity change only marks its buffers stale.
func (s *Serializer) Resize(int) error {
	s.MarkResized(true)
	return nil
}

// MarkResized flags the serializer's reusable buffers as stale. The next
// Serialize call reallocates them at the world's current entity count.
func (s *Serializer) MarkResized(resized bool) {
	s.resized = resized
	if resized {
		s.scratch = nil
	}
}

// Serialize encodes the world's live entities, their component composition
// and the registered component schemas into a single JSON blob. Entities are
// ordered by ID so identical worlds serialize to identical bytes.
func (s *Serializer) Serialize(ctx context.Context) ([]byte, error) {
	_, span := s.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "snapshot.serialize")
	defer span.End()

	if s.resized || s.scratch == nil {
		s.scratch = make([]entityState, 0, s.w.EntityCount())
		s.resized = false
	}

	registered := s.w.GetRegisteredComponents()
	components := make([]componentState, 0, len(registered))
	for _, md := range registered {
		components = append(components, componentState{
			Name:   md.Name(),
			Schema: md.GetSchema(),
		})
	}

	ids := s.w.Entities()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	entities := s.scratch[:0]
	for _, id := range ids {
		mds, err := s.w.GetEntityComponents(id)
		if err != nil {
			span.SetStatus(codes.Error, eris.ToString(err, true))
			span.RecordError(err)
			return nil, err
		}
		names := make([]string, 0, len(mds))
		for _, md := range mds {
			names = append(names, md.Name())
		}
		entities = append(entities, entityState{ID: id, Components: names})
	}
	s.scratch = entities

	bz, err := codec.Encode(state{
		Namespace:  s.w.Namespace(),
		Capacity:   s.w.Allocator().Capacity(),
		Components: components,
		Entities:   entities,
	})
	if err != nil {
		span.SetStatus(codes.Error, eris.ToString(err, true))
		span.RecordError(err)
		return nil, err
	}
	return bz, nil
}

// Deserialize restores the entities of a saved state into the world. Saved
// IDs belong to the source world's ID space, so each one is allocated a fresh
// ID here and the pairing is recorded on the world (see World.GlobalID and
// World.LocalID).
//
// Every component named by the saved state must already be registered with
// the world, and saved schemas must match the registered ones.
func (s *Serializer) Deserialize(ctx context.Context, bz []byte) error {
	_, span := s.tracer.Start(ddotel.ContextWithStartOptions(ctx, ddtracer.Measured()), "snapshot.deserialize")
	defer span.End()

	if err := s.deserialize(bz); err != nil {
		span.SetStatus(codes.Error, eris.ToString(err, true))
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *Serializer) deserialize(bz []byte) error {
	saved, err := codec.Decode[state](bz)
	if err != nil {
		return err
	}

	for _, c := range saved.Components {
		md, err := s.w.Registry().ByName(c.Name)
		if err != nil {
			return eris.Wrapf(ErrComponentMismatchWithSavedState, "component %q is not registered", c.Name)
		}
		if len(c.Schema) == 0 {
			continue
		}
		if err := md.ValidateAgainstSchema(c.Schema); err != nil {
			return err
		}
	}

	for _, e := range saved.Entities {
		global, err := s.w.ImportEntity(e.ID)
		if err != nil {
			return err
		}
		attached := make([]types.ComponentMetadata, 0, len(e.Components))
		for _, name := range e.Components {
			md, err := s.w.Registry().ByName(name)
			if err != nil {
				return eris.Wrapf(ErrComponentMismatchWithSavedState, "component %q is not registered", name)
			}
			if err := s.w.AddComponentToEntity(md, global); err != nil {
				return err
			}
			attached = append(attached, md)
		}
		ecslog.Entity(s.w.Logger, zerolog.TraceLevel, global, attached)
	}
	return nil
}
