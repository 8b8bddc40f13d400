package component

import (
	"fmt"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/lifecycle/types"
)

// MaxComponentTypes is the maximum number of component types a single world
// can register. Four generation groups of 64 bits each.
const MaxComponentTypes = 256

var (
	ErrComponentNotRegistered = eris.New("component not registered")
	ErrComponentLimitReached  = eris.New("component type limit reached")
)

// BitLocation returns the generation group and bitmask word bit for a
// component ID.
func BitLocation(id types.ComponentID) (group int, bit uint64) {
	return int(id) / 64, 1 << (uint(id) % 64)
}

// Registry assigns component IDs and tracks the component metadata registered
// with a single world.
type Registry struct {
	registeredComponents map[string]types.ComponentMetadata
	ordered              []types.ComponentMetadata
	nextComponentID      types.ComponentID
}

// NewRegistry creates a new component registry.
func NewRegistry() *Registry {
	return &Registry{
		registeredComponents: make(map[string]types.ComponentMetadata),
	}
}

// Register registers component metadata and assigns its component ID.
// There can only be one component with a given name, which is declared by the user by implementing the Name() method.
// If there is a duplicate component name, an error will be returned and the component will not be registered.
func (r *Registry) Register(compMetadata types.ComponentMetadata) (types.ComponentID, error) {
	if err := r.isComponentNameUnique(compMetadata); err != nil {
		return 0, err
	}
	if int(r.nextComponentID) >= MaxComponentTypes {
		return 0, eris.Wrap(ErrComponentLimitReached,
			fmt.Sprintf("cannot register more than %d component types", MaxComponentTypes),
		)
	}

	if err := compMetadata.SetID(r.nextComponentID); err != nil {
		return 0, err
	}
	r.registeredComponents[compMetadata.Name()] = compMetadata
	r.ordered = append(r.ordered, compMetadata)

	id := r.nextComponentID
	r.nextComponentID++
	return id, nil
}

// Components returns a list of all registered components in registration order.
func (r *Registry) Components() []types.ComponentMetadata {
	out := make([]types.ComponentMetadata, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByName returns the component metadata for the given component name.
func (r *Registry) ByName(name string) (types.ComponentMetadata, error) {
	c, ok := r.registeredComponents[name]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q is not registered", name))
	}
	return c, nil
}

// ByID returns the component metadata for the given component ID.
func (r *Registry) ByID(id types.ComponentID) (types.ComponentMetadata, error) {
	if id < 0 || int(id) >= len(r.ordered) {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component id %d is not registered", id))
	}
	return r.ordered[id], nil
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// isComponentNameUnique checks if the component name already exist in component map.
func (r *Registry) isComponentNameUnique(compMetadata types.ComponentMetadata) error {
	_, ok := r.registeredComponents[compMetadata.Name()]
	if ok {
		return eris.Errorf("component %q is already registered", compMetadata.Name())
	}
	return nil
}
