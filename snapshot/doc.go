/*
Package snapshot captures the entity lifecycle state of a world and restores it into
another world, possibly one attached to a different allocator. Lifecycle state is the
set of live entity IDs and the component composition of each entity. Component values
live outside the lifecycle layer and are not part of a snapshot.

# Serialized state model

A snapshot is a single JSON document with four fields.

namespace: The namespace of the world the snapshot was taken from.

capacity: The entity capacity of the source allocator at serialization time. Stored
for inspection only; restoring does not resize the target allocator.

components: The component types registered with the source world, in registration
order. Each entry carries the component's name and the JSON schema it was registered
with. On restore, every named component must already be registered with the target
world and the saved schema must match the registered one, so a snapshot taken against
one shape of a component cannot be silently restored against another.

entities: The live entities, ordered by ID. Each entry carries the entity's ID in the
source allocator's ID space and the names of its components in attachment order.

Entity IDs are not portable between allocators. Restoring therefore allocates a fresh
ID for every saved entity and records the saved-to-fresh pairing on the target world,
where it can be queried with World.GlobalID and World.LocalID. Restoring the same
saved ID into a world twice is an error.

# Redis storage model

Store persists snapshots in redis, one key per namespace. All keys are prefixed with
"SNAPSHOT".

key:	fmt.Sprintf("SNAPSHOT:%s", namespace)
value:	The serialized JSON state most recently saved for the namespace.

Saving a namespace overwrites its previous snapshot. There is no history; callers
that need point-in-time recovery should save under distinct namespaces.
*/
package snapshot
