package snapshot

import (
	"fmt"
)

// snapshotKeyPrefix prefixes every snapshot key so saved states can share a
// redis DB with other data without colliding.
const snapshotKeyPrefix = "SNAPSHOT:"

// snapshotKey is the key that stores the serialized lifecycle state of the
// world with the given namespace.
func snapshotKey(namespace string) string {
	return fmt.Sprintf("%s%s", snapshotKeyPrefix, namespace)
}
