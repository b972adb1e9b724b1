package object

import "github.com/originrealm/worldcore/internal/guid"

// NewObject builds the bare KindObject variant — used for entities that
// carry only the root field layout (e.g. transient world markers).
func NewObject(g guid.Guid, entry uint32) *Base {
	b := &Base{Guid: g, Entry: entry}
	b.InitFields(KindObject)
	return b
}
