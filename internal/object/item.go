package object

import "github.com/originrealm/worldcore/internal/guid"

// Item is a single stackable or unique item instance: owner guid,
// containing-object guid, stack count, and a duration counter.
type Item struct {
	Base
}

func NewItem(g guid.Guid, entry uint32, owner guid.Guid, stackCount uint32) *Item {
	it := &Item{Base: Base{Guid: g, Entry: entry}}
	it.InitFields(KindItem)
	it.SetUint64(ItemFieldOwner, uint64(owner))
	it.SetUint32(ItemFieldStackCount, stackCount)
	return it
}

func (it *Item) Owner() guid.Guid { return guid.Guid(it.GetUint64(ItemFieldOwner)) }

func (it *Item) StackCount() uint32 { return it.GetUint32(ItemFieldStackCount) }

// SetContained records which container (if any) currently holds this
// item; a zero guid means it sits directly in a character's backpack.
func (it *Item) SetContained(container guid.Guid) {
	it.SetUint64(ItemFieldContained, uint64(container))
}
