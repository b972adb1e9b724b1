package object

import "github.com/originrealm/worldcore/internal/guid"

// Container is an Item that additionally holds up to ContainerNumSlots
// item guids (bags, bank bags).
type Container struct {
	Base
}

func NewContainer(g guid.Guid, entry uint32, owner guid.Guid, numSlots int) *Container {
	if numSlots > ContainerNumSlots {
		numSlots = ContainerNumSlots
	}
	c := &Container{Base: Base{Guid: g, Entry: entry}}
	c.InitFields(KindContainer)
	c.SetUint64(ItemFieldOwner, uint64(owner))
	c.SetUint32(ContainerFieldNumSlots, uint32(numSlots))
	return c
}

func (c *Container) Owner() guid.Guid { return guid.Guid(c.GetUint64(ItemFieldOwner)) }

func (c *Container) NumSlots() int { return int(c.GetUint32(ContainerFieldNumSlots)) }

// SlotGuid returns the item guid stored in slot i, or zero if empty.
func (c *Container) SlotGuid(i int) guid.Guid {
	return guid.Guid(c.GetUint64(ContainerFieldSlot(i)))
}

// SetSlot places itemGuid (or clears with a zero guid) into slot i.
func (c *Container) SetSlot(i int, itemGuid guid.Guid) {
	c.SetUint64(ContainerFieldSlot(i), uint64(itemGuid))
}
