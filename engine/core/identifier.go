package core

import "fmt"

// IdentifierPool hands out small integer ids and recycles released ones.
type IdentifierPool struct {
	owners []interface{}
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{
		owners: make([]interface{}, 0, capacity),
	}
}

func (ip *IdentifierPool) AcquireNewID(owner interface{}) uint32 {
	for i := range ip.owners {
		// Existing free spot. Take it.
		if ip.owners[i] == nil {
			ip.owners[i] = owner
			return uint32(i)
		}
	}
	// If here, no existing free slots. Need a new id, so push one.
	ip.owners = append(ip.owners, owner)
	return uint32(len(ip.owners) - 1)
}

func (ip *IdentifierPool) Owner(id uint32) (interface{}, bool) {
	if int(id) >= len(ip.owners) || ip.owners[id] == nil {
		return nil, false
	}
	return ip.owners[id], true
}

func (ip *IdentifierPool) ReleaseID(id uint32) error {
	if int(id) >= len(ip.owners) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, len(ip.owners))
	}
	if ip.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use. Nothing was done", id)
	}
	// Just zero out the entry, making it available for use.
	ip.owners[id] = nil
	return nil
}

// InUse returns the number of ids currently held.
func (ip *IdentifierPool) InUse() int {
	n := 0
	for _, o := range ip.owners {
		if o != nil {
			n++
		}
	}
	return n
}
