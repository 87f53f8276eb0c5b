package silo

import "fmt"

// NullID is the all-zero Id reserved to mean "no entity". Index 0 is never
// issued by an EntityManager.
const NullID Id = 0

// Index returns the index component of the packed id.
func (id Id) Index() uint32 {
	return uint32(id & indexMask)
}

// Generation returns the generation component of the packed id.
func (id Id) Generation() uint32 {
	return uint32(id >> indexBits)
}

// Raw returns the packed integer backing this Id.
func (id Id) Raw() idWord {
	return idWord(id)
}

// IsNull reports whether id is the reserved NULL id.
func (id Id) IsNull() bool {
	return id == NullID
}

// String renders the id as "index#generation", or "NULL" for the zero id.
func (id Id) String() string {
	if id.IsNull() {
		return "NULL"
	}
	return fmt.Sprintf("%d#%d", id.Index(), id.Generation())
}

// packID builds a packed Id from an index and generation, asserting the
// index fits in indexBits. Index 0 is reserved for NULL and must never be
// passed here by the allocator.
func packID(index, generation uint32) Id {
	assertf(idWord(index) <= indexMask, "silo: entity index %d exceeds the %d-bit index space", index, indexBits)
	return Id(idWord(generation)<<indexBits | (idWord(index) & indexMask))
}
