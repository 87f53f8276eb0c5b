//go:build silo32

package silo

// Id is the compact, 32-bit packed entity identifier: 22 index bits and
// 10 generation bits. Built with -tags silo32; omit the tag for the
// default 64-bit layout (id_default.go).
type Id uint32

// idWord is the unsigned integer type Id is packed into.
type idWord = uint32

const (
	indexBits = 22
	indexMask = (idWord(1) << indexBits) - 1
)
