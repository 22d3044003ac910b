package item

import "strings"

// Kind tags the type of a value descriptor. Kinds are bit-flags so a call
// site can accept a union of them.
type Kind uint32

const (
	// KindVoid marks an expectation of an empty payload; no Item carries it.
	KindVoid Kind = 1 << iota
	KindNull
	KindBool
	KindInt
	KindUint
	KindF64
	KindStr
	KindBytes
	KindCounter
	KindTimestamp
	KindActorID
	KindChangeHash
	KindObjID
	KindDoc

	kindEnd
)

// KindAny accepts every kind.
const KindAny = kindEnd - 1

var kindNames = map[Kind]string{
	KindVoid:       "void",
	KindNull:       "null",
	KindBool:       "bool",
	KindInt:        "int",
	KindUint:       "uint",
	KindF64:        "f64",
	KindStr:        "str",
	KindBytes:      "bytes",
	KindCounter:    "counter",
	KindTimestamp:  "timestamp",
	KindActorID:    "actor-id",
	KindChangeHash: "change-hash",
	KindObjID:      "obj-id",
	KindDoc:        "doc",
}

// String renders a single kind by name and a union as "a|b|c".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	var parts []string
	for bit := KindVoid; bit < kindEnd; bit <<= 1 {
		if k&bit != 0 {
			parts = append(parts, kindNames[bit])
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// Contains reports whether every bit of other is present in k.
func (k Kind) Contains(other Kind) bool {
	return other != 0 && k&other == other
}

// IsScalar reports whether the kind is a document-storable scalar value.
func (k Kind) IsScalar() bool {
	const scalars = KindNull | KindBool | KindInt | KindUint | KindF64 |
		KindStr | KindBytes | KindCounter | KindTimestamp
	return k != 0 && scalars.Contains(k)
}
