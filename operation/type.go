package operation

// Type represents the type of store operation.
type Type int

const (
	// TypeGet reads a key through a snapshot.
	TypeGet Type = iota
	// TypePut writes a value at the current epoch.
	TypePut
	// TypeDelete writes a tombstone at the current epoch.
	TypeDelete
	// TypeTakeSnapshot freezes the current epoch.
	TypeTakeSnapshot
	// TypeDeleteSnapshot makes a snapshot unreadable.
	TypeDeleteSnapshot
)

func (t Type) String() string {
	switch t {
	case TypeGet:
		return "Get"
	case TypePut:
		return "Put"
	case TypeDelete:
		return "Delete"
	case TypeTakeSnapshot:
		return "TakeSnapshot"
	case TypeDeleteSnapshot:
		return "DeleteSnapshot"
	default:
		return "Unknown"
	}
}

// IsWrite reports whether operations of this type change keys.
func (t Type) IsWrite() bool {
	return t == TypePut || t == TypeDelete
}
