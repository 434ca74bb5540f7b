package psystem

// MoveCode selects where a rule's products go. The full vocabulary from the
// reference implementation is kept as named constants so a rule table can
// reference any of them and fail with ErrMoveNotImplemented rather than
// behave unpredictably; only the subset spec.md calls out actually executes.
type MoveCode int

const (
	Here MoveCode = iota
	Out
	In
	Mem
	Diss
	DissKeep
	MemWC
	MemTrans
	GroupTrans
	MemwOB
	DMEM
)

func (mc MoveCode) String() string {
	switch mc {
	case Here:
		return "HERE"
	case Out:
		return "OUT"
	case In:
		return "IN"
	case Mem:
		return "MEM"
	case Diss:
		return "DISS"
	case DissKeep:
		return "DISS_KEEP"
	case MemWC:
		return "MEMWC"
	case MemTrans:
		return "MEMTRANS"
	case GroupTrans:
		return "GROUP_TRANS"
	case MemwOB:
		return "MEMwOB"
	case DMEM:
		return "DMEM"
	default:
		return "UNKNOWN"
	}
}

// implemented reports whether this core executes the move code, per
// spec.md §3 ("This spec implements at least {HERE, OUT, IN, MEMwOB,
// DISS_KEEP, DMEM}").
func (mc MoveCode) implemented() bool {
	switch mc {
	case Here, Out, In, MemwOB, DissKeep, DMEM:
		return true
	default:
		return false
	}
}
