package reservation

type LockState string

const (
	LockActive    LockState = "ACTIVE"
	LockConfirmed LockState = "CONFIRMED"
	LockReleased  LockState = "RELEASED"
	LockExpired   LockState = "EXPIRED"
)

func (s LockState) IsValid() bool {
	switch s {
	case LockActive, LockConfirmed, LockReleased, LockExpired:
		return true
	}
	return false
}

// IsTerminal reports whether the state is final. ACTIVE is the only
// non-terminal state; terminal locks are immutable.
func (s LockState) IsTerminal() bool {
	return s != LockActive
}

func (s LockState) String() string {
	return string(s)
}
