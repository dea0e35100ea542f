package domain

// Identity is an already-verified caller: who they are and what role they hold.
type Identity struct {
	UserID int64
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role.IsAdmin() }
