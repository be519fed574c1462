package invite

import "errors"

var (
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteAlreadyResolved = errors.New("invite has already been accepted or declined")
	ErrNotInviter            = errors.New("only the inviter can revoke an invite")
	ErrNotInvitee            = errors.New("invite is addressed to a different email")
	ErrInvalidInput          = errors.New("invalid invite input")
)
