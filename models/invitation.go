package models

// InviteRequest asks the server to email the team code and the current
// balances to someone.
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}
