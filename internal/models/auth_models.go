package models

// User is an operator of the shop terminal. The login gate maintains a
// small fixed set of these; there is no registration flow.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"` // "admin" or "staff"
	DisplayName string `json:"displayName"`
}

// Credentials for a login request.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
