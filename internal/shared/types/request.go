package types

// LoginRequest is the credential payload sent to the authentication service
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the authentication service's reply. Message carries a
// human-readable reason on failure.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message"`
}

// UserUpsertRequest creates or updates a managed user account
type UserUpsertRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role"`
}

// BroadcastCreateRequest creates a new broadcast, deactivating any prior one
type BroadcastCreateRequest struct {
	Title     string `json:"title"`
	Message   string `json:"message" binding:"required"`
	CreatedBy string `json:"created_by"`
}

// LoginLog is one recorded authentication attempt
type LoginLog struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Success   bool   `json:"success"`
	IPAddress string `json:"ip_address"`
	Timestamp string `json:"timestamp"`
	Role      *Role  `json:"role,omitempty"`
}
