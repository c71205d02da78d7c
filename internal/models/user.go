package models

// User account types as issued by the backend.
const (
	UserTypeVendor   = "vendor"
	UserTypeCustomer = "customer"
)

// User represents the profile of the currently signed-in account.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"` // "vendor" or "customer"
}

// LoginRequest represents the credentials sent to POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents the payload sent to POST /auth/signup.
type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	UserType  string `json:"user_type" validate:"required,oneof=vendor customer"`
}

// AuthSession is the backend response to a successful login.
type AuthSession struct {
	AccessToken string `json:"access_token"`
}
