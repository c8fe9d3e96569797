package types

type UserType string

const (
	UserTypeEmployee UserType = "Employee"
	UserTypeAdmin    UserType = "Admin"
)

// User is the current user record kept client side under the "user" key.
type User struct {
	Type  UserType `json:"type"`
	Email string   `json:"email,omitempty"`
}
