package services

// Identity is the authenticated caller as resolved by the auth middleware.
type Identity struct {
	UserID   string
	Email    string
	Timezone string
}
