package contextkeys

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
	UserNameKey contextKey = "userName"
	TokenKey    contextKey = "sessionToken"
)
