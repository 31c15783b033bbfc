package models

// Session is the active-session record persisted in the system collection.
// Its absence means no user is authenticated on this device.
type Session struct {
	Username string `json:"username"`
	// Token is the bearer token issued by the remote service. Its registered
	// claims (subject, expiry) are parsed locally on session restore.
	Token string `json:"token"`
}
