package models

// ProfileSettings holds per-user preferences carried inside the profile.
type ProfileSettings struct {
	Theme          string `json:"theme,omitempty"`
	Language       string `json:"language,omitempty"`
	PrivateProfile bool   `json:"privateProfile,omitempty"`
	EmailUpdates   bool   `json:"emailUpdates,omitempty"`
}

// UserProfile is a full profile record keyed by username.
type UserProfile struct {
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName,omitempty"`
	Bio         string          `json:"bio,omitempty"`
	AvatarURL   string          `json:"avatarUrl,omitempty"`
	JoinedAt    int64           `json:"joinedAt,omitempty"`
	Settings    ProfileSettings `json:"settings"`
}
