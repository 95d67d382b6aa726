package activity

import "time"

const (
	ActionSignup        = "USER_SIGNUP"
	ActionLogin         = "USER_LOGIN"
	ActionLogout        = "USER_LOGOUT"
	ActionProfileUpdate = "PROFILE_UPDATE"
	ActionPlaceLiked    = "PLACE_LIKED"
	ActionPlaceUnliked  = "PLACE_UNLIKED"
)

type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
