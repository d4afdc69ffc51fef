package types

// ActivityType labels events in the dashboard activity feed.
type ActivityType string

const (
	ActivityCreated    ActivityType = "created"
	ActivitySent       ActivityType = "sent"
	ActivityViewed     ActivityType = "viewed"
	ActivityAccepted   ActivityType = "accepted"
	ActivityExpiring   ActivityType = "expiring"
	ActivityDuplicated ActivityType = "duplicated"
)

var activityColors = map[ActivityType]string{
	ActivityAccepted:   "success",
	ActivityViewed:     "accent2",
	ActivityExpiring:   "gold",
	ActivityCreated:    "muted",
	ActivitySent:       "accent",
	ActivityDuplicated: "muted",
}

// ActivityColor returns the display color token for an activity type.
// Unknown types fall back to "muted".
func ActivityColor(t ActivityType) string {
	if c, ok := activityColors[t]; ok {
		return c
	}
	return "muted"
}
