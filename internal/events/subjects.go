package events

const (
	SubjectDiningStats = "dining.reco.stats"

	StreamName   = "DINING_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectProfileCreated(userID string) string { return "dining.profile." + userID + ".created" }
func SubjectProfileUpdated(userID string) string { return "dining.profile." + userID + ".updated" }

func SubjectRatingRecorded(restaurantID string) string {
	return "dining.restaurant." + restaurantID + ".rated"
}
func SubjectFriendPick(restaurantID string) string {
	return "dining.restaurant." + restaurantID + ".friend_pick"
}

func SubjectRecommendationsServed(userID string) string {
	return "dining.reco." + userID + ".served"
}
func SubjectGroupRecommendationsServed() string { return "dining.reco.group.served" }
