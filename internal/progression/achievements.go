package progression

// Achievement is a fixed catalog entry: a display name and the bonus XP it
// pays on first unlock.
type Achievement struct {
	ID   string
	Name string
	XP   int
}

// Catalog ids.
const (
	AchieveFirstChat = "first_chat"
	AchieveFirstTask = "first_task"
	AchieveStreak3   = "streak_3"
	AchieveStreak7   = "streak_7"
	AchieveLevel5    = "level_5"
	AchieveLevel10   = "level_10"
	AchieveLevel25   = "level_25"
	AchievePrestige1 = "prestige_1"
	AchieveNightOwl  = "night_owl"
)

// achievementCatalog is the closed set of unlockable achievements.
var achievementCatalog = map[string]Achievement{
	AchieveFirstChat: {AchieveFirstChat, "First Words", 10},
	AchieveFirstTask: {AchieveFirstTask, "Getting Things Done", 10},
	AchieveStreak3:   {AchieveStreak3, "Three In A Row", 20},
	AchieveStreak7:   {AchieveStreak7, "A Whole Week", 40},
	AchieveLevel5:    {AchieveLevel5, "Warming Up", 25},
	AchieveLevel10:   {AchieveLevel10, "Double Digits", 50},
	AchieveLevel25:   {AchieveLevel25, "Summit", 100},
	AchievePrestige1: {AchievePrestige1, "Born Again", 100},
	AchieveNightOwl:  {AchieveNightOwl, "Night Owl", 15},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	a, ok := achievementCatalog[id]
	return a, ok
}
