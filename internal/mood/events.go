package mood

// EventKind names a semantic event that can move the mood. The set is
// closed: kinds are typed constants and the transition table below is the
// only mapping, so an unknown kind can only come from a typo at a call site.
type EventKind string

const (
	// Conversation events
	EventPositiveChat  EventKind = "positive_chat"
	EventNegativeChat  EventKind = "negative_chat"
	EventNeutralChat   EventKind = "neutral_chat"
	EventFirstChatOfDay EventKind = "first_chat_of_day"

	// Task events
	EventTaskCompleted       EventKind = "task_completed"
	EventTaskCompletedUrgent EventKind = "task_completed_urgent"

	// Direct interaction
	EventUserCommand EventKind = "user_command"

	// Scheduler-driven
	EventIdleBored  EventKind = "idle_bored"
	EventIdleLonely EventKind = "idle_lonely"
	EventQuietHours EventKind = "quiet_hours"

	// Autonomous behavior feedback
	EventSelfGreeting    EventKind = "self_greeting"
	EventSelfEntertained EventKind = "self_entertained"

	// Progression feedback
	EventLevelUp         EventKind = "level_up"
	EventAchievement     EventKind = "achievement"
	EventStreakMilestone EventKind = "streak_milestone"
)

// Transition is the fixed outcome of an event: the mood it lands on and the
// intensity boost it carries at full magnitude.
type Transition struct {
	Target Mood
	Delta  float64
}

// transitions maps every known event kind to its outcome. Events always win
// over the current mood; decay is what brings the companion back down.
var transitions = map[EventKind]Transition{
	EventPositiveChat:   {MoodHappy, 0.3},
	EventNegativeChat:   {MoodGrumpy, 0.3},
	EventNeutralChat:    {MoodContent, 0.15},
	EventFirstChatOfDay: {MoodExcited, 0.4},

	EventTaskCompleted:       {MoodContent, 0.2},
	EventTaskCompletedUrgent: {MoodExcited, 0.35},

	EventUserCommand: {MoodCurious, 0.15},

	EventIdleBored:  {MoodBored, 0.25},
	EventIdleLonely: {MoodLonely, 0.35},
	EventQuietHours: {MoodSleepy, 0.2},

	EventSelfGreeting:    {MoodHappy, 0.2},
	EventSelfEntertained: {MoodCurious, 0.3},

	EventLevelUp:         {MoodExcited, 0.5},
	EventAchievement:     {MoodPlayful, 0.4},
	EventStreakMilestone: {MoodHappy, 0.3},
}

// Known reports whether kind has a transition. Registration-time validation
// for callers that accept event names from configuration.
func Known(kind EventKind) bool {
	_, ok := transitions[kind]
	return ok
}
