package companion

import (
	"testing"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/progression"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestCompanion(t *testing.T) *Companion {
	t.Helper()
	c, err := New(Options{
		Traits:      mood.DefaultTraits(),
		HourlyXPCap: 10_000_000,
		DailyXPCap:  50_000_000,
		PerGrantMax: 1_000_000,
	}, t0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestChatEventGrantsXPAndMood(t *testing.T) {
	c := newTestCompanion(t)

	res := c.OnChatEvent(SentimentPositive, false, t0)
	if res.XPGranted != 5 {
		t.Fatalf("positive chat granted %d XP, want 5", res.XPGranted)
	}
	if res.MoodEvent != mood.EventPositiveChat {
		t.Fatalf("mood event = %s, want %s", res.MoodEvent, mood.EventPositiveChat)
	}
	if st := c.Snapshot(); st.Mood != mood.MoodHappy {
		t.Fatalf("mood = %s, want %s", st.Mood, mood.MoodHappy)
	}
}

func TestNegativeChatGrantsNoXP(t *testing.T) {
	c := newTestCompanion(t)

	res := c.OnChatEvent(SentimentNegative, false, t0)
	if res.XPGranted != 0 {
		t.Fatalf("negative chat granted %d XP, want 0", res.XPGranted)
	}
	if st := c.Snapshot(); st.Mood != mood.MoodGrumpy {
		t.Fatalf("mood = %s, want %s", st.Mood, mood.MoodGrumpy)
	}
}

func TestFirstChatOfDay(t *testing.T) {
	c := newTestCompanion(t)

	res := c.OnChatEvent(SentimentPositive, true, t0)
	if res.MoodEvent != mood.EventFirstChatOfDay {
		t.Fatalf("mood event = %s, want %s", res.MoodEvent, mood.EventFirstChatOfDay)
	}
	if res.XPGranted != 15 {
		t.Fatalf("first chat granted %d XP, want 15", res.XPGranted)
	}
	st := c.Snapshot()
	if !contains(st.Achievements, progression.AchieveFirstChat) {
		t.Fatal("first_chat achievement not unlocked")
	}
	// Chat XP plus the achievement bonus.
	if st.XPTotal != 25 {
		t.Fatalf("xp total = %d, want 25", st.XPTotal)
	}
}

func TestNightOwlAchievement(t *testing.T) {
	c := newTestCompanion(t)

	lateNight := time.Date(2026, 3, 15, 2, 30, 0, 0, time.UTC)
	c.OnChatEvent(SentimentNeutral, false, lateNight)
	if !contains(c.Snapshot().Achievements, progression.AchieveNightOwl) {
		t.Fatal("night_owl achievement not unlocked for a 02:30 chat")
	}

	c2 := newTestCompanion(t)
	c2.OnChatEvent(SentimentNeutral, false, t0)
	if contains(c2.Snapshot().Achievements, progression.AchieveNightOwl) {
		t.Fatal("night_owl unlocked for a midday chat")
	}
}

func TestTaskCompletion(t *testing.T) {
	c := newTestCompanion(t)

	out := c.OnTaskCompleted(progression.PriorityUrgent, true, t0, t0)
	if out.XPGranted != 50 {
		t.Fatalf("urgent on-time task granted %d XP, want 50", out.XPGranted)
	}
	if out.StreakDays != 1 {
		t.Fatalf("streak = %d, want 1", out.StreakDays)
	}
	if !contains(c.Snapshot().Achievements, progression.AchieveFirstTask) {
		t.Fatal("first_task achievement not unlocked")
	}
}

func TestStreakAchievementsUnlock(t *testing.T) {
	c := newTestCompanion(t)

	for day := 0; day < 7; day++ {
		when := t0.AddDate(0, 0, day)
		c.OnTaskCompleted(progression.PriorityLow, false, when, when)
	}
	st := c.Snapshot()
	if st.StreakDays != 7 {
		t.Fatalf("streak = %d, want 7", st.StreakDays)
	}
	if !contains(st.Achievements, progression.AchieveStreak3) {
		t.Fatal("streak_3 not unlocked")
	}
	if !contains(st.Achievements, progression.AchieveStreak7) {
		t.Fatal("streak_7 not unlocked")
	}
}

func TestLevelUpSideEffects(t *testing.T) {
	c := newTestCompanion(t)

	// Enough chat XP to clear several levels in one grant.
	c.ledger.Restore(progression.State{XPTotal: 0})
	award := c.ledger.AwardXP(progression.SourceChat, 2000, t0)
	c.noteLevelUp(award, t0)

	st := c.Snapshot()
	if st.Level < 5 {
		t.Fatalf("level = %d, want >= 5", st.Level)
	}
	if !contains(st.Achievements, progression.AchieveLevel5) {
		t.Fatal("level_5 not unlocked on crossing level 5")
	}
}

func TestUserCommandBumpsCuriosity(t *testing.T) {
	c := newTestCompanion(t)

	c.OnUserCommand(t0)
	st := c.Snapshot()
	if st.Mood != mood.MoodCurious {
		t.Fatalf("mood = %s, want %s", st.Mood, mood.MoodCurious)
	}
	if st.XPTotal != 1 {
		t.Fatalf("xp total = %d, want 1", st.XPTotal)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := newTestCompanion(t)

	c.OnChatEvent(SentimentPositive, true, t0)
	c.OnTaskCompleted(progression.PriorityHigh, true, t0, t0)
	c.sched.RestoreLastFired(map[string]time.Time{"status_digest": t0})

	blob, err := c.SaveState(t0.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	restored := newTestCompanion(t)
	if err := restored.LoadState(blob); err != nil {
		t.Fatal(err)
	}

	want, got := c.Snapshot(), restored.Snapshot()
	if got.Mood != want.Mood || got.XPTotal != want.XPTotal ||
		got.Level != want.Level || got.StreakDays != want.StreakDays {
		t.Fatalf("snapshot mismatch after restore: got %+v, want %+v", got, want)
	}
	if len(got.Achievements) != len(want.Achievements) {
		t.Fatalf("achievements lost in restore: got %v, want %v", got.Achievements, want.Achievements)
	}
	if at, ok := restored.sched.LastFired()["status_digest"]; !ok || !at.Equal(t0) {
		t.Fatal("behavior cooldown not preserved across restore")
	}
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	c := newTestCompanion(t)
	if err := c.LoadState([]byte("{not json")); err == nil {
		t.Fatal("expected an error for a malformed blob")
	}
}
