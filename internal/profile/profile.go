// Package profile holds the learner's local progress record and the rules
// that move it: XP and levels, coins, lives and the daily streak.
package profile

import (
	"strings"
	"time"
)

// Scoring constants.
const (
	XPPerCorrect = 10
	LevelUpBonus = 20 // coins per level gained
	MaxLives     = 5
)

// dateLayout is the calendar-day format stored in LastPlayed.
const dateLayout = "2006-01-02"

// Profile is the persisted progress record.
type Profile struct {
	XP         int     `json:"xp"`
	Level      int     `json:"level"`
	Streak     int     `json:"streak"`
	Lives      int     `json:"lives"`
	Coins      int     `json:"coins"`
	LastPlayed *string `json:"lastPlayed"`
}

// Default returns a fresh profile.
func Default() Profile {
	return Profile{Level: 1, Lives: MaxLives}
}

// XPToNext is the XP needed to advance from level to level+1.
func XPToNext(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + (level-1)*40
}

// AddXP credits n XP and the same number of coins, then carries excess XP
// into as many level-ups as it covers, each worth LevelUpBonus coins. It
// returns the updated profile and the number of levels gained.
func (p Profile) AddXP(n int) (Profile, int) {
	if p.Level < 1 {
		p.Level = 1
	}
	p.XP += n
	p.Coins += n

	gained := 0
	for p.XP >= XPToNext(p.Level) {
		p.XP -= XPToNext(p.Level)
		p.Level++
		p.Coins += LevelUpBonus
		gained++
	}
	return p, gained
}

// LoseLife removes one life, never going below zero.
func (p Profile) LoseLife() Profile {
	p.Lives = max(0, p.Lives-1)
	return p
}

// Refill restores lives to MaxLives.
func (p Profile) Refill() Profile {
	p.Lives = MaxLives
	return p
}

// OutOfLives reports whether no lives remain.
func (p Profile) OutOfLives() bool {
	return p.Lives <= 0
}

// Touch marks now's calendar day as played. Playing on consecutive days
// extends the streak; a gap resets it to one. Repeat plays on the same day
// leave it alone.
func (p Profile) Touch(now time.Time) Profile {
	today := now.Format(dateLayout)

	last, ok := p.lastPlayedDay(now.Location())
	switch {
	case ok && last.Format(dateLayout) == today:
		if p.Streak < 1 {
			p.Streak = 1
		}
	case ok && last.AddDate(0, 0, 1).Format(dateLayout) == today:
		p.Streak++
	default:
		p.Streak = 1
	}

	p.LastPlayed = &today
	return p
}

// lastPlayedDay parses LastPlayed as a plain date or an RFC 3339 timestamp.
func (p Profile) lastPlayedDay(loc *time.Location) (time.Time, bool) {
	if p.LastPlayed == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*p.LastPlayed)
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}
