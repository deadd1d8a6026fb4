package engine

import "time"

var adviceList = []string{
	"Take a small step every day toward your goals.",
	"Remember to drink water and stay hydrated!",
	"A little progress each day adds up to big results.",
	"Don't forget to stretch and take breaks from sitting.",
	"Celebrate your small victories too!",
	"Be kind to yourself, you're doing your best.",
	"Taking time to rest is also being productive.",
	"Focus on progress, not perfection.",
	"Doing something small is better than doing nothing.",
	"Your habits shape your future self.",
	"Consistency beats intensity in the long run.",
	"Remember why you started when things get tough.",
	"Every expert was once a beginner.",
	"It's okay to have bad days, just don't give up.",
	"Small changes lead to big transformations.",
}

type DailyAdvice struct {
	ID    string    `json:"id"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`
	Saved bool      `json:"saved"`
}

// adviceForDay returns today's advice, creating one when none exists yet.
// The second result reports whether the list was extended.
func adviceForDay(advices []DailyAdvice, now time.Time, rnd Rand) (DailyAdvice, []DailyAdvice, bool) {
	for _, a := range advices {
		if SameDay(now, a.Date) {
			return a, advices, false
		}
	}
	a := DailyAdvice{
		ID:   newID(),
		Text: adviceList[rnd.IntN(len(adviceList))],
		Date: StartOfDay(now),
	}
	return a, append(advices, a), true
}
