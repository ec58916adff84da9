package planner

var quotes = []string{
	"Stay focused, stay humble.",
	"Deep work is the key to mastery.",
	"Small progress is still progress.",
	"Discipline beats motivation.",
	"One pomodoro at a time.",
	"Your future self will thank you.",
	"Focus is a muscle. Train it daily.",
}

func Quotes() []string {
	return append([]string{}, quotes...)
}

func (p *Planner) pickQuote() string {
	i := p.intn(len(quotes))
	if i < 0 || i >= len(quotes) {
		i = 0
	}
	return quotes[i]
}
