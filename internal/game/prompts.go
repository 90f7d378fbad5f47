package game

import "math/rand"

// SystemAuthor marks prompts seeded by the server rather than a player.
const SystemAuthor = "system"

type Prompt struct {
	Text   string
	Author string
}

var defaultPrompts = []string{
	"cat", "dog", "house", "tree", "car", "bicycle", "sun", "moon",
	"pizza", "guitar", "elephant", "castle", "rocket", "snowman",
	"dragon", "robot", "banana", "umbrella", "lighthouse", "penguin",
	"spider", "rainbow", "volcano", "submarine", "campfire", "wizard",
	"pirate", "tornado", "cactus", "mermaid", "helicopter", "dinosaur",
	"sandwich", "telescope", "waterfall", "scarecrow", "jellyfish",
	"windmill", "igloo", "parachute",
}

// Pool supplies candidate prompts for a room. Prompts are single-use per
// game: once assigned to a round they move to the used set and are not
// offered again until the pool runs dry and recycles them.
type Pool struct {
	available []Prompt
	used      []Prompt
	rng       *rand.Rand
}

func NewPool(seed int64) *Pool {
	p := &Pool{rng: rand.New(rand.NewSource(seed))}
	for _, w := range defaultPrompts {
		p.available = append(p.available, Prompt{Text: w, Author: SystemAuthor})
	}
	return p
}

// Add submits a player-authored prompt for future rounds. Duplicates of
// anything already known are ignored.
func (p *Pool) Add(text, author string) {
	if text == "" || p.knows(text) {
		return
	}
	p.available = append(p.available, Prompt{Text: text, Author: author})
}

// Sample returns up to n distinct candidates without retiring them. When the
// available set has been exhausted the used prompts are recycled back in.
func (p *Pool) Sample(n int) []Prompt {
	if len(p.available) == 0 {
		p.available, p.used = p.used, nil
	}
	idx := p.rng.Perm(len(p.available))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Prompt, 0, n)
	for _, i := range idx[:n] {
		out = append(out, p.available[i])
	}
	return out
}

// Retire removes a prompt from circulation after it has been assigned to a
// round.
func (p *Pool) Retire(text string) {
	for i, pr := range p.available {
		if pr.Text == text {
			p.available = append(p.available[:i], p.available[i+1:]...)
			p.used = append(p.used, pr)
			return
		}
	}
}

// Use records a free-text prompt from the drawer: authored by them and
// immediately retired, so it cannot be offered again this game.
func (p *Pool) Use(text, author string) Prompt {
	p.Add(text, author)
	pr := Prompt{Text: text, Author: author}
	for _, known := range p.available {
		if known.Text == text {
			pr = known
			break
		}
	}
	p.Retire(pr.Text)
	return pr
}

func (p *Pool) Available() int { return len(p.available) }

func (p *Pool) knows(text string) bool {
	for _, pr := range p.available {
		if pr.Text == text {
			return true
		}
	}
	for _, pr := range p.used {
		if pr.Text == text {
			return true
		}
	}
	return false
}
