package game

import "github.com/google/uuid"

// Player holds a member's game state. The transport handle is deliberately
// not part of this struct; the ws layer keeps its own connection table.
type Player struct {
	ID      string
	Name    string
	Score   int
	Guess   string
	Correct bool
}

// Roster is an ordered mapping from player id to player state. Insertion
// order is join order, which drives admin succession and drawer rotation.
type Roster struct {
	players map[string]*Player
	order   []string
}

func NewRoster() *Roster {
	return &Roster{players: make(map[string]*Player)}
}

// Add inserts a new player with a fresh id. Names must be unique within the
// roster; a duplicate fails with ErrNameTaken and leaves the roster untouched.
func (r *Roster) Add(name string) (*Player, error) {
	for _, id := range r.order {
		if r.players[id].Name == name {
			return nil, ErrNameTaken
		}
	}
	p := &Player{ID: uuid.NewString(), Name: name}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *Roster) Remove(id string) bool {
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Roster) Get(id string) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

func (r *Roster) Len() int { return len(r.order) }

// First returns the earliest-joined remaining player.
func (r *Roster) First() (*Player, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	return r.players[r.order[0]], true
}

// InOrder returns the players in join order.
func (r *Roster) InOrder() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Names returns the player names in join order.
func (r *Roster) Names() []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id].Name)
	}
	return out
}

// ResetRound clears every player's pending guess and round eligibility.
func (r *Roster) ResetRound() {
	for _, p := range r.players {
		p.Guess = ""
		p.Correct = false
	}
}

// ResetScores zeroes all scores. Called when a new game starts.
func (r *Roster) ResetScores() {
	for _, p := range r.players {
		p.Score = 0
	}
}
