package room

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/drawdash/drawdash-backend/internal/game"
	"github.com/drawdash/drawdash-backend/internal/protocol"
)

func (r *Room) handleJoin(msg Join) {
	if r.state != game.StateOpen {
		msg.Reply <- JoinReply{Err: game.ErrGameInProgress}
		return
	}
	if r.roster.Len() >= r.cfg.MaxPlayers {
		msg.Reply <- JoinReply{Err: game.ErrRoomFull}
		return
	}
	p, err := r.roster.Add(msg.Name)
	if err != nil {
		msg.Reply <- JoinReply{Err: err}
		return
	}
	if r.roster.Len() == 1 {
		r.adminID = p.ID
	}
	r.clients[p.ID] = msg.Outbox
	msg.Reply <- JoinReply{PlayerID: p.ID}

	r.send(p.ID, protocol.NewEnvelope(protocol.ActionJoinSuccess, protocol.JoinSuccessData{
		Players: r.roster.Names(),
		GameID:  r.id,
		Admin:   r.playerName(r.adminID),
	}))
	r.broadcastExcept(p.ID, protocol.NewEnvelope(protocol.ActionJoin, protocol.PlayerJoinedData{Name: msg.Name}))
	r.log.Info("player joined", zap.String("player", msg.Name))
}

// handleLeave removes a player and repairs the room around the gap. Returns
// true when the room emptied and the loop should exit.
func (r *Room) handleLeave(id string) bool {
	p, ok := r.roster.Get(id)
	if !ok {
		return false
	}
	name := p.Name
	wasDrawer := id == r.drawerID

	r.roster.Remove(id)
	if ch, ok := r.clients[id]; ok {
		close(ch)
		delete(r.clients, id)
	}

	if r.roster.Len() == 0 {
		r.log.Info("room empty, tearing down")
		if r.onEmpty != nil {
			r.onEmpty(r.id)
		}
		r.shutdown()
		return true
	}

	if r.adminID == id {
		first, _ := r.roster.First()
		r.adminID = first.ID
	}

	// Work out the transition before announcing the leave so the payload
	// carries the post-reassignment drawer and admin.
	gameEnded := false
	turnAdvanced := false
	if r.state != game.StateOpen && r.roster.Len() < r.cfg.MinPlayers {
		r.resetToOpen()
		gameEnded = true
	} else if wasDrawer && r.state != game.StateOpen {
		r.timerSeq++
		r.prompt = game.Prompt{}
		if next := r.pickNext(); next == "" {
			r.resetToOpen()
			gameEnded = true
		} else {
			r.drawerID = next
			turnAdvanced = true
		}
	}

	r.broadcast(protocol.NewEnvelope(protocol.ActionLeave, protocol.LeaveData{
		PlayerName: name,
		Drawer:     r.playerName(r.drawerID),
		Admin:      r.playerName(r.adminID),
	}))
	r.log.Info("player left", zap.String("player", name))

	if gameEnded {
		r.broadcast(protocol.NewEnvelope(protocol.ActionDrawerChosen, protocol.DrawerChosenData{Drawer: ""}))
	} else if turnAdvanced {
		r.beginTurn(r.drawerID)
	} else if r.state == game.StateDrawing {
		// A departing guesser can leave everyone else already correct.
		r.maybeFinishRound()
	}
	return false
}

func (r *Room) handleClient(id string, env protocol.Envelope) {
	if _, ok := r.roster.Get(id); !ok {
		return
	}
	switch env.Action {
	case protocol.ActionStart:
		r.handleStart(id)
	case protocol.ActionPrompt:
		r.handlePrompt(id, env)
	case protocol.ActionChoosePrompt:
		r.handleChoosePrompt(id, env)
	case protocol.ActionDraw:
		r.handleDraw(id, env)
	case protocol.ActionGuess:
		r.handleGuess(id, env)
	default:
		r.log.Warn("unknown action", zap.String("action", string(env.Action)))
		r.sendError(id, game.ErrBadPayload)
	}
}

func (r *Room) handleStart(id string) {
	if r.state != game.StateOpen {
		r.sendError(id, game.ErrGameInProgress)
		return
	}
	if id != r.adminID {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	if r.roster.Len() < r.cfg.MinPlayers {
		r.sendError(id, game.ErrNotEnoughPlayers)
		return
	}

	r.roster.ResetScores()
	r.queue = nil
	for _, p := range r.roster.InOrder() {
		r.queue = append(r.queue, p.ID)
	}
	r.drawn = make(map[string]bool)

	r.broadcast(protocol.NewEnvelope(protocol.ActionStart, protocol.StartData{}))
	r.log.Info("game started", zap.Int("players", r.roster.Len()))
	r.nextTurn()
}

// nextTurn rotates to the next eligible drawer and opens prompt selection,
// or ends the game once everyone has drawn.
func (r *Room) nextTurn() {
	next := r.pickNext()
	if next == "" {
		r.resetToOpen()
		r.broadcast(protocol.NewEnvelope(protocol.ActionDrawerChosen, protocol.DrawerChosenData{Drawer: ""}))
		r.log.Info("game over")
		return
	}
	r.beginTurn(next)
}

// pickNext returns the earliest-joined player who has not drawn this game,
// or "" when the rotation is exhausted.
func (r *Room) pickNext() string {
	for _, id := range r.queue {
		if r.drawn[id] {
			continue
		}
		if _, ok := r.roster.Get(id); !ok {
			continue
		}
		return id
	}
	return ""
}

func (r *Room) beginTurn(next string) {
	r.drawn[next] = true
	r.drawerID = next
	r.state = game.StatePrompts
	r.choices = r.pool.Sample(r.cfg.ChoiceCount)

	r.broadcast(protocol.NewEnvelope(protocol.ActionDrawerChosen, protocol.DrawerChosenData{
		Drawer: r.playerName(next),
	}))
	candidates := make([]string, 0, len(r.choices))
	for _, c := range r.choices {
		candidates = append(candidates, c.Text)
	}
	r.send(next, protocol.NewEnvelope(protocol.ActionChoices, protocol.ChoicesData{Candidates: candidates}))
}

// resetToOpen returns the room to the joinable state. roundNum is kept: it
// only ever increases for the lifetime of the room.
func (r *Room) resetToOpen() {
	r.state = game.StateOpen
	r.drawerID = ""
	r.prompt = game.Prompt{}
	r.choices = nil
	r.queue = nil
	r.drawn = nil
	r.timerSeq++
}

func (r *Room) handlePrompt(id string, env protocol.Envelope) {
	if r.state != game.StatePrompts || id != r.drawerID {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	var data protocol.PromptData
	if err := json.Unmarshal(env.Data, &data); err != nil || strings.TrimSpace(data.Prompt) == "" {
		r.sendError(id, game.ErrBadPayload)
		return
	}
	p := r.pool.Use(strings.TrimSpace(data.Prompt), r.playerName(id))
	r.beginDrawing(p)
}

func (r *Room) handleChoosePrompt(id string, env protocol.Envelope) {
	if r.state != game.StatePrompts || id != r.drawerID {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	var data protocol.ChoosePromptData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Index < 0 || data.Index >= len(r.choices) {
		r.sendError(id, game.ErrBadPayload)
		return
	}
	p := r.choices[data.Index]
	r.pool.Retire(p.Text)
	r.beginDrawing(p)
}

func (r *Room) beginDrawing(p game.Prompt) {
	r.prompt = p
	r.roundNum++
	r.state = game.StateDrawing
	r.choices = nil
	r.roster.ResetRound()
	r.canvas.Reset()
	r.remaining = r.cfg.RoundSeconds
	r.timerSeq++
	r.startTimer(r.timerSeq, r.cfg.RoundSeconds)

	r.send(r.drawerID, protocol.NewEnvelope(protocol.ActionPromptSuccess, protocol.PromptSuccessData{Prompt: p.Text}))
	r.broadcast(protocol.NewEnvelope(protocol.ActionNewRound, protocol.NewRoundData{
		Drawer:   r.playerName(r.drawerID),
		RoundNum: r.roundNum,
	}))
	r.broadcast(protocol.NewEnvelope(protocol.ActionStartDrawing, protocol.StartData{}))
	r.log.Info("round started",
		zap.Int("round", r.roundNum),
		zap.String("drawer", r.playerName(r.drawerID)))
}

func (r *Room) handleDraw(id string, env protocol.Envelope) {
	if r.state != game.StateDrawing || id != r.drawerID {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	var data protocol.DrawData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		r.sendError(id, game.ErrBadPayload)
		return
	}
	if err := r.canvas.Apply(data.Width, data.Height, data.Pixels); err != nil {
		r.sendError(id, err)
		return
	}
	// Relay the drawer's envelope verbatim.
	r.broadcastExcept(id, env)
}

func (r *Room) handleGuess(id string, env protocol.Envelope) {
	if r.state != game.StateDrawing {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	if id == r.drawerID {
		r.sendError(id, game.ErrNotYourTurn)
		return
	}
	var data protocol.GuessData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		r.sendError(id, game.ErrBadPayload)
		return
	}
	p, _ := r.roster.Get(id)
	if p.Correct {
		// Already done for the round; further guesses are ignored.
		return
	}
	p.Guess = data.Guess

	if !game.Matches(data.Guess, r.prompt.Text) {
		r.send(r.drawerID, protocol.NewEnvelope(protocol.ActionGuess, protocol.GuessToDrawerData{
			PlayerID: p.Name,
			Guess:    data.Guess,
		}))
		return
	}

	p.Correct = true
	p.Score += game.GuesserAward(r.remaining)
	if drawer, ok := r.roster.Get(r.drawerID); ok {
		drawer.Score += game.DrawerBonus
	}
	// Announce who guessed without revealing the prompt text.
	r.broadcast(protocol.NewEnvelope(protocol.ActionGuess, protocol.GuessToDrawerData{
		PlayerID: p.Name,
		Guess:    "",
	}))
	r.log.Info("correct guess", zap.String("player", p.Name))
	r.maybeFinishRound()
}

// maybeFinishRound ends the round early once every non-drawer has guessed
// correctly.
func (r *Room) maybeFinishRound() {
	if r.state != game.StateDrawing {
		return
	}
	for _, p := range r.roster.InOrder() {
		if p.ID == r.drawerID {
			continue
		}
		if !p.Correct {
			return
		}
	}
	r.finishRound()
}

func (r *Room) finishRound() {
	r.prompt = game.Prompt{}
	r.timerSeq++
	r.nextTurn()
}

func (r *Room) handleTick(t tick) {
	if t.Seq != r.timerSeq {
		return
	}
	r.remaining = t.Remaining
	if t.Remaining > 0 {
		r.broadcast(protocol.NewEnvelope(protocol.ActionTimeRemaining, protocol.TimeRemainingData{
			TimeRemaining: t.Remaining,
		}))
		return
	}
	r.log.Info("round timed out", zap.Int("round", r.roundNum))
	r.finishRound()
}
