package room

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/drawdash/drawdash-backend/internal/game"
	"github.com/drawdash/drawdash-backend/internal/protocol"
)

type Msg interface{ isRoomMsg() }

// Join asks the room to admit a player. The room replies on Reply and, on
// success, owns Outbox until the player leaves or is dropped.
type Join struct {
	Name   string
	Outbox chan protocol.Envelope
	Reply  chan JoinReply
}

func (Join) isRoomMsg() {}

type JoinReply struct {
	PlayerID string
	Err      error
}

type Leave struct{ PlayerID string }

func (Leave) isRoomMsg() {}

// FromClient carries one inbound envelope from an admitted player.
type FromClient struct {
	PlayerID string
	Env      protocol.Envelope
}

func (FromClient) isRoomMsg() {}

// tick is posted by the round timer goroutine. Seq identifies the round's
// timer generation; stale ticks are dropped.
type tick struct {
	Seq       int
	Remaining int
}

func (tick) isRoomMsg() {}

// GetState reflects internal state without data races. Test-only.
type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type View struct {
	State       game.State
	RoundNum    int
	Drawer      string
	Admin       string
	Players     []string
	Scores      map[string]int
	Prompt      string
	NumClients  int
	CanvasBlank bool
}

type Config struct {
	RoundSeconds int
	ChoiceCount  int
	MaxPlayers   int
	MinPlayers   int
}

func DefaultConfig() Config {
	return Config{
		RoundSeconds: 60,
		ChoiceCount:  3,
		MaxPlayers:   16,
		MinPlayers:   2,
	}
}

// Room coordinates one game instance. All mutation happens on the loop
// goroutine; the inbox is the only way in.
type Room struct {
	id    string
	cfg   Config
	log   *zap.Logger
	inbox chan Msg

	state    game.State
	roundNum int
	drawerID string
	adminID  string
	roster   *game.Roster
	pool     *game.Pool
	canvas   *game.Canvas
	prompt   game.Prompt
	choices  []game.Prompt

	// rotation for the running game, fixed at start
	queue []string
	drawn map[string]bool

	timerSeq  int
	remaining int

	clients map[string]chan protocol.Envelope

	ctx     context.Context
	cancel  context.CancelFunc
	onEmpty func(id string)
}

func New(parent context.Context, id string, cfg Config, log *zap.Logger, onEmpty func(id string)) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		id:       id,
		cfg:      cfg,
		log:      log.With(zap.String("room", id)),
		inbox:    make(chan Msg, 64),
		state:    game.StateOpen,
		roundNum: -1,
		roster:   game.NewRoster(),
		pool:     game.NewPool(time.Now().UnixNano()),
		canvas:   game.NewCanvas(),
		clients:  make(map[string]chan protocol.Envelope),
		ctx:      ctx,
		cancel:   cancel,
		onEmpty:  onEmpty,
	}
	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) ID() string { return r.id }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)

			case Leave:
				if r.handleLeave(msg.PlayerID) {
					return
				}

			case FromClient:
				r.handleClient(msg.PlayerID, msg.Env)

			case tick:
				r.handleTick(msg)

			case GetState:
				msg.Reply <- r.view()

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) view() View {
	scores := make(map[string]int, r.roster.Len())
	for _, p := range r.roster.InOrder() {
		scores[p.Name] = p.Score
	}
	return View{
		State:       r.state,
		RoundNum:    r.roundNum,
		Drawer:      r.playerName(r.drawerID),
		Admin:       r.playerName(r.adminID),
		Players:     r.roster.Names(),
		Scores:      scores,
		Prompt:      r.prompt.Text,
		NumClients:  len(r.clients),
		CanvasBlank: r.canvas.IsBlank(),
	}
}

func (r *Room) playerName(id string) string {
	if p, ok := r.roster.Get(id); ok {
		return p.Name
	}
	return ""
}

// send queues an envelope for one player. A full outbox means the client
// stopped draining; its channel is closed so the transport tears the
// connection down, and the roster entry is cleaned up by the ensuing Leave.
func (r *Room) send(id string, env protocol.Envelope) {
	ch, ok := r.clients[id]
	if !ok {
		return
	}
	select {
	case ch <- env:
	default:
		r.log.Warn("dropping slow client", zap.String("player", r.playerName(id)))
		close(ch)
		delete(r.clients, id)
	}
}

func (r *Room) broadcast(env protocol.Envelope) {
	for id := range r.clients {
		r.send(id, env)
	}
}

func (r *Room) broadcastExcept(exclude string, env protocol.Envelope) {
	for id := range r.clients {
		if id == exclude {
			continue
		}
		r.send(id, env)
	}
}

func (r *Room) sendError(id string, err error) {
	r.send(id, protocol.NewEnvelope(protocol.ActionError, protocol.ErrorData{Error: err.Error()}))
}
