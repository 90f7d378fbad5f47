package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/drawdash/drawdash-backend/internal/game"
	"github.com/drawdash/drawdash-backend/internal/protocol"
	"github.com/drawdash/drawdash-backend/internal/room"
)

type Msg interface{ isRegistryMsg() }

// JoinRoom resolves a room id and forwards the join into that room's inbox.
// Rooms are created on the first successful join when Create is set.
type JoinRoom struct {
	RoomID string
	Name   string
	Create bool
	Outbox chan protocol.Envelope
	Reply  chan JoinReply
}

type JoinReply struct {
	PlayerID string
	Room     *room.Room
	Err      error
}

type GetRoom struct {
	RoomID string
	Reply  chan *room.Room
}

// RemoveRoom is sent by a room after its last player leaves.
type RemoveRoom struct{ RoomID string }

type Shutdown struct{}

func (JoinRoom) isRegistryMsg()   {}
func (GetRoom) isRegistryMsg()    {}
func (RemoveRoom) isRegistryMsg() {}
func (Shutdown) isRegistryMsg()   {}

// Registry maps room ids to live rooms. Like the rooms themselves it is an
// actor: all map access happens on the loop goroutine.
type Registry struct {
	inbox  chan Msg
	rooms  map[string]*room.Room
	cfg    room.Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, cfg room.Config, log *zap.Logger) *Registry {
	ctx, cancel := context.WithCancel(parent)
	g := &Registry{
		inbox:  make(chan Msg, 64),
		rooms:  make(map[string]*room.Room),
		cfg:    cfg,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go g.loop()
	return g
}

func (g *Registry) Inbox() chan<- Msg { return g.inbox }

func (g *Registry) loop() {
	for {
		select {
		case <-g.ctx.Done():
			g.shutdown()
			return

		case m := <-g.inbox:
			switch msg := m.(type) {
			case JoinRoom:
				g.handleJoin(msg)

			case GetRoom:
				msg.Reply <- g.rooms[msg.RoomID] // may be nil

			case RemoveRoom:
				delete(g.rooms, msg.RoomID)
				g.log.Info("room removed", zap.String("room", msg.RoomID))

			case Shutdown:
				g.shutdown()
				return
			}
		}
	}
}

func (g *Registry) shutdown() {
	for _, rm := range g.rooms {
		rm.Inbox() <- room.Shutdown{}
	}
	clear(g.rooms)
	g.cancel()
}

func (g *Registry) handleJoin(msg JoinRoom) {
	rm, ok := g.rooms[msg.RoomID]
	if !ok {
		if !msg.Create {
			msg.Reply <- JoinReply{Err: game.ErrGameNotFound}
			return
		}
		rm = room.New(g.ctx, msg.RoomID, g.cfg, g.log, g.removeLater)
		g.rooms[msg.RoomID] = rm
		g.log.Info("room created", zap.String("room", msg.RoomID))
	}

	// The room decides admission (state, capacity, name uniqueness) on its
	// own goroutine; wrap its answer so the caller also gets the room handle.
	inner := make(chan room.JoinReply, 1)
	rm.Inbox() <- room.Join{Name: msg.Name, Outbox: msg.Outbox, Reply: inner}
	go func() {
		select {
		case rep := <-inner:
			msg.Reply <- JoinReply{PlayerID: rep.PlayerID, Room: rm, Err: rep.Err}
		case <-g.ctx.Done():
		}
	}()
}

// removeLater is invoked from a room goroutine as its last act; it must not
// touch the rooms map directly.
func (g *Registry) removeLater(id string) {
	select {
	case g.inbox <- RemoveRoom{RoomID: id}:
	case <-g.ctx.Done():
	}
}
