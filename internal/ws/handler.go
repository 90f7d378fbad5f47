package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/drawdash/drawdash-backend/internal/game"
	"github.com/drawdash/drawdash-backend/internal/protocol"
	"github.com/drawdash/drawdash-backend/internal/registry"
	"github.com/drawdash/drawdash-backend/internal/room"
)

const (
	joinTimeout  = 10 * time.Second
	writeTimeout = 3 * time.Second

	// Generous enough for a full-canvas draw stream at interactive rates.
	msgsPerSecond = 60
	msgBurst      = 120
)

// Handler upgrades the connection, performs the join handshake, and then
// pumps envelopes between the socket and the player's room. The player's
// identity stays decoupled from the connection: the room only ever sees the
// player id and the outbox channel.
func Handler(reg *registry.Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		// The default read limit is too small for a full canvas payload.
		conn.SetReadLimit(1 << 21)

		joinData, ok := readJoin(r.Context(), conn)
		if !ok {
			conn.Close(websocket.StatusProtocolError, "expected join")
			return
		}

		outbox := make(chan protocol.Envelope, 64)
		reply := make(chan registry.JoinReply, 1)
		reg.Inbox() <- registry.JoinRoom{
			RoomID: joinData.GameID,
			Name:   joinData.Name,
			Create: joinData.Create,
			Outbox: outbox,
			Reply:  reply,
		}

		var admitted registry.JoinReply
		select {
		case admitted = <-reply:
		case <-time.After(joinTimeout):
			conn.Close(websocket.StatusTryAgainLater, "join timed out")
			return
		case <-r.Context().Done():
			return
		}
		if admitted.Err != nil {
			code := closeCodeFor(admitted.Err)
			conn.Close(websocket.StatusCode(code), protocol.CloseMessages[code])
			return
		}

		rm, playerID := admitted.Room, admitted.PlayerID
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		defer func() { rm.Inbox() <- room.Leave{PlayerID: playerID} }()

		// Writer goroutine: drains the outbox until the room closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for env := range outbox {
				payload, _ := json.Marshal(env)
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
			// Room dropped or released this client.
			conn.Close(websocket.StatusNormalClosure, "bye")
		}()

		lim := rate.NewLimiter(rate.Limit(msgsPerSecond), msgBurst)

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				return
			}
			if !lim.Allow() {
				continue
			}

			env, err := protocol.Parse(data)
			if err != nil || !env.Action.FromClient() || env.Action == protocol.ActionJoin {
				// Protocol errors never reach the room and never kill the
				// connection.
				log.Warn("protocol error", zap.String("player", joinData.Name))
				werr := protocol.NewEnvelope(protocol.ActionError, protocol.ErrorData{Error: "protocol error"})
				payload, _ := json.Marshal(werr)
				ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				continue
			}

			rm.Inbox() <- room.FromClient{PlayerID: playerID, Env: env}
		}
	}
}

// readJoin waits for the session's first envelope, which must be a join.
func readJoin(ctx context.Context, conn *websocket.Conn) (protocol.JoinData, bool) {
	rctx, cancel := context.WithTimeout(ctx, joinTimeout)
	defer cancel()
	_, data, err := conn.Read(rctx)
	if err != nil {
		return protocol.JoinData{}, false
	}
	env, err := protocol.Parse(data)
	if err != nil || env.Action != protocol.ActionJoin {
		return protocol.JoinData{}, false
	}
	var join protocol.JoinData
	if err := json.Unmarshal(env.Data, &join); err != nil {
		return protocol.JoinData{}, false
	}
	if join.Name == "" || join.GameID == "" {
		return protocol.JoinData{}, false
	}
	return join, true
}

func closeCodeFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return protocol.CloseGameNotFound
	case errors.Is(err, game.ErrNameTaken):
		return protocol.CloseNameTaken
	default:
		// In-progress and at-capacity rooms are equally unjoinable.
		return protocol.CloseGameInProgress
	}
}
