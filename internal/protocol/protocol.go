package protocol

// Client -> Server
// join:
//   name: string
//   gameId: string
//   create: boolean (optional; create the room if it does not exist)
//
// draw:
//   width: number
//   height: number
//   pixels: number[]
//
// guess:
//   guess: string
//
// prompt:
//   prompt: string
//
// start: {}
//
// chooseprompt:
//   index: number

// Server -> Client
// joinsuccess:
//   players: string[]
//   gameId: string
//   admin: string
//
// join:
//   name: string
//
// leave:
//   playerName: string
//   drawer: string
//   admin: string
//
// draw: same shape as client draw, relayed verbatim
//
// guess: (drawer-only for wrong guesses; broadcast with empty guess on a correct one)
//   playerId: string
//   guess: string
//
// start: {}
//
// error:
//   error: string
//
// promptsuccess (drawer-only):
//   prompt: string
//
// startdrawing: {}
//
// newround:
//   drawer: string
//   roundNum: number
//
// choices (drawer-only):
//   candidates: string[]
//
// timeremaining:
//   timeRemaining: number
//
// drawerchosen:
//   drawer: string ("" marks the end of a game)

import "encoding/json"

type Action string

const (
	ActionJoin          Action = "join"
	ActionDraw          Action = "draw"
	ActionGuess         Action = "guess"
	ActionPrompt        Action = "prompt"
	ActionStart         Action = "start"
	ActionChoosePrompt  Action = "chooseprompt"
	ActionJoinSuccess   Action = "joinsuccess"
	ActionLeave         Action = "leave"
	ActionError         Action = "error"
	ActionPromptSuccess Action = "promptsuccess"
	ActionStartDrawing  Action = "startdrawing"
	ActionNewRound      Action = "newround"
	ActionChoices       Action = "choices"
	ActionTimeRemaining Action = "timeremaining"
	ActionDrawerChosen  Action = "drawerchosen"
)

// FromClient reports whether a is part of the client->server action set.
// "join", "draw", "guess" and "start" appear in both directions; the rest
// belong to exactly one.
func (a Action) FromClient() bool {
	switch a {
	case ActionJoin, ActionDraw, ActionGuess, ActionPrompt, ActionStart, ActionChoosePrompt:
		return true
	}
	return false
}

// Envelope is the wire unit for every message in both directions. The data
// shape is fully determined by the action.
type Envelope struct {
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// NewEnvelope wraps a payload struct. The payload types in this package never
// fail to marshal.
func NewEnvelope(action Action, data any) Envelope {
	raw, _ := json.Marshal(data)
	return Envelope{Action: action, Data: raw}
}

func Parse(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Connection close codes used when a join attempt is rejected before a
// session exists. 1006 is the transport's own abnormal-closure code and is
// never sent by this server.
const (
	CloseConnectionError = 1006
	CloseGameNotFound    = 4000
	CloseGameInProgress  = 4001
	CloseNameTaken       = 4002
)

// CloseMessages maps each close code to its fixed human-readable message.
// These strings are part of the wire contract and must not change.
var CloseMessages = map[int]string{
	CloseConnectionError: `Couldn't connect to server.`,
	CloseGameNotFound:    "The game you are trying to join does not exist.",
	CloseGameInProgress:  "The game you are trying to join is in progress.",
	CloseNameTaken:       "The name you have chosen was already taken.",
}
