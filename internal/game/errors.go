package game

import "errors"

var ErrGameNotFound = errors.New("game not found")
var ErrGameInProgress = errors.New("game in progress")
var ErrNameTaken = errors.New("name taken")
var ErrRoomFull = errors.New("room full")
var ErrNotEnoughPlayers = errors.New("not enough players")
var ErrNotYourTurn = errors.New("not your turn")
var ErrInvalidDraw = errors.New("invalid draw")
var ErrBadPayload = errors.New("bad payload")
