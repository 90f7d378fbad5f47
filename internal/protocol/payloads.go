package protocol

// Payload structs, one per action. Field names mirror the client contract.

type JoinData struct {
	Name   string `json:"name"`
	GameID string `json:"gameId"`
	Create bool   `json:"create,omitempty"`
}

type JoinSuccessData struct {
	Players []string `json:"players"`
	GameID  string   `json:"gameId"`
	Admin   string   `json:"admin"`
}

type PlayerJoinedData struct {
	Name string `json:"name"`
}

type LeaveData struct {
	PlayerName string `json:"playerName"`
	Drawer     string `json:"drawer"`
	Admin      string `json:"admin"`
}

type DrawData struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Pixels []int `json:"pixels"`
}

type GuessData struct {
	Guess string `json:"guess"`
}

type GuessToDrawerData struct {
	PlayerID string `json:"playerId"`
	Guess    string `json:"guess"`
}

type PromptData struct {
	Prompt string `json:"prompt"`
}

type ChoosePromptData struct {
	Index int `json:"index"`
}

type PromptSuccessData struct {
	Prompt string `json:"prompt"`
}

type ChoicesData struct {
	Candidates []string `json:"candidates"`
}

type NewRoundData struct {
	Drawer   string `json:"drawer"`
	RoundNum int    `json:"roundNum"`
}

type TimeRemainingData struct {
	TimeRemaining int `json:"timeRemaining"`
}

type DrawerChosenData struct {
	Drawer string `json:"drawer"`
}

type ErrorData struct {
	Error string `json:"error"`
}

type StartData struct{}
