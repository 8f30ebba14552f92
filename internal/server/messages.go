package server

import "github.com/lox/blackjackodds/internal/engine"

// Message types on the wire.
const (
	TypeQuery   = "query"
	TypeOptions = "options"
	TypeError   = "error"
)

// Query asks for the odds of one (player total, dealer upcard) pair.
type Query struct {
	Type         string `json:"type"`
	PlayerTotal  int    `json:"player_total"`
	DealerUpcard int    `json:"dealer_upcard"`
}

// OptionsMessage is the engine's answer to a Query. An out-of-range
// upcard produces all-zero probabilities and an empty best_action rather
// than an error; that silent-default contract is part of the engine's
// interface.
type OptionsMessage struct {
	Type         string  `json:"type"`
	PlayerTotal  int     `json:"player_total"`
	DealerUpcard int     `json:"dealer_upcard"`
	StandWin     float64 `json:"stand_win"`
	StandLoss    float64 `json:"stand_loss"`
	HitWin       float64 `json:"hit_win"`
	HitLoss      float64 `json:"hit_loss"`
	OptWin       float64 `json:"opt_win"`
	OptLoss      float64 `json:"opt_loss"`
	BestAction   string  `json:"best_action"`
}

// ErrorMessage reports a malformed request.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// NewOptionsMessage flattens engine Options for the wire.
func NewOptionsMessage(playerTotal, dealerUpcard int, opts engine.Options) *OptionsMessage {
	return &OptionsMessage{
		Type:         TypeOptions,
		PlayerTotal:  playerTotal,
		DealerUpcard: dealerUpcard,
		StandWin:     opts.Stand.Win,
		StandLoss:    opts.Stand.Loss,
		HitWin:       opts.Hit.Win,
		HitLoss:      opts.Hit.Loss,
		OptWin:       opts.Optimal.Win,
		OptLoss:      opts.Optimal.Loss,
		BestAction:   opts.BestAction,
	}
}

// NewErrorMessage wraps an error string for the wire.
func NewErrorMessage(msg string) *ErrorMessage {
	return &ErrorMessage{Type: TypeError, Error: msg}
}
