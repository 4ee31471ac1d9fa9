package core

// Memory tracks per-session conversation turns.
type Memory interface {
	Remember(sessionID string, turn Turn)
	History(sessionID string) []Turn
	Clear(sessionID string)
}
