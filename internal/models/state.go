package models

// State is the chat-level step of the Telegram front-end.
type State int

const (
	StateUnknown State = iota
	StateIdle
	StateSelecting // inline label keyboard is open
)

// Group identifies one of the three label sets of an entry.
type Group string

const (
	GroupDiseases Group = "d"
	GroupSymptoms Group = "s"
	GroupTriggers Group = "t"
)
