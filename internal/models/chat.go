package models

// Chat identifies a conversation thread in the store.
type Chat struct {
	ID           int64
	Name         string   // group chat name, empty for 1:1 chats
	Participants []string // contact display names, sorted, self excluded
}
