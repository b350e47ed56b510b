package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	ParentID  uuid.UUID `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Published time.Time `json:"published"`
	Censored  bool      `json:"censored"`
}

// Verdict is the answer to a profanity check.
type Verdict struct {
	Profane bool   `json:"profane"`
	Match   string `json:"match,omitempty"`
	Entry   string `json:"entry,omitempty"`
	Phrase  bool   `json:"phrase,omitempty"`
}

type Blacklist struct {
	Words   []string `json:"words"`
	Phrases []string `json:"phrases"`
}

type WordsRequest struct {
	Words []string `json:"words"`
}

type PhrasesRequest struct {
	Phrases []string `json:"phrases"`
}
