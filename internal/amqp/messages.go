package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotChangedMessage announces a committed store mutation. It carries
// only ids; consumers read the snapshot itself from storage.
type SnapshotChangedMessage struct {
	Revision   int64     `json:"revision"`
	Operation  string    `json:"operation"`
	ProjectIDs []string  `json:"projectIds,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewSnapshotChangedMessage(revision int64, operation string, projectIDs []string) *SnapshotChangedMessage {
	return &SnapshotChangedMessage{
		Revision:   revision,
		Operation:  operation,
		ProjectIDs: projectIDs,
		Timestamp:  time.Now(),
	}
}

func (m *SnapshotChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SnapshotChangedMessageFromJSON(data []byte) (*SnapshotChangedMessage, error) {
	var msg SnapshotChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
