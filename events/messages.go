package events

import (
	"encoding/json"
	"time"
)

const (
	TypeMemberJoined   = "member_joined"
	TypeExpenseAdded   = "expense_added"
	TypeExpenseDeleted = "expense_deleted"
)

// Event announces a change to a group. Consumers fetch current state through
// the API; the payload only says what happened.
type Event struct {
	Type        string    `json:"type"`
	TeamCode    string    `json:"teamCode"`
	Actor       string    `json:"actor"`
	ReferenceID string    `json:"referenceId,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func New(eventType, teamCode, actor, referenceID string) Event {
	return Event{
		Type:        eventType,
		TeamCode:    teamCode,
		Actor:       actor,
		ReferenceID: referenceID,
		Timestamp:   time.Now().UTC(),
	}
}

// RoutingKey is "<type>.<teamCode>" so consumers can bind per group.
func (e Event) RoutingKey() string {
	return e.Type + "." + e.TeamCode
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
