package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionChanged = "session.changed"
	SessionCleared = "session.cleared"
	CompanySwitch  = "session.company_switched"
)

// NewSessionChangedEvent reports that the session was repopulated: login,
// register, or a current-identity refresh.
func NewSessionChangedEvent(personID int64, companyCount int) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      SessionChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"person_id":     personID,
			"company_count": companyCount,
		},
	}
}

func NewSessionClearedEvent() BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      SessionCleared,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{},
	}
}

func NewCompanySwitchedEvent(personID, companyID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      CompanySwitch,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"person_id":  personID,
			"company_id": companyID,
		},
	}
}
