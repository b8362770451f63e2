package models

// SessionState names a step of the booking conversation.
type SessionState string

const (
	StateChoosingOfficer SessionState = "choosing_officer"
	StateGetName         SessionState = "get_name"
	StateGetPhone        SessionState = "get_phone"
	StateGetEmail        SessionState = "get_email"
	StateGetPurpose      SessionState = "get_purpose"
	StateGetDate         SessionState = "get_date"
	StateGetTime         SessionState = "get_time"
)

// Session holds the in-progress answers of one citizen's booking conversation.
// Fields are filled strictly in declared order as the conversation advances;
// the machine never reads a field before its state has been passed.
type Session struct {
	ChatID         string       `json:"chatId"`
	State          SessionState `json:"state"`
	Officer        string       `json:"officer,omitempty"`
	Name           string       `json:"name,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Email          string       `json:"email,omitempty"`
	Purpose        string       `json:"purpose,omitempty"`
	Date           string       `json:"date,omitempty"`
	AvailableSlots []string     `json:"availableSlots,omitempty"`
}
