package models

// ReminderPayload is the task body queued for a pre-appointment reminder.
type ReminderPayload struct {
	ChatID  string `json:"chatId"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Officer string `json:"officer"`
}
