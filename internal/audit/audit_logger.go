package audit

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

const (
	EventRegister       = "REGISTER"
	EventLoginFailed    = "LOGIN_FAILED"
	EventCodeIssued     = "TWO_FACTOR_ISSUED"
	EventCodeDelivery   = "TWO_FACTOR_DELIVERY_FAILED"
	EventCodeRejected   = "TWO_FACTOR_REJECTED"
	EventSessionCreated = "SESSION_CREATED"
	EventLogout         = "LOGOUT"
	EventLeaveReviewed  = "LEAVE_REVIEWED"
)

type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	UserID    int               `json:"user_id,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Status    string            `json:"status"`
	Details   map[string]string `json:"details,omitempty"`
}

type Logger struct {
	out *log.Logger
}

func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout)
}

func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

func (a *Logger) LogSuccess(eventType string, userID int, details map[string]string) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Status:    "SUCCESS",
		Details:   details,
	})
}

func (a *Logger) LogFailure(eventType string, userID int, phone string, err error) {
	event := Event{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Phone:     maskPhone(phone),
		Status:    "FAILED",
	}
	if err != nil {
		event.Details = map[string]string{"error": err.Error()}
	}
	a.log(event)
}

func (a *Logger) log(event Event) {
	data, _ := json.Marshal(event)
	a.out.Printf("AUDIT: %s", string(data))
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	masked := make([]byte, len(phone))
	for i := range phone {
		if i < len(phone)-4 {
			masked[i] = '*'
		} else {
			masked[i] = phone[i]
		}
	}
	return string(masked)
}
