package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification severities
const (
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
	TypeInfo    = "info"
)

// Notification is one transient user-facing notice
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Persistent bool      `json:"persistent,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

const maxNotifications = 5

// Center keeps the most recent notifications, newest first. Non-persistent
// ones are dismissed automatically after the configured delay; persistent
// ones (connectivity loss) stay until removed explicitly.
type Center struct {
	mu            sync.Mutex
	notifications []Notification
	dismissAfter  time.Duration
	timers        map[string]*time.Timer
}

// NewCenter creates a notification center with the given auto-dismiss delay
func NewCenter(dismissAfter time.Duration) *Center {
	return &Center{
		dismissAfter: dismissAfter,
		timers:       make(map[string]*time.Timer),
	}
}

// Push adds a notification, dropping the oldest beyond the cap
func (c *Center) Push(typ, title, message string, persistent bool) Notification {
	n := Notification{
		ID:         uuid.New().String(),
		Type:       typ,
		Title:      title,
		Message:    message,
		Persistent: persistent,
		Timestamp:  time.Now(),
	}

	c.mu.Lock()
	c.notifications = append([]Notification{n}, c.notifications...)
	if len(c.notifications) > maxNotifications {
		for _, dropped := range c.notifications[maxNotifications:] {
			c.cancelTimer(dropped.ID)
		}
		c.notifications = c.notifications[:maxNotifications]
	}
	if !persistent && c.dismissAfter > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(c.dismissAfter, func() {
			c.Remove(id)
		})
	}
	c.mu.Unlock()

	return n
}

// Remove dismisses a notification by id
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimer(id)
	for i, n := range c.notifications {
		if n.ID == id {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			return
		}
	}
}

// List returns the current notifications, newest first
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// cancelTimer must be called with the lock held
func (c *Center) cancelTimer(id string) {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
}
