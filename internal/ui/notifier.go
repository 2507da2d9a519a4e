package ui

import "time"

// NotificationState tracks a notification through its short life.
type NotificationState int

const (
	// NotificationEntering is the state right after the notification is added.
	NotificationEntering NotificationState = iota
	NotificationVisible
	NotificationFading
)

// Notification is a transient success message.
type Notification struct {
	ID    int
	Text  string
	State NotificationState
}

// Shown reports whether the notification carries the "show" class.
func (n Notification) Shown() bool { return n.State == NotificationVisible }

// Scheduler runs f once after d. There is no way to cancel.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func())

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) { fn(d, f) }

// HeldScheduler never fires. Pages that are rendered once keep their
// notifications, and the client plays the timings from the rendered page.
var HeldScheduler Scheduler = SchedulerFunc(func(time.Duration, func()) {})

// TimerScheduler schedules on real timers.
var TimerScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) {
	time.AfterFunc(d, f)
})

// NotifierConfig holds notification timings.
type NotifierConfig struct {
	// ShowDelay is the pause before the notification becomes visible.
	ShowDelay time.Duration
	// DisplayDelay is how long after being added the notification starts fading.
	DisplayDelay time.Duration
	// FadeDuration is how long the fade lasts before removal.
	FadeDuration time.Duration
}

// DefaultNotifierConfig matches the page's CSS transitions.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		ShowDelay:    10 * time.Millisecond,
		DisplayDelay: 3 * time.Second,
		FadeDuration: 300 * time.Millisecond,
	}
}

// Notifier adds auto-dismissing notifications to a page.
type Notifier struct {
	page  *Page
	sched Scheduler
	cfg   NotifierConfig
}

// NewNotifier returns a Notifier writing into page.
func NewNotifier(page *Page, sched Scheduler, cfg NotifierConfig) *Notifier {
	return &Notifier{page: page, sched: sched, cfg: cfg}
}

// Show adds a notification and schedules its appearance, fade and removal.
func (n *Notifier) Show(text string) {
	id := n.page.addNotification(text)
	n.sched.AfterFunc(n.cfg.ShowDelay, func() {
		n.page.setNotificationState(id, NotificationVisible)
	})
	n.sched.AfterFunc(n.cfg.DisplayDelay, func() {
		n.page.setNotificationState(id, NotificationFading)
		n.sched.AfterFunc(n.cfg.FadeDuration, func() {
			n.page.removeNotification(id)
		})
	})
}

func (p *Page) addNotification(text string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.notifications = append(p.notifications, Notification{ID: p.nextID, Text: text})
	return p.nextID
}

func (p *Page) setNotificationState(id int, st NotificationState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.notifications {
		if p.notifications[i].ID == id {
			p.notifications[i].State = st
			return
		}
	}
}

// removeNotification is a no-op when the notification is already gone.
func (p *Page) removeNotification(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, n := range p.notifications {
		if n.ID == id {
			p.notifications = append(p.notifications[:i], p.notifications[i+1:]...)
			return
		}
	}
}

// Notifications returns the notifications currently on the page.
func (p *Page) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Notification(nil), p.notifications...)
}
