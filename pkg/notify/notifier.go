// Package notify turns store events into user-facing notices. Every notice
// is logged; when a mailer is configured it is also emailed.
package notify

import (
	"fmt"
	"html"
	"sync"

	"FreshKeep/domain"
	"FreshKeep/pkg/events"

	"github.com/gofiber/fiber/v2/log"
)

type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Notifier struct {
	mailer Mailer
	to     string
	wg     sync.WaitGroup
}

// New returns a Notifier that logs notices and, when mailer is non-nil and
// to is set, mails them to to.
func New(mailer Mailer, to string) *Notifier {
	return &Notifier{mailer: mailer, to: to}
}

// Attach subscribes n to bus and returns the unsubscribe func.
func (n *Notifier) Attach(bus events.Bus) func() {
	return bus.Subscribe(n.Handle)
}

func (n *Notifier) Handle(e events.Event) {
	if notice, ok := Compose(e); ok {
		n.Notify(notice)
	}
}

// ExpiringToday emits the start-of-session reminder. Nothing is sent for
// a zero count.
func (n *Notifier) ExpiringToday(count int) {
	if notice, ok := ExpiringTodayNotice(count); ok {
		n.Notify(notice)
	}
}

func (n *Notifier) Notify(notice Notice) {
	log.Infof("notify: %s: %s", notice.Title, notice.Description)
	if n.mailer == nil || n.to == "" {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", html.EscapeString(notice.Title), html.EscapeString(notice.Description))
		if err := n.mailer.Send(n.to, notice.Title, body); err != nil {
			log.Errorf("notify: mailing %q failed: %v", notice.Title, err)
		}
	}()
}

// Wait blocks until queued mails have been handed to the mailer.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// Compose picks the notice for an event. Updates to a food item are silent.
func Compose(e events.Event) (Notice, bool) {
	switch e.Type {
	case events.FoodAdded:
		if e.Food == nil {
			return Notice{}, false
		}
		return Notice{
			Title:       "Item Added",
			Description: fmt.Sprintf("%s has been added to your inventory.", e.Food.Name),
		}, true
	case events.FoodRemoved:
		if e.Food == nil {
			return Notice{}, false
		}
		return Notice{
			Title:       "Item Removed",
			Description: fmt.Sprintf("%s has been removed from your inventory.", e.Food.Name),
		}, true
	case events.DonationCreated:
		return Notice{
			Title:       "Donation listed successfully!",
			Description: "Food banks in your area will be notified.",
		}, true
	case events.DonationClaimed:
		if e.Donation == nil {
			return Notice{}, false
		}
		return Notice{
			Title:       "Donation Claimed",
			Description: fmt.Sprintf("%s has been claimed by %s.", e.Donation.Title, e.Donation.ClaimedBy),
		}, true
	case events.DonationStatusChanged:
		if e.Donation == nil {
			return Notice{}, false
		}
		return Notice{
			Title: "Donation " + domain.StatusLabel(e.Donation.Status),
			Description: fmt.Sprintf("%s moved from %s to %s.",
				e.Donation.Title, domain.StatusLabel(e.PrevStatus), domain.StatusLabel(e.Donation.Status)),
		}, true
	}
	return Notice{}, false
}

func ExpiringTodayNotice(count int) (Notice, bool) {
	switch {
	case count <= 0:
		return Notice{}, false
	case count == 1:
		return Notice{Title: "Items Expiring Today", Description: "1 item in your inventory expires today."}, true
	default:
		return Notice{
			Title:       "Items Expiring Today",
			Description: fmt.Sprintf("%d items in your inventory expire today.", count),
		}, true
	}
}
