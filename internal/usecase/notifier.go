package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// Notifier is the process-wide transient message queue confirming cart
// and wishlist mutations. Entries expire on their own timer after the
// configured TTL; timers are independent and non-cancelable.
type Notifier interface {
	Notify(message string, category models.NotificationCategory, icon string) models.Notification
	// Dismiss removes a notification immediately. Unknown ids are a
	// no-op.
	Dismiss(id string)
	// Active returns live notifications in insertion order.
	Active() []models.Notification
}

type notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []models.Notification
}

func NewNotifier(conf *config.Config) Notifier {
	return &notifier{
		ttl: conf.Notify.TTL,
	}
}

func (n *notifier) Notify(message string, category models.NotificationCategory, icon string) models.Notification {
	notification := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Category:  category,
		Icon:      icon,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.items = append(n.items, notification)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.Dismiss(notification.ID)
	})

	return notification
}

func (n *notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

func (n *notifier) Active() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.Notification, len(n.items))
	copy(out, n.items)
	return out
}
