package notifyimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/notify"
	"github.com/orgball2608/joynme/internal/telegram"
	"github.com/orgball2608/joynme/pkg/formatter"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

const historySize = 20

type Listener = func(n domain.Notification)

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Logger   logger.Logger
	Telegram telegram.Client `optional:"true"`
}

// NotifyImpl keeps the latest notifications for the presentation layer, pushes
// them to listeners and announces friend connections on Telegram when configured.
type NotifyImpl struct {
	logger   logger.Logger
	telegram telegram.Client

	mu        sync.Mutex
	history   []domain.Notification
	listeners map[int]Listener
	nextID    int

	wg sync.WaitGroup
}

var _ notify.Client = (*NotifyImpl)(nil)

func New(opts Opts) *NotifyImpl {
	n := NewNotifier(opts.Logger, opts.Telegram)
	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			n.Wait()
			return nil
		},
	})
	return n
}

// NewNotifier builds a notifier; tg may be nil.
func NewNotifier(log logger.Logger, tg telegram.Client) *NotifyImpl {
	return &NotifyImpl{
		logger:    log.WithComponent("Notifier"),
		telegram:  tg,
		listeners: make(map[int]Listener),
	}
}

func (n *NotifyImpl) Notify(ctx context.Context, note domain.Notification) {
	if note.Kind == domain.NotificationError {
		n.logger.Warn("Alert", "title", note.Title, "message", note.Message)
	} else {
		n.logger.Info("Alert", "title", note.Title, "message", note.Message)
	}

	n.mu.Lock()
	n.history = append(n.history, note)
	if len(n.history) > historySize {
		n.history = n.history[len(n.history)-historySize:]
	}
	listeners := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.Unlock()

	for _, l := range listeners {
		l(note)
	}

	if n.telegram != nil && note.Kind == domain.NotificationSuccess && len(note.FriendNames) > 0 {
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			n.announce(note)
		}()
	}
}

// Recent returns the latest notifications, oldest first.
func (n *NotifyImpl) Recent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.history...)
}

// Subscribe registers l and returns a function that removes it.
func (n *NotifyImpl) Subscribe(l Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Wait blocks until pending Telegram announcements finish.
func (n *NotifyImpl) Wait() {
	n.wg.Wait()
}

func (n *NotifyImpl) announce(note domain.Notification) {
	caption := fmt.Sprintf("🎉%s Joyn'd together\\!🎉", formatter.EscapeMarkdownV2(formatter.JoinNames(note.FriendNames)))

	if note.ImageURI != "" {
		if path, err := camera.Path(note.ImageURI); err == nil {
			if err := n.telegram.SendPhotoToDefaultChannel(path, caption); err == nil {
				return
			}
			n.logger.Warn("Falling back to text announcement", "path", path)
		}
	}

	if err := n.telegram.SendMessageToDefaultChannel(caption); err != nil {
		n.logger.Error("Failed to announce friend connection", "error", err)
	}
}
