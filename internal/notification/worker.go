package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"asset-registry-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers "survey reviewed" notifications to the submitter's
// browser subscriptions.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case surveyID := <-wp.jobs:
			wp.notifySubmitter(ctx, surveyID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a reviewed survey for notification. Implements
// reconcile.Notifier.
func (wp *WorkerPool) Dispatch(surveyID int64) {
	wp.jobs <- surveyID
}

// NotifyNow processes one survey synchronously instead of queueing it.
func (wp *WorkerPool) NotifyNow(ctx context.Context, surveyID int64) {
	wp.notifySubmitter(ctx, surveyID)
}

// SetSender overrides the push sender, used by tests.
func (wp *WorkerPool) SetSender(s Sender) {
	wp.sender = s
}

// notifySubmitter looks up the reviewed survey and pushes a message to every
// subscription its submitter has registered.
func (wp *WorkerPool) notifySubmitter(ctx context.Context, surveyID int64) {
	var survey model.InventorySurvey
	err := wp.db.WithContext(ctx).
		Preload("Location").
		First(&survey, surveyID).Error
	if err != nil {
		log.Printf("Error fetching survey %d for notification: %v", surveyID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err = wp.db.WithContext(ctx).
		Where("staff_id = ?", survey.SubmitterID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for staff %d: %v", survey.SubmitterID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	locationLabel := survey.Location.Name
	if locationLabel == "" {
		locationLabel = fmt.Sprintf("location %d", survey.LocationID)
	}

	message := fmt.Sprintf("Your inventory survey of %s (%s) has been reviewed.", locationLabel, survey.Date)
	log.Printf("Sending %d notifications for survey %d", len(subscriptions), surveyID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
