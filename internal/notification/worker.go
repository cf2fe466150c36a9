package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"lab-admin-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that notify subscribers when a
// lab's availability changes.
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
	log.Printf("Worker %d started", id)
	for {
		select {
		case labID := <-wp.jobs:
			wp.notifyAvailabilityChange(ctx, labID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an availability-change job for a lab.
func (wp *WorkerPool) Dispatch(labID int64) {
	wp.jobs <- labID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// notifyAvailabilityChange fetches the lab and its subscriptions and
// pushes the new availability state to every subscriber.
func (wp *WorkerPool) notifyAvailabilityChange(ctx context.Context, labID int64) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_lab_mapping slm ON slm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("slm.lab_id = ?", labID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for lab %d: %v", labID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	var lab model.Lab
	if err := wp.db.WithContext(ctx).First(&lab, labID).Error; err != nil {
		log.Printf("Error fetching lab %d: %v", labID, err)
		return
	}

	label := lab.Name
	if lab.Building != "" {
		label = fmt.Sprintf("%s (%s)", lab.Name, lab.Building)
	}

	var message string
	if lab.IsAvailable {
		message = fmt.Sprintf("Lab %s is now available", label)
	} else {
		message = fmt.Sprintf("Lab %s is no longer available", label)
	}

	log.Printf("Sending %d notifications for lab %d", len(subscriptions), labID)
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
