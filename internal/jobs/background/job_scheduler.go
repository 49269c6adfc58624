package background

import (
	"context"
	"log"
	"sync"
	"time"

	"rentora/internal/repositories"
	"rentora/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring maintenance jobs: lease expiry sweeps,
// rating summary refreshes and token cleanup.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	leaseSvc     services.LeaseService
	ratingSvc    services.RatingService
	authSvc      services.AuthService
	propertyRepo repositories.PropertyRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(leaseSvc services.LeaseService, ratingSvc services.RatingService,
	authSvc services.AuthService, propertyRepo repositories.PropertyRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		leaseSvc:     leaseSvc,
		ratingSvc:    ratingSvc,
		authSvc:      authSvc,
		propertyRepo: propertyRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Lease expiry sweep - every hour
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepExpiredLeases, context.Background()),
		gocron.WithName("lease-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create lease expiry job: %v", err)
	} else {
		js.jobs["lease-expiry"] = expiryJob
	}

	// Rating summary refresh - every 30 minutes
	ratingJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.refreshRatingSummaries, context.Background()),
		gocron.WithName("rating-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create rating summary job: %v", err)
	} else {
		js.jobs["rating-summary"] = ratingJob
	}

	// Expired token cleanup - every 6 hours
	tokenJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.cleanupExpiredTokens, context.Background()),
		gocron.WithName("token-cleanup"),
	)
	if err != nil {
		log.Printf("Failed to create token cleanup job: %v", err)
	} else {
		js.jobs["token-cleanup"] = tokenJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) sweepExpiredLeases(ctx context.Context) {
	expired, err := js.leaseSvc.ExpireLeases(ctx)
	if err != nil {
		log.Printf("Lease expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Lease expiry sweep completed: %d leases expired", expired)
	}
}

// refreshRatingSummaries warms the rating summary cache for recently listed
// properties so landlord dashboards read hot data.
func (js *JobScheduler) refreshRatingSummaries(ctx context.Context) {
	properties, err := js.propertyRepo.List(ctx, 200, 0)
	if err != nil {
		log.Printf("Rating summary refresh failed to list properties: %v", err)
		return
	}

	refreshed := 0
	for _, property := range properties {
		if err := js.ratingSvc.RefreshSummary(ctx, property.ID); err != nil {
			log.Printf("Failed to refresh rating summary for %s: %v", property.ID.String(), err)
			continue
		}
		refreshed++
	}
	log.Printf("Rating summary refresh completed for %d properties", refreshed)
}

func (js *JobScheduler) cleanupExpiredTokens(ctx context.Context) {
	if err := js.authSvc.CleanupExpiredTokens(ctx); err != nil {
		log.Printf("Token cleanup failed: %v", err)
	}
}
