package api

import (
	"context"
	"time"

	"eventify-api/domain"
	"eventify-api/storage"
)

// Storage abstracts the persistent store gateway for handlers.
type Storage interface {
	FetchEventsForUser(ctx context.Context, userID string) ([]domain.Event, error)
	FetchEvent(ctx context.Context, userID, eventID string) (domain.Event, error)
	InsertEvent(ctx context.Context, userID string, ev domain.Event) error
	UpdateEvent(ctx context.Context, userID string, ev domain.Event) error
	DeleteEvent(ctx context.Context, userID, eventID string) error

	FetchTasksForUser(ctx context.Context, userID string) ([]domain.Task, error)
	FetchTasksForEvent(ctx context.Context, userID, eventID string) ([]domain.Task, error)
	InsertTask(ctx context.Context, userID string, t domain.Task) error
	UpdateTask(ctx context.Context, userID string, t domain.Task) error
	DeleteTask(ctx context.Context, userID, taskID string) error

	FetchRSVPsForEvent(ctx context.Context, eventID string) ([]domain.RSVP, error)
	FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error)
	InsertRSVP(ctx context.Context, r domain.RSVP) error

	GenerateInvitationCode(ctx context.Context, ownerID, eventID string, expiresAt time.Time) (domain.Invitation, error)
	FetchInvitationByCode(ctx context.Context, code string) (domain.Invitation, error)
	FetchInvitationsForEvent(ctx context.Context, eventID string) ([]domain.Invitation, error)
	DeactivateInvitation(ctx context.Context, eventID, invitationID string) error

	FetchVendorsForUser(ctx context.Context, userID string) ([]domain.Vendor, error)
	InsertVendor(ctx context.Context, userID string, v domain.Vendor) error
	UpdateVendor(ctx context.Context, userID string, v domain.Vendor) error
	DeleteVendor(ctx context.Context, userID, vendorID string) error

	FetchBudgetItems(ctx context.Context, eventID string) ([]domain.BudgetItem, error)
	InsertBudgetItem(ctx context.Context, it domain.BudgetItem) error
	UpdateBudgetItem(ctx context.Context, it domain.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, eventID, itemID string) error

	FetchCollaborators(ctx context.Context, eventID string) ([]domain.Collaborator, error)
	InsertCollaborator(ctx context.Context, c domain.Collaborator) error
	UpdateCollaboratorStatus(ctx context.Context, eventID, collaboratorID, status, acceptedAt string) error
	DeleteCollaborator(ctx context.Context, eventID, collaboratorID string) error

	EnqueueShareMessages(ctx context.Context, userID string, msgs []domain.ShareMessage) error
}

// Feed is the RSVP change-notification channel.
type Feed interface {
	Publish(ctx context.Context, change storage.RSVPChange) error
	Subscribe(ctx context.Context, eventID string, onChange func(storage.RSVPChange)) (func(), error)
}

// Authenticator is implemented by types able to extract user IDs from headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}

// SubmissionGuard prevents duplicate guest submissions for an invitation.
type SubmissionGuard interface {
	// Add records the submission key and returns true if it was newly added.
	Add(ctx context.Context, invitationID, guestKey string) (bool, error)
	// Remove deletes a previously added key, used when the insert fails.
	Remove(ctx context.Context, invitationID, guestKey string) error
}

// Config carries handler settings that are not dependencies.
type Config struct {
	// PublicBaseURL is the origin guests open share links against.
	PublicBaseURL string
}
