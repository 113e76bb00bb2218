package storage

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
)

// Tables holds the table names backing the gateway.
type Tables struct {
	Events        string
	Tasks         string
	RSVPs         string
	Invitations   string
	Vendors       string
	BudgetItems   string
	Collaborators string
}

// Storage is the persistent store gateway. It owns row CRUD, the named
// read procedures and the share-message queue.
type Storage struct {
	events        *aztables.Client
	tasks         *aztables.Client
	rsvps         *aztables.Client
	invitations   *aztables.Client
	vendors       *aztables.Client
	budgetItems   *aztables.Client
	collaborators *aztables.Client
	shareQueue    *azqueue.QueueClient
}

// New creates a Storage instance from the given connection string.
func New(connStr string, tables Tables, shareQueue string) (*Storage, error) {
	tablesClientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &tablesClientOptions)
	if err != nil {
		return nil, err
	}
	queueClientOptions := azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    5,
				TryTimeout:    time.Minute * 5,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 60,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	sq, err := azqueue.NewQueueClientFromConnectionString(connStr, shareQueue, &queueClientOptions)
	if err != nil {
		return nil, err
	}
	return &Storage{
		events:        svc.NewClient(tables.Events),
		tasks:         svc.NewClient(tables.Tasks),
		rsvps:         svc.NewClient(tables.RSVPs),
		invitations:   svc.NewClient(tables.Invitations),
		vendors:       svc.NewClient(tables.Vendors),
		budgetItems:   svc.NewClient(tables.BudgetItems),
		collaborators: svc.NewClient(tables.Collaborators),
		shareQueue:    sq,
	}, nil
}

func escapeFilterValue(v string) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, v[i])
	}
	return string(out)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
