package storage

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type taskEntity struct {
	aztables.Entity
	EventID     string `json:"EventId"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	DueDate     string `json:"DueDate"`
	Completed   bool   `json:"Completed"`
	Priority    string `json:"Priority"`
	Category    string `json:"Category"`
}

func decodeTaskEntity(data []byte) (domain.Task, error) {
	var ent taskEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Task{}, err
	}
	due, err := parseTime(ent.DueDate)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{
		ID:          ent.RowKey,
		EventID:     ent.EventID,
		Title:       ent.Title,
		Description: ent.Description,
		DueDate:     due,
		Completed:   ent.Completed,
		Priority:    ent.Priority,
		Category:    ent.Category,
	}, nil
}

func encodeTaskEntity(userID string, t domain.Task) ([]byte, error) {
	return json.Marshal(taskEntity{
		Entity:      aztables.Entity{PartitionKey: userID, RowKey: t.ID},
		EventID:     t.EventID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatTime(t.DueDate),
		Completed:   t.Completed,
		Priority:    t.Priority,
		Category:    t.Category,
	})
}

func (s *Storage) listTasks(ctx context.Context, filter string) ([]domain.Task, error) {
	pager := s.tasks.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	tasks := []domain.Task{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			t, err := decodeTaskEntity(e)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// FetchTasksForUser retrieves every task the user owns, including
// standalone tasks without an event.
func (s *Storage) FetchTasksForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.listTasks(ctx, "PartitionKey eq '"+escapeFilterValue(userID)+"'")
}

// FetchTasksForEvent retrieves the tasks attached to one event.
func (s *Storage) FetchTasksForEvent(ctx context.Context, userID, eventID string) ([]domain.Task, error) {
	return s.listTasks(ctx, "PartitionKey eq '"+escapeFilterValue(userID)+"' and EventId eq '"+escapeFilterValue(eventID)+"'")
}

// InsertTask stores a new task row.
func (s *Storage) InsertTask(ctx context.Context, userID string, t domain.Task) error {
	payload, err := encodeTaskEntity(userID, t)
	if err != nil {
		return err
	}
	_, err = s.tasks.AddEntity(ctx, payload, nil)
	return err
}

// UpdateTask merges the given task fields into the stored row. Completion
// toggles keep the due date and priority untouched.
func (s *Storage) UpdateTask(ctx context.Context, userID string, t domain.Task) error {
	payload, err := encodeTaskEntity(userID, t)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.tasks.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("tasks", t.ID)
	}
	return err
}

// DeleteTask removes the task row.
func (s *Storage) DeleteTask(ctx context.Context, userID, taskID string) error {
	_, err := s.tasks.DeleteEntity(ctx, userID, taskID, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}
