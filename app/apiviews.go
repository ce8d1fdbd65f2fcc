package app

import (
	"time"

	"github.com/Jahankohan/FeedCloud/lib/models"
)

type FeedView struct {
	ID        uint    `json:"id"`
	Title     *string `json:"title"`
	Link      string  `json:"link"`
	Status    string  `json:"status"`
	Priority  int     `json:"priority"`
	Timeout   int     `json:"timeout"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type EntryView struct {
	ID          uint   `json:"id"`
	FeedID      uint   `json:"feed_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"published_at"`
}

func (view FeedView) From(entity models.Feed) FeedView {
	var title *string
	if entity.Title.Valid {
		title = &entity.Title.String
	}
	return FeedView{
		ID:        entity.ID,
		Title:     title,
		Link:      entity.Link,
		Status:    entity.Status.Name(),
		Priority:  entity.Priority,
		Timeout:   entity.Timeout,
		CreatedAt: isoformat(entity.CreatedAt),
		UpdatedAt: isoformat(entity.UpdatedAt),
	}
}

func (view EntryView) From(entity models.Entry) EntryView {
	return EntryView{
		ID:          entity.ID,
		FeedID:      entity.FeedID,
		Title:       entity.Title,
		Link:        entity.Link,
		Summary:     entity.Summary,
		PublishedAt: isoformat(entity.PublishedAt),
	}
}

type Fromable[Entity any, Repr any] interface {
	From(Entity) Repr
}

func FromMany[T any, U Fromable[T, U]](elems []T) []U {
	out := make([]U, len(elems))
	for i, t := range elems {
		var u U
		out[i] = u.From(t)
	}
	return out
}

func isoformat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
