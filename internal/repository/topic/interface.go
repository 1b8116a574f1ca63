package topic

import (
	"context"

	"github.com/forohub/go-foro-api/internal/domain"
)

// PageQuery selects one page of topics. Sort holds the caller-facing sort
// token; the repository maps it onto a column through a whitelist.
type PageQuery struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// TopicRepository handles topic data operations.
type TopicRepository interface {
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	Save(ctx context.Context, topic *domain.Topic) error
	FindByID(ctx context.Context, id uint) (*domain.Topic, error)
	FindAllActive(ctx context.Context, q PageQuery) ([]domain.Topic, int64, error)
	FindByCourseActive(ctx context.Context, course domain.Course, q PageQuery) ([]domain.Topic, int64, error)
	ExistsDuplicate(ctx context.Context, title, content string) (bool, error)
	TouchUpdatedAt(ctx context.Context, id uint) error
}
