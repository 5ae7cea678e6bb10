// Package catalog содержит бизнес-логику каталога: курсы, уроки и группы.
// Чтение отдельного курса кешируется.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/ledger"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
	"github.com/magabrotheeeer/course-marketplace/internal/storage/cache"
)

// Repository определяет методы хранилища, нужные каталогу.
type Repository interface {
	CreateCourse(ctx context.Context, c models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, c models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	ListAvailableCourses(ctx context.Context, userUID string, filter models.CourseFilter) ([]*models.Course, error)

	GetUser(ctx context.Context, userUID string) (*models.User, error)

	CreateLesson(ctx context.Context, courseID int64, in models.DummyLesson) (*models.Lesson, error)
	GetLesson(ctx context.Context, courseID, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, id int64, in models.DummyLesson) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, id int64) error

	CreateGroup(ctx context.Context, courseID int64, name string) (*models.Group, error)
	GetGroup(ctx context.Context, courseID, id int64) (*models.GroupLoad, error)
	ListGroups(ctx context.Context, courseID int64) ([]*models.GroupLoad, error)
	DeleteGroup(ctx context.Context, courseID, id int64) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции каталога. cache может быть nil.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// CreateCourse создает курс. Автор по умолчанию — текущий пользователь;
// автор обязан быть преподавателем, иначе ничего не записывается.
func (s *Service) CreateCourse(ctx context.Context, p *access.Principal, in models.DummyCourse) (*models.Course, error) {
	const op = "services.catalog.CreateCourse"
	course, err := s.buildCourse(ctx, p, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	course.IsAvailable = true
	if in.IsAvailable != nil {
		course.IsAvailable = *in.IsAvailable
	}

	created, err := s.repo.CreateCourse(ctx, *course)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("course created", slog.Int64("id", created.ID), slog.String("author_uid", created.AuthorUID))
	s.cacheCourse(ctx, created)
	return created, nil
}

// GetCourse возвращает курс, сначала проверяя кеш.
func (s *Service) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	const op = "services.catalog.GetCourse"
	if s.cache != nil {
		var cached models.Course
		found, err := s.cache.Get(ctx, cache.CourseKey(id), &cached)
		if err != nil {
			s.log.Warn("failed to read course from cache", slog.Int64("id", id), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheCourse(ctx, course)
	return course, nil
}

// UpdateCourse перезаписывает курс id.
func (s *Service) UpdateCourse(ctx context.Context, p *access.Principal, id int64, in models.DummyCourse) (*models.Course, error) {
	const op = "services.catalog.UpdateCourse"
	current, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.AuthorUID == "" {
		in.AuthorUID = current.AuthorUID
	}
	course, err := s.buildCourse(ctx, p, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	course.ID = id
	course.IsAvailable = current.IsAvailable
	if in.IsAvailable != nil {
		course.IsAvailable = *in.IsAvailable
	}

	updated, err := s.repo.UpdateCourse(ctx, *course)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateCourse(ctx, id)
	return updated, nil
}

// DeleteCourse удаляет курс вместе с его уроками, группами и подписками.
func (s *Service) DeleteCourse(ctx context.Context, id int64) error {
	const op = "services.catalog.DeleteCourse"
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateCourse(ctx, id)
	s.log.Info("course deleted", slog.Int64("id", id))
	return nil
}

// ListCourses возвращает курсы, новые первыми.
func (s *Service) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	const op = "services.catalog.ListCourses"
	courses, err := s.repo.ListCourses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// AvailableCourses возвращает курсы, которые пользователь ещё не купил.
func (s *Service) AvailableCourses(ctx context.Context, p *access.Principal, filter models.CourseFilter) ([]*models.Course, error) {
	const op = "services.catalog.AvailableCourses"
	if !access.Authenticated(p) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPermissionDenied)
	}
	courses, err := s.repo.ListAvailableCourses(ctx, p.UserUID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

func (s *Service) buildCourse(ctx context.Context, p *access.Principal, in models.DummyCourse) (*models.Course, error) {
	if err := ledger.Validate(in.Price); err != nil {
		return nil, err
	}
	authorUID := in.AuthorUID
	if authorUID == "" {
		if !access.Authenticated(p) {
			return nil, models.ErrPermissionDenied
		}
		authorUID = p.UserUID
	}
	author, err := s.repo.GetUser(ctx, authorUID)
	if err != nil {
		return nil, err
	}
	if !access.CanAuthorCourse(author) {
		return nil, models.ErrPermissionDenied
	}
	return &models.Course{
		AuthorUID: author.UUID,
		Title:     in.Title,
		StartDate: in.StartDate,
		Price:     in.Price,
	}, nil
}

func (s *Service) cacheCourse(ctx context.Context, c *models.Course) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.CourseKey(c.ID), c, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache course", slog.Int64("id", c.ID), sl.Err(err))
	}
}

func (s *Service) invalidateCourse(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.CourseKey(id)); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.Int64("id", id), sl.Err(err))
	}
}
