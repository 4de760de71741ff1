package service

import (
	"context"
	"errors"
	"fmt"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"

	"github.com/google/uuid"
)

// BlogService обрабатывает бизнес-логику блога магазина
type BlogService struct {
	postRepo repository.PostRepository
}

// NewBlogService создает новый сервис блога
func NewBlogService(postRepo repository.PostRepository) *BlogService {
	return &BlogService{postRepo: postRepo}
}

// CreatePost создает новую запись от имени автора
func (s *BlogService) CreatePost(ctx context.Context, authorID uuid.UUID, req *entity.CreatePostRequest) (*entity.Post, error) {
	post := &entity.Post{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost получает запись по ID с именем автора
func (s *BlogService) GetPost(ctx context.Context, id uuid.UUID) (*entity.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	resp := &entity.PostResponse{Post: *post}
	if post.Author != nil {
		resp.AuthorName = post.Author.Name
	}

	return resp, nil
}

// GetPosts получает все записи, новые первыми
func (s *BlogService) GetPosts(ctx context.Context) ([]entity.PostResponse, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	responses := make([]entity.PostResponse, 0, len(posts))
	for _, post := range posts {
		resp := entity.PostResponse{Post: post}
		if post.Author != nil {
			resp.AuthorName = post.Author.Name
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// DeletePost удаляет запись
func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
