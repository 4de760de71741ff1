package service

import (
	"context"
	"testing"

	"smarttech/store-service/internal/app/store/entity"
	"smarttech/store-service/internal/app/store/repository"
	"smarttech/store-service/internal/app/store/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreatePost_Success(t *testing.T) {
	// Arrange
	postRepo := new(mocks.MockPostRepository)
	service := NewBlogService(postRepo)

	ctx := context.Background()
	authorID := uuid.New()
	req := &entity.CreatePostRequest{Title: "Новинки августа", Content: "Обзор поступлений этого месяца"}

	postRepo.On("Create", ctx, mock.AnythingOfType("*entity.Post")).Return(nil)

	// Act
	result, err := service.CreatePost(ctx, authorID, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, authorID, result.AuthorID)
	assert.Equal(t, "Новинки августа", result.Title)
	postRepo.AssertExpectations(t)
}

func TestGetPost_WithAuthorName(t *testing.T) {
	// Arrange
	postRepo := new(mocks.MockPostRepository)
	service := NewBlogService(postRepo)

	ctx := context.Background()
	postID := uuid.New()

	post := &entity.Post{ID: postID, Title: "Заголовок", Author: &entity.User{Name: "Иван"}}
	postRepo.On("GetByID", ctx, postID).Return(post, nil)

	// Act
	result, err := service.GetPost(ctx, postID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Иван", result.AuthorName)
}

func TestGetPost_NotFound(t *testing.T) {
	// Arrange
	postRepo := new(mocks.MockPostRepository)
	service := NewBlogService(postRepo)

	ctx := context.Background()
	postID := uuid.New()

	postRepo.On("GetByID", ctx, postID).Return(nil, repository.ErrPostNotFound)

	// Act
	result, err := service.GetPost(ctx, postID)

	// Assert
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Nil(t, result)
}

func TestDeletePost_NotFound(t *testing.T) {
	// Arrange
	postRepo := new(mocks.MockPostRepository)
	service := NewBlogService(postRepo)

	ctx := context.Background()
	postID := uuid.New()

	postRepo.On("Delete", ctx, postID).Return(repository.ErrPostNotFound)

	// Act
	err := service.DeletePost(ctx, postID)

	// Assert
	assert.ErrorIs(t, err, ErrPostNotFound)
}
