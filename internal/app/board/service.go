package board

import (
	"fmt"

	"winntalks/internal/apperr"
)

type Service interface {
	GetActiveBoards() ([]*Board, error)
	GetBoardBySlug(slug string) (*Board, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetActiveBoards() ([]*Board, error) {
	return s.repo.GetActiveBoards()
}

func (s *service) GetBoardBySlug(slug string) (*Board, error) {
	board, err := s.repo.GetBoardBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	if board == nil {
		return nil, apperr.NotFoundf("board not found")
	}
	return board, nil
}
