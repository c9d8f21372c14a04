package service

import (
	"fmt"

	"github.com/deppfellow/topicsvc/internal/repository"
	"github.com/deppfellow/topicsvc/internal/server"
)

type Services struct {
	Topics *TopicService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	locale, err := s.Config.Query.Tag()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize topic service: %w", err)
	}

	return &Services{
		Topics: NewTopicService(repos.Topics, locale),
	}, nil
}
