package repository

import (
	"github.com/deppfellow/topicsvc/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Topics TopicStore
}

// NewRepositories constructs the repository container from the server's
// filesystem and store config.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Topics: NewFileStore(s.Fs, s.Config.Store.Path),
	}
}
