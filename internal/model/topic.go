package model

// Topic is a record as stored in the static topics file.
//
// Unknown fields in the source are dropped on decode.
type Topic struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// ProjectedTopic is the only shape the API returns for a topic.
type ProjectedTopic struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
