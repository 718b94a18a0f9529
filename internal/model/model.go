package model

import "time"

type JobKind string

const (
	JobCompress   JobKind = "compress"
	JobDecompress JobKind = "decompress"
)

// Job records one compress or decompress run. OutputName is the key the
// produced artifact is stored under and downloadable from.
type Job struct {
	ID         string    `json:"id"`
	Kind       JobKind   `json:"kind"`
	InputName  string    `json:"input_name"`
	OutputName string    `json:"output_name"`
	Format     string    `json:"format"`
	InputSize  int64     `json:"input_size"`
	OutputSize int64     `json:"output_size"`
	Ratio      float64   `json:"ratio"`
	CreatedAt  time.Time `json:"created_at"`
}
