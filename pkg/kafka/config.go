package kafka

import "time"

// Config holds Kafka producer connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers before flushing.
	// Zero means the 10ms default.
	BatchTimeout time.Duration
}
