package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	KafkaHost        string
	KafkaEventsTopic string

	RazorpayKeyID     string
	RazorpayKeySecret string

	PostmarkServerToken string
	PostmarkFromEmail   string

	// BroadcastWindow is how long a rider broadcast stays open before the
	// expiry sweep closes it.
	BroadcastWindow time.Duration
}
