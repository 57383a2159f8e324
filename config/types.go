package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// RoutingConfig contains the external routing service configuration
type RoutingConfig struct {
	ServiceURL string `yaml:"serviceURL" validate:"omitempty,url"`
	APIKey     string `yaml:"apiKey"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TelemetryConfig contains the toll-tag telemetry provider configuration
type TelemetryConfig struct {
	AuthURL      string `yaml:"authURL" validate:"omitempty,url"`
	QueryURL     string `yaml:"queryURL" validate:"omitempty,url"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	AuthScheme   string `yaml:"authScheme"`
	SubscriberID string `yaml:"subscriberId"`
	ProductID    string `yaml:"productId"`
	Mode         string `yaml:"mode"`
	TimeoutMS    int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TrackingConfig contains telemetry polling configuration
type TrackingConfig struct {
	PollIntervalSec int `yaml:"pollIntervalSec" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Routing   RoutingConfig   `yaml:"routing"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Tracking  TrackingConfig  `yaml:"tracking"`
}
