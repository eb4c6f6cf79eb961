package services

import (
	"context"
	"fmt"
	"net"
	"time"

	"connregistry/services/dto"
)

// TestConfig carries the connectivity parameters for one probe. The config is
// scoped to the single call; testers must not publish it through process-wide
// state such as environment variables.
type TestConfig struct {
	ConnType string
	Host     string
	Port     int
	Login    string
	Password string
	Timeout  time.Duration
}

// TestResult reports the outcome of one connection probe.
type TestResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ConnectionTester probes reachability of the external system described by a
// connection record. Driver discovery and real protocol handshakes live
// outside the registry; implementations plug in here.
type ConnectionTester interface {
	Test(ctx context.Context, cfg TestConfig) TestResult
}

// dialTester is the built-in tester: a plain TCP dial against host:port.
// It verifies reachability only, not protocol-level credentials.
type dialTester struct{}

// NewDialTester creates the default TCP reachability tester.
func NewDialTester() ConnectionTester {
	return &dialTester{}
}

func (t *dialTester) Test(ctx context.Context, cfg TestConfig) TestResult {
	if cfg.Host == "" || cfg.Port == 0 {
		return TestResult{
			Status:  false,
			Message: fmt.Sprintf("connection of type %q has no host/port to probe", cfg.ConnType),
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)))
	if err != nil {
		return TestResult{Status: false, Message: err.Error()}
	}
	conn.Close()
	return TestResult{Status: true, Message: "Connection successfully tested"}
}

// TestConfigFromBody builds a scoped probe config from a validated payload.
func TestConfigFromBody(body dto.ConnectionBody, timeout time.Duration) TestConfig {
	cfg := TestConfig{
		ConnType: body.ConnType,
		Timeout:  timeout,
	}
	if body.Host != nil {
		cfg.Host = *body.Host
	}
	if body.Port != nil {
		cfg.Port = *body.Port
	}
	if body.Login != nil {
		cfg.Login = *body.Login
	}
	if body.Password != nil {
		cfg.Password = *body.Password
	}
	return cfg
}
