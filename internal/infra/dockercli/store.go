// Package dockercli reads game state by shelling out to redis-cli inside
// the compose stack's redis container. It is the fallback transport for
// operators who only have the Docker stack, no direct Redis port.
package dockercli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// runFunc executes one redis-cli invocation and returns raw stdout/stderr.
// Injectable so parsing can be tested without Docker.
type runFunc func(ctx context.Context, args ...string) (stdout, stderr string, err error)

// Store implements the exporter's key-value contract over
// `docker compose exec -T <service> redis-cli`.
type Store struct {
	compose []string
	service string
	run     runFunc
}

func New(compose []string, service string) *Store {
	s := &Store{compose: compose, service: service}
	s.run = s.execRun
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.redisCLI(ctx, "GET", key)
	if err != nil {
		return "", false, err
	}
	out = strings.TrimSpace(out)
	if out == "" || out == "nil" {
		return "", false, nil
	}
	// For string values redis-cli prints the value on the final line.
	lines := strings.Split(out, "\n")
	return lines[len(lines)-1], true, nil
}

func (s *Store) GetAll(ctx context.Context, key string) (map[string]string, error) {
	out, err := s.redisCLI(ctx, "HGETALL", key)
	if err != nil {
		return nil, err
	}
	return parseHashReply(out), nil
}

// parseHashReply turns redis-cli's alternating field/value lines into a map.
// An odd line count is tolerated by dropping the dangling final token.
func parseHashReply(out string) map[string]string {
	fields := map[string]string{}
	if out == "" {
		return fields
	}
	lines := strings.Split(out, "\n")
	if len(lines)%2 != 0 {
		lines = lines[:len(lines)-1]
	}
	for i := 0; i+1 < len(lines); i += 2 {
		fields[lines[i]] = lines[i+1]
	}
	return fields
}

// redisCLI runs one redis-cli command and returns filtered stdout. A
// nonzero exit status surfaces as a TransportError carrying whatever
// diagnostic text the process produced.
func (s *Store) redisCLI(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := s.run(ctx, args...)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = strings.TrimSpace(stdout)
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", &domain.TransportError{
			Op:  "redis-cli " + strings.Join(args, " "),
			Err: errors.New(msg),
		}
	}
	return filterOutput(stdout), nil
}

func (s *Store) execRun(ctx context.Context, args ...string) (string, string, error) {
	if len(s.compose) == 0 {
		return "", "", fmt.Errorf("compose command not configured")
	}
	full := append([]string{}, s.compose[1:]...)
	full = append(full, "exec", "-T", s.service, "redis-cli")
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, s.compose[0], full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// filterOutput drops blank lines and the warning lines docker compose
// prints about docker-compose.yml on some setups.
func filterOutput(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "time=") && strings.Contains(line, "docker-compose.yml") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
