package calendar_test

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docviewer/viewer/internal/calendar"
	"github.com/redis/go-redis/v9"
)

// fakeRedis answers the GET and SET commands of the RESP2 protocol, keeping values in memory
type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	sets   [][]string
}

func startFakeRedis(t *testing.T) (*fakeRedis, string) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Error listening: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	server := &fakeRedis{values: map[string]string{}}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go server.serve(conn)
		}
	}()
	return server, listener.Addr().String()
}

func (s *fakeRedis) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, s.reply(args)); err != nil {
			return
		}
	}
}

func (s *fakeRedis) reply(args []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "GET":
		value, ok := s.values[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(value), value)
	case "SET":
		s.values[args[1]] = args[2]
		s.sets = append(s.sets, args)
		return "+OK\r\n"
	default:
		// HELLO and CLIENT SETINFO among others; the client falls back to RESP2
		return "-ERR unknown command\r\n"
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "*")))
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		size, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		length, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(size, "$")))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, length+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:length])
	}
	return args, nil
}

func TestRedisCache(t *testing.T) {
	server, addr := startFakeRedis(t)
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	cache := calendar.NewRedisCache(client)
	ctx := context.Background()

	value, found, err := cache.Get(ctx, "years")
	if err != nil {
		t.Fatalf("Expected a miss to be no error, got %v", err)
	}
	if found || value != nil {
		t.Errorf("Expected a miss, got %q", value)
	}

	if err := cache.Set(ctx, "years", []byte(`{"1900":3}`), time.Minute); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	value, found, err = cache.Get(ctx, "years")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !found || string(value) != `{"1900":3}` {
		t.Errorf(`Expected {"1900":3}, got %q (found %t)`, value, found)
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.sets) != 1 {
		t.Fatalf("Expected a single SET, got %v", server.sets)
	}
	set := server.sets[0]
	if set[1] != "calendar:years" {
		t.Errorf("Expected key calendar:years, got %s", set[1])
	}
	if len(set) != 5 || strings.ToUpper(set[3]) != "EX" || set[4] != "60" {
		t.Errorf("Expected a 60 seconds expiration, got %v", set)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Error listening: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := calendar.NewRedisClient(ctx, addr); err == nil {
		t.Error("Expected an error connecting to a closed port")
	}
}
