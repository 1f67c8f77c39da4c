package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/identity-core/internal/command"
)

const commandsPath = "/api/v1/commands/"

type Config struct {
	BaseURL     string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
	Seed        int64
}

type Result struct {
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status4xx     int64
	Status5xx     int64
}

// job is one command invocation; body is sent verbatim.
type job struct {
	command string
	body    []byte
}

type generator func(i int) job

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}

	next := generatorForProfile(cfg.Profile, cfg.Seed)
	if next == nil {
		return Result{}, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	base := strings.TrimRight(cfg.BaseURL, "/") + commandsPath

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var total, failures, s2xx, s4xx, s5xx atomic.Int64
	jobs := make(chan job, cfg.Concurrency*2)
	wg := sync.WaitGroup{}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+j.command, bytes.NewReader(j.body))
				if err != nil {
					failures.Add(1)
					continue
				}
				req.Header.Set("Content-Type", "application/json")
				resp, err := client.Do(req)
				if err != nil {
					failures.Add(1)
					continue
				}
				_ = resp.Body.Close()
				total.Add(1)
				switch {
				case resp.StatusCode >= 200 && resp.StatusCode < 300:
					s2xx.Add(1)
				case resp.StatusCode >= 400 && resp.StatusCode < 500:
					s4xx.Add(1)
				case resp.StatusCode >= 500:
					s5xx.Add(1)
				}
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.RPS))
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Result{
				TotalRequests: total.Load(),
				Failures:      failures.Load(),
				Status2xx:     s2xx.Load(),
				Status4xx:     s4xx.Load(),
				Status5xx:     s5xx.Load(),
			}, nil
		case <-ticker.C:
			select {
			case jobs <- next(i):
				i++
			case <-ctx.Done():
			}
		}
	}
}

func generatorForProfile(profile string, seed int64) generator {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
	var mu sync.Mutex
	email := func(i int) string {
		return fmt.Sprintf("loadgen-%d-%d@example.com", seed, i)
	}
	randomID := func() string {
		mu.Lock()
		defer mu.Unlock()
		return fmt.Sprintf("%016x", rng.Uint64())
	}

	auth := []generator{
		func(i int) job {
			return encode(command.UserCreate, map[string]any{"email": email(i), "password": "loadgen-pass", "emailVerified": true})
		},
		func(i int) job {
			return encode(command.UserLogin, map[string]any{"email": email(i - 1), "password": "loadgen-pass"})
		},
		func(i int) job {
			return encode(command.UserFindAccount, map[string]any{"provider": "GOOGLE", "key": randomID()})
		},
	}
	errorHeavy := []generator{
		func(int) job { return job{command: "no_such_command", body: []byte(`{}`)} },
		func(int) job { return job{command: command.UserLogin, body: []byte(`{"email":`)} },
		func(i int) job {
			return encode(command.UserLogin, map[string]any{"email": email(i), "password": "wrong"})
		},
		func(int) job {
			return encode(command.UserVerify, map[string]any{"token": "not-a-token"})
		},
	}

	var gens []generator
	switch strings.ToLower(profile) {
	case "auth":
		gens = auth
	case "", "mixed":
		gens = append(append([]generator{}, auth...),
			func(int) job { return encode(command.UserGetAccounts, map[string]any{"userId": randomID()}) },
			errorHeavy[0],
		)
	case "error-heavy":
		gens = errorHeavy
	default:
		return nil
	}
	return func(i int) job { return gens[i%len(gens)](i) }
}

func encode(name string, payload map[string]any) job {
	body, _ := json.Marshal(payload)
	return job{command: name, body: body}
}
