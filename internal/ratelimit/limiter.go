// Package ratelimit throttles how fast a picker session can record samples.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	Window          time.Duration // Fixed counting window (default: 1m)
	MaxPerSession   int           // Max recorded samples per session per window (default: 240)
	MaxPerIP        int           // Max recorded samples per client IP per window (default: 960)
	CleanupInterval time.Duration // How often stale windows are dropped (default: 5m)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig allows two samples per 500ms sampler tick per session, and
// four sessions' worth per IP.
func DefaultConfig() *Config {
	return &Config{
		Window:          time.Minute,
		MaxPerSession:   240,
		MaxPerIP:        960,
		CleanupInterval: 5 * time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// window tracks request counts for one key.
type window struct {
	count   int
	firstAt time.Time // First request in window
	lastAt  time.Time
}

// Limiter is a fixed-window counter keyed by session and client IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex

	bySession map[string]*window
	byIP      map[string]*window

	// Cleanup goroutine management
	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config. Zero fields fall back
// to DefaultConfig.
func New(cfg *Config) *Limiter {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}
	merged := *cfg
	if merged.Window <= 0 {
		merged.Window = defaults.Window
	}
	if merged.MaxPerSession <= 0 {
		merged.MaxPerSession = defaults.MaxPerSession
	}
	if merged.MaxPerIP <= 0 {
		merged.MaxPerIP = defaults.MaxPerIP
	}
	if merged.CleanupInterval <= 0 {
		merged.CleanupInterval = defaults.CleanupInterval
	}
	clock := merged.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        &merged,
		clock:         clock,
		bySession:     make(map[string]*window),
		byIP:          make(map[string]*window),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// AllowSample checks both limits and, when allowed, counts the sample.
func (l *Limiter) AllowSample(sessionID, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	sessionKey := l.hashKey("session:", sessionID)
	ipKey := l.hashKey("ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	if result := l.check(l.bySession[sessionKey], l.config.MaxPerSession, now, "session_limit"); !result.Allowed {
		return result
	}
	if result := l.check(l.byIP[ipKey], l.config.MaxPerIP, now, "ip_limit"); !result.Allowed {
		return result
	}

	l.record(l.bySession, sessionKey, now)
	l.record(l.byIP, ipKey, now)
	return LimitResult{Allowed: true}
}

func (l *Limiter) check(w *window, max int, now time.Time, reason string) LimitResult {
	if w == nil {
		return LimitResult{Allowed: true}
	}
	elapsed := now.Sub(w.firstAt)
	if elapsed < l.config.Window && w.count >= max {
		return LimitResult{
			Allowed:    false,
			RetryAfter: l.config.Window - elapsed,
			Reason:     reason,
		}
	}
	return LimitResult{Allowed: true}
}

func (l *Limiter) record(windows map[string]*window, key string, now time.Time) {
	w := windows[key]
	if w == nil || now.Sub(w.firstAt) >= l.config.Window {
		windows[key] = &window{count: 1, firstAt: now, lastAt: now}
		return
	}
	w.count++
	w.lastAt = now
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(value)))
	return prefix + hex.EncodeToString(hash[:8])
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(l.config.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, w := range l.bySession {
		if now.Sub(w.lastAt) > l.config.Window {
			delete(l.bySession, k)
		}
	}
	for k, w := range l.byIP {
		if now.Sub(w.lastAt) > l.config.Window {
			delete(l.byIP, k)
		}
	}
}

func (l *Limiter) size() (sessions, ips int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bySession), len(l.byIP)
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fall back to RemoteAddr (direct connection or untrusted proxy)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
