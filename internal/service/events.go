// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the application's business logic: accounts and
// sessions, student records, contact messages and the event log.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/store"
)

// EventService records audit events. Client IPs are never stored: they are
// truncated and keyed-hashed first.
type EventService struct {
	queries *store.Queries
	ipKey   []byte
}

// NewEventService creates a new EventService. secret keys the IP hash.
func NewEventService(db *sql.DB, secret string) *EventService {
	return &EventService{
		queries: store.New(db),
		ipKey:   []byte(secret),
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *int64, clientIP string, metadata map[string]any) error {
	var nullUserID sql.NullInt64
	if userID != nil {
		nullUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    nullUserID,
		IpHash:    s.HashIP(clientIP),
		Metadata:  metadataJSON,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to log event", "error", err, "category", category)
		return fmt.Errorf("creating event: %w", err)
	}

	return nil
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, clientIP string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, clientIP, metadata)
}

// LogSecurityEvent logs an access-control event.
func (s *EventService) LogSecurityEvent(ctx context.Context, level, message string, userID *int64, clientIP string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySecurity, message, userID, clientIP, metadata)
}

// Recent returns the newest events of a category, or of all categories
// when category is empty.
func (s *EventService) Recent(ctx context.Context, category string, limit int64) ([]store.Event, error) {
	var (
		events []store.Event
		err    error
	)
	if category == "" {
		events, err = s.queries.ListRecentEvents(ctx, limit)
	} else {
		events, err = s.queries.ListEventsByCategory(ctx, store.ListEventsByCategoryParams{
			Category: category,
			Limit:    limit,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// DeleteOldEvents removes events older than the specified duration and
// returns how many were removed.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	n, err := s.queries.DeleteOldEvents(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	return n, nil
}

// HashIP returns a keyed hash of the anonymized client IP, or "" when ip
// does not parse.
func (s *EventService) HashIP(ip string) string {
	anon := anonymizeIP(ip)
	if anon == "" {
		return ""
	}
	mac := hmac.New(sha256.New, s.ipKey)
	mac.Write([]byte(anon))
	return hex.EncodeToString(mac.Sum(nil))
}

// anonymizeIP zeroes the host part of an address: the last octet for IPv4
// and the last 80 bits for IPv6.
func anonymizeIP(ip string) string {
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}

	if ipv4 := parsedIP.To4(); ipv4 != nil {
		ipv4[3] = 0
		return ipv4.String()
	}

	ipv6 := parsedIP.To16()
	if ipv6 == nil {
		return ""
	}
	for i := 6; i < 16; i++ {
		ipv6[i] = 0
	}
	return ipv6.String()
}
