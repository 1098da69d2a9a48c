// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rideshare-devops/booking-loader/pkg/booking"
	"github.com/rideshare-devops/booking-loader/pkg/models"
)

const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenRandomString can produce a random string of any provided length
// which is useful for testing situations that might have byte
// limitations
func GenRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// BookingCSVHeader returns the expected header row of a source object
func BookingCSVHeader() string {
	return strings.Join(booking.Header, ",")
}

// ValidBookingRow returns one well-formed completed-ride row carrying
// the given booking identifier
func ValidBookingRow(bookingID string) string {
	return fmt.Sprintf(
		"2024-11-29,18:01:39,%s,Completed,CID4604802,Go Sedan,Vaishali,Malviya Nagar,4.9,14.0,null,null,null,null,null,null,237.0,5.73,4.3,4.5,UPI",
		bookingID,
	)
}

// ValidBookingRowFields returns the same row pre-split into fields so
// tests can feed the parser directly
func ValidBookingRowFields(bookingID string) []string {
	return strings.Split(ValidBookingRow(bookingID), ",")
}

// MalformedBookingRow returns a row with an unparseable date so it
// always fails validation
func MalformedBookingRow(bookingID string) string {
	return fmt.Sprintf(
		"not-a-date,18:01:39,%s,Completed,CID4604802,Go Sedan,Vaishali,Malviya Nagar,4.9,14.0,null,null,null,null,null,null,237.0,5.73,4.3,4.5,UPI",
		bookingID,
	)
}

// BookingCSV assembles a source object from the header plus the given
// data rows
func BookingCSV(rows ...string) []byte {
	lines := append([]string{BookingCSVHeader()}, rows...)
	return []byte(strings.Join(lines, "\n") + "\n")
}

// GetTestIngestionEvent returns an event ready to be used for testing
// the listener and loader
func GetTestIngestionEvent(bucket string, objectName string) *models.IngestionEvent {
	return &models.IngestionEvent{
		Bucket:       bucket,
		ObjectName:   objectName,
		EventID:      uuid.New().String(),
		TimeReceived: time.Now().UTC(),
	}
}
