// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package booking

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// Header is the fixed column set expected in every source object. The
// first row of each object must carry these columns in this order.
var Header = []string{
	"Date",
	"Time",
	"Booking ID",
	"Booking Status",
	"Customer ID",
	"Vehicle Type",
	"Pickup Location",
	"Drop Location",
	"Avg VTAT",
	"Avg CTAT",
	"Cancelled Rides by Customer",
	"Reason for cancelling by Customer",
	"Cancelled Rides by Driver",
	"Driver Cancellation Reason",
	"Incomplete Rides",
	"Incomplete Rides Reason",
	"Booking Value",
	"Ride Distance",
	"Driver Ratings",
	"Customer Rating",
	"Payment Method",
}

// FieldCount is the number of columns every data row must carry
var FieldCount = len(Header)

// Record is one ride booking parsed from a source row and typed per
// the warehouse table schema
type Record struct {
	Date          civil.Date
	Time          civil.Time
	BookingID     string
	BookingStatus string
	CustomerID    string
	VehicleType   string

	PickupLocation string
	DropLocation   string

	AvgVTAT bigquery.NullFloat64
	AvgCTAT bigquery.NullFloat64

	CancelledByCustomer        bigquery.NullInt64
	CustomerCancellationReason string
	CancelledByDriver          bigquery.NullInt64
	DriverCancellationReason   string
	IncompleteRides            bigquery.NullInt64
	IncompleteRidesReason      string

	// BookingValue is the fare as an arbitrary-precision decimal;
	// nil when the source value is missing
	BookingValue *big.Rat

	RideDistance   bigquery.NullFloat64
	DriverRating   bigquery.NullFloat64
	CustomerRating bigquery.NullFloat64
	PaymentMethod  string

	// Load provenance, stamped when the record joins a batch
	BatchID      string
	SourceObject string
	Line         int
}

// Save implements the bigquery.ValueSaver interface. The insert ID is
// derived from the batch identifier and line number so that replays of
// the same object dedupe row by row inside the streaming buffer.
func (r *Record) Save() (map[string]bigquery.Value, string, error) {
	row := map[string]bigquery.Value{
		"date":                         r.Date,
		"time":                         r.Time,
		"booking_id":                   r.BookingID,
		"booking_status":               r.BookingStatus,
		"customer_id":                  r.CustomerID,
		"vehicle_type":                 r.VehicleType,
		"pickup_location":              r.PickupLocation,
		"drop_location":                r.DropLocation,
		"avg_vtat":                     r.AvgVTAT,
		"avg_ctat":                     r.AvgCTAT,
		"cancelled_rides_by_customer":  r.CancelledByCustomer,
		"customer_cancellation_reason": r.CustomerCancellationReason,
		"cancelled_rides_by_driver":    r.CancelledByDriver,
		"driver_cancellation_reason":   r.DriverCancellationReason,
		"incomplete_rides":             r.IncompleteRides,
		"incomplete_rides_reason":      r.IncompleteRidesReason,
		"ride_distance":                r.RideDistance,
		"driver_rating":                r.DriverRating,
		"customer_rating":              r.CustomerRating,
		"payment_method":               r.PaymentMethod,
		"batch_id":                     r.BatchID,
		"source_object":                r.SourceObject,
		"line_number":                  r.Line,
	}

	if r.BookingValue != nil {
		row["booking_value"] = r.BookingValue
	} else {
		row["booking_value"] = nil
	}

	return row, fmt.Sprintf("%s-%d", r.BatchID, r.Line), nil
}

// ParseRow converts one CSV row into a typed Record. The line number
// is recorded for provenance and reused by rejection reports.
func ParseRow(fields []string, line int) (*Record, error) {
	if len(fields) != FieldCount {
		return nil, errors.New(fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)))
	}

	date, err := civil.ParseDate(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, errors.Wrap(err, "invalid date")
	}

	bookingTime, err := civil.ParseTime(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, errors.Wrap(err, "invalid time")
	}

	bookingID := strings.TrimSpace(fields[2])
	if bookingID == "" {
		return nil, errors.New("booking id is empty")
	}

	bookingStatus := strings.TrimSpace(fields[3])
	if bookingStatus == "" {
		return nil, errors.New("booking status is empty")
	}

	customerID := strings.TrimSpace(fields[4])
	if customerID == "" {
		return nil, errors.New("customer id is empty")
	}

	r := Record{
		Date:          date,
		Time:          bookingTime,
		BookingID:     bookingID,
		BookingStatus: bookingStatus,
		CustomerID:    customerID,
		VehicleType:   strings.TrimSpace(fields[5]),

		PickupLocation: strings.TrimSpace(fields[6]),
		DropLocation:   strings.TrimSpace(fields[7]),

		CustomerCancellationReason: nullableString(fields[11]),
		DriverCancellationReason:   nullableString(fields[13]),
		IncompleteRidesReason:      nullableString(fields[15]),
		PaymentMethod:              nullableString(fields[20]),

		Line: line,
	}

	if r.AvgVTAT, err = parseNullFloat(fields[8]); err != nil {
		return nil, errors.Wrap(err, "invalid avg vtat")
	}
	if r.AvgCTAT, err = parseNullFloat(fields[9]); err != nil {
		return nil, errors.Wrap(err, "invalid avg ctat")
	}
	if r.CancelledByCustomer, err = parseNullInt(fields[10]); err != nil {
		return nil, errors.Wrap(err, "invalid cancelled rides by customer")
	}
	if r.CancelledByDriver, err = parseNullInt(fields[12]); err != nil {
		return nil, errors.Wrap(err, "invalid cancelled rides by driver")
	}
	if r.IncompleteRides, err = parseNullInt(fields[14]); err != nil {
		return nil, errors.Wrap(err, "invalid incomplete rides")
	}
	if r.BookingValue, err = parseNullDecimal(fields[16]); err != nil {
		return nil, errors.Wrap(err, "invalid booking value")
	}
	if r.RideDistance, err = parseNullFloat(fields[17]); err != nil {
		return nil, errors.Wrap(err, "invalid ride distance")
	}
	if r.DriverRating, err = parseNullRating(fields[18]); err != nil {
		return nil, errors.Wrap(err, "invalid driver rating")
	}
	if r.CustomerRating, err = parseNullRating(fields[19]); err != nil {
		return nil, errors.Wrap(err, "invalid customer rating")
	}

	return &r, nil
}

// isNull reports whether a source value denotes a missing field; the
// upstream export writes the literal string "null"
func isNull(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || strings.EqualFold(trimmed, "null")
}

func nullableString(raw string) string {
	if isNull(raw) {
		return ""
	}
	return strings.TrimSpace(raw)
}

func parseNullFloat(raw string) (bigquery.NullFloat64, error) {
	if isNull(raw) {
		return bigquery.NullFloat64{}, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return bigquery.NullFloat64{}, err
	}
	return bigquery.NullFloat64{Float64: f, Valid: true}, nil
}

func parseNullInt(raw string) (bigquery.NullInt64, error) {
	if isNull(raw) {
		return bigquery.NullInt64{}, nil
	}

	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return bigquery.NullInt64{}, err
	}
	return bigquery.NullInt64{Int64: i, Valid: true}, nil
}

func parseNullRating(raw string) (bigquery.NullFloat64, error) {
	f, err := parseNullFloat(raw)
	if err != nil {
		return bigquery.NullFloat64{}, err
	}
	if f.Valid && (f.Float64 < 0 || f.Float64 > 5) {
		return bigquery.NullFloat64{}, errors.New(fmt.Sprintf("rating %v outside the 0-5 scale", f.Float64))
	}
	return f, nil
}

func parseNullDecimal(raw string) (*big.Rat, error) {
	if isNull(raw) {
		return nil, nil
	}

	rat, ok := new(big.Rat).SetString(strings.TrimSpace(raw))
	if !ok {
		return nil, errors.New(fmt.Sprintf("cannot parse '%s' as a decimal", strings.TrimSpace(raw)))
	}
	return rat, nil
}
