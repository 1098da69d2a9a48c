// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Rideshare Analytics Ltd. All rights reserved.

package booking

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFields() []string {
	return strings.Split(
		"2024-11-29,18:01:39,CNR1326809,Completed,CID4604802,Go Sedan,Vaishali,Malviya Nagar,4.9,14.0,null,null,null,null,null,null,237.0,5.73,4.3,4.5,UPI",
		",",
	)
}

func TestParseRow_Valid(t *testing.T) {
	assert := assert.New(t)

	r, err := ParseRow(validFields(), 2)
	assert.Nil(err)
	assert.NotNil(r)

	assert.Equal("CNR1326809", r.BookingID)
	assert.Equal("Completed", r.BookingStatus)
	assert.Equal("CID4604802", r.CustomerID)
	assert.Equal("Go Sedan", r.VehicleType)
	assert.Equal("2024-11-29", r.Date.String())
	assert.Equal("18:01:39", r.Time.String())
	assert.Equal(2, r.Line)

	assert.True(r.AvgVTAT.Valid)
	assert.Equal(4.9, r.AvgVTAT.Float64)
	assert.False(r.CancelledByCustomer.Valid)
	assert.Equal("", r.CustomerCancellationReason)

	assert.NotNil(r.BookingValue)
	assert.Equal(0, r.BookingValue.Cmp(big.NewRat(237, 1)))

	assert.True(r.DriverRating.Valid)
	assert.Equal(4.3, r.DriverRating.Float64)
	assert.Equal("UPI", r.PaymentMethod)
}

func TestParseRow_NullLiterals(t *testing.T) {
	assert := assert.New(t)

	fields := validFields()
	fields[16] = "null"
	fields[18] = ""
	fields[20] = "NULL"

	r, err := ParseRow(fields, 3)
	assert.Nil(err)
	assert.Nil(r.BookingValue)
	assert.False(r.DriverRating.Valid)
	assert.Equal("", r.PaymentMethod)
}

func TestParseRow_FieldCountMismatch(t *testing.T) {
	assert := assert.New(t)

	r, err := ParseRow(validFields()[:5], 2)
	assert.Nil(r)
	assert.NotNil(err)
	if err != nil {
		assert.Contains(err.Error(), "expected 21 fields, got 5")
	}
}

func TestParseRow_InvalidValues(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		field  int
		value  string
		reason string
	}{
		{0, "29/11/2024", "invalid date"},
		{1, "6pm", "invalid time"},
		{2, "", "booking id is empty"},
		{3, " ", "booking status is empty"},
		{4, "", "customer id is empty"},
		{8, "fast", "invalid avg vtat"},
		{10, "once", "invalid cancelled rides by customer"},
		{16, "two hundred", "invalid booking value"},
		{18, "9.5", "invalid driver rating"},
		{19, "-1", "invalid customer rating"},
	}

	for _, c := range cases {
		fields := validFields()
		fields[c.field] = c.value

		r, err := ParseRow(fields, 2)
		assert.Nil(r)
		assert.NotNil(err)
		if err != nil {
			assert.Contains(err.Error(), c.reason)
		}
	}
}

func TestRecord_Save(t *testing.T) {
	assert := assert.New(t)

	r, err := ParseRow(validFields(), 7)
	assert.Nil(err)
	r.BatchID = "abc123"
	r.SourceObject = "bookings/2024-11-29.csv"

	row, insertID, err := r.Save()
	assert.Nil(err)
	assert.Equal("abc123-7", insertID)
	assert.Equal("CNR1326809", row["booking_id"])
	assert.Equal("abc123", row["batch_id"])
	assert.Equal("bookings/2024-11-29.csv", row["source_object"])
	assert.Equal(7, row["line_number"])
	assert.NotNil(row["booking_value"])
}

func TestRecord_SaveNullBookingValue(t *testing.T) {
	assert := assert.New(t)

	fields := validFields()
	fields[16] = "null"
	r, err := ParseRow(fields, 2)
	assert.Nil(err)

	row, _, err := r.Save()
	assert.Nil(err)
	assert.Nil(row["booking_value"])
}
