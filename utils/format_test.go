package utils

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCoerceAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"int64", int64(9), 9},
		{"numeric string", "200", 200},
		{"padded string", " 30 ", 30},
		{"junk string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"json number", json.Number("42.5"), 42.5},
		{"bool is junk", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CoerceAmount(tc.in))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	require.Equal(t, "৳200", FormatCurrency(200))
	require.Equal(t, "৳1,250", FormatCurrency(1250.4))
	require.Equal(t, "৳0", FormatCurrency(nil))
	require.Equal(t, "৳0", FormatCurrency("garbage"))
	require.Equal(t, "৳30", FormatCurrency("30"))
}

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	oid, err := primitive.ObjectIDFromHex("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	require.Equal(t, "507f1f77bcf86cd799439011", NormalizeID(oid))
	require.Equal(t, "507f1f77bcf86cd799439011", NormalizeID("507f1f77bcf86cd799439011"))
	require.Equal(t, "507f1f77bcf86cd799439011", NormalizeID(map[string]any{"$oid": "507f1f77bcf86cd799439011"}))
	require.Equal(t, "507f1f77bcf86cd799439011", NormalizeID(primitive.M{"$oid": "507f1f77bcf86cd799439011"}))
	require.Equal(t, "", NormalizeID(nil))
	require.Equal(t, "", NormalizeID(42))
	require.Equal(t, "", NormalizeID(map[string]any{"oid": "missing dollar"}))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, time.January, 2, 15, 4, 0, 0, time.UTC)

	require.Equal(t, "2 January 2026", FormatDate(d))
	require.Equal(t, "02 Jan 2026, 15:04", FormatDateTime(d))
	require.Equal(t, "—", FormatDate(nil))
	require.Equal(t, "—", FormatDate(time.Time{}))
	require.Equal(t, "—", FormatDate("not a date"))
	require.Equal(t, "2 January 2026", FormatDate("2026-01-02"))
	require.Equal(t, "2 January 2026", FormatDate("2026-01-02T15:04:00Z"))
}

func TestToTime_EpochMillis(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	got, ok := ToTime(float64(want.UnixMilli()))
	require.True(t, ok)
	require.True(t, got.Equal(want))
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	at := time.Now()

	first := GenerateETag(id, at)
	require.Equal(t, first, GenerateETag(id, at))
	require.NotEqual(t, first, GenerateETag(id, at.Add(time.Second)))
	require.NotEqual(t, first, GenerateETag(primitive.NewObjectID(), at))

	// quoted per RFC 9110
	require.Equal(t, byte('"'), first[0])
	require.Equal(t, byte('"'), first[len(first)-1])
}
