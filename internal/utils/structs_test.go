package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	ID       string `db:"id"`
	Amount   float64
	Status   string `db:"status"`
	internal string `db:"internal"`
	Ignored  string `db:"-"`
}

func TestStructTagValues(t *testing.T) {
	require.Equal(t, []string{"id", "status"}, StructTagValues(row{}))
	require.Equal(t, []string{"id", "status"}, StructTagValues(&row{}))
	require.Panics(t, func() { StructTagValues("bill") })
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(&row{ID: "47qAXb6fIm2zOKkLzMro", Amount: 400, Status: "pending", internal: "x"})

	require.Equal(t, map[string]any{
		"id":     "47qAXb6fIm2zOKkLzMro",
		"status": "pending",
	}, got)
}

func TestErrorWrapOrNil(t *testing.T) {
	cause := errors.New("boom")

	require.NoError(t, ErrorWrapOrNil(nil, "insert bill"))
	require.Same(t, cause, ErrorWrapOrNil(cause, ""))

	err := ErrorWrapOrNil(cause, "insert bill")
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "insert bill: boom")
}

func TestNanoIDSize(t *testing.T) {
	require.Len(t, NanoID(), 20)
	require.Len(t, NanoIDSize(8), 8)
	require.NotEqual(t, NanoID(), NanoID())
}
