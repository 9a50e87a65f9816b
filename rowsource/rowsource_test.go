package rowsource_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrnxzz/csv-filter/rowsource"
)

func TestSourceReadsRows(t *testing.T) {
	src := rowsource.New(strings.NewReader("name,age\nalice,30\nbob,40\n"))
	rows, err := rowsource.All(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "alice", rows[0]["name"])
	require.Equal(t, "40", rows[1]["age"])
}

func TestSourceEOF(t *testing.T) {
	src := rowsource.New(strings.NewReader("a,b\n1,2\n"))
	_, err := src.Next()
	require.NoError(t, err)
	_, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestSourceEmptyFileReturnsEOFOnHeaderRead(t *testing.T) {
	src := rowsource.New(strings.NewReader(""))
	_, err := src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestAllOnEmptyFileReturnsNoRowsNoError(t *testing.T) {
	rows, err := rowsource.All(rowsource.New(strings.NewReader("")))
	require.NoError(t, err)
	require.Empty(t, rows)
}
