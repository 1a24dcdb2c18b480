package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(n int) []byte {
	s := fmt.Sprintf("line-%d", n)
	return []byte(s + strings.Repeat(".", 59-len(s)) + "\n")
}

func TestRotatingWriter_KeepsBoundedGenerations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotatingWriter(path, 100, 2)
	require.NoError(t, err)
	defer w.Close()

	for i := 1; i <= 5; i++ {
		n, err := w.Write(line(i))
		require.NoError(t, err)
		require.Equal(t, 60, n)
	}

	live, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(line(5)), string(live))

	first, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, string(line(4)), string(first))

	second, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, string(line(3)), string(second))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_OversizedFirstWriteDoesNotRotate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	w, err := NewRotatingWriter(path, 10, 3)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("a record far longer than ten bytes\n"))
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_ResumesExistingSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	require.NoError(t, os.WriteFile(path, line(1), 0o644))

	w, err := NewRotatingWriter(path, 100, 1)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write(line(2))
	require.NoError(t, err)

	rotated, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, string(line(1)), string(rotated))
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_responses.log")
	w, err := NewRotatingWriter(path, 1<<20, 2)
	require.NoError(t, err)
	defer w.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _ = w.Write(line(i*10 + j))
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 200, strings.Count(string(data), "\n"))
}
