package cli

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibconv/internal/temperature"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		check      func(t *testing.T, path string)
	}{
		{
			name:       "writes header and value",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			check: func(t *testing.T, path string) {
				content, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("failed to read output file: %v", err)
				}
				for _, want := range []string{"# Algorithm: Iterative (O(n))", "# N: 10", "F(10) =\n55\n"} {
					if !strings.Contains(string(content), want) {
						t.Errorf("file should contain %q, got:\n%s", want, content)
					}
				}
			},
		},
		{
			name:       "empty path writes nothing",
			outputFile: "",
		},
		{
			name:       "creates nested directories",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			check: func(t *testing.T, path string) {
				if _, err := os.Stat(path); err != nil {
					t.Errorf("file should exist: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteResultToFile(big.NewInt(55), 10, time.Millisecond, "Iterative (O(n))", OutputConfig{OutputFile: tc.outputFile})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, tc.outputFile)
			}
		})
	}
}

func TestWriteResultToFile_Unwritable(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := WriteResultToFile(big.NewInt(1), 1, 0, "x", OutputConfig{OutputFile: filepath.Join(blocker, "sub", "r.txt")})
	if err == nil {
		t.Error("expected an error when a parent path is a regular file")
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, big.NewInt(832040))
	if buf.String() != "832040\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestDisplayConversion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value float64
		from  temperature.Scale
		want  string
	}{
		{100, temperature.ScaleCelsius, "100.00°C = 212.00°F\n"},
		{-40, temperature.ScaleCelsius, "-40.00°C = -40.00°F\n"},
		{98.6, temperature.ScaleFahrenheit, "98.60°F = 37.00°C\n"},
	}
	for _, tt := range tests {
		result, to, err := temperature.Convert(tt.value, tt.from)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		DisplayConversion(&buf, tt.value, tt.from, result, to)
		if buf.String() != tt.want {
			t.Errorf("got %q, want %q", buf.String(), tt.want)
		}
	}
}

func TestDisplayLookupAndWord(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayLookup(&buf, []int{1, 2, 3, 4, 5}, 2, 3)
	DisplayWord(&buf, "hello world", "hello")
	DisplayWord(&buf, " leading", "")

	want := "items[2] = 3 (of 5 items)\n" +
		"first word of \"hello world\": \"hello\"\n" +
		"first word of \" leading\": \"\"\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDisplayLastDigits(t *testing.T) {
	t.Parallel()
	var quiet, full bytes.Buffer
	DisplayLastDigits(&quiet, 100, 5, "15075", time.Millisecond, true)
	DisplayLastDigits(&full, 100, 5, "15075", time.Millisecond, false)

	if quiet.String() != "15075\n" {
		t.Errorf("quiet output = %q", quiet.String())
	}
	if !strings.Contains(full.String(), "Last 5 digits of F(100): 15075") {
		t.Errorf("full output = %q", full.String())
	}
}
