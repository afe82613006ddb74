package cli

import (
	"os"
	"testing"

	"github.com/agbru/fibconv/internal/ui"
)

func TestMain(m *testing.M) {
	ui.InitTheme(true)
	os.Exit(m.Run())
}
