package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Validate compares obj against the golden file testdata/<name>.json. A
// missing file is written from obj so the first run seeds the expectation
func Validate(t *testing.T, name string, obj interface{}) {
	t.Helper()

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		panic(err)
	}

	filename := filepath.Join("testdata", fmt.Sprintf("%s.json", name))
	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			create(filename, objJSON)
			return
		}

		panic(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n")) {
		t.Logf("snapshot %s", filename)
	}
}

func create(filename string, data []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		panic(err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0o644); err != nil {
		panic(err)
	}
}
