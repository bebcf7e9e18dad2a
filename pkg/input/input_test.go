package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/WangYihang/Route-Crawler/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeCSV(t, `Institution Name,Website,Phone
Acme College,https://acme.edu,123
No Website Corp,,456
NA Institute,N/A,789
Bare Domain School,example.org,000
`)

	tasks, err := input.NewLoader(0).Load(path)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Acme College", tasks[0].Label)
	assert.Equal(t, "https://acme.edu", tasks[0].URL)

	assert.Equal(t, "Bare Domain School", tasks[1].Label)
	assert.Equal(t, "https://example.org", tasks[1].URL, "missing scheme defaults to https")
}

func TestLoaderMaxWebsites(t *testing.T) {
	path := writeCSV(t, `Institution Name,Website
A,https://a.com
B,https://b.com
C,https://c.com
`)

	tasks, err := input.NewLoader(2).Load(path)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestLoaderMissingWebsiteColumn(t *testing.T) {
	path := writeCSV(t, `Institution Name,Phone
A,123
`)

	_, err := input.NewLoader(0).Load(path)
	assert.Error(t, err)
}

func TestLoaderMissingNameColumn(t *testing.T) {
	path := writeCSV(t, `Website
https://a.com
`)

	tasks, err := input.NewLoader(0).Load(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Unknown", tasks[0].Label)
}
