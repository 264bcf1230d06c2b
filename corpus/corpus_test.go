package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestStrings(t *testing.T) {
	docs, err := ReadAll(context.Background(), Strings{"One.", "Two."})
	require.NoError(t, err)
	assert.Equal(t, []Document{
		{Name: "doc-0", Text: "One."},
		{Name: "doc-1", Text: "Two."},
	}, docs)
	assert.Equal(t, []string{"One.", "Two."}, Texts(docs))
}

func TestStrings_InvalidUTF8(t *testing.T) {
	_, err := ReadAll(context.Background(), Strings{"fine", "bad \xff byte"})
	assert.ErrorIs(t, err, ErrInput)
}

func TestStrings_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadAll(ctx, Strings{"One."})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDir(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"b.txt":       "Second file.",
		"a.txt":       "First file.",
		"sub/c.html":  `<html><body><p>From HTML.</p></body></html>`,
		"notes.md":    "skipped",
		"image.png":   "\x89PNG",
		"sub/d.HTM":   `<p>Upper ext.</p>`,
		"sub/e.jsonl": `{}`,
	})

	docs, err := ReadAll(context.Background(), Dir{Root: root})
	require.NoError(t, err)
	require.Len(t, docs, 4)

	assert.Equal(t, filepath.Join(root, "a.txt"), docs[0].Name)
	assert.Equal(t, []string{"First file.", "Second file.", "From HTML.", "Upper ext."}, Texts(docs))
}

func TestDir_InvalidUTF8(t *testing.T) {
	root := writeFiles(t, map[string]string{"bad.txt": "caf\xe9"})
	_, err := ReadAll(context.Background(), Dir{Root: root})
	assert.ErrorIs(t, err, ErrInput)
}

func TestDir_Missing(t *testing.T) {
	_, err := ReadAll(context.Background(), Dir{Root: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInput)
}

func TestDir_EarlyStop(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "A.", "b.txt": "B."})
	n := 0
	for _, err := range (Dir{Root: root}).Documents(context.Background()) {
		require.NoError(t, err)
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestHTMLText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs",
			html: `<html><head><title>T</title><style>p {}</style></head>
<body><h1>Title</h1><p>First   para.
Still first.</p><script>var x = "no.";</script><p>Second.</p></body></html>`,
			want: "Title\n\nFirst para. Still first.\n\nSecond.",
		},
		{
			name: "nested blocks",
			html: `<blockquote><p>Quoted.</p></blockquote><ul><li>Item one.</li><li>Item two.</li></ul>`,
			want: "Quoted.\n\nItem one.\n\nItem two.",
		},
		{
			name: "no blocks",
			html: `<body><div>Just a div. <span>And a span.</span></div></body>`,
			want: "Just a div. And a span.",
		},
		{
			name: "empty",
			html: ``,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLText([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
